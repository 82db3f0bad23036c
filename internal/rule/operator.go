package rule

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// Operator names accepted in rule definitions.
const (
	OpEq       = "eq"
	OpNe       = "ne"
	OpGt       = "gt"
	OpGte      = "gte"
	OpLt       = "lt"
	OpLte      = "lte"
	OpContains = "contains"
	OpPrefix   = "prefix"
	OpMatch    = "match"
	OpExists   = "exists"
	OpIn       = "in"
)

// compareFunc tests a field value against an operand. present reports
// whether the field exists on the record.
type compareFunc func(field any, present bool, operand any) bool

var operators = map[string]compareFunc{
	OpEq:       func(f any, ok bool, v any) bool { return ok && equal(f, v) },
	OpNe:       func(f any, ok bool, v any) bool { return ok && !equal(f, v) },
	OpGt:       ordered(func(c int) bool { return c > 0 }),
	OpGte:      ordered(func(c int) bool { return c >= 0 }),
	OpLt:       ordered(func(c int) bool { return c < 0 }),
	OpLte:      ordered(func(c int) bool { return c <= 0 }),
	OpContains: contains,
	OpPrefix:   prefix,
	OpMatch:    match,
	OpExists:   exists,
	OpIn:       in,
}

// Operators returns the supported operator names.
func Operators() []string {
	return []string{OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpContains, OpPrefix, OpMatch, OpExists, OpIn}
}

// needsOperand reports whether op has nothing to compare without an operand.
func needsOperand(op string) bool {
	return op != OpExists
}

// equal compares numerically when both sides are numbers, otherwise as
// strings.
func equal(a, b any) bool {
	if fa, fb, ok := numbers(a, b); ok {
		return fa == fb
	}
	if ba, ok := a.(bool); ok {
		bb, err := cast.ToBoolE(b)
		return err == nil && ba == bb
	}
	sa, errA := cast.ToStringE(a)
	sb, errB := cast.ToStringE(b)
	return errA == nil && errB == nil && sa == sb
}

// compare orders a against b: numerically when both coerce to numbers,
// lexically when both are strings. ok is false when they are not comparable.
func compare(a, b any) (c int, ok bool) {
	if fa, fb, ok := numbers(a, b); ok {
		switch {
		case fa < fb:
			return -1, true
		case fa > fb:
			return 1, true
		default:
			return 0, true
		}
	}
	sa, okA := a.(string)
	sb, okB := b.(string)
	if !okA || !okB {
		return 0, false
	}
	return strings.Compare(sa, sb), true
}

func numbers(a, b any) (float64, float64, bool) {
	if a == nil || b == nil || (!numeric(a) && !numeric(b)) {
		return 0, 0, false
	}
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return fa, fb, true
}

func numeric(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}
	return false
}

func ordered(test func(c int) bool) compareFunc {
	return func(f any, ok bool, v any) bool {
		if !ok {
			return false
		}
		c, comparable := compare(f, v)
		return comparable && test(c)
	}
}

// contains matches a substring of a string field, or an element of a list
// field.
func contains(f any, ok bool, v any) bool {
	if !ok || f == nil {
		return false
	}
	if list, isList := asList(f); isList {
		for _, item := range list {
			if equal(item, v) {
				return true
			}
		}
		return false
	}
	s, err := cast.ToStringE(f)
	if err != nil {
		return false
	}
	sub, err := cast.ToStringE(v)
	return err == nil && strings.Contains(s, sub)
}

func prefix(f any, ok bool, v any) bool {
	if !ok || f == nil {
		return false
	}
	s, err := cast.ToStringE(f)
	if err != nil {
		return false
	}
	p, err := cast.ToStringE(v)
	return err == nil && strings.HasPrefix(s, p)
}

// match treats the operand as a regular expression. Precompiled patterns
// from the rule's configured value arrive as *regexp.Regexp.
func match(f any, ok bool, v any) bool {
	if !ok || f == nil {
		return false
	}
	s, err := cast.ToStringE(f)
	if err != nil {
		return false
	}
	re, isRe := v.(*regexp.Regexp)
	if !isRe {
		pattern, err := cast.ToStringE(v)
		if err != nil {
			return false
		}
		if re, err = regexp.Compile(pattern); err != nil {
			return false
		}
	}
	return re.MatchString(s)
}

func exists(f any, ok bool, _ any) bool {
	return ok && f != nil
}

// in matches when the field equals any element of the operand list. A
// comma-separated string operand is split into elements.
func in(f any, ok bool, v any) bool {
	if !ok {
		return false
	}
	list, isList := asList(v)
	if !isList {
		s, err := cast.ToStringE(v)
		if err != nil {
			return false
		}
		for _, part := range strings.Split(s, ",") {
			list = append(list, strings.TrimSpace(part))
		}
	}
	for _, item := range list {
		if equal(f, item) {
			return true
		}
	}
	return false
}

func asList(v any) ([]any, bool) {
	if list, ok := v.([]any); ok {
		return list, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
