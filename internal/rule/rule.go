package rule

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Iron-Ham/sift/internal/errors"
	"github.com/Iron-Ham/sift/internal/filter"
	"github.com/Iron-Ham/sift/internal/record"
)

// Spec is one configured filter rule.
type Spec struct {
	// Name identifies the filter for Apply, Remove, Toggle and GetFilter.
	Name string `mapstructure:"name" json:"name" yaml:"name"`
	// Field is a dotted record path such as "author.name".
	Field string `mapstructure:"field" json:"field" yaml:"field"`
	// Op is one of the operator names returned by Operators.
	Op string `mapstructure:"op" json:"op" yaml:"op"`
	// Value is the default operand. A non-nil payload overrides it.
	Value any `mapstructure:"value" json:"value,omitempty" yaml:"value,omitempty"`
	// Negate inverts the result of the comparison.
	Negate bool `mapstructure:"negate" json:"negate,omitempty" yaml:"negate,omitempty"`
}

// String renders the rule the way the CLI lists it.
func (s Spec) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteString(": ")
	if s.Negate {
		b.WriteString("not ")
	}
	fmt.Fprintf(&b, "%s %s", s.Field, strings.ToLower(s.Op))
	if s.Value != nil {
		fmt.Fprintf(&b, " %v", s.Value)
	} else if needsOperand(strings.ToLower(s.Op)) {
		b.WriteString(" <payload>")
	}
	return b.String()
}

// Validate checks the rule without building it.
func (s Spec) Validate() error {
	_, err := Compile(s)
	return err
}

// Compile builds a filter descriptor from a rule.
func Compile(s Spec) (filter.Descriptor[record.Record], error) {
	op := strings.ToLower(strings.TrimSpace(s.Op))

	if strings.TrimSpace(s.Name) == "" {
		return filter.Descriptor[record.Record]{}, errors.NewRuleError("name is required", errors.ErrInvalidRule).
			WithField(s.Field).WithOperator(op)
	}
	if strings.TrimSpace(s.Field) == "" {
		return filter.Descriptor[record.Record]{}, errors.NewRuleError("field is required", errors.ErrInvalidRule).
			WithFilter(s.Name).WithOperator(op)
	}
	cmp, ok := operators[op]
	if !ok {
		return filter.Descriptor[record.Record]{}, errors.NewRuleError(
			fmt.Sprintf("unsupported operator %q (valid: %s)", s.Op, strings.Join(Operators(), ", ")),
			errors.ErrUnknownOperator,
		).WithFilter(s.Name).WithField(s.Field).WithOperator(s.Op)
	}

	value := s.Value
	if op == OpMatch && value != nil {
		pattern, err := regexp.Compile(fmt.Sprint(value))
		if err != nil {
			return filter.Descriptor[record.Record]{}, errors.NewRuleError("invalid pattern", errors.Join(errors.ErrInvalidRule, err)).
				WithFilter(s.Name).WithField(s.Field).WithOperator(op)
		}
		value = pattern
	}

	field, negate := s.Field, s.Negate
	predicate := func(r record.Record, payload any) bool {
		operand := value
		if payload != nil {
			operand = payload
		}
		if operand == nil && needsOperand(op) {
			return false
		}
		v, present := r.Get(field)
		return cmp(v, present, operand) != negate
	}

	return filter.MakeFilter(s.Name, predicate), nil
}

// CompileAll builds descriptors for every rule in declaration order. All
// rule errors are reported together, and a name declared twice is an error.
func CompileAll(specs []Spec) ([]filter.Descriptor[record.Record], error) {
	descriptors := make([]filter.Descriptor[record.Record], 0, len(specs))
	seen := make(map[string]bool, len(specs))
	var errs []error

	for i, s := range specs {
		d, err := Compile(s)
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "filters[%d]", i))
			continue
		}
		if seen[s.Name] {
			errs = append(errs, errors.NewRuleError("declared more than once", errors.ErrDuplicateFilter).
				WithFilter(s.Name))
			continue
		}
		seen[s.Name] = true
		descriptors = append(descriptors, d)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return descriptors, nil
}

// ParsePayload decodes a payload typed on the command line or in the
// payload editor. Integers, floats and booleans keep their type, a JSON
// array becomes a list (for "in" and "contains"), and anything else is a
// string, including "Inf" and "NaN". An empty string is no payload.
func ParsePayload(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	if strings.HasPrefix(raw, "[") {
		var list []any
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list
		}
	}
	return raw
}

// SplitAssignment splits a "name=payload" flag value. Without "=" the
// payload is nil.
func SplitAssignment(s string) (name string, payload any) {
	name, raw, ok := strings.Cut(s, "=")
	if !ok {
		return s, nil
	}
	return name, ParsePayload(raw)
}
