// Package rule compiles declarative filter rules into filter descriptors
// over records.
//
// A rule names a record field, an operator, and an optional operand:
//
//	filters:
//	  - name: recent
//	    field: year
//	    op: gt
//	    value: 2000
//	  - name: genre
//	    field: genre
//	    op: eq
//
// The payload passed to Apply or Toggle for a filter overrides the
// configured value, so a rule without a value acts as a parameterized
// filter whose operand is chosen at runtime. A comparison with neither
// payload nor value never matches; exists is the only operator that needs
// no operand.
package rule
