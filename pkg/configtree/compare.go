package configtree

import (
	"fmt"
	"strings"
)

// Mismatch is a single discrepancy between an expected tree and the actual
// tree. Path is the dot-delimited location in the expected tree; Actual is
// nil when the path did not resolve in the actual tree at all.
type Mismatch struct {
	Path     string
	Expected *Value
	Actual   *Value
	Message  string
}

// Report is an ordered list of mismatches. Order follows a depth-first,
// pre-order walk of the expected tree's own entry and item order, so the
// report reads top to bottom like the expected document.
type Report []Mismatch

// OK reports whether the comparison found no mismatches, i.e. the actual
// tree structurally contains the expected tree.
func (r Report) OK() bool {
	return len(r) == 0
}

// Messages returns the mismatch messages in report order.
func (r Report) Messages() []string {
	msgs := make([]string, len(r))
	for i, m := range r {
		msgs[i] = m.Message
	}
	return msgs
}

// String renders the report one message per line.
func (r Report) String() string {
	return strings.Join(r.Messages(), "\n")
}

// Compare checks that actual structurally contains expected and returns a
// mismatch for everything expected that the actual tree is missing or gets
// wrong. Extra keys in actual are ignored. Neither input is modified, and
// comparison never fails: malformed expectations show up as mismatches in
// the report, not as errors.
func Compare(expected, actual *Value) Report {
	return CompareAtPath(expected, actual, "")
}

// CompareAtPath is Compare with an explicit starting path, for callers that
// pre-select a subtree and want mismatch paths anchored under it.
func CompareAtPath(expected, actual *Value, path string) Report {
	var rep Report
	compareNode(path, expected, actual, &rep)
	return rep
}

func compareNode(path string, expected, actual *Value, rep *Report) {
	if expected == nil {
		return
	}
	switch expected.Kind {
	case KindMapping:
		for _, e := range expected.Entries {
			childPath := joinPath(path, e.Key)
			child, ok := actual.Get(e.Key)
			if !ok {
				*rep = append(*rep, Mismatch{
					Path:     childPath,
					Expected: e.Value,
					Message:  fmt.Sprintf("configuration key '%s' not found.", childPath),
				})
				continue
			}
			compareNode(childPath, e.Value, child, rep)
		}
	case KindSequence:
		for _, item := range expected.Items {
			if actual != nil && actual.Kind == KindSequence && containsItem(actual.Items, item) {
				continue
			}
			*rep = append(*rep, Mismatch{
				Path:     path,
				Expected: item,
				Message:  fmt.Sprintf("expected list item '%s' not found at '%s'.", item, path),
			})
		}
	case KindScalar:
		exp := expected
		if b, ok := coerceBool(expected, actual); ok {
			exp = b
		}
		if !exp.Equal(actual) {
			*rep = append(*rep, Mismatch{
				Path:     path,
				Expected: exp,
				Actual:   actual,
				Message:  fmt.Sprintf("mismatch at '%s': expected '%s', found '%s'.", path, exp, actual),
			})
		}
	}
}

// containsItem reports whether items holds a deep-equal match for want.
// Membership is all-or-nothing per item; matched items are not sub-diffed.
func containsItem(items []*Value, want *Value) bool {
	for _, item := range items {
		if want.Equal(item) {
			return true
		}
	}
	return false
}

// coerceBool applies the one sanctioned coercion: when the actual value is
// a boolean and the expected value is the string "true" or "false" in any
// case, the expected string becomes a boolean. Nothing else coerces; in
// particular a boolean expectation never bends to match a string actual.
func coerceBool(expected, actual *Value) (*Value, bool) {
	if actual == nil || actual.Kind != KindScalar || actual.Scalar.Kind != ScalarBool {
		return nil, false
	}
	if expected.Kind != KindScalar || expected.Scalar.Kind != ScalarString {
		return nil, false
	}
	switch strings.ToLower(expected.Scalar.Str) {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	}
	return nil, false
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
