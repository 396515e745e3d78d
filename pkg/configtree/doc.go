// Package configtree compares configuration trees and reports every
// discrepancy as data.
//
// A tree is a Value: a mapping (ordered key/value entries), a sequence, or
// a scalar (string, number, boolean, null). Trees come from ParseYAML,
// ParseJSON, or FromGo, or are built inline with Map/Seq/Str/Num/Bool/Null.
//
// Compare answers one question: does the actual tree structurally contain
// the expected tree? Extra keys in actual never matter. Every missing key,
// missing list item, or differing scalar becomes one Mismatch in the
// returned Report, ordered by a pre-order walk of the expected tree, so a
// clean run is simply an empty report:
//
//	expected, _ := configtree.ParseYAML(wantYAML)
//	actual, _ := configtree.ParseYAML(gotYAML)
//	report := configtree.Compare(expected, actual)
//	if !report.OK() {
//	    fmt.Println(report)
//	}
//
// Comparison rules:
//   - Mappings descend per expected key; an absent key reports "not found"
//     without recursing further.
//   - Sequences check membership by deep equality, ignoring order and
//     position; matched items are not sub-diffed.
//   - Scalars compare by value, with one coercion: a string expectation of
//     "true"/"false" (any case) bends to match a boolean actual. A boolean
//     expectation never bends to match a string.
//
// Compare never mutates its inputs and never fails; parse errors on
// malformed text belong to the parse step, so a report always means the
// comparison itself ran.
package configtree
