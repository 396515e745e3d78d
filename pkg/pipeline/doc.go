// Package pipeline parses pipeline YAML and validates stages and steps
// against expected configuration trees.
//
// Parse flattens a pipeline's stages, including parallel groups, into one
// ordered list. ValidateStageConfig and ValidateSteps then check caller
// expectations against a stage's spec or its execution steps, reusing the
// configtree comparator for all value semantics, so the same containment,
// list-membership and boolean-coercion rules apply everywhere a tree is
// checked.
package pipeline
