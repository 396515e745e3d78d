package pipeline

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/jtitra/labkit/pkg/configtree"
)

// Step is one flattened execution step of a stage. Raw holds the full step
// mapping for property checks.
type Step struct {
	Name       string         `mapstructure:"name"`
	Identifier string         `mapstructure:"identifier"`
	Type       string         `mapstructure:"type"`
	Raw        map[string]any `mapstructure:"-"`
}

// StepMismatch is one discrepancy found while validating steps, carrying
// the step and stage it belongs to. For a step that was not found at all,
// Property is empty and Expected/Actual are nil.
type StepMismatch struct {
	StepKey   string
	StageName string
	StageType string
	Property  string
	Expected  *configtree.Value
	Actual    *configtree.Value
	Message   string
}

// Steps flattens the stage's execution steps. Steps wrapped in "parallel"
// groups and one level of "stepGroup" are lifted into the ordered list.
func (s *Stage) Steps() []Step {
	execution, ok := s.Spec["execution"].(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := execution["steps"].([]any)
	if !ok {
		return nil
	}

	var out []Step
	appendStep := func(raw any) {
		m, ok := raw.(map[string]any)
		if !ok {
			return
		}
		var step Step
		if err := mapstructure.Decode(m, &step); err != nil {
			return
		}
		step.Raw = m
		out = append(out, step)
	}

	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if raw, ok := m["step"]; ok {
			appendStep(raw)
			continue
		}
		if group, ok := m["parallel"].([]any); ok {
			for _, parallelEntry := range group {
				pm, ok := parallelEntry.(map[string]any)
				if !ok {
					continue
				}
				if raw, ok := pm["step"]; ok {
					appendStep(raw)
				}
			}
			continue
		}
		if group, ok := m["stepGroup"].(map[string]any); ok {
			groupSteps, ok := group["steps"].([]any)
			if !ok {
				continue
			}
			for _, groupEntry := range groupSteps {
				gm, ok := groupEntry.(map[string]any)
				if !ok {
					continue
				}
				if raw, ok := gm["step"]; ok {
					appendStep(raw)
				}
			}
		}
	}
	return out
}

// Matches reports whether the step is addressed by key: its type, name or
// identifier equals key ignoring case.
func (s *Step) Matches(key string) bool {
	return strings.EqualFold(s.Type, key) ||
		strings.EqualFold(s.Name, key) ||
		strings.EqualFold(s.Identifier, key)
}

// ValidateSteps checks expected step properties against every stage whose
// identifier matches stageID. The expectation is a mapping of step key
// (type, name or identifier) to the property tree that step must contain.
// Property discrepancies come from the tree comparator, so nested
// mappings, list membership and the boolean coercion rule all behave as
// they do in configtree.Compare.
func ValidateSteps(p *Pipeline, stageID string, expect *configtree.Value) []StepMismatch {
	if expect == nil {
		return nil
	}
	var out []StepMismatch
	for _, stage := range p.StagesByIdentifier(stageID) {
		steps := stage.Steps()
		for _, entry := range expect.Entries {
			stepKey := entry.Key
			var matched []Step
			for _, step := range steps {
				if step.Matches(stepKey) {
					matched = append(matched, step)
				}
			}
			if len(matched) == 0 {
				out = append(out, StepMismatch{
					StepKey:   stepKey,
					StageName: stage.Name,
					StageType: stage.Type,
					Message: fmt.Sprintf("step '%s' not found in stage '%s' with type '%s'.",
						stepKey, stage.Name, stage.Type),
				})
				continue
			}
			for _, step := range matched {
				rep := configtree.Compare(entry.Value, configtree.FromGo(step.Raw))
				for _, m := range rep {
					out = append(out, StepMismatch{
						StepKey:   stepKey,
						StageName: stage.Name,
						StageType: stage.Type,
						Property:  m.Path,
						Expected:  m.Expected,
						Actual:    m.Actual,
						Message: fmt.Sprintf("step '%s' in stage '%s': %s",
							stepKey, stage.Name, m.Message),
					})
				}
			}
		}
	}
	return out
}
