package workshop

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/jtitra/labkit/pkg/configtree"
	"github.com/jtitra/labkit/pkg/pipeline"
)

// ErrMissingDocument is returned when a config declares checks but no
// document was supplied to run them against.
var ErrMissingDocument = errors.New("checks declared but no document provided")

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name           string
	Skipped        bool
	Mismatches     configtree.Report
	StepMismatches []pipeline.StepMismatch
}

// OK reports whether the check found no mismatches. Skipped checks are
// OK by definition.
func (r CheckResult) OK() bool {
	return len(r.Mismatches) == 0 && len(r.StepMismatches) == 0
}

// Messages flattens the mismatch messages from both validators, tree
// mismatches first.
func (r CheckResult) Messages() []string {
	msgs := r.Mismatches.Messages()
	for _, m := range r.StepMismatches {
		msgs = append(msgs, m.Message)
	}
	return msgs
}

// RunChecks runs every check in the config against the given document.
// Stage and steps checks parse the document as a Harness pipeline;
// workspace checks compare the expected tree against the document root.
// A check whose When expression evaluates false over vars is skipped.
func RunChecks(cfg *Config, document []byte, vars map[string]any) ([]CheckResult, error) {
	if len(cfg.Checks) == 0 {
		return nil, nil
	}
	if len(document) == 0 {
		return nil, ErrMissingDocument
	}

	// Parsed lazily so a config with only workspace checks accepts
	// documents that are not pipelines.
	var pl *pipeline.Pipeline

	results := make([]CheckResult, 0, len(cfg.Checks))
	for _, c := range cfg.Checks {
		result := CheckResult{Name: c.Name}

		if c.When != "" {
			run, err := evalWhen(c.When, vars)
			if err != nil {
				return nil, fmt.Errorf("check %q: %w", c.Name, err)
			}
			if !run {
				result.Skipped = true
				results = append(results, result)
				continue
			}
		}

		// A check without an expect tree verifies nothing.
		var expect *configtree.Value
		if c.Expect.Kind != 0 {
			var err error
			expect, err = configtree.FromYAMLNode(&c.Expect)
			if err != nil {
				return nil, fmt.Errorf("check %q: bad expect tree: %w", c.Name, err)
			}
		}

		switch c.Type {
		case CheckStage, CheckSteps:
			if pl == nil {
				var err error
				pl, err = pipeline.Parse(document)
				if err != nil {
					return nil, fmt.Errorf("check %q: %w", c.Name, err)
				}
			}
			if c.Type == CheckStage {
				result.Mismatches = pipeline.ValidateStageConfig(pl, c.Stage, expect)
			} else {
				result.StepMismatches = pipeline.ValidateSteps(pl, c.Stage, expect)
			}
		case CheckWorkspace:
			if expect != nil {
				root, err := configtree.ParseYAML(document)
				if err != nil {
					return nil, fmt.Errorf("check %q: %w", c.Name, err)
				}
				result.Mismatches = configtree.Compare(expect, root)
			}
		default:
			return nil, fmt.Errorf("check %q: unknown type %q", c.Name, c.Type)
		}

		results = append(results, result)
	}
	return results, nil
}

// evalWhen evaluates a when expression to a boolean over the vars map.
// Unknown variables resolve to nil, so "env == 'prod'" is simply false
// when env was never set.
func evalWhen(src string, vars map[string]any) (bool, error) {
	if vars == nil {
		vars = map[string]any{}
	}

	program, err := expr.Compile(src, expr.Env(vars), expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return false, fmt.Errorf("invalid when expression: %w", err)
	}

	out, err := expr.Run(program, vars)
	if err != nil {
		return false, fmt.Errorf("evaluating when expression: %w", err)
	}

	run, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("when expression returned %T, want bool", out)
	}
	return run, nil
}
