package pipeline

import (
	"github.com/jtitra/labkit/pkg/configtree"
)

// ValidateStageConfig checks the expected configuration tree against the
// spec of every stage whose identifier matches stageID. Mismatch paths are
// anchored under the stage name, so a missing "caching.enabled" in stage
// "Build" reports at "Build.caching.enabled".
func ValidateStageConfig(p *Pipeline, stageID string, expect *configtree.Value) configtree.Report {
	if expect == nil {
		return nil
	}
	var rep configtree.Report
	for _, stage := range p.StagesByIdentifier(stageID) {
		actual := configtree.FromGo(stage.Spec)
		rep = append(rep, configtree.CompareAtPath(expect, actual, stage.Name)...)
	}
	return rep
}
