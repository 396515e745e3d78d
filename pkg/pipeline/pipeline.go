package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Common errors for pipeline parsing.
var (
	ErrInvalidPipeline = errors.New("invalid pipeline document")
)

// Stage is one flattened stage of a pipeline. Spec carries the stage's
// free-form spec mapping as decoded from YAML.
type Stage struct {
	Name        string         `mapstructure:"name"`
	Identifier  string         `mapstructure:"identifier"`
	Description string         `mapstructure:"description"`
	Type        string         `mapstructure:"type"`
	Spec        map[string]any `mapstructure:"spec"`
}

// Pipeline is a parsed pipeline definition. Stages keep document order,
// with parallel groups flattened in place.
type Pipeline struct {
	Name       string
	Identifier string
	Stages     []Stage
}

// Parse reads a pipeline YAML document and flattens its stages. Entries
// wrapped in "stage" or "parallel" groups are lifted into one ordered
// list; anything else under stages is ignored.
func Parse(data []byte) (*Pipeline, error) {
	var doc struct {
		Pipeline struct {
			Name       string           `yaml:"name"`
			Identifier string           `yaml:"identifier"`
			Stages     []map[string]any `yaml:"stages"`
		} `yaml:"pipeline"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}

	var rawStages []any
	for _, entry := range doc.Pipeline.Stages {
		if s, ok := entry["stage"]; ok {
			rawStages = append(rawStages, s)
			continue
		}
		if group, ok := entry["parallel"].([]any); ok {
			for _, parallelEntry := range group {
				m, ok := parallelEntry.(map[string]any)
				if !ok {
					continue
				}
				if s, ok := m["stage"]; ok {
					rawStages = append(rawStages, s)
				}
			}
		}
	}

	p := &Pipeline{
		Name:       doc.Pipeline.Name,
		Identifier: doc.Pipeline.Identifier,
		Stages:     make([]Stage, 0, len(rawStages)),
	}
	for _, raw := range rawStages {
		var stage Stage
		if err := mapstructure.Decode(raw, &stage); err != nil {
			return nil, fmt.Errorf("%w: decoding stage: %v", ErrInvalidPipeline, err)
		}
		p.Stages = append(p.Stages, stage)
	}
	return p, nil
}

// StagesByIdentifier returns the stages whose identifier matches id,
// ignoring case, in document order.
func (p *Pipeline) StagesByIdentifier(id string) []*Stage {
	var out []*Stage
	for i := range p.Stages {
		if strings.EqualFold(p.Stages[i].Identifier, id) {
			out = append(out, &p.Stages[i])
		}
	}
	return out
}

// FindStageIdentifier returns the identifier of the first stage of the
// given type. When serviceName is non-empty the stage must also reference
// that service at spec.service.serviceRef (ignoring case).
func (p *Pipeline) FindStageIdentifier(stageType, serviceName string) (string, bool) {
	for i := range p.Stages {
		stage := &p.Stages[i]
		if stage.Type != stageType {
			continue
		}
		if serviceName == "" {
			return stage.Identifier, true
		}
		if strings.EqualFold(stage.serviceRef(), serviceName) && stage.serviceRef() != "" {
			return stage.Identifier, true
		}
	}
	return "", false
}

func (s *Stage) serviceRef() string {
	service, ok := s.Spec["service"].(map[string]any)
	if !ok {
		return ""
	}
	ref, _ := service["serviceRef"].(string)
	return ref
}
