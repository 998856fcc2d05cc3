package scoring

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"golang-bias-heatmap/pkg/apperror"

	"gopkg.in/yaml.v3"
)

const maxVersionLength = 20

// ComponentWeight is the weight of one indicator key inside a pillar.
type ComponentWeight struct {
	Key    string
	Weight float64
}

// PillarWeights lists the components of a pillar in document order.
type PillarWeights struct {
	Name       string
	Components []ComponentWeight
}

// Weights is a versioned weight configuration.
type Weights struct {
	Version string
	Pillars []PillarWeights
}

// Keys returns every distinct indicator key referenced by the configuration, in first-seen order.
func (w *Weights) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, p := range w.Pillars {
		for _, c := range p.Components {
			if !seen[c.Key] {
				seen[c.Key] = true
				keys = append(keys, c.Key)
			}
		}
	}
	return keys
}

// WeightLoader loads the current weight configuration. Implementations must not
// cache: a change to the source takes effect on the next scoring run.
type WeightLoader interface {
	Load(ctx context.Context) (*Weights, error)
}

// WeightLoaderFunc adapts a function to WeightLoader.
type WeightLoaderFunc func(ctx context.Context) (*Weights, error)

// Load implements WeightLoader.
func (f WeightLoaderFunc) Load(ctx context.Context) (*Weights, error) {
	return f(ctx)
}

// FileWeightLoader reads a YAML weight document from disk on every call.
type FileWeightLoader struct {
	path string
}

// NewFileWeightLoader creates a loader for the document at path.
func NewFileWeightLoader(path string) *FileWeightLoader {
	return &FileWeightLoader{path: path}
}

// Load implements WeightLoader.
func (l *FileWeightLoader) Load(ctx context.Context) (*Weights, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, apperror.Configuration("failed to read weights file %s", l.path).WithError(err)
	}
	return ParseWeights(data)
}

type weightsDocument struct {
	Version string    `yaml:"version"`
	Pillars yaml.Node `yaml:"pillars"`
}

type pillarDocument struct {
	Components yaml.Node `yaml:"components"`
}

// ParseWeights decodes a weight document of the form
//
//	version: "2025.08.1"
//	pillars:
//	  Macro:
//	    components:
//	      macro: 1.0
//
// keeping pillar and component order as written.
func ParseWeights(data []byte) (*Weights, error) {
	var doc weightsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperror.Configuration("malformed weights document").WithError(err)
	}

	version := strings.TrimSpace(doc.Version)
	if version == "" {
		return nil, apperror.Configuration("weights document has no version")
	}
	if len(version) > maxVersionLength {
		return nil, apperror.Configuration("weights version %q exceeds %d characters", version, maxVersionLength)
	}

	if doc.Pillars.Kind != yaml.MappingNode || len(doc.Pillars.Content) == 0 {
		return nil, apperror.Configuration("weights document has no pillars")
	}

	weights := &Weights{Version: version}
	seenPillars := make(map[string]bool)
	for i := 0; i+1 < len(doc.Pillars.Content); i += 2 {
		name := doc.Pillars.Content[i].Value
		if seenPillars[name] {
			return nil, apperror.Configuration("duplicate pillar %q", name)
		}
		seenPillars[name] = true

		pillar, err := parsePillar(name, doc.Pillars.Content[i+1])
		if err != nil {
			return nil, err
		}
		weights.Pillars = append(weights.Pillars, pillar)
	}
	return weights, nil
}

func parsePillar(name string, node *yaml.Node) (PillarWeights, error) {
	var doc pillarDocument
	if err := node.Decode(&doc); err != nil {
		return PillarWeights{}, apperror.Configuration("malformed pillar %q", name).WithError(err)
	}
	if doc.Components.Kind != yaml.MappingNode {
		return PillarWeights{}, apperror.Configuration("pillar %q has no components mapping", name)
	}

	pillar := PillarWeights{Name: name}
	seen := make(map[string]bool)
	for j := 0; j+1 < len(doc.Components.Content); j += 2 {
		key := doc.Components.Content[j].Value
		if seen[key] {
			return PillarWeights{}, apperror.Configuration("duplicate component %q in pillar %q", key, name)
		}
		seen[key] = true

		var weight float64
		if err := doc.Components.Content[j+1].Decode(&weight); err != nil {
			return PillarWeights{}, apperror.Configuration("weight of %s.%s is not numeric", name, key).WithError(err)
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			return PillarWeights{}, apperror.Configuration("weight of %s.%s must be finite", name, key)
		}
		pillar.Components = append(pillar.Components, ComponentWeight{Key: key, Weight: weight})
	}
	return pillar, nil
}

// String renders a short description for logs.
func (w *Weights) String() string {
	return fmt.Sprintf("weights(version=%s, pillars=%d)", w.Version, len(w.Pillars))
}
