package ml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// treeArtifact is the on-disk form of an exported decision tree.
type treeArtifact struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// modelArtifact is the on-disk form of one trained model: its input schema,
// the label codecs for its categorical features, its output class list, and
// the tree itself.
type modelArtifact struct {
	Features []string            `json:"features"`
	Encoders map[string][]string `json:"encoders"`
	Target   []string            `json:"target"`
	Tree     treeArtifact        `json:"tree"`
}

// Model is one loaded classifier with its codecs. Read-only after load.
type Model struct {
	Features   []string
	Encoders   map[string]*LabelCodec
	Target     *LabelCodec
	Classifier Classifier
}

// Encoder returns the codec for a categorical feature.
func (m *Model) Encoder(feature string) (*LabelCodec, error) {
	codec, ok := m.Encoders[feature]
	if !ok {
		return nil, fmt.Errorf("model has no encoder for feature %q", feature)
	}
	return codec, nil
}

// LoadModel reads a model artifact and validates it against the declared
// feature schema and categorical set. Any mismatch fails the load; the caller
// is expected to refuse to serve.
func LoadModel(path string, wantFeatures, wantCategorical []string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}
	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}

	if len(artifact.Features) != len(wantFeatures) {
		return nil, fmt.Errorf("model %s declares %d features, schema expects %d", path, len(artifact.Features), len(wantFeatures))
	}
	for i, name := range wantFeatures {
		if artifact.Features[i] != name {
			return nil, fmt.Errorf("model %s feature %d is %q, schema expects %q", path, i, artifact.Features[i], name)
		}
	}

	encoders := make(map[string]*LabelCodec, len(wantCategorical))
	for _, feature := range wantCategorical {
		classes, ok := artifact.Encoders[feature]
		if !ok {
			return nil, fmt.Errorf("model %s is missing the encoder for %q", path, feature)
		}
		codec, err := NewLabelCodec(classes)
		if err != nil {
			return nil, fmt.Errorf("model %s encoder %q: %w", path, feature, err)
		}
		encoders[feature] = codec
	}

	target, err := NewLabelCodec(artifact.Target)
	if err != nil {
		return nil, fmt.Errorf("model %s target classes: %w", path, err)
	}

	tree, err := NewDecisionTree(
		len(wantFeatures),
		len(artifact.Target),
		artifact.Tree.ChildrenLeft,
		artifact.Tree.ChildrenRight,
		artifact.Tree.Feature,
		artifact.Tree.Threshold,
		artifact.Tree.Value,
	)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	return &Model{
		Features:   append([]string(nil), wantFeatures...),
		Encoders:   encoders,
		Target:     target,
		Classifier: tree,
	}, nil
}

// Bundle holds both loaded models.
type Bundle struct {
	Fertility  *Model
	Fertilizer *Model
}

// LoadBundle loads fertility.json and fertilizer.json from dir. A missing or
// incompatible artifact is a startup failure.
func LoadBundle(dir string) (*Bundle, error) {
	fertility, err := LoadModel(filepath.Join(dir, "fertility.json"), FertilityFeatures, FertilityCategorical)
	if err != nil {
		return nil, fmt.Errorf("load fertility model: %w", err)
	}
	fertilizer, err := LoadModel(filepath.Join(dir, "fertilizer.json"), FertilizerFeatures, FertilizerCategorical)
	if err != nil {
		return nil, fmt.Errorf("load fertilizer model: %w", err)
	}
	return &Bundle{Fertility: fertility, Fertilizer: fertilizer}, nil
}
