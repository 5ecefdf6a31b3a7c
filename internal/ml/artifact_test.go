package ml_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soil-advisor/internal/ml"
)

// fertilizerArtifact returns a minimal valid artifact document for the
// 8-feature fertilizer schema.
func fertilizerArtifact() map[string]any {
	return map[string]any{
		"features": ml.FertilizerFeatures,
		"encoders": map[string][]string{
			"Soil_Type": {"Clayey", "Loamy", "Red", "Sandy"},
			"Crop_Type": {"Maize", "Paddy", "Wheat"},
		},
		"target": []string{"DAP", "Urea"},
		"tree": map[string]any{
			"children_left":  []int{1, -1, -1},
			"children_right": []int{2, -1, -1},
			"feature":        []int{0, -2, -2},
			"threshold":      []float64{30, 0, 0},
			"value":          [][]float64{{5, 5}, {5, 0}, {0, 5}},
		},
	}
}

func writeArtifact(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, raw, 0o600))
	return path
}

func TestLoadModel_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, "fertilizer.json", fertilizerArtifact())

	model, err := ml.LoadModel(path, ml.FertilizerFeatures, ml.FertilizerCategorical)
	require.NoError(t, err)
	assert.Equal(t, ml.FertilizerFeatures, model.Features)
	assert.Equal(t, 8, model.Classifier.NumFeatures())

	soil, err := model.Encoder("Soil_Type")
	require.NoError(t, err)
	assert.Equal(t, []string{"Clayey", "Loamy", "Red", "Sandy"}, soil.Options())

	label, err := model.Target.Decode(1)
	require.NoError(t, err)
	assert.Equal(t, "Urea", label)
}

func TestLoadModel_MissingFile(t *testing.T) {
	_, err := ml.LoadModel(filepath.Join(t.TempDir(), "absent.json"), ml.FertilizerFeatures, ml.FertilizerCategorical)
	assert.Error(t, err)
}

func TestLoadModel_FeatureSchemaMismatch(t *testing.T) {
	dir := t.TempDir()

	doc := fertilizerArtifact()
	doc["features"] = []string{"Temparature", "Humidity"} // truncated schema
	path := writeArtifact(t, dir, "short.json", doc)
	_, err := ml.LoadModel(path, ml.FertilizerFeatures, ml.FertilizerCategorical)
	assert.Error(t, err)

	doc = fertilizerArtifact()
	reordered := append([]string(nil), ml.FertilizerFeatures...)
	reordered[0], reordered[1] = reordered[1], reordered[0]
	doc["features"] = reordered
	path = writeArtifact(t, dir, "reordered.json", doc)
	_, err = ml.LoadModel(path, ml.FertilizerFeatures, ml.FertilizerCategorical)
	assert.Error(t, err)
}

func TestLoadModel_MissingEncoder(t *testing.T) {
	dir := t.TempDir()
	doc := fertilizerArtifact()
	doc["encoders"] = map[string][]string{"Soil_Type": {"Sandy"}} // Crop_Type absent
	path := writeArtifact(t, dir, "noenc.json", doc)

	_, err := ml.LoadModel(path, ml.FertilizerFeatures, ml.FertilizerCategorical)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Crop_Type")
}

func TestLoadModel_BrokenTree(t *testing.T) {
	dir := t.TempDir()
	doc := fertilizerArtifact()
	doc["tree"] = map[string]any{
		"children_left":  []int{1, -1, -1},
		"children_right": []int{2, -1, -1},
		"feature":        []int{99, -2, -2}, // split feature outside the schema
		"threshold":      []float64{30, 0, 0},
		"value":          [][]float64{{5, 5}, {5, 0}, {0, 5}},
	}
	path := writeArtifact(t, dir, "broken.json", doc)

	_, err := ml.LoadModel(path, ml.FertilizerFeatures, ml.FertilizerCategorical)
	assert.Error(t, err)
}

func TestLoadBundle(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "fertilizer.json", fertilizerArtifact())
	writeArtifact(t, dir, "fertility.json", map[string]any{
		"features": ml.FertilityFeatures,
		"encoders": map[string][]string{
			"Name":        {"Banana", "Rice"},
			"Photoperiod": {"Day Neutral", "Long Day", "Short Day"},
			"Category_pH": {"Acidic", "Alkaline", "Neutral"},
			"Soil_Type":   {"Clay", "Loamy", "Sandy"},
			"Season":      {"Kharif", "Rabi", "Summer"},
		},
		"target": []string{"High", "Low", "Medium"},
		"tree": map[string]any{
			"children_left":  []int{-1},
			"children_right": []int{-1},
			"feature":        []int{-2},
			"threshold":      []float64{0},
			"value":          [][]float64{{1, 7, 2}},
		},
	})

	bundle, err := ml.LoadBundle(dir)
	require.NoError(t, err)
	assert.Equal(t, 18, bundle.Fertility.Classifier.NumFeatures())
	assert.Equal(t, 8, bundle.Fertilizer.Classifier.NumFeatures())
}

func TestLoadBundle_MissingArtifactFailsFast(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "fertilizer.json", fertilizerArtifact())
	// fertility.json deliberately absent

	_, err := ml.LoadBundle(dir)
	assert.Error(t, err)
}
