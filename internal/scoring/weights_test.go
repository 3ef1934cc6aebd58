package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeCalibration(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weights.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadWeights_EmptyPathUsesDefaults(t *testing.T) {
	w := LoadWeights("", zap.NewNop())
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeights_MissingFileUsesDefaults(t *testing.T) {
	w := LoadWeights(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeights_ValidCalibration(t *testing.T) {
	path := writeCalibration(t, `{
		"version": "2024-07",
		"weights": {"skills_overlap": 0.5, "vector_blend": 0.7}
	}`)

	w := LoadWeights(path, zap.NewNop())

	assert.Equal(t, 0.5, w.SkillsOverlap)
	assert.Equal(t, 0.7, w.VectorBlend)
	// Unnamed weights keep their defaults.
	assert.Equal(t, DefaultWeights().LocationMatch, w.LocationMatch)
	assert.Equal(t, DefaultWeights().MetadataBlend, w.MetadataBlend)
}

func TestLoadWeights_SchemaViolationUsesDefaults(t *testing.T) {
	path := writeCalibration(t, `{"weights": {"skills_overlap": 7}}`)
	w := LoadWeights(path, zap.NewNop())
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeights_UnknownKeyRejected(t *testing.T) {
	path := writeCalibration(t, `{"weights": {"charisma": 0.9}}`)
	w := LoadWeights(path, zap.NewNop())
	assert.Equal(t, DefaultWeights(), w)
}

func TestLoadWeights_MalformedJSONUsesDefaults(t *testing.T) {
	path := writeCalibration(t, `{"weights": `)
	w := LoadWeights(path, zap.NewNop())
	assert.Equal(t, DefaultWeights(), w)
}

func TestValidateCalibration_MissingWeightsKey(t *testing.T) {
	err := validateCalibration([]byte(`{"version": "1"}`))
	assert.Error(t, err)
}
