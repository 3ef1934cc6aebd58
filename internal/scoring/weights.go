package scoring

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

// Weights holds the component weights for the metadata score and the
// vector/metadata blending ratio.
type Weights struct {
	SkillsOverlap       float64 `json:"skills_overlap"`
	LocationMatch       float64 `json:"location_match"`
	IndustryMatch       float64 `json:"industry_match"`
	ExperienceAlignment float64 `json:"experience_alignment"`

	VectorBlend   float64 `json:"vector_blend"`
	MetadataBlend float64 `json:"metadata_blend"`
}

// DefaultWeights returns the shipped calibration. Skills dominate the
// metadata score; vector similarity dominates the final blend.
func DefaultWeights() Weights {
	return Weights{
		SkillsOverlap:       0.6,
		LocationMatch:       0.2,
		IndustryMatch:       0.15,
		ExperienceAlignment: 0.05,
		VectorBlend:         0.65,
		MetadataBlend:       0.35,
	}
}

// weightsSchema validates calibration files before they are trusted.
const weightsSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["weights"],
  "properties": {
    "version": {"type": "string"},
    "weights": {
      "type": "object",
      "properties": {
        "skills_overlap": {"type": "number", "minimum": 0, "maximum": 1},
        "location_match": {"type": "number", "minimum": 0, "maximum": 1},
        "industry_match": {"type": "number", "minimum": 0, "maximum": 1},
        "experience_alignment": {"type": "number", "minimum": 0, "maximum": 1},
        "vector_blend": {"type": "number", "minimum": 0, "maximum": 1},
        "metadata_blend": {"type": "number", "minimum": 0, "maximum": 1}
      },
      "additionalProperties": false
    }
  }
}`

// calibrationFile is the JSON structure of an on-disk weight calibration.
type calibrationFile struct {
	Version string  `json:"version"`
	Weights Weights `json:"weights"`
}

// LoadWeights reads a weight calibration file. Any problem (missing file,
// bad JSON, schema violation, zero weights) logs a warning and falls back
// to DefaultWeights; a bad calibration must never take ranking down.
func LoadWeights(path string, log *zap.Logger) Weights {
	defaults := DefaultWeights()
	if path == "" {
		return defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read weight calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults
	}

	if err := validateCalibration(data); err != nil {
		log.Warn("invalid weight calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults
	}

	var file calibrationFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn("failed to parse weight calibration, using defaults",
			zap.String("path", path), zap.Error(err))
		return defaults
	}

	loaded := overlay(defaults, file.Weights)
	log.Info("loaded weight calibration",
		zap.String("path", path), zap.String("version", file.Version))
	return loaded
}

// validateCalibration checks a calibration document against the schema.
func validateCalibration(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(weightsSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("failed to validate calibration: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("calibration schema violation: %s", errs[0])
		}
		return fmt.Errorf("calibration schema violation")
	}
	return nil
}

// overlay keeps defaults for any weight the file leaves at zero, so partial
// calibrations only override what they name.
func overlay(defaults, loaded Weights) Weights {
	out := defaults
	if loaded.SkillsOverlap > 0 {
		out.SkillsOverlap = loaded.SkillsOverlap
	}
	if loaded.LocationMatch > 0 {
		out.LocationMatch = loaded.LocationMatch
	}
	if loaded.IndustryMatch > 0 {
		out.IndustryMatch = loaded.IndustryMatch
	}
	if loaded.ExperienceAlignment > 0 {
		out.ExperienceAlignment = loaded.ExperienceAlignment
	}
	if loaded.VectorBlend > 0 {
		out.VectorBlend = loaded.VectorBlend
	}
	if loaded.MetadataBlend > 0 {
		out.MetadataBlend = loaded.MetadataBlend
	}
	return out
}
