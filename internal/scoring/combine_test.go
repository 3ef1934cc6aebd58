package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine_AllComponents(t *testing.T) {
	w := DefaultWeights()
	score, breakdown := Combine([]Component{
		{Name: ComponentSkillsOverlap, Score: ptr(1.0), Weight: w.SkillsOverlap},
		{Name: ComponentLocationMatch, Score: ptr(0.6), Weight: w.LocationMatch},
		{Name: ComponentIndustryMatch, Score: ptr(0.5), Weight: w.IndustryMatch},
		{Name: ComponentExperienceAlignment, Score: ptr(1.0), Weight: w.ExperienceAlignment},
	})

	// 0.6*1 + 0.2*0.6 + 0.15*0.5 + 0.05*1 over a full weight of 1.0.
	assert.InDelta(t, 0.845, score, 1e-9)
	assert.Len(t, breakdown, 4)
	assert.Equal(t, 0.6, breakdown[ComponentLocationMatch])
}

func TestCombine_RenormalizesOverSurvivingWeights(t *testing.T) {
	w := DefaultWeights()
	score, breakdown := Combine([]Component{
		{Name: ComponentSkillsOverlap, Score: nil, Weight: w.SkillsOverlap},
		{Name: ComponentLocationMatch, Score: ptr(1.0), Weight: w.LocationMatch},
		{Name: ComponentIndustryMatch, Score: ptr(1.0), Weight: w.IndustryMatch},
	})

	// With skills missing, the present signals still average to a fair value.
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.Len(t, breakdown, 2)
	assert.NotContains(t, breakdown, ComponentSkillsOverlap)
}

func TestCombine_DropsNonPositiveWeights(t *testing.T) {
	score, breakdown := Combine([]Component{
		{Name: ComponentSkillsOverlap, Score: ptr(1.0), Weight: 0},
		{Name: ComponentLocationMatch, Score: ptr(0.5), Weight: -1},
	})

	assert.Equal(t, 0.0, score)
	assert.Empty(t, breakdown)
}

func TestCombine_NoComponents(t *testing.T) {
	score, breakdown := Combine(nil)
	assert.Equal(t, 0.0, score)
	assert.Empty(t, breakdown)
}

func TestBlend_Tiers(t *testing.T) {
	w := DefaultWeights()

	tests := []struct {
		name        string
		vector      float64
		metadata    float64
		hasMetadata bool
		want        float64
	}{
		{"no signal at all", 0.0, 0.0, false, 0.0},
		{"metadata only", 0.0, 0.4, true, 0.4},
		{"vector only", 0.8, 0.0, false, 0.8},
		{"both blend", 0.8, 0.4, true, 0.66},
		{"negative vector treated as absent", -0.2, 0.4, true, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.Blend(tt.vector, tt.metadata, tt.hasMetadata)
			assert.InDelta(t, tt.want, Round3(got), 1e-9)
		})
	}
}

func TestBlend_Clamps(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 1.0, w.Blend(1.0, 0.0, false))
	assert.LessOrEqual(t, w.Blend(1.0, 1.0, true), 1.0)
}
