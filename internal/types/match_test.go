package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchFromMap_JobAliases(t *testing.T) {
	raw := map[string]any{
		"id":              "job-42",
		"label":           "Senior Backend Engineer",
		"company_name":    "Initech",
		"location":        "Austin, TX",
		"industry":        "fintech",
		"skills_required": []any{"go", "postgres", ""},
		"experience":      "5",
		"posted_by":       "recruiter-7",
	}

	m := MatchFromMap(raw, KindJob)

	assert.Equal(t, "job-42", m.ID)
	assert.Equal(t, KindJob, m.Kind)
	assert.Equal(t, "Senior Backend Engineer", m.Title)
	assert.Equal(t, "Initech", m.Company)
	assert.Equal(t, "Austin, TX", m.Location)
	assert.Equal(t, []string{"go", "postgres"}, m.Skills)
	require.NotNil(t, m.ExperienceYears)
	assert.Equal(t, 5.0, *m.ExperienceYears)
	assert.Equal(t, "recruiter-7", m.Extra["posted_by"])
}

func TestMatchFromMap_CommaSeparatedSkills(t *testing.T) {
	m := MatchFromMap(map[string]any{"skills": "python, sql , "}, KindCandidate)
	assert.Equal(t, []string{"python", "sql"}, m.Skills)
}

func TestMatchFromMap_MalformedValues(t *testing.T) {
	m := MatchFromMap(map[string]any{
		"title":      map[string]any{"nested": true},
		"experience": "a few years",
		"skills":     42,
	}, KindJob)

	assert.Empty(t, m.Title)
	assert.Nil(t, m.ExperienceYears)
	assert.Nil(t, m.Skills)
}

func TestMatchFromMap_NilMap(t *testing.T) {
	m := MatchFromMap(nil, KindCandidate)
	assert.Equal(t, KindCandidate, m.Kind)
	assert.Empty(t, m.ID)
}

func TestClone_IsIndependent(t *testing.T) {
	score := 0.8
	m := Match{
		Skills:         []string{"go"},
		VectorScore:    &score,
		ScoreBreakdown: map[string]float64{"skills_overlap": 1.0},
		Extra:          map[string]any{"remote": true},
	}

	clone := m.Clone()
	clone.Skills[0] = "rust"
	*clone.VectorScore = 0.1
	clone.ScoreBreakdown["skills_overlap"] = 0.0
	clone.Extra["remote"] = false

	assert.Equal(t, "go", m.Skills[0])
	assert.Equal(t, 0.8, *m.VectorScore)
	assert.Equal(t, 1.0, m.ScoreBreakdown["skills_overlap"])
	assert.Equal(t, true, m.Extra["remote"])
}

func TestCoerceFloat(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  float64
		ok    bool
	}{
		{"float", 3.5, 3.5, true},
		{"int", 7, 7.0, true},
		{"numeric string", " 2.5 ", 2.5, true},
		{"word string", "five", 0, false},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceFloat(tt.value)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
