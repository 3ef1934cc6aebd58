package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/types"
)

func TestExtractSkillHints_Marker(t *testing.T) {
	hints := ExtractSkillHints("find me something, skills: Go, PostgreSQL, Kubernetes")
	assert.Equal(t, []string{"go", "postgresql", "kubernetes"}, hints)
}

func TestExtractSkillHints_MarkerSingular(t *testing.T) {
	hints := ExtractSkillHints("skill: terraform")
	assert.Equal(t, []string{"terraform"}, hints)
}

func TestExtractSkillHints_FreeForm(t *testing.T) {
	hints := ExtractSkillHints("looking for a senior golang role with grpc")
	assert.Equal(t, []string{"senior", "golang", "grpc"}, hints)
}

func TestExtractSkillHints_Empty(t *testing.T) {
	assert.Nil(t, ExtractSkillHints(""))
	assert.Nil(t, ExtractSkillHints("   "))
	assert.Nil(t, ExtractSkillHints("for the a an"))
}

func TestExtractSkillHints_Dedupes(t *testing.T) {
	hints := ExtractSkillHints("go go go sql")
	assert.Equal(t, []string{"go", "sql"}, hints)
}

func TestExtractSkillHints_TechPunctuation(t *testing.T) {
	hints := ExtractSkillHints("skills: C++, C#, node.js")
	assert.Equal(t, []string{"c++", "c#", "node.js"}, hints)
}

func TestExtractSkillHints_DropsPurePunctuation(t *testing.T) {
	hints := ExtractSkillHints("go -- sql !!")
	assert.Equal(t, []string{"go", "sql"}, hints)
}

func TestFilterByHints(t *testing.T) {
	records := []types.Match{
		{ID: "1", Title: "Go Engineer", Skills: []string{"go", "postgres"}},
		{ID: "2", Title: "Java Engineer", Company: "Initech", Skills: []string{"java"}},
		{ID: "3", Title: "Platform Engineer", Company: "GoCorp"},
	}

	assert.Len(t, filterByHints(records, nil), 3)

	got := filterByHints(records, []string{"go"})
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)

	// Every hint must match, not just one.
	got = filterByHints(records, []string{"go", "postgres"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	assert.Empty(t, filterByHints(records, []string{"haskell"}))
}

func TestFilterByHints_CaseInsensitive(t *testing.T) {
	records := []types.Match{{ID: "1", Title: "GO Engineer"}}
	assert.Len(t, filterByHints(records, []string{"go"}), 1)
}
