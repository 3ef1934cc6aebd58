package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/talent-match/internal/types"
)

func TestBuildSeekerQuery_FromProfile(t *testing.T) {
	userCtx := map[string]any{
		"resume_summary": "Backend engineer with eight years of Go experience.",
		"skills":         []any{"Go", "PostgreSQL"},
		"location":       "Austin, TX",
		"industry":       "fintech",
	}

	query := BuildSeekerQuery(userCtx, "")
	assert.Contains(t, query, "Backend engineer with eight years of Go experience.")
	assert.Contains(t, query, "skills: go, postgresql")
	assert.Contains(t, query, "location: austin, tx")
	assert.Contains(t, query, "industry: fintech")
}

func TestBuildSeekerQuery_AppendsExtraText(t *testing.T) {
	query := BuildSeekerQuery(map[string]any{"summary": "Engineer."}, "remote only please")
	assert.Contains(t, query, "Engineer.")
	assert.Contains(t, query, "remote only please")
}

func TestBuildSeekerQuery_EmptyContextFallsBack(t *testing.T) {
	assert.Equal(t, "experienced professional open to new opportunities",
		BuildSeekerQuery(nil, ""))
	assert.Equal(t, "experienced professional open to new opportunities",
		BuildSeekerQuery(map[string]any{}, "  "))
}

func TestBuildEmployerQuery_FromJobDescription(t *testing.T) {
	userCtx := map[string]any{
		"job_description": "We need a platform engineer.",
		"skills":          "kubernetes, terraform",
	}

	query := BuildEmployerQuery(userCtx, "")
	assert.Contains(t, query, "We need a platform engineer.")
	assert.Contains(t, query, "skills: kubernetes, terraform")
}

func TestBuildEmployerQuery_EmptyContextFallsBack(t *testing.T) {
	assert.Equal(t, "qualified candidates for an open role",
		BuildEmployerQuery(nil, ""))
}

func TestBuildQuery_StripsHTML(t *testing.T) {
	userCtx := map[string]any{
		"job_description": "<p>We need a <strong>platform</strong> engineer.</p>",
	}

	query := BuildEmployerQuery(userCtx, "")
	assert.Equal(t, "We need a platform engineer.", query)
}

func TestBuildQuery_CapsLength(t *testing.T) {
	userCtx := map[string]any{
		"summary": strings.Repeat("experience ", 100),
	}

	query := BuildSeekerQuery(userCtx, "")
	assert.LessOrEqual(t, len(query), maxQueryLen)
	assert.True(t, strings.HasPrefix(query, "experience experience"))
}

func TestDocumentText(t *testing.T) {
	doc := DocumentText(types.Match{
		Title:    "Backend Engineer",
		Company:  "Initech",
		Summary:  "<p>Build APIs.</p>",
		Skills:   []string{"go", "sql"},
		Location: "austin, tx",
		Industry: "fintech",
	})

	assert.Equal(t, "Backend Engineer. Initech. Build APIs.. skills: go, sql. location: austin, tx. industry: fintech", doc)
}

func TestDocumentText_Empty(t *testing.T) {
	assert.Empty(t, DocumentText(types.Match{}))
}

func TestStripHTML_PlainTextUntouched(t *testing.T) {
	assert.Equal(t, "a < b and b > c is fine?",
		stripHTML("a < b and b > c is fine?"))
}
