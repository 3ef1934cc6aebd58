package retrieval

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/types"
)

// maxQueryLen caps the text sent to the embedding model. Longer profile
// summaries drown out the discriminating terms.
const maxQueryLen = 512

var seekerSummaryKeys = []string{"resume_summary", "summary", "about", "bio", "headline"}

var employerSummaryKeys = []string{"job_description", "description", "requirements", "summary"}

// BuildSeekerQuery assembles the embedding query text for a job seeker from
// their profile context plus any free-form request text.
func BuildSeekerQuery(userCtx map[string]any, extra string) string {
	return buildQuery(userCtx, seekerSummaryKeys, extra,
		"experienced professional open to new opportunities")
}

// BuildEmployerQuery assembles the embedding query text for an employer
// searching for candidates.
func BuildEmployerQuery(userCtx map[string]any, extra string) string {
	return buildQuery(userCtx, employerSummaryKeys, extra,
		"qualified candidates for an open role")
}

func buildQuery(userCtx map[string]any, summaryKeys []string, extra, fallback string) string {
	var parts []string

	if summary := features.FirstString(userCtx, summaryKeys...); summary != "" {
		parts = append(parts, stripHTML(summary))
	}

	baseline := features.Extract(userCtx)
	if len(baseline.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(baseline.Skills, ", "))
	}
	if baseline.Location != "" {
		parts = append(parts, "location: "+baseline.Location)
	}
	if baseline.Industry != "" {
		parts = append(parts, "industry: "+baseline.Industry)
	}

	if extra = strings.TrimSpace(extra); extra != "" {
		parts = append(parts, stripHTML(extra))
	}

	if len(parts) == 0 {
		return fallback
	}

	query := strings.Join(parts, ". ")
	if len(query) > maxQueryLen {
		query = query[:maxQueryLen]
	}
	return query
}

// DocumentText builds the text that represents a record in the vector
// index. It mirrors the query-side text so that similar profiles and
// postings land close together in embedding space.
func DocumentText(m types.Match) string {
	var parts []string
	if m.Title != "" {
		parts = append(parts, m.Title)
	}
	if m.Company != "" {
		parts = append(parts, m.Company)
	}
	if m.Summary != "" {
		parts = append(parts, stripHTML(m.Summary))
	}
	if len(m.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(m.Skills, ", "))
	}
	if m.Location != "" {
		parts = append(parts, "location: "+m.Location)
	}
	if m.Industry != "" {
		parts = append(parts, "industry: "+m.Industry)
	}

	doc := strings.Join(parts, ". ")
	if len(doc) > maxQueryLen {
		doc = doc[:maxQueryLen]
	}
	return doc
}

// stripHTML flattens markup pasted into summaries or descriptions into plain
// text. Plain strings pass through untouched.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
