// Package present reduces ranked, heterogeneous match records to a uniform
// display shape and renders a human-readable result summary.
package present

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
)

// maxReasons caps how many breakdown components surface as display reasons.
const maxReasons = 3

// Metadata allow-lists per audience. Job seekers see job-side context,
// employers see candidate-side context.
var (
	jobSeekerMetadataKeys = []string{
		"company", "location", "industry", "skills", "experience_years",
		"salary", "employment_type", "remote",
	}
	employerMetadataKeys = []string{
		"location", "industry", "skills", "experience_years",
		"current_title", "availability",
	}
)

// PrepareMatches converts ranked match records into display items plus a
// rendered text summary. Records are re-sorted by match score here because
// upstream tiers do not all guarantee order.
func PrepareMatches(matches []types.Match, audience types.Audience) ([]types.DisplayItem, string) {
	ordered := append([]types.Match(nil), matches...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return displayScore(ordered[i]) > displayScore(ordered[j])
	})

	items := make([]types.DisplayItem, 0, len(ordered))
	for i, m := range ordered {
		items = append(items, displayItem(m, i+1, audience))
	}
	return items, renderSummary(items)
}

func displayItem(m types.Match, position int, audience types.Audience) types.DisplayItem {
	item := types.DisplayItem{
		ID:    m.ID,
		Label: m.Title,
	}
	if item.ID == "" {
		item.ID = fmt.Sprintf("match-%d", position)
	}
	if item.Label == "" {
		item.Label = "Result"
	}

	item.Subtitle = joinFragments(m.Company, m.Location)
	item.MatchScore = scoring.Round3(scoring.Clamp01(displayScore(m)))

	if m.VectorScore != nil {
		v := scoring.Round3(scoring.Clamp01(*m.VectorScore))
		item.VectorScore = &v
	}
	if len(m.ScoreBreakdown) > 0 {
		item.ScoreBreakdown = make(map[string]float64, len(m.ScoreBreakdown))
		for name, score := range m.ScoreBreakdown {
			item.ScoreBreakdown[name] = scoring.Round3(scoring.Clamp01(score))
		}
	}

	item.Reasons = reasons(item.ScoreBreakdown)
	item.Source = source(m)
	item.Metadata = metadataFor(m, audience)
	return item
}

// displayScore resolves the score shown to the user: the blended match
// score when present, else the raw vector score, else zero.
func displayScore(m types.Match) float64 {
	if m.MatchScore != nil {
		return *m.MatchScore
	}
	if m.VectorScore != nil {
		return *m.VectorScore
	}
	return 0
}

func source(m types.Match) string {
	if m.Source != "" {
		return m.Source
	}
	if m.VectorScore != nil {
		return types.SourceVector
	}
	return types.SourceMetadata
}

// reasons renders the highest-scoring breakdown components, at most three,
// as "skills overlap 92%" style strings.
func reasons(breakdown map[string]float64) []string {
	if len(breakdown) == 0 {
		return nil
	}

	names := make([]string, 0, len(breakdown))
	for name := range breakdown {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if breakdown[names[i]] != breakdown[names[j]] {
			return breakdown[names[i]] > breakdown[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) > maxReasons {
		names = names[:maxReasons]
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		label := strings.ReplaceAll(name, "_", " ")
		out = append(out, fmt.Sprintf("%s %d%%", label, percent(breakdown[name])))
	}
	return out
}

// metadataFor builds the audience-specific metadata sub-map from the
// record's typed fields and passthrough extras, nil when nothing survives
// the allow-list.
func metadataFor(m types.Match, audience types.Audience) map[string]any {
	allowed := jobSeekerMetadataKeys
	if audience == types.AudienceEmployer {
		allowed = employerMetadataKeys
	}

	fields := map[string]any{}
	if m.Company != "" {
		fields["company"] = m.Company
	}
	if m.Location != "" {
		fields["location"] = m.Location
	}
	if m.Industry != "" {
		fields["industry"] = m.Industry
	}
	if len(m.Skills) > 0 {
		fields["skills"] = m.Skills
	}
	if m.ExperienceYears != nil {
		fields["experience_years"] = *m.ExperienceYears
	}
	for key, value := range m.Extra {
		fields[key] = value
	}

	out := make(map[string]any)
	for _, key := range allowed {
		if value, ok := fields[key]; ok && value != nil {
			out[key] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// renderSummary renders one line per item:
// "1. Label — Subtitle — match 82% — reasons: skills overlap 92%".
// Absent subtitles and reasons are skipped.
func renderSummary(items []types.DisplayItem) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		parts := []string{fmt.Sprintf("%d. %s", i+1, item.Label)}
		if item.Subtitle != "" {
			parts = append(parts, item.Subtitle)
		}
		parts = append(parts, fmt.Sprintf("match %d%%", percent(item.MatchScore)))
		if len(item.Reasons) > 0 {
			parts = append(parts, "reasons: "+strings.Join(item.Reasons, ", "))
		}
		lines = append(lines, strings.Join(parts, " — "))
	}
	return strings.Join(lines, "\n")
}

func joinFragments(fragments ...string) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " | ")
}

func percent(score float64) int {
	return int(math.Round(scoring.Clamp01(score) * 100))
}
