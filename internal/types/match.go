// Package types defines the shared data structures for the match engine.
package types

import (
	"strconv"
	"strings"
)

// Kind identifies which side of the marketplace a record belongs to.
type Kind string

// Record kinds stored in the vector index and document store.
const (
	KindJob       Kind = "job"
	KindCandidate Kind = "candidate"
)

// Audience identifies who is viewing a result set.
type Audience string

// Audiences for presentation.
const (
	AudienceJobSeeker Audience = "job_seeker"
	AudienceEmployer  Audience = "employer"
)

// Source tags for the retrieval tier that produced a match.
const (
	SourceVector   = "vector"
	SourceMetadata = "metadata"
	SourceCatalog  = "catalog"
)

// Match is a job or candidate record annotated with ranking scores.
// Typed fields cover everything the scorer interprets; Extra carries
// unrecognized fields through unchanged.
type Match struct {
	ID      string `json:"id,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`

	Location        string   `json:"location,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	Skills          []string `json:"skills,omitempty"`
	ExperienceYears *float64 `json:"experience_years,omitempty"`
	Summary         string   `json:"summary,omitempty"`

	// Source is the retrieval tier that produced this record.
	Source string `json:"source,omitempty"`

	// VectorScore is nil when the record never went through the vector tier.
	VectorScore *float64 `json:"vector_score,omitempty"`
	// MatchScore is nil until the ranker (or catalog tier) assigns it.
	MatchScore *float64 `json:"match_score,omitempty"`
	// ScoreBreakdown is nil when no metadata component was computable.
	ScoreBreakdown map[string]float64 `json:"score_breakdown,omitempty"`

	// Extra holds passthrough fields the scorer doesn't interpret.
	Extra map[string]any `json:"extra,omitempty"`
}

// Field aliases accepted when building a Match from a loosely-typed record,
// tried in order. Job and candidate records from the index use different
// key spellings for the same logical field.
var (
	titleAliases      = []string{"title", "label", "name", "full_name", "role_title", "headline"}
	companyAliases    = []string{"company", "company_name", "employer", "current_company"}
	locationAliases   = []string{"location", "city", "preferred_location"}
	industryAliases   = []string{"industry", "sector", "preferred_industry"}
	skillsAliases     = []string{"skills", "skills_required", "skill_set", "top_skills"}
	experienceAliases = []string{"experience_years", "years_of_experience", "experience", "min_experience_years", "total_experience"}
	summaryAliases    = []string{"summary", "resume_summary", "description", "about"}
)

// MatchFromMap builds a Match from an untrusted map-shaped record, such as
// vector index metadata. Unrecognized keys land in Extra; malformed values
// resolve to absent fields rather than errors.
func MatchFromMap(raw map[string]any, kind Kind) Match {
	m := Match{Kind: kind}
	if raw == nil {
		return m
	}

	consumed := make(map[string]bool)
	pick := func(aliases []string) (string, any, bool) {
		for _, key := range aliases {
			if v, ok := raw[key]; ok && v != nil {
				return key, v, true
			}
		}
		return "", nil, false
	}

	if key, v, ok := pick([]string{"id", "_id", "record_id"}); ok {
		m.ID = CoerceString(v)
		consumed[key] = true
	}
	if key, v, ok := pick(titleAliases); ok {
		m.Title = CoerceString(v)
		consumed[key] = true
	}
	if key, v, ok := pick(companyAliases); ok {
		m.Company = CoerceString(v)
		consumed[key] = true
	}
	if key, v, ok := pick(locationAliases); ok {
		m.Location = CoerceString(v)
		consumed[key] = true
	}
	if key, v, ok := pick(industryAliases); ok {
		m.Industry = CoerceString(v)
		consumed[key] = true
	}
	if key, v, ok := pick(skillsAliases); ok {
		m.Skills = CoerceStringList(v)
		consumed[key] = true
	}
	if key, v, ok := pick(experienceAliases); ok {
		if years, ok := CoerceFloat(v); ok {
			m.ExperienceYears = &years
		}
		consumed[key] = true
	}
	if key, v, ok := pick(summaryAliases); ok {
		m.Summary = CoerceString(v)
		consumed[key] = true
	}

	for key, v := range raw {
		if consumed[key] || v == nil {
			continue
		}
		if m.Extra == nil {
			m.Extra = make(map[string]any)
		}
		m.Extra[key] = v
	}
	return m
}

// Clone returns a copy of the match with its own slices and maps, so the
// ranker can annotate results without mutating caller-owned records.
func (m Match) Clone() Match {
	out := m
	if m.Skills != nil {
		out.Skills = append([]string(nil), m.Skills...)
	}
	if m.ExperienceYears != nil {
		years := *m.ExperienceYears
		out.ExperienceYears = &years
	}
	if m.VectorScore != nil {
		v := *m.VectorScore
		out.VectorScore = &v
	}
	if m.MatchScore != nil {
		v := *m.MatchScore
		out.MatchScore = &v
	}
	if m.ScoreBreakdown != nil {
		out.ScoreBreakdown = make(map[string]float64, len(m.ScoreBreakdown))
		for k, v := range m.ScoreBreakdown {
			out.ScoreBreakdown[k] = v
		}
	}
	if m.Extra != nil {
		out.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// CoerceString converts a dynamic value to a trimmed string, or "" when the
// value has no reasonable string form.
func CoerceString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// CoerceStringList converts a dynamic value to a list of trimmed, non-empty
// strings. Accepts a slice or a comma-separated string.
func CoerceStringList(v any) []string {
	var items []string
	switch s := v.(type) {
	case []string:
		items = s
	case []any:
		for _, item := range s {
			items = append(items, CoerceString(item))
		}
	case string:
		items = strings.Split(s, ",")
	default:
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CoerceFloat converts a dynamic value to a float64. Numeric strings parse;
// anything else reports false.
func CoerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
