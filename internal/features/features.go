// Package features extracts a bounded set of comparable attributes from
// untrusted, loosely-structured user context.
package features

import (
	"strings"

	"github.com/jonathan/talent-match/internal/types"
)

// Set holds the four attributes the match scorers compare. Absent data is
// always representable: empty skills, empty strings, nil years.
type Set struct {
	Skills          []string
	Location        string
	Industry        string
	ExperienceYears *float64
}

// Aliases maps a logical feature to the source keys that may carry it,
// tried in order.
type Aliases map[string][]string

// Logical feature names.
const (
	FeatureSkills     = "skills"
	FeatureLocation   = "location"
	FeatureIndustry   = "industry"
	FeatureExperience = "experience_years"
)

// DefaultAliases covers the key spellings seen across seeker and employer
// context payloads.
func DefaultAliases() Aliases {
	return Aliases{
		FeatureSkills:     {"skills", "skill_set", "top_skills", "skills_required"},
		FeatureLocation:   {"location", "city", "preferred_location"},
		FeatureIndustry:   {"industry", "sector", "preferred_industry"},
		FeatureExperience: {"experience_years", "years_of_experience", "experience", "total_experience"},
	}
}

// Extract builds a feature Set from an arbitrary user context using the
// default alias table. It never fails; missing or malformed input resolves
// to absent values.
func Extract(userCtx map[string]any) Set {
	return ExtractWith(userCtx, DefaultAliases())
}

// ExtractWith is Extract with a caller-supplied alias table.
//
// For each feature the context itself is scanned first, then its "metadata"
// sub-map, then each map nested one level inside that, taking the first
// present, non-empty value. Lookup depth is bounded at two on purpose.
func ExtractWith(userCtx map[string]any, aliases Aliases) Set {
	set := Set{Skills: []string{}}

	sources := lookupSources(userCtx)

	if v, ok := lookup(sources, aliases[FeatureSkills]); ok {
		set.Skills = normalizeSkills(v)
	}
	if v, ok := lookup(sources, aliases[FeatureLocation]); ok {
		set.Location = normalizeTerm(v)
	}
	if v, ok := lookup(sources, aliases[FeatureIndustry]); ok {
		set.Industry = normalizeTerm(v)
	}
	if v, ok := lookup(sources, aliases[FeatureExperience]); ok {
		if years, ok := types.CoerceFloat(Sanitize(v)); ok {
			set.ExperienceYears = &years
		}
	}

	return set
}

// FirstString scans the same prioritized sources as ExtractWith and returns
// the first non-empty string value under any of the given keys.
func FirstString(userCtx map[string]any, keys ...string) string {
	if v, ok := lookup(lookupSources(userCtx), keys); ok {
		if s, ok := Sanitize(v).(string); ok {
			return s
		}
	}
	return ""
}

// lookupSources builds the ordered list of maps to scan: the context, its
// metadata sub-map, then maps nested inside the metadata.
func lookupSources(userCtx map[string]any) []map[string]any {
	if userCtx == nil {
		return nil
	}
	sources := []map[string]any{userCtx}
	meta, ok := userCtx["metadata"].(map[string]any)
	if !ok {
		return sources
	}
	sources = append(sources, meta)
	for _, v := range meta {
		if nested, ok := v.(map[string]any); ok {
			sources = append(sources, nested)
		}
	}
	return sources
}

// lookup returns the first sanitized, non-empty value found for any alias,
// honoring source priority over alias priority within each source.
func lookup(sources []map[string]any, aliases []string) (any, bool) {
	for _, source := range sources {
		for _, key := range aliases {
			raw, ok := source[key]
			if !ok || raw == nil {
				continue
			}
			clean := Sanitize(raw)
			if clean == nil {
				continue
			}
			if s, ok := clean.(string); ok && s == "" {
				continue
			}
			return clean, true
		}
	}
	return nil, false
}

// normalizeSkills lowercases, trims and deduplicates a skill list. A plain
// string is treated as a comma-separated list.
func normalizeSkills(v any) []string {
	items := types.CoerceStringList(v)
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// normalizeTerm lowercases and trims a single-valued feature like location.
func normalizeTerm(v any) string {
	return strings.ToLower(types.CoerceString(v))
}
