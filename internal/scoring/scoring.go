// Package scoring implements the pairwise metadata comparisons and score
// blending used to rank jobs against seekers and candidates against jobs.
package scoring

import (
	"math"
	"strings"
)

// Substring containment is a weaker signal than an exact match; industry
// substring matches are weaker still than location ones.
const (
	locationContainsScore = 0.6
	industryContainsScore = 0.5
)

// Experience alignment bands over delta = comparison - baseline years.
const (
	expSurplusHigh  = 1.0
	expSurplusLow   = 0.85
	expShortfallOne = 0.6
	expShortfallTwo = 0.4
)

// SkillsOverlap scores the overlap between two normalized skill sets.
// It returns nil when either set is empty ("not applicable"). A non-empty
// intersection scores the average of the recall against each side, which
// rewards matches that are significant to both, not just one.
func SkillsOverlap(a, b []string) *float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return nil
	}

	shared := 0
	for skill := range setA {
		if setB[skill] {
			shared++
		}
	}
	if shared == 0 {
		return ptr(0.0)
	}

	recallA := float64(shared) / float64(len(setA))
	recallB := float64(shared) / float64(len(setB))
	return ptr(Clamp01((recallA + recallB) / 2))
}

// LocationMatch compares two normalized location strings. Exact match
// scores 1.0, substring containment either direction 0.6, otherwise 0.0.
// Nil when either side is empty.
func LocationMatch(a, b string) *float64 {
	return termMatch(a, b, locationContainsScore)
}

// IndustryMatch compares two normalized industry strings, like
// LocationMatch but with a 0.5 containment score.
func IndustryMatch(a, b string) *float64 {
	return termMatch(a, b, industryContainsScore)
}

func termMatch(a, b string, containsScore float64) *float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return nil
	}
	if a == b {
		return ptr(1.0)
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return ptr(containsScore)
	}
	return ptr(0.0)
}

// ExperienceAlignment scores how well the comparison side's years line up
// with the baseline side's. favourSurplus selects which side of an exact
// match is rewarded more: true when ranking candidates for a job (extra
// experience is good), false when ranking jobs for a seeker (an exact or
// slightly-above match is best). Nil when either side is unknown.
func ExperienceAlignment(baselineYears, comparisonYears *float64, favourSurplus bool) *float64 {
	if baselineYears == nil || comparisonYears == nil {
		return nil
	}

	delta := *comparisonYears - *baselineYears
	switch {
	case delta >= 2:
		if favourSurplus {
			return ptr(expSurplusHigh)
		}
		return ptr(expSurplusLow)
	case delta >= 0:
		if favourSurplus {
			return ptr(expSurplusLow)
		}
		return ptr(expSurplusHigh)
	case delta >= -1:
		return ptr(expShortfallOne)
	case delta >= -2:
		return ptr(expShortfallTwo)
	default:
		return ptr(0.0)
	}
}

// Clamp01 clamps a score into [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Round3 rounds a score to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = true
		}
	}
	return set
}

func ptr(v float64) *float64 {
	return &v
}
