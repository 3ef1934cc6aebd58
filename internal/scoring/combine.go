package scoring

// Component names used in score breakdowns.
const (
	ComponentSkillsOverlap       = "skills_overlap"
	ComponentLocationMatch       = "location_match"
	ComponentIndustryMatch       = "industry_match"
	ComponentExperienceAlignment = "experience_alignment"
)

// Component is one named metadata comparison. A nil Score means the
// comparison was not applicable and is excluded from aggregation rather
// than counted as zero.
type Component struct {
	Name   string
	Score  *float64
	Weight float64
}

// Combine aggregates applicable components into a weighted metadata score
// and a labeled breakdown. Components with nil scores or non-positive
// weights are dropped, and the mean renormalizes over the weights that
// survive, so sparse signals still average to a fair [0,1] value instead of
// being diluted by missing weight mass. No surviving components yields
// (0.0, empty).
func Combine(components []Component) (float64, map[string]float64) {
	breakdown := make(map[string]float64)
	weightedSum := 0.0
	weightTotal := 0.0

	for _, c := range components {
		if c.Score == nil || c.Weight <= 0 {
			continue
		}
		score := Clamp01(*c.Score)
		breakdown[c.Name] = Round3(score)
		weightedSum += score * c.Weight
		weightTotal += c.Weight
	}

	if weightTotal == 0 {
		return 0.0, breakdown
	}
	return weightedSum / weightTotal, breakdown
}

// Blend merges an externally supplied vector-similarity score with the
// metadata score from Combine. Vector similarity is the primary, denser
// signal; metadata acts as a corrective layer weighted lower but
// non-trivially. hasMetadata reports whether any component survived
// Combine.
func (w Weights) Blend(vectorScore, metadataScore float64, hasMetadata bool) float64 {
	switch {
	case vectorScore <= 0 && !hasMetadata:
		return 0.0
	case vectorScore <= 0:
		return Clamp01(metadataScore)
	case !hasMetadata:
		return Clamp01(vectorScore)
	default:
		return Clamp01(w.VectorBlend*vectorScore + w.MetadataBlend*metadataScore)
	}
}
