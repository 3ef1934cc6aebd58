// Package ranking scores lists of job or candidate records against a
// baseline feature set and orders them by blended match score.
package ranking

import (
	"sort"

	"github.com/jonathan/talent-match/internal/features"
	"github.com/jonathan/talent-match/internal/scoring"
	"github.com/jonathan/talent-match/internal/types"
)

// Ranker applies the component scorers and score combiner across a list of
// records using a fixed weight calibration.
type Ranker struct {
	weights scoring.Weights
}

// New creates a Ranker with the given weights.
func New(weights scoring.Weights) *Ranker {
	return &Ranker{weights: weights}
}

// CalculateJobMatches ranks job records for a seeker using the default
// weights. Input records are not mutated.
func CalculateJobMatches(resume features.Set, jobs []types.Match) []types.Match {
	return New(scoring.DefaultWeights()).JobMatches(resume, jobs)
}

// CalculateCandidateMatches ranks candidate records for a job posting using
// the default weights. Input records are not mutated.
func CalculateCandidateMatches(job features.Set, candidates []types.Match) []types.Match {
	return New(scoring.DefaultWeights()).CandidateMatches(job, candidates)
}

// JobMatches scores each job against the seeker's resume features. Exact or
// slightly-above experience is rewarded most: a job asking for far less
// experience than the seeker has is not a perfect fit.
func (r *Ranker) JobMatches(resume features.Set, jobs []types.Match) []types.Match {
	return r.rank(resume, jobs, false)
}

// CandidateMatches scores each candidate against a job's features. Surplus
// experience on the candidate side is rewarded.
func (r *Ranker) CandidateMatches(job features.Set, candidates []types.Match) []types.Match {
	return r.rank(job, candidates, true)
}

func (r *Ranker) rank(baseline features.Set, records []types.Match, favourSurplus bool) []types.Match {
	ranked := make([]types.Match, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, r.score(baseline, record, favourSurplus))
	}

	// Stable: ties keep their input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return matchScore(ranked[i]) > matchScore(ranked[j])
	})
	return ranked
}

// score annotates a copy of the record with vector_score, match_score and,
// when any metadata component applied, a score breakdown.
func (r *Ranker) score(baseline features.Set, record types.Match, favourSurplus bool) types.Match {
	out := record.Clone()

	vectorScore := 0.0
	if record.VectorScore != nil {
		vectorScore = scoring.Clamp01(*record.VectorScore)
	}
	vectorScore = scoring.Round3(vectorScore)
	out.VectorScore = &vectorScore

	// The person's years are always the comparison side: the candidate's
	// when ranking candidates for a job, the seeker's when ranking jobs.
	var experience *float64
	if favourSurplus {
		experience = scoring.ExperienceAlignment(baseline.ExperienceYears, record.ExperienceYears, true)
	} else {
		experience = scoring.ExperienceAlignment(record.ExperienceYears, baseline.ExperienceYears, false)
	}

	metadataScore, breakdown := scoring.Combine([]scoring.Component{
		{Name: scoring.ComponentSkillsOverlap, Score: scoring.SkillsOverlap(baseline.Skills, record.Skills), Weight: r.weights.SkillsOverlap},
		{Name: scoring.ComponentLocationMatch, Score: scoring.LocationMatch(baseline.Location, record.Location), Weight: r.weights.LocationMatch},
		{Name: scoring.ComponentIndustryMatch, Score: scoring.IndustryMatch(baseline.Industry, record.Industry), Weight: r.weights.IndustryMatch},
		{Name: scoring.ComponentExperienceAlignment, Score: experience, Weight: r.weights.ExperienceAlignment},
	})

	blended := scoring.Round3(r.weights.Blend(vectorScore, metadataScore, len(breakdown) > 0))
	out.MatchScore = &blended
	if len(breakdown) > 0 {
		out.ScoreBreakdown = breakdown
	} else {
		out.ScoreBreakdown = nil
	}
	return out
}

func matchScore(m types.Match) float64 {
	if m.MatchScore == nil {
		return 0
	}
	return *m.MatchScore
}
