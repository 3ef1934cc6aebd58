package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/talent-match/internal/types"
)

// Job statuses
const (
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

// Candidate statuses
const (
	CandidateStatusOpen        = "open"
	CandidateStatusUnavailable = "unavailable"
)

// Job represents a job posting record
type Job struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	Company         string         `json:"company"`
	Location        string         `json:"location,omitempty"`
	Industry        string         `json:"industry,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
	Description     string         `json:"description,omitempty"`
	Status          string         `json:"status"`
	Attrs           map[string]any `json:"attrs,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// JobCreateInput contains the fields for creating a job posting
type JobCreateInput struct {
	Title           string
	Company         string
	Location        string
	Industry        string
	Skills          []string
	ExperienceYears *float64
	Description     string
	Attrs           map[string]any
}

// ToMatch converts a job row into the shape the retrieval pipeline works on.
func (j *Job) ToMatch() types.Match {
	return types.Match{
		ID:              j.ID.String(),
		Kind:            types.KindJob,
		Title:           j.Title,
		Company:         j.Company,
		Location:        j.Location,
		Industry:        j.Industry,
		Skills:          append([]string(nil), j.Skills...),
		ExperienceYears: j.ExperienceYears,
		Summary:         j.Description,
		Extra:           cloneAttrs(j.Attrs),
	}
}

// Candidate represents a candidate profile record
type Candidate struct {
	ID              uuid.UUID      `json:"id"`
	Name            string         `json:"name"`
	CurrentTitle    string         `json:"current_title,omitempty"`
	Location        string         `json:"location,omitempty"`
	Industry        string         `json:"industry,omitempty"`
	Skills          []string       `json:"skills,omitempty"`
	ExperienceYears *float64       `json:"experience_years,omitempty"`
	Summary         string         `json:"summary,omitempty"`
	Status          string         `json:"status"`
	Attrs           map[string]any `json:"attrs,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// CandidateCreateInput contains the fields for creating a candidate profile
type CandidateCreateInput struct {
	Name            string
	CurrentTitle    string
	Location        string
	Industry        string
	Skills          []string
	ExperienceYears *float64
	Summary         string
	Attrs           map[string]any
}

// ToMatch converts a candidate row for the retrieval pipeline. The display
// label is the candidate's name; their current title travels in Extra so the
// presentation layer can surface it as metadata.
func (c *Candidate) ToMatch() types.Match {
	extra := cloneAttrs(c.Attrs)
	if c.CurrentTitle != "" {
		if extra == nil {
			extra = make(map[string]any, 1)
		}
		extra["current_title"] = c.CurrentTitle
	}
	return types.Match{
		ID:              c.ID.String(),
		Kind:            types.KindCandidate,
		Title:           c.Name,
		Location:        c.Location,
		Industry:        c.Industry,
		Skills:          append([]string(nil), c.Skills...),
		ExperienceYears: c.ExperienceYears,
		Summary:         c.Summary,
		Extra:           extra,
	}
}

func cloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}

func jobsToMatches(jobs []Job) []types.Match {
	matches := make([]types.Match, 0, len(jobs))
	for i := range jobs {
		matches = append(matches, jobs[i].ToMatch())
	}
	return matches
}

func candidatesToMatches(candidates []Candidate) []types.Match {
	matches := make([]types.Match, 0, len(candidates))
	for i := range candidates {
		matches = append(matches, candidates[i].ToMatch())
	}
	return matches
}
