package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

const candidateColumns = `id, name, current_title, location, industry, skills,
	experience_years, summary, status, attrs, created_at, updated_at`

// CreateCandidate inserts a new candidate profile in the open state
func (db *DB) CreateCandidate(ctx context.Context, input *CandidateCreateInput) (*Candidate, error) {
	var attrsJSON []byte
	var err error
	if input.Attrs != nil {
		attrsJSON, err = json.Marshal(input.Attrs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal candidate attrs: %w", err)
		}
	}

	var c Candidate
	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidate_profiles (name, current_title, location, industry,
		                                 skills, experience_years, summary, status, attrs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'open', $8)
		 RETURNING `+candidateColumns,
		input.Name, input.CurrentTitle, input.Location, input.Industry,
		input.Skills, input.ExperienceYears, input.Summary, attrsJSON,
	).Scan(candidateScanTargets(&c)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return &c, nil
}

// GetCandidateByID retrieves a candidate profile by its ID
func (db *DB) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles WHERE id = $1`,
		id,
	).Scan(candidateScanTargets(&c)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// SetCandidateStatus updates a candidate's availability
func (db *DB) SetCandidateStatus(ctx context.Context, id uuid.UUID, status string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidate_profiles SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %s", id)
	}
	return nil
}

// ListOpenCandidates retrieves open-to-work candidates for metadata-tier matching
func (db *DB) ListOpenCandidates(ctx context.Context, limit int) ([]types.Match, error) {
	candidates, err := db.listCandidates(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles
		 WHERE status = 'open'
		 ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list open candidates: %w", err)
	}
	return candidatesToMatches(candidates), nil
}

// ListRecentCandidates retrieves the most recently registered candidates
func (db *DB) ListRecentCandidates(ctx context.Context, limit int) ([]types.Match, error) {
	candidates, err := db.listCandidates(ctx,
		`SELECT `+candidateColumns+` FROM candidate_profiles
		 WHERE status = 'open'
		 ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent candidates: %w", err)
	}
	return candidatesToMatches(candidates), nil
}

func (db *DB) listCandidates(ctx context.Context, query string, args ...any) ([]Candidate, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(candidateScanTargets(&c)...); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// candidateScanTargets returns scan destinations in candidateColumns order
func candidateScanTargets(c *Candidate) []any {
	return []any{
		&c.ID, &c.Name, &c.CurrentTitle, &c.Location, &c.Industry, &c.Skills,
		&c.ExperienceYears, &c.Summary, &c.Status, &c.Attrs,
		&c.CreatedAt, &c.UpdatedAt,
	}
}
