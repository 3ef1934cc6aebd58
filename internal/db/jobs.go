package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/talent-match/internal/types"
)

const jobColumns = `id, title, company, location, industry, skills,
	experience_years, description, status, attrs, created_at, updated_at`

// CreateJob inserts a new active job posting
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	var attrsJSON []byte
	var err error
	if input.Attrs != nil {
		attrsJSON, err = json.Marshal(input.Attrs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal job attrs: %w", err)
		}
	}

	var j Job
	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, company, location, industry, skills,
		                   experience_years, description, status, attrs)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, 'active', $8)
		 RETURNING `+jobColumns,
		input.Title, input.Company, input.Location, input.Industry, input.Skills,
		input.ExperienceYears, input.Description, attrsJSON,
	).Scan(jobScanTargets(&j)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &j, nil
}

// GetJobByID retrieves a job posting by its ID
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`,
		id,
	).Scan(jobScanTargets(&j)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// CloseJob marks a job posting as closed
func (db *DB) CloseJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = 'closed', updated_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// ListActiveJobs retrieves active job postings for metadata-tier matching
func (db *DB) ListActiveJobs(ctx context.Context, limit int) ([]types.Match, error) {
	jobs, err := db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = 'active'
		 ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list active jobs: %w", err)
	}
	return jobsToMatches(jobs), nil
}

// ListRecentJobs retrieves the most recently posted jobs regardless of match
func (db *DB) ListRecentJobs(ctx context.Context, limit int) ([]types.Match, error) {
	jobs, err := db.listJobs(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE status = 'active'
		 ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent jobs: %w", err)
	}
	return jobsToMatches(jobs), nil
}

func (db *DB) listJobs(ctx context.Context, query string, args ...any) ([]Job, error) {
	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(jobScanTargets(&j)...); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// jobScanTargets returns scan destinations in jobColumns order
func jobScanTargets(j *Job) []any {
	return []any{
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Industry, &j.Skills,
		&j.ExperienceYears, &j.Description, &j.Status, &j.Attrs,
		&j.CreatedAt, &j.UpdatedAt,
	}
}
