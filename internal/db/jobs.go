package db

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatch/internal/types"
)

// -----------------------------------------------------------------------------
// Job Methods
// -----------------------------------------------------------------------------

// CreateJob inserts a job and its required and preferred skills in one transaction.
// Skill order is preserved.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	status := input.Status
	if status == "" {
		status = types.JobStatusOpen
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id uuid.UUID
	err = tx.QueryRow(ctx,
		`INSERT INTO jobs (employer_id, title, description, location, experience_level, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		input.EmployerID, input.Title, input.Description, input.Location,
		input.ExperienceLevel.String(), status,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	if err := insertJobSkills(ctx, tx, id, SkillKindRequired, input.RequiredSkillIDs); err != nil {
		return nil, err
	}
	if err := insertJobSkills(ctx, tx, id, SkillKindPreferred, input.PreferredSkillIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job: %w", err)
	}

	return db.GetJob(ctx, id)
}

func insertJobSkills(ctx context.Context, tx pgx.Tx, jobID uuid.UUID, kind string, skillIDs []uuid.UUID) error {
	for pos, skillID := range skillIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO job_skills (job_id, skill_id, kind, position)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (job_id, skill_id, kind) DO NOTHING`,
			jobID, skillID, kind, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to add %s skill %s: %w", kind, skillID, err)
		}
	}
	return nil
}

const jobColumns = `id, employer_id, title, description, location, experience_level, status, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	var level string
	err := row.Scan(&j.ID, &j.EmployerID, &j.Title, &j.Description, &j.Location, &level,
		&j.Status, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if j.ExperienceLevel, err = types.ParseExperienceLevel(level); err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJob retrieves a job with its skills
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT js.kind, s.id, s.name, s.slug, s.description, s.created_at
		 FROM job_skills js
		 JOIN skills s ON s.id = js.skill_id
		 WHERE js.job_id = $1
		 ORDER BY js.kind, js.position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get job skills: %w", err)
	}
	defer rows.Close()

	j.RequiredSkills = []Skill{}
	j.PreferredSkills = []Skill{}
	for rows.Next() {
		var kind string
		var s Skill
		if err := rows.Scan(&kind, &s.ID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job skill: %w", err)
		}
		if kind == SkillKindRequired {
			j.RequiredSkills = append(j.RequiredSkills, s)
		} else {
			j.PreferredSkills = append(j.PreferredSkills, s)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job skills: %w", err)
	}

	return j, nil
}

// JobFilters holds optional filters for ListJobs
type JobFilters struct {
	Status     types.JobStatus
	EmployerID *uuid.UUID
	Limit      int
}

// ListJobs lists jobs, newest first. Skills are not loaded.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]Job, error) {
	query, args, err := listJobsQuery(filters).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build jobs query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, nil
}

func listJobsQuery(filters JobFilters) sq.SelectBuilder {
	q := psql.Select(jobColumns).
		From("jobs").
		OrderBy("created_at DESC").
		Limit(uint64(clampLimit(filters.Limit)))
	if filters.Status != "" {
		q = q.Where(sq.Eq{"status": filters.Status})
	}
	if filters.EmployerID != nil {
		q = q.Where(sq.Eq{"employer_id": *filters.EmployerID})
	}
	return q
}

// UpdateJobStatus changes a job's status. It reports false when the job does not exist.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) (bool, error) {
	if !status.Valid() {
		return false, fmt.Errorf("invalid job status: %q", status)
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update job status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// LoadJobPosting fully materializes a job for scoring. It returns nil, nil when the job does
// not exist.
func (db *DB) LoadJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	j, err := db.GetJob(ctx, id)
	if err != nil || j == nil {
		return nil, err
	}
	return j.Posting(), nil
}
