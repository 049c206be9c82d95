package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/skillmatch/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// pgUniqueViolation is the SQLSTATE for unique constraint violations.
const pgUniqueViolation = "23505"

const applicationColumns = `id, job_id, candidate_id, status, cover_letter, match_score, match_details, created_at, updated_at`

func scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	var detailsJSON []byte
	err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.MatchScore,
		&detailsJSON, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if detailsJSON != nil {
		var details types.MatchResult
		if err := json.Unmarshal(detailsJSON, &details); err == nil {
			a.MatchDetails = &details
		}
	}
	return &a, nil
}

// CreateApplication stores an application with its match result. A second application by the
// same candidate to the same job returns ErrAlreadyApplied.
func (db *DB) CreateApplication(ctx context.Context, input *ApplicationCreateInput) (*Application, error) {
	var score float64
	var detailsJSON []byte
	if input.Result != nil {
		score = input.Result.OverallScore
		var err error
		if detailsJSON, err = json.Marshal(input.Result); err != nil {
			return nil, fmt.Errorf("failed to marshal match details: %w", err)
		}
	}

	a, err := scanApplication(db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, status, cover_letter, match_score, match_details)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+applicationColumns,
		input.JobID, input.CandidateID, types.ApplicationPending, input.CoverLetter, score, detailsJSON,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return a, nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	a, err := scanApplication(db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return a, nil
}

// ListApplicationsByJob lists a job's applications, best match first
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE job_id = $1
		 ORDER BY match_score DESC, created_at`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	apps := []Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application to a new review state. It reports false when
// the application does not exist.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status types.ApplicationStatus) (bool, error) {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update application status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// statusCount is one row of the per-status aggregate.
type statusCount struct {
	Status   types.ApplicationStatus
	Count    int
	ScoreSum float64
}

// GetApplicationStats summarizes a job's applications
func (db *DB) GetApplicationStats(ctx context.Context, jobID uuid.UUID) (*types.ApplicationStats, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(match_score), 0)
		 FROM applications WHERE job_id = $1
		 GROUP BY status`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get application stats: %w", err)
	}
	defer rows.Close()

	var counts []statusCount
	for rows.Next() {
		var c statusCount
		if err := rows.Scan(&c.Status, &c.Count, &c.ScoreSum); err != nil {
			return nil, fmt.Errorf("failed to scan application stats: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read application stats: %w", err)
	}

	return summarizeStats(counts), nil
}

// summarizeStats folds per-status counts into totals. Every known status is present in ByStatus.
func summarizeStats(counts []statusCount) *types.ApplicationStats {
	stats := &types.ApplicationStats{ByStatus: make(map[types.ApplicationStatus]int)}
	for _, s := range types.ApplicationStatuses() {
		stats.ByStatus[s] = 0
	}

	var scoreSum float64
	for _, c := range counts {
		stats.ByStatus[c.Status] += c.Count
		stats.Total += c.Count
		scoreSum += c.ScoreSum
	}
	if stats.Total > 0 {
		stats.AverageMatchScore = scoreSum / float64(stats.Total)
	}
	return stats
}
