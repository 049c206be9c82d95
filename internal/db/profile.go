package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatch/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Profile Methods
// -----------------------------------------------------------------------------

// bumpProfileVersion marks a candidate's scoring inputs as changed.
func bumpProfileVersion(ctx context.Context, tx pgx.Tx, userID uuid.UUID) error {
	_, err := tx.Exec(ctx,
		`UPDATE users SET profile_version = profile_version + 1, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to bump profile version: %w", err)
	}
	return nil
}

// AddUserSkills attaches catalog skills to a candidate. Skills already attached are ignored.
func (db *DB) AddUserSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, skillID := range skillIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2)
			 ON CONFLICT (user_id, skill_id) DO NOTHING`,
			userID, skillID,
		)
		if err != nil {
			return fmt.Errorf("failed to add skill %s: %w", skillID, err)
		}
	}

	if err := bumpProfileVersion(ctx, tx, userID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit skills: %w", err)
	}
	return nil
}

// ListUserSkills lists a candidate's skills by name
func (db *DB) ListUserSkills(ctx context.Context, userID uuid.UUID) ([]Skill, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT s.id, s.name, s.slug, s.description, s.created_at
		 FROM user_skills us
		 JOIN skills s ON s.id = us.skill_id
		 WHERE us.user_id = $1
		 ORDER BY s.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list user skills: %w", err)
	}
	return collectSkills(rows)
}

// AddExperienceEntry appends an experience entry to a candidate's profile
func (db *DB) AddExperienceEntry(ctx context.Context, userID uuid.UUID, entry types.ExperienceEntry) (*ExperienceEntry, error) {
	var endDate *time.Time
	if entry.EndDate != nil && !entry.Current {
		t := entry.EndDate.Time
		endDate = &t
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var e ExperienceEntry
	err = tx.QueryRow(ctx,
		`INSERT INTO experience_entries (user_id, company, title, start_date, end_date, current)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, user_id, company, title, start_date, end_date, current, created_at`,
		userID, entry.Company, entry.Title, entry.StartDate.Time, endDate, entry.Current,
	).Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.StartDate, &e.EndDate, &e.Current, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add experience entry: %w", err)
	}

	if err := bumpProfileVersion(ctx, tx, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit experience entry: %w", err)
	}
	return &e, nil
}

// ListExperienceEntries lists a candidate's experience, oldest first
func (db *DB) ListExperienceEntries(ctx context.Context, userID uuid.UUID) ([]ExperienceEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, title, start_date, end_date, current, created_at
		 FROM experience_entries WHERE user_id = $1
		 ORDER BY start_date, created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list experience entries: %w", err)
	}
	defer rows.Close()

	entries := []ExperienceEntry{}
	for rows.Next() {
		var e ExperienceEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Company, &e.Title, &e.StartDate, &e.EndDate, &e.Current, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan experience entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read experience entries: %w", err)
	}
	return entries, nil
}

// AddEducationEntry appends an education entry to a candidate's profile
func (db *DB) AddEducationEntry(ctx context.Context, userID uuid.UUID, entry types.EducationEntry) (*EducationEntry, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var e EducationEntry
	err = tx.QueryRow(ctx,
		`INSERT INTO education_entries (user_id, institution, degree, field)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, institution, degree, field, created_at`,
		userID, entry.Institution, entry.Degree, entry.Field,
	).Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.Field, &e.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add education entry: %w", err)
	}

	if err := bumpProfileVersion(ctx, tx, userID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit education entry: %w", err)
	}
	return &e, nil
}

// ListEducationEntries lists a candidate's education in insertion order
func (db *DB) ListEducationEntries(ctx context.Context, userID uuid.UUID) ([]EducationEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, institution, degree, field, created_at
		 FROM education_entries WHERE user_id = $1
		 ORDER BY created_at, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list education entries: %w", err)
	}
	defer rows.Close()

	entries := []EducationEntry{}
	for rows.Next() {
		var e EducationEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.Field, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan education entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read education entries: %w", err)
	}
	return entries, nil
}

// LoadCandidateProfile fully materializes a candidate for scoring. It returns nil, nil when the
// user does not exist.
func (db *DB) LoadCandidateProfile(ctx context.Context, userID uuid.UUID) (*types.CandidateProfile, error) {
	user, err := db.GetUser(ctx, userID)
	if err != nil || user == nil {
		return nil, err
	}

	skills, err := db.ListUserSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	experience, err := db.ListExperienceEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	education, err := db.ListEducationEntries(ctx, userID)
	if err != nil {
		return nil, err
	}

	return buildCandidateProfile(user, skills, experience, education), nil
}

func buildCandidateProfile(user *User, skills []Skill, experience []ExperienceEntry, education []EducationEntry) *types.CandidateProfile {
	profile := &types.CandidateProfile{
		ID:         user.ID.String(),
		Name:       user.Name,
		Skills:     skillRefs(skills),
		Experience: make([]types.ExperienceEntry, len(experience)),
		Education:  make([]types.EducationEntry, len(education)),
		Version:    user.ProfileVersion,
	}
	for i, e := range experience {
		profile.Experience[i] = e.toType()
	}
	for i, e := range education {
		profile.Education[i] = e.toType()
	}
	return profile
}

// LoadCandidateProfiles loads each listed candidate. Unknown IDs are skipped.
func (db *DB) LoadCandidateProfiles(ctx context.Context, userIDs []uuid.UUID) ([]*types.CandidateProfile, error) {
	profiles := make([]*types.CandidateProfile, 0, len(userIDs))
	for _, id := range userIDs {
		p, err := db.LoadCandidateProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p != nil {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}
