package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillmatch/internal/parsing"
)

// -----------------------------------------------------------------------------
// Skill Catalog Methods
// -----------------------------------------------------------------------------

// CreateSkill adds a skill to the catalog. The name is normalized and the slug derived from it;
// creating a skill whose slug already exists returns the existing skill.
func (db *DB) CreateSkill(ctx context.Context, name, description string) (*Skill, error) {
	name = parsing.NormalizeSkillName(name)
	slug := parsing.Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("skill name is empty")
	}

	var s Skill
	err := db.pool.QueryRow(ctx,
		`INSERT INTO skills (name, slug, description)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (slug) DO UPDATE SET
		     description = CASE WHEN skills.description = '' THEN EXCLUDED.description ELSE skills.description END
		 RETURNING id, name, slug, description, created_at`,
		name, slug, description,
	).Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	return &s, nil
}

// GetSkillsByIDs returns the catalog skills with the given IDs. Unknown IDs are ignored.
func (db *DB) GetSkillsByIDs(ctx context.Context, ids []uuid.UUID) ([]Skill, error) {
	if len(ids) == 0 {
		return []Skill{}, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, slug, description, created_at FROM skills WHERE id = ANY($1) ORDER BY name`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get skills: %w", err)
	}
	return collectSkills(rows)
}

// ListSkills lists catalog skills, optionally filtered by a case-insensitive name prefix
func (db *DB) ListSkills(ctx context.Context, prefix string, limit int) ([]Skill, error) {
	query, args, err := listSkillsQuery(prefix, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build skills query: %w", err)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return collectSkills(rows)
}

func listSkillsQuery(prefix string, limit int) sq.SelectBuilder {
	q := psql.Select("id", "name", "slug", "description", "created_at").
		From("skills").
		OrderBy("name").
		Limit(uint64(clampLimit(limit)))
	if prefix != "" {
		q = q.Where(sq.ILike{"name": escapeLike(prefix) + "%"})
	}
	return q
}

func collectSkills(rows pgx.Rows) ([]Skill, error) {
	defer rows.Close()

	skills := []Skill{}
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read skills: %w", err)
	}
	return skills, nil
}
