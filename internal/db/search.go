package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

// -----------------------------------------------------------------------------
// Candidate Search
// -----------------------------------------------------------------------------

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// skillHitsExpr counts how many of the searched skills a candidate has, by name or by the
// slug of the term's canonical name.
const skillHitsExpr = `(SELECT COUNT(*) FROM user_skills us JOIN skills s ON s.id = us.skill_id
	WHERE us.user_id = u.id AND (LOWER(s.name) = ANY(?) OR s.slug = ANY(?)))`

// yearsExpr sums whole-year durations the same way the scoring engine does.
const yearsExpr = `(SELECT COALESCE(SUM(GREATEST(
		CASE WHEN e.current OR e.end_date IS NULL THEN ? ELSE EXTRACT(YEAR FROM e.end_date)::int END
		- EXTRACT(YEAR FROM e.start_date)::int, 0)), 0)
	FROM experience_entries e WHERE e.user_id = u.id)`

// candidateSearchQuery builds the filter for criteria. Every present criterion must hold; a
// candidate matches the skill criterion when they have at least one of the skills.
func candidateSearchQuery(c query.Criteria, asOf time.Time, limit int) sq.SelectBuilder {
	names := make([]string, len(c.Skills))
	slugs := make([]string, len(c.Skills))
	for i, s := range c.Skills {
		names[i] = strings.ToLower(s)
		slugs[i] = parsing.Slugify(parsing.NormalizeSkillName(s))
	}

	q := psql.Select("u.id", "u.name").
		Column(sq.Expr(skillHitsExpr+" AS skill_hits", names, slugs)).
		From("users u").
		Where(sq.Eq{"u.role": types.RoleSeeker})

	if len(names) > 0 {
		q = q.Where(sq.Expr(skillHitsExpr+" > 0", names, slugs))
	}
	if c.MinYears != nil {
		q = q.Where(sq.Expr(yearsExpr+" >= ?", asOf.Year(), *c.MinYears))
	}
	if c.Role != nil {
		q = q.Where(sq.Expr(
			`EXISTS (SELECT 1 FROM experience_entries e WHERE e.user_id = u.id AND e.title ILIKE ?)`,
			"%"+escapeLike(*c.Role)+"%"))
	}
	if c.Education != nil {
		pattern := "%" + escapeLike(*c.Education) + "%"
		q = q.Where(sq.Expr(
			`EXISTS (SELECT 1 FROM education_entries ed WHERE ed.user_id = u.id AND (ed.degree ILIKE ? OR ed.field ILIKE ?))`,
			pattern, pattern))
	}

	return q.OrderBy("skill_hits DESC", "u.name", "u.id").Limit(uint64(clampLimit(limit)))
}

// SearchCandidates finds candidates matching the extracted search criteria, most skill hits first.
func (db *DB) SearchCandidates(ctx context.Context, c query.Criteria, limit int) ([]CandidateSummary, error) {
	sqlText, args, err := candidateSearchQuery(c, time.Now(), limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := db.pool.Query(ctx, sqlText, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search candidates: %w", err)
	}
	defer rows.Close()

	results := []CandidateSummary{}
	for rows.Next() {
		var r CandidateSummary
		if err := rows.Scan(&r.ID, &r.Name, &r.SkillHits); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return results, nil
}
