//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/matching"
	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

// =============================================================================
// Integration Tests (require TEST_DATABASE_URL)
// =============================================================================

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *DB, role types.UserRole) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	email := "test-" + uuid.New().String() + "@example.com"
	id, err := db.CreateUser(ctx, "Test "+string(role), email, "", role, "hash")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.DeleteUser(context.Background(), id) })
	return id
}

func TestIntegration_Users(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	email := "Mixed-" + uuid.New().String() + "@Example.com"
	id, err := db.CreateUser(ctx, "Ada", email, "555-0100", "", "")
	require.NoError(t, err)
	defer db.DeleteUser(ctx, id)

	user, err := db.GetUserByEmail(ctx, email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, types.RoleSeeker, user.Role)
	assert.False(t, user.PasswordSet)

	exists, err := db.CheckEmailExists(ctx, email)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, db.UpdatePassword(ctx, id, "new-hash"))
	user, err = db.GetUser(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", user.PasswordHash)
	assert.True(t, user.PasswordSet)

	missing, err := db.GetUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestIntegration_JobMatchAndApply(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	employer := createTestUser(t, db, types.RoleEmployer)
	candidate := createTestUser(t, db, types.RoleSeeker)

	suffix := uuid.New().String()[:8]
	goSkill, err := db.CreateSkill(ctx, "Go "+suffix, "")
	require.NoError(t, err)
	sqlSkill, err := db.CreateSkill(ctx, "SQL "+suffix, "")
	require.NoError(t, err)

	again, err := db.CreateSkill(ctx, "go "+suffix, "")
	require.NoError(t, err)
	assert.Equal(t, goSkill.ID, again.ID, "same slug returns the existing skill")

	job, err := db.CreateJob(ctx, &JobCreateInput{
		EmployerID:       employer,
		Title:            "Backend Engineer",
		Description:      "Bachelor's degree required",
		ExperienceLevel:  types.LevelMid,
		RequiredSkillIDs: []uuid.UUID{sqlSkill.ID, goSkill.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, types.JobStatusOpen, job.Status)
	require.Len(t, job.RequiredSkills, 2)
	assert.Equal(t, sqlSkill.ID, job.RequiredSkills[0].ID, "posting order is preserved")

	require.NoError(t, db.AddUserSkills(ctx, candidate, []uuid.UUID{goSkill.ID}))
	_, err = db.AddExperienceEntry(ctx, candidate, types.ExperienceEntry{
		Company: "Acme", Title: "Backend Developer", StartDate: types.NewDate(2019, time.January, 1), Current: true,
	})
	require.NoError(t, err)
	_, err = db.AddEducationEntry(ctx, candidate, types.EducationEntry{Degree: "Bachelor of Science", Field: "CS"})
	require.NoError(t, err)

	posting, err := db.LoadJobPosting(ctx, job.ID)
	require.NoError(t, err)
	profile, err := db.LoadCandidateProfile(ctx, candidate)
	require.NoError(t, err)
	assert.Equal(t, int64(4), profile.Version)

	result, err := matching.Match(posting, profile)
	require.NoError(t, err)

	app, err := db.CreateApplication(ctx, &ApplicationCreateInput{JobID: job.ID, CandidateID: candidate, Result: result})
	require.NoError(t, err)
	assert.Equal(t, types.ApplicationPending, app.Status)
	assert.Equal(t, result.OverallScore, app.MatchScore)
	require.NotNil(t, app.MatchDetails)

	_, err = db.CreateApplication(ctx, &ApplicationCreateInput{JobID: job.ID, CandidateID: candidate, Result: result})
	assert.ErrorIs(t, err, ErrAlreadyApplied)

	stats, err := db.GetApplicationStats(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[types.ApplicationPending])
	assert.InDelta(t, result.OverallScore, stats.AverageMatchScore, 1e-9)

	ok, err := db.UpdateJobStatus(ctx, job.ID, types.JobStatusClosed)
	require.NoError(t, err)
	assert.True(t, ok)

	role := "backend"
	hits, err := db.SearchCandidates(ctx, query.Criteria{Skills: []string{"go " + suffix}, Role: &role}, 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, candidate, hits[0].ID)
	assert.Equal(t, 1, hits[0].SkillHits)
}
