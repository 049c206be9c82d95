package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/skillmatch/internal/db"
	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

// UserStore is the account storage used by UserService.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, phone string, role types.UserRole, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
}

// Store is everything the API handlers read and write. *db.DB implements it.
type Store interface {
	UserStore

	Ping(ctx context.Context) error
	Close()

	CreateSkill(ctx context.Context, name, description string) (*db.Skill, error)
	GetSkillsByIDs(ctx context.Context, ids []uuid.UUID) ([]db.Skill, error)
	ListSkills(ctx context.Context, prefix string, limit int) ([]db.Skill, error)

	CreateJob(ctx context.Context, input *db.JobCreateInput) (*db.Job, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	ListJobs(ctx context.Context, filters db.JobFilters) ([]db.Job, error)
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status types.JobStatus) (bool, error)
	LoadJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error)

	AddUserSkills(ctx context.Context, userID uuid.UUID, skillIDs []uuid.UUID) error
	AddExperienceEntry(ctx context.Context, userID uuid.UUID, entry types.ExperienceEntry) (*db.ExperienceEntry, error)
	AddEducationEntry(ctx context.Context, userID uuid.UUID, entry types.EducationEntry) (*db.EducationEntry, error)
	LoadCandidateProfile(ctx context.Context, userID uuid.UUID) (*types.CandidateProfile, error)
	LoadCandidateProfiles(ctx context.Context, userIDs []uuid.UUID) ([]*types.CandidateProfile, error)

	CreateApplication(ctx context.Context, input *db.ApplicationCreateInput) (*db.Application, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Application, error)
	GetApplicationStats(ctx context.Context, jobID uuid.UUID) (*types.ApplicationStats, error)

	SearchCandidates(ctx context.Context, c query.Criteria, limit int) ([]db.CandidateSummary, error)
}

var _ Store = (*db.DB)(nil)
