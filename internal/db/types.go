package db

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skillmatch/internal/types"
)

var (
	// ErrAlreadyApplied is returned when a candidate applies to the same job twice.
	ErrAlreadyApplied = errors.New("candidate has already applied to this job")
	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = errors.New("email already registered")
)

// Skill kinds on a job.
const (
	SkillKindRequired  = "required"
	SkillKindPreferred = "preferred"
)

// Default and maximum page sizes for list queries.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// clampLimit bounds a caller-supplied page size.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// User represents a user account
type User struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone,omitempty"`
	Role           types.UserRole `json:"role"`
	PasswordHash   string         `json:"-"` // Never serialize to JSON
	PasswordSet    bool           `json:"password_set"`
	ProfileVersion int64          `json:"profile_version"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// ToAPI converts the record to its API representation.
func (u *User) ToAPI() *types.User {
	return &types.User{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		PasswordSet: u.PasswordSet,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// Skill is a catalog skill
type Skill struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Ref returns the skill reference used by the scoring engine.
func (s Skill) Ref() types.SkillRef {
	return types.SkillRef{ID: s.ID.String(), Name: s.Name}
}

func skillRefs(skills []Skill) []types.SkillRef {
	refs := make([]types.SkillRef, len(skills))
	for i, s := range skills {
		refs[i] = s.Ref()
	}
	return refs
}

// Job is a stored job posting with its skills in posting order
type Job struct {
	ID              uuid.UUID             `json:"id"`
	EmployerID      uuid.UUID             `json:"employer_id"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	Location        string                `json:"location,omitempty"`
	ExperienceLevel types.ExperienceLevel `json:"experience_level,omitempty"`
	Status          types.JobStatus       `json:"status"`
	RequiredSkills  []Skill               `json:"required_skills"`
	PreferredSkills []Skill               `json:"preferred_skills"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// Posting converts the job to the value struct scored by the engine.
func (j *Job) Posting() *types.JobPosting {
	return &types.JobPosting{
		ID:              j.ID.String(),
		Title:           j.Title,
		RequiredSkills:  skillRefs(j.RequiredSkills),
		PreferredSkills: skillRefs(j.PreferredSkills),
		ExperienceLevel: j.ExperienceLevel,
		Description:     j.Description,
	}
}

// JobCreateInput holds the fields for creating a job
type JobCreateInput struct {
	EmployerID        uuid.UUID
	Title             string
	Description       string
	Location          string
	ExperienceLevel   types.ExperienceLevel
	Status            types.JobStatus // defaults to open
	RequiredSkillIDs  []uuid.UUID
	PreferredSkillIDs []uuid.UUID
}

// ExperienceEntry is a stored employment interval
type ExperienceEntry struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Company   string     `json:"company"`
	Title     string     `json:"title"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Current   bool       `json:"current"`
	CreatedAt time.Time  `json:"created_at"`
}

func (e ExperienceEntry) toType() types.ExperienceEntry {
	entry := types.ExperienceEntry{
		Company:   e.Company,
		Title:     e.Title,
		StartDate: types.Date{Time: e.StartDate},
		Current:   e.Current,
	}
	if e.EndDate != nil {
		entry.EndDate = &types.Date{Time: *e.EndDate}
	}
	return entry
}

// EducationEntry is a stored degree or qualification
type EducationEntry struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Institution string    `json:"institution"`
	Degree      string    `json:"degree"`
	Field       string    `json:"field"`
	CreatedAt   time.Time `json:"created_at"`
}

func (e EducationEntry) toType() types.EducationEntry {
	return types.EducationEntry{
		Institution: e.Institution,
		Degree:      e.Degree,
		Field:       e.Field,
	}
}

// Application is a candidate's application to a job with the score computed at submission
type Application struct {
	ID           uuid.UUID               `json:"id"`
	JobID        uuid.UUID               `json:"job_id"`
	CandidateID  uuid.UUID               `json:"candidate_id"`
	Status       types.ApplicationStatus `json:"status"`
	CoverLetter  string                  `json:"cover_letter,omitempty"`
	MatchScore   float64                 `json:"match_score"`
	MatchDetails *types.MatchResult      `json:"match_details,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ApplicationCreateInput holds the fields for creating an application
type ApplicationCreateInput struct {
	JobID       uuid.UUID
	CandidateID uuid.UUID
	CoverLetter string
	Result      *types.MatchResult
}

// CandidateSummary is one candidate search hit
type CandidateSummary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SkillHits int       `json:"skill_hits"`
}
