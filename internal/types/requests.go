//nolint:revive // types is a standard Go package name pattern
package types

// CreateSkillRequest registers a skill in the catalog.
type CreateSkillRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty"`
}

// CreateJobRequest creates a job posting owned by the caller.
type CreateJobRequest struct {
	Title             string   `json:"title" validate:"required,max=200"`
	Description       string   `json:"description" validate:"required"`
	ExperienceLevel   string   `json:"experience_level,omitempty" validate:"omitempty,oneof=entry junior mid senior lead executive"`
	Location          string   `json:"location,omitempty"`
	RequiredSkillIDs  []string `json:"required_skill_ids" validate:"dive,uuid"`
	PreferredSkillIDs []string `json:"preferred_skill_ids,omitempty" validate:"dive,uuid"`
}

// UpdateJobStatusRequest changes the publication state of a job.
type UpdateJobStatusRequest struct {
	Status JobStatus `json:"status" validate:"required,oneof=draft open closed archived"`
}

// AddSkillsRequest attaches catalog skills to the caller's profile.
type AddSkillsRequest struct {
	SkillIDs []string `json:"skill_ids" validate:"required,min=1,dive,uuid"`
}

// AddExperienceRequest appends an experience entry to the caller's profile.
type AddExperienceRequest struct {
	Company   string `json:"company" validate:"required"`
	Title     string `json:"title" validate:"required"`
	StartDate Date   `json:"start_date"`
	EndDate   *Date  `json:"end_date,omitempty"`
	Current   bool   `json:"current"`
}

// AddEducationRequest appends an education entry to the caller's profile.
type AddEducationRequest struct {
	Institution string `json:"institution" validate:"required"`
	Degree      string `json:"degree" validate:"required"`
	Field       string `json:"field,omitempty"`
}

// MatchRequest scores an inline job against an inline candidate without touching storage.
type MatchRequest struct {
	Job       *JobPosting       `json:"job"`
	Candidate *CandidateProfile `json:"candidate"`
}

// ApplyRequest submits an application for a job.
type ApplyRequest struct {
	CoverLetter string `json:"cover_letter,omitempty" validate:"max=10000"`
}

// RankRequest ranks the listed candidates against a job.
type RankRequest struct {
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=1,max=500,dive,uuid"`
}
