//nolint:revive // types is a standard Go package name pattern
package types

// ExperienceEntry is one employment interval. EndDate is nil while the role is ongoing.
type ExperienceEntry struct {
	Company   string `json:"company,omitempty"`
	Title     string `json:"title,omitempty"`
	StartDate Date   `json:"start_date"`
	EndDate   *Date  `json:"end_date,omitempty"`
	Current   bool   `json:"current"`
}

// EducationEntry is one degree or qualification.
type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
}

// CandidateProfile is a fully materialized candidate as seen by the scoring engine.
type CandidateProfile struct {
	ID         string            `json:"id"`
	Name       string            `json:"name,omitempty"`
	Skills     []SkillRef        `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	// Version changes whenever the profile data changes; bulk rankers key caches on it.
	Version int64 `json:"version,omitempty"`
}
