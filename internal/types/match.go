//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult is the outcome of scoring one candidate against one job.
// Every score is in [0, 100].
type MatchResult struct {
	OverallScore    float64  `json:"overall_score"`
	SkillScore      float64  `json:"skill_score"`
	ExperienceScore float64  `json:"experience_score"`
	EducationScore  float64  `json:"education_score"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// RankedCandidate pairs a candidate with its match result.
type RankedCandidate struct {
	CandidateID string       `json:"candidate_id"`
	Name        string       `json:"name,omitempty"`
	Result      *MatchResult `json:"result"`
}
