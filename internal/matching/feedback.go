package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/skillmatch/internal/types"
)

// Feedback messages, one per dimension and classification.
const (
	skillStrength      = "Strong alignment with the job's required and preferred skills"
	experienceStrength = "Experience level is a close fit for the role"
	educationStrength  = "Education background matches the role's requirements"

	skillGap      = "Missing several of the skills the job requires"
	experienceGap = "Experience level is far from what the role expects"
	educationGap  = "Education does not reflect the role's stated requirements"

	skillRecommendationGeneric = "Develop the skills listed in the job posting"
	educationRecommendation    = "Consider a degree or certification relevant to this role"
)

// Feedback is the qualitative part of a match result.
type Feedback struct {
	Strengths       []string
	Gaps            []string
	Recommendations []string
}

// FeedbackInput carries the sub-scores and the context needed to phrase recommendations.
type FeedbackInput struct {
	SkillScore      float64
	ExperienceScore float64
	EducationScore  float64

	// MissingRequired lists the required skills the candidate lacks, in job order.
	MissingRequired []types.SkillRef
	JobLevel        types.ExperienceLevel
	CandidateLevel  types.ExperienceLevel
}

// classification of a single dimension's score.
type classification int

const (
	neutral classification = iota
	strength
	gap
)

func classify(score float64) classification {
	switch {
	case score >= StrengthThreshold:
		return strength
	case score < GapThreshold:
		return gap
	default:
		return neutral
	}
}

// GenerateFeedback classifies each dimension, in the order skill, experience, education, and
// emits one recommendation per gap.
func GenerateFeedback(in FeedbackInput) Feedback {
	fb := Feedback{
		Strengths:       []string{},
		Gaps:            []string{},
		Recommendations: []string{},
	}

	dimensions := []struct {
		score          float64
		strength       string
		gap            string
		recommendation func() string
	}{
		{in.SkillScore, skillStrength, skillGap, func() string { return skillRecommendation(in.MissingRequired) }},
		{in.ExperienceScore, experienceStrength, experienceGap, func() string {
			return experienceRecommendation(in.JobLevel, in.CandidateLevel)
		}},
		{in.EducationScore, educationStrength, educationGap, func() string { return educationRecommendation }},
	}

	for _, d := range dimensions {
		switch classify(d.score) {
		case strength:
			fb.Strengths = append(fb.Strengths, d.strength)
		case gap:
			fb.Gaps = append(fb.Gaps, d.gap)
			fb.Recommendations = append(fb.Recommendations, d.recommendation())
		}
	}
	return fb
}

func skillRecommendation(missing []types.SkillRef) string {
	if len(missing) == 0 {
		return skillRecommendationGeneric
	}
	names := make([]string, len(missing))
	for i, s := range missing {
		names[i] = s.Name
		if names[i] == "" {
			names[i] = s.ID
		}
	}
	return fmt.Sprintf("Develop the missing required skills: %s", strings.Join(names, ", "))
}

func experienceRecommendation(jobLevel, candidateLevel types.ExperienceLevel) string {
	if candidateLevel > jobLevel {
		return fmt.Sprintf("Role targets %s-level experience; consider positions closer to the %s level",
			jobLevel, candidateLevel)
	}
	return fmt.Sprintf("Build experience toward the %s level this role expects", jobLevel)
}
