package matching

import (
	"time"

	"github.com/jonathan/skillmatch/internal/types"
)

// Match scores a candidate against a job using the current year for ongoing experience.
func Match(job *types.JobPosting, candidate *types.CandidateProfile) (*types.MatchResult, error) {
	return MatchAt(job, candidate, time.Now())
}

// MatchAt scores a candidate against a job, treating asOf as "now" when counting ongoing
// experience. A nil job or candidate returns *InvalidArgumentError; any other input produces a
// complete result.
func MatchAt(job *types.JobPosting, candidate *types.CandidateProfile, asOf time.Time) (*types.MatchResult, error) {
	if job == nil {
		return nil, &InvalidArgumentError{Argument: "job"}
	}
	if candidate == nil {
		return nil, &InvalidArgumentError{Argument: "candidate"}
	}

	skill := SkillScore(job.RequiredSkills, job.PreferredSkills, candidate.Skills)
	exp := matchExperience(job.ExperienceLevel, candidate.Experience, asOf)
	edu := EducationScore(job.Description, candidate.Education)

	fb := GenerateFeedback(FeedbackInput{
		SkillScore:      skill,
		ExperienceScore: exp.score,
		EducationScore:  edu,
		MissingRequired: MissingRequiredSkills(job.RequiredSkills, candidate.Skills),
		JobLevel:        job.ExperienceLevel,
		CandidateLevel:  exp.candidateLevel,
	})

	return &types.MatchResult{
		OverallScore:    OverallScore(skill, exp.score, edu),
		SkillScore:      skill,
		ExperienceScore: exp.score,
		EducationScore:  edu,
		Strengths:       fb.Strengths,
		Gaps:            fb.Gaps,
		Recommendations: fb.Recommendations,
	}, nil
}
