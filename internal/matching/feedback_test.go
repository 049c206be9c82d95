package matching

import (
	"testing"

	"github.com/jonathan/skillmatch/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestGenerateFeedback_Boundaries(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		wantStrength bool
		wantGap      bool
	}{
		{"exactly strength threshold", 80, true, false},
		{"just below strength threshold", 79.99, false, false},
		{"exactly gap threshold", 50, false, false},
		{"just below gap threshold", 49.99, false, true},
		{"maximum", 100, true, false},
		{"minimum", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := GenerateFeedback(FeedbackInput{SkillScore: tt.score, ExperienceScore: 60, EducationScore: 60})
			assert.Equal(t, tt.wantStrength, len(fb.Strengths) == 1)
			assert.Equal(t, tt.wantGap, len(fb.Gaps) == 1)
			assert.Len(t, fb.Recommendations, len(fb.Gaps))
		})
	}
}

func TestGenerateFeedback_Order(t *testing.T) {
	fb := GenerateFeedback(FeedbackInput{SkillScore: 90, ExperienceScore: 85, EducationScore: 100})
	assert.Equal(t, []string{skillStrength, experienceStrength, educationStrength}, fb.Strengths)
	assert.Empty(t, fb.Gaps)
	assert.Empty(t, fb.Recommendations)

	fb = GenerateFeedback(FeedbackInput{
		SkillScore:      10,
		ExperienceScore: 20,
		EducationScore:  30,
		MissingRequired: refs(skillGo),
		JobLevel:        types.LevelLead,
		CandidateLevel:  types.LevelJunior,
	})
	assert.Equal(t, []string{skillGap, experienceGap, educationGap}, fb.Gaps)
	assert.Len(t, fb.Recommendations, 3)
	assert.Equal(t, educationRecommendation, fb.Recommendations[2])
}

func TestGenerateFeedback_NeutralEmitsNothing(t *testing.T) {
	fb := GenerateFeedback(FeedbackInput{SkillScore: 50, ExperienceScore: 65, EducationScore: 79})
	assert.NotNil(t, fb.Strengths)
	assert.Empty(t, fb.Strengths)
	assert.Empty(t, fb.Gaps)
	assert.Empty(t, fb.Recommendations)
}

func TestGenerateFeedback_SkillRecommendationListsMissing(t *testing.T) {
	fb := GenerateFeedback(FeedbackInput{
		SkillScore:      35,
		ExperienceScore: 50,
		EducationScore:  50,
		MissingRequired: refs(skillSQL, skillKubernetes),
	})
	assert.Equal(t, []string{"Develop the missing required skills: SQL, Kubernetes"}, fb.Recommendations)
}

func TestGenerateFeedback_SkillRecommendationFallsBackToID(t *testing.T) {
	fb := GenerateFeedback(FeedbackInput{
		SkillScore:      0,
		ExperienceScore: 50,
		EducationScore:  50,
		MissingRequired: refs(types.SkillRef{ID: "s-rust"}),
	})
	assert.Equal(t, []string{"Develop the missing required skills: s-rust"}, fb.Recommendations)
}

func TestGenerateFeedback_ExperienceRecommendation(t *testing.T) {
	under := GenerateFeedback(FeedbackInput{
		SkillScore: 60, ExperienceScore: 40, EducationScore: 60,
		JobLevel: types.LevelSenior, CandidateLevel: types.LevelJunior,
	})
	assert.Equal(t, []string{"Build experience toward the senior level this role expects"}, under.Recommendations)

	over := GenerateFeedback(FeedbackInput{
		SkillScore: 60, ExperienceScore: 0, EducationScore: 60,
		JobLevel: types.LevelEntry, CandidateLevel: types.LevelExecutive,
	})
	assert.Equal(t, []string{"Role targets entry-level experience; consider positions closer to the executive level"}, over.Recommendations)
}
