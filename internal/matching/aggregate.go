package matching

import "math"

// scorePrecision is the number of decimal places kept in sub-scores.
const scorePrecision = 1e4

// roundScore drops binary floating-point noise so that, for example, full coverage is exactly 100.
func roundScore(v float64) float64 {
	return math.Round(v*scorePrecision) / scorePrecision
}

// OverallScore combines the three sub-scores with the fixed aggregation weights. It is computed
// from the already rounded sub-scores and is not rounded again.
func OverallScore(skill, experience, education float64) float64 {
	return SkillWeight*skill + ExperienceWeight*experience + EducationWeight*education
}
