package matching

import (
	"strings"

	"github.com/jonathan/skillmatch/internal/parsing"
	"github.com/jonathan/skillmatch/internal/types"
)

// DegreeRank ranks a degree description by the most advanced degree term it contains.
func DegreeRank(degree string) int {
	lower := strings.ToLower(degree)
	for _, d := range degreeLevels {
		if strings.Contains(lower, d.term) {
			return d.rank
		}
	}
	return RankUnknown
}

// TopEducation returns the highest ranked entry. The first entry wins ties.
func TopEducation(entries []types.EducationEntry) (types.EducationEntry, bool) {
	if len(entries) == 0 {
		return types.EducationEntry{}, false
	}

	top := entries[0]
	topRank := DegreeRank(top.Degree)
	for _, e := range entries[1:] {
		if rank := DegreeRank(e.Degree); rank > topRank {
			top, topRank = e, rank
		}
	}
	return top, true
}

// EducationScore scores a candidate's education against the education keywords found in the
// job description. Like SkillScore, the result is rounded to four decimal places.
func EducationScore(description string, entries []types.EducationEntry) float64 {
	top, ok := TopEducation(entries)
	if !ok {
		return EducationBaseWithoutEntries
	}

	keywords := parsing.ExtractEducationKeywords(description)
	if len(keywords) == 0 {
		return EducationBaseWithEntries
	}

	text := strings.ToLower(top.Degree + " " + top.Field)
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			matched++
		}
	}
	overlap := float64(matched) / float64(len(keywords))

	score := EducationBaseWithEntries + EducationKeywordBonus*overlap
	if score > MaxScore {
		score = MaxScore
	}
	return roundScore(score)
}
