package matching

import (
	"time"

	"github.com/jonathan/skillmatch/internal/types"
)

// TotalYears sums whole-year durations over all entries. An ongoing entry (current, or no end
// date) runs to asOf. Overlapping entries each count in full. An entry ending before it starts,
// or with no start date, contributes nothing.
func TotalYears(entries []types.ExperienceEntry, asOf time.Time) int {
	total := 0
	for _, e := range entries {
		if e.StartDate.IsZero() {
			continue
		}
		endYear := asOf.Year()
		if !e.Current && e.EndDate != nil {
			endYear = e.EndDate.Year()
		}
		if years := endYear - e.StartDate.Year(); years > 0 {
			total += years
		}
	}
	return total
}

// LevelForYears maps accumulated years to the highest level whose threshold does not exceed them.
func LevelForYears(years int) types.ExperienceLevel {
	level := types.LevelEntry
	for _, l := range types.ExperienceLevels() {
		if minYears, _ := LevelMinYears(l); minYears <= years {
			level = l
		}
	}
	return level
}

// hasDatedEntry reports whether any entry carries a start date.
func hasDatedEntry(entries []types.ExperienceEntry) bool {
	for _, e := range entries {
		if !e.StartDate.IsZero() {
			return true
		}
	}
	return false
}

// experienceMatch holds the intermediate values of the experience calculation.
type experienceMatch struct {
	score          float64
	candidateLevel types.ExperienceLevel
	neutral        bool
}

func matchExperience(jobLevel types.ExperienceLevel, entries []types.ExperienceEntry, asOf time.Time) experienceMatch {
	if !jobLevel.IsSet() || !hasDatedEntry(entries) {
		return experienceMatch{score: NeutralExperienceScore, neutral: true}
	}

	candidateLevel := LevelForYears(TotalYears(entries, asOf))
	distance := int(jobLevel) - int(candidateLevel)
	if distance < 0 {
		distance = -distance
	}

	score := MaxScore - LevelDistancePenalty*float64(distance)
	if score < MinScore {
		score = MinScore
	}
	return experienceMatch{score: score, candidateLevel: candidateLevel}
}

// ExperienceScore scores a candidate's history against the job's required level as of asOf.
func ExperienceScore(jobLevel types.ExperienceLevel, entries []types.ExperienceEntry, asOf time.Time) float64 {
	return matchExperience(jobLevel, entries, asOf).score
}
