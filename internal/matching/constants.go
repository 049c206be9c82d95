package matching

import "github.com/jonathan/skillmatch/internal/types"

// Skill weights: required skills count for 70%, preferred for 30%.
const (
	RequiredSkillWeight  = 0.7
	PreferredSkillWeight = 0.3
)

// Aggregation weights for the overall score.
const (
	SkillWeight      = 0.5
	ExperienceWeight = 0.3
	EducationWeight  = 0.2
)

// Score bounds and defaults.
const (
	MaxScore = 100.0
	MinScore = 0.0

	// NeutralExperienceScore is returned when the job has no level or the candidate no history.
	NeutralExperienceScore = 50.0
	// LevelDistancePenalty is subtracted per ordinal step between job and candidate level.
	LevelDistancePenalty = 20.0

	// EducationBaseWithEntries is the base education score for a candidate with any education.
	EducationBaseWithEntries = 70.0
	// EducationBaseWithoutEntries is the base education score for a candidate with none.
	EducationBaseWithoutEntries = 50.0
	// EducationKeywordBonus is the maximum bonus for full keyword overlap.
	EducationKeywordBonus = 30.0
)

// Feedback classification thresholds.
const (
	// StrengthThreshold: a dimension scoring at or above this is a strength.
	StrengthThreshold = 80.0
	// GapThreshold: a dimension scoring below this is a gap.
	GapThreshold = 50.0
)

// Minimum accumulated years for each experience level.
const (
	EntryMinYears     = 0
	JuniorMinYears    = 1
	MidMinYears       = 3
	SeniorMinYears    = 5
	LeadMinYears      = 8
	ExecutiveMinYears = 10
)

var levelMinYears = map[types.ExperienceLevel]int{
	types.LevelEntry:     EntryMinYears,
	types.LevelJunior:    JuniorMinYears,
	types.LevelMid:       MidMinYears,
	types.LevelSenior:    SeniorMinYears,
	types.LevelLead:      LeadMinYears,
	types.LevelExecutive: ExecutiveMinYears,
}

// LevelMinYears returns the year threshold for a level, and false for an unset level.
func LevelMinYears(level types.ExperienceLevel) (int, bool) {
	years, ok := levelMinYears[level]
	return years, ok
}

// Degree ranks, higher is more advanced. Unrecognized degrees rank 0.
const (
	RankUnknown    = 0
	RankHighSchool = 1
	RankAssociate  = 2
	RankBachelor   = 3
	RankMaster     = 4
	RankPhD        = 5
)

// degreeLevel pairs a degree term with its rank.
type degreeLevel struct {
	term string
	rank int
}

// degreeLevels is ordered from highest to lowest so the most advanced term in a degree wins.
var degreeLevels = []degreeLevel{
	{term: "phd", rank: RankPhD},
	{term: "master", rank: RankMaster},
	{term: "bachelor", rank: RankBachelor},
	{term: "associate", rank: RankAssociate},
	{term: "high school", rank: RankHighSchool},
}

// DegreeTerms returns the recognized degree terms and their ranks.
func DegreeTerms() map[string]int {
	terms := make(map[string]int, len(degreeLevels))
	for _, d := range degreeLevels {
		terms[d.term] = d.rank
	}
	return terms
}
