package matching

import "github.com/jonathan/skillmatch/internal/types"

// skillSet indexes skill refs by ID.
type skillSet map[string]struct{}

func newSkillSet(skills []types.SkillRef) skillSet {
	set := make(skillSet, len(skills))
	for _, s := range skills {
		set[s.ID] = struct{}{}
	}
	return set
}

func (s skillSet) has(ref types.SkillRef) bool {
	_, ok := s[ref.ID]
	return ok
}

// coverage returns the fraction of wanted skills present in have. An empty wanted set is
// fully covered.
func coverage(wanted []types.SkillRef, have skillSet) float64 {
	distinct := newSkillSet(wanted)
	if len(distinct) == 0 {
		return 1.0
	}

	matched := 0
	for id := range distinct {
		if _, ok := have[id]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(distinct))
}

// SkillScore scores candidate skills against a job's required and preferred skills. The result
// is rounded to four decimal places, so one required skill of three with two preferred skills
// of three gives 43.3333 rather than 43.333333....
func SkillScore(required, preferred, candidate []types.SkillRef) float64 {
	have := newSkillSet(candidate)
	requiredRatio := coverage(required, have)
	preferredRatio := coverage(preferred, have)

	return roundScore((RequiredSkillWeight*requiredRatio + PreferredSkillWeight*preferredRatio) * MaxScore)
}

// MissingRequiredSkills lists required skills the candidate lacks, in job order, without repeats.
func MissingRequiredSkills(required, candidate []types.SkillRef) []types.SkillRef {
	have := newSkillSet(candidate)
	seen := make(skillSet, len(required))

	var missing []types.SkillRef
	for _, ref := range required {
		if have.has(ref) || seen.has(ref) {
			continue
		}
		seen[ref.ID] = struct{}{}
		missing = append(missing, ref)
	}
	return missing
}
