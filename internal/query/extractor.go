// Package query turns free-text candidate searches into structured filter criteria.
package query

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/skillmatch/internal/parsing"
)

// SkillPatterns is the technology vocabulary recognized in search text, grouped by area.
var SkillPatterns = []string{
	`react\.?js|angular|vue\.?js|node\.?js|python|java|typescript|javascript|aws|docker|kubernetes`,
	`sql|nosql|mongodb|postgresql|mysql`,
	`html5?|css3?|sass|less`,
	`git|ci/cd|jenkins|terraform`,
	`machine learning|ai|deep learning|nlp`,
}

// RolePatterns is the role vocabulary recognized in search text. Groups are tried in order and a
// match in a later group overrides an earlier one, so "backend engineer" yields "engineer".
var RolePatterns = []string{
	`frontend|backend|full.?stack|dev.?ops|data scientist|software|developer`,
	`engineer|architect|lead|manager|director`,
}

var (
	skillRe     = unionRegexp(SkillPatterns)
	roleRes     = groupRegexps(RolePatterns)
	yearsRe     = regexp.MustCompile(`(\d+)\+?\s*years?`)
	educationRe = regexp.MustCompile(`(?:` + strings.Join(quoteAll(parsing.EducationKeywords), "|") + `)`)
)

// Criteria is the structured form of a search query. Nil fields were not found in the text.
type Criteria struct {
	Skills    []string `json:"skills,omitempty"`
	MinYears  *int     `json:"min_years,omitempty"`
	Role      *string  `json:"role,omitempty"`
	Education *string  `json:"education,omitempty"`
}

// IsEmpty reports whether no criterion was extracted.
func (c Criteria) IsEmpty() bool {
	return len(c.Skills) == 0 && c.MinYears == nil && c.Role == nil && c.Education == nil
}

// Extract parses skills, a minimum years threshold, a role and an education keyword out of text.
// Matching is case-insensitive. Each field is extracted independently. Skills and roles match
// whole words; education keywords match anywhere, as in job descriptions. The role is the
// leftmost match of the last role group that matches at all.
func Extract(text string) Criteria {
	lower := strings.ToLower(text)

	return Criteria{
		Skills:    extractSkills(lower),
		MinYears:  extractYears(lower),
		Role:      extractRole(lower),
		Education: firstMatch(educationRe, lower),
	}
}

// extractSkills returns every vocabulary match in order of first appearance.
func extractSkills(lower string) []string {
	matches := skillRe.FindAllString(lower, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		skills = append(skills, m)
	}
	return skills
}

func extractRole(lower string) *string {
	var role *string
	for _, re := range roleRes {
		if m := firstMatch(re, lower); m != nil {
			role = m
		}
	}
	return role
}

func extractYears(lower string) *int {
	m := yearsRe.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &years
}

// firstMatch returns the leftmost match of re in s, or nil.
func firstMatch(re *regexp.Regexp, s string) *string {
	m := re.FindString(s)
	if m == "" {
		return nil
	}
	return &m
}

// unionRegexp joins alternation groups into one word-bounded pattern.
func unionRegexp(groups []string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + strings.Join(groups, "|") + `)\b`)
}

// groupRegexps compiles each alternation group into its own word-bounded pattern.
func groupRegexps(groups []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(groups))
	for i, g := range groups {
		res[i] = unionRegexp([]string{g})
	}
	return res
}

func quoteAll(terms []string) []string {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return quoted
}
