package parsing

import "strings"

// EducationKeywords is the fixed education vocabulary. Job descriptions are scanned for these
// terms and search queries are mapped onto them.
var EducationKeywords = []string{
	"bachelor",
	"master",
	"phd",
	"doctorate",
	"degree",
	"diploma",
	"certification",
}

// ExtractEducationKeywords returns the vocabulary terms contained in text, in vocabulary order.
// Matching is case-insensitive substring containment.
func ExtractEducationKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0, len(EducationKeywords))
	for _, keyword := range EducationKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
