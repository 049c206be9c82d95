// Package parsing holds the fixed vocabularies and text normalization shared by the
// scoring engine, the query extractor and the skill catalog.
package parsing

import (
	"regexp"
	"strings"
)

// skillNormalizations maps skill name variants, including every alias the search vocabulary
// recognizes, to the canonical catalog name.
var skillNormalizations = map[string]string{
	// Languages and runtimes
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"node":       "Node.js",
	"c#":         "C#",
	"c++":        "C++",

	// Frontend
	"react":     "React",
	"react.js":  "React",
	"reactjs":   "React",
	"vue":       "Vue",
	"vue.js":    "Vue",
	"vuejs":     "Vue",
	"html":      "HTML",
	"html5":     "HTML",
	"css":       "CSS",
	"css3":      "CSS",
	"sass":      "Sass",
	"less":      "Less",
	"graphql":   "GraphQL",
	"angularjs": "Angular",

	// Data stores
	"sql":        "SQL",
	"nosql":      "NoSQL",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
	"mysql":      "MySQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",

	// Infrastructure
	"aws":        "AWS",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"ci/cd":      "CI/CD",
	"cicd":       "CI/CD",

	// Machine learning
	"ai":               "AI",
	"ml":               "Machine Learning",
	"machine learning": "Machine Learning",
	"deep learning":    "Deep Learning",
	"nlp":              "NLP",
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := whitespaceRun.ReplaceAllString(strings.TrimSpace(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Mixed case is taken as intentional
	if normalized != strings.ToUpper(normalized) && normalized != lower {
		return normalized
	}

	// Single words get a leading capital; multi-word phrases are kept as typed
	if !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}
	return normalized
}

// Slugify derives the catalog slug of a skill name: lowercase, whitespace runs become "-".
func Slugify(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
