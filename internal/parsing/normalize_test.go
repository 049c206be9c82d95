package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Golang to Go", "Golang", "Go"},
		{"GOLANG to Go", "GOLANG", "Go"},
		{"go lang to Go", "go   lang", "Go"},
		{"K8s to Kubernetes", "k8s", "Kubernetes"},
		{"postgres to PostgreSQL", "postgres", "PostgreSQL"},
		{"sql stays an acronym", "sql", "SQL"},
		{"python to Python", "python", "Python"},
		{"PYTHON to Python", "PYTHON", "Python"},
		{"Empty string", "", ""},
		{"Whitespace only", "   ", ""},
		{"Multi-word stays as-is", "Distributed Systems", "Distributed Systems"},
		{"Mixed case single word", "GraphQL", "GraphQL"},
		{"reactjs to React", "ReactJS", "React"},
		{"ci/cd acronym", "ci/cd", "CI/CD"},
		{"multi-word alias", "machine  learning", "Machine Learning"},
		{"mongo to MongoDB", "Mongo", "MongoDB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSkillName(tt.input))
		})
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "machine-learning", Slugify("Machine Learning"))
	assert.Equal(t, "go", Slugify("  Go "))
	assert.Equal(t, "ci/cd-pipelines", Slugify("CI/CD \t Pipelines"))
}

func TestExtractEducationKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "bachelor degree",
			text: "A Bachelor's Degree required",
			want: []string{"bachelor", "degree"},
		},
		{
			name: "vocabulary order not text order",
			text: "Certification or a PhD",
			want: []string{"phd", "certification"},
		},
		{
			name: "no keywords",
			text: "Fast-paced team building payment rails",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEducationKeywords(tt.text))
		})
	}
}

// Every skill the search vocabulary can extract must land on a catalog slug that the same
// skill typed by an employer would produce.
func TestNormalizeSkillName_SearchAliasesShareSlug(t *testing.T) {
	pairs := []struct{ searched, catalog string }{
		{"reactjs", "React"},
		{"react.js", "react"},
		{"vuejs", "Vue"},
		{"nodejs", "Node.js"},
		{"postgresql", "Postgres"},
		{"html5", "HTML"},
		{"css3", "css"},
		{"deep learning", "Deep Learning"},
	}

	for _, p := range pairs {
		assert.Equal(t,
			Slugify(NormalizeSkillName(p.catalog)),
			Slugify(NormalizeSkillName(p.searched)),
			p.searched)
	}
}
