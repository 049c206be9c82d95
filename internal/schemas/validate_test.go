package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skillmatch/internal/query"
	"github.com/jonathan/skillmatch/internal/types"
)

func TestValidate_JobPosting(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name: "full posting",
			doc: `{"id":"job-1","title":"Backend Engineer",
				"required_skills":[{"id":"s-go","name":"Go"}],
				"preferred_skills":[],
				"experience_level":"senior",
				"description":"Bachelor degree preferred"}`,
		},
		{name: "minimal posting", doc: `{"id":"job-1"}`},
		{name: "null skill lists", doc: `{"id":"job-1","required_skills":null,"preferred_skills":null}`},
		{name: "missing id", doc: `{"title":"Backend Engineer"}`, wantError: true},
		{name: "unknown level", doc: `{"id":"job-1","experience_level":"wizard"}`, wantError: true},
		{name: "skill without id", doc: `{"id":"job-1","required_skills":[{"name":"Go"}]}`, wantError: true},
		{name: "skills not an array", doc: `{"id":"job-1","required_skills":"Go"}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(JobPosting, []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidate_CandidateProfile(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
	}{
		{
			name: "full profile",
			doc: `{"id":"c-1","name":"Ada",
				"skills":[{"id":"s-go","name":"Go"}],
				"experience":[
					{"company":"Acme","title":"Engineer","start_date":"2019-01-01","end_date":"2021-06-30","current":false},
					{"company":"Initech","start_date":"2021-07","end_date":null,"current":true}
				],
				"education":[{"institution":"MIT","degree":"Bachelor of Science","field":"Computer Science"}],
				"version":3}`,
		},
		{name: "minimal profile", doc: `{"id":"c-1"}`},
		{name: "missing start date", doc: `{"id":"c-1","experience":[{"company":"Acme"}]}`, wantError: true},
		{name: "bad date", doc: `{"id":"c-1","experience":[{"start_date":"January 2019"}]}`, wantError: true},
		{name: "negative version", doc: `{"id":"c-1","version":-1}`, wantError: true},
		{name: "empty id", doc: `{"id":""}`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(CandidateProfile, []byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

// Documents produced by the Go types must satisfy their own schemas.
func TestValidate_MarshaledTypes(t *testing.T) {
	end := types.NewDate(2022, time.March, 1)
	candidate := types.CandidateProfile{
		ID:     "c-1",
		Skills: []types.SkillRef{{ID: "s-go", Name: "Go"}},
		Experience: []types.ExperienceEntry{
			{Company: "Acme", StartDate: types.NewDate(2019, time.January, 1), EndDate: &end},
			{Company: "Initech", StartDate: types.NewDate(2022, time.April, 1), Current: true},
		},
		Education: []types.EducationEntry{{Degree: "Bachelor", Field: "CS"}},
		Version:   2,
	}
	job := types.JobPosting{
		ID:              "job-1",
		RequiredSkills:  []types.SkillRef{{ID: "s-go", Name: "Go"}},
		ExperienceLevel: types.LevelMid,
	}
	years := 5
	role := "engineer"
	criteria := query.Criteria{Skills: []string{"python"}, MinYears: &years, Role: &role}

	docs := []struct {
		schema string
		value  any
	}{
		{CandidateProfile, candidate},
		{JobPosting, job},
		{SearchCriteria, criteria},
		{SearchCriteria, query.Extract("nothing recognizable")},
	}
	for _, d := range docs {
		data, err := json.Marshal(d.value)
		require.NoError(t, err)
		assert.NoError(t, Validate(d.schema, data), string(data))
	}
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("missing.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "missing.schema.json", loadErr.Path)
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := Validate(JobPosting, []byte(`{ invalid json }`))
	require.Error(t, err)

	var ve *ValidationError
	assert.False(t, errors.As(err, &ve))
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "job.json")
	invalid := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"id":"job-1"}`), 0o644))
	require.NoError(t, os.WriteFile(invalid, []byte(`{"id":1}`), 0o644))

	assert.NoError(t, ValidateFile(JobPosting, valid))

	err := ValidateFile(JobPosting, invalid)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "id", ve.Errors[0].Field)
	assert.Contains(t, err.Error(), invalid)

	err = ValidateFile(JobPosting, filepath.Join(dir, "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schema := `{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`

	assert.NoError(t, ValidateJSONString(schema, `{"name":"Go"}`))

	err := ValidateJSONString(schema, `{}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "(root)", ve.Errors[0].Field)
	assert.Contains(t, ve.Error(), "validation failed")
}
