package resumeparser

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullReply = "```json\n" + `{
  "location": "Lima, Peru",
  "skills": ["Go", "PostgreSQL"],
  "total_experience": "6 years",
  "work_experience": [
    {"title": "Backend Engineer", "company": "Acme", "position": "Senior", "start_date": "2019", "end_date": "2024", "description": "Built billing APIs"}
  ],
  "education": [
    {"degree": "BSc", "institute": "UNI", "field_of_study": "Computer Science", "start_date": "2012", "end_date": "2017"}
  ],
  "certifications": ["CKA"],
  "projects": [{"title": "courier", "description": "Message router"}],
  "interests": ["chess"]
}` + "\n```"

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"json tag", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"no tag", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"single line", "```json{\"a\":1}```", `{"a":1}`},
		{"no fences", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFences(tt.raw))
		})
	}
}

func TestNormalizeFullReply(t *testing.T) {
	r, err := Normalize(fullReply)
	require.NoError(t, err)

	assert.Equal(t, "Lima, Peru", r.Location)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, r.Skills)
	require.Len(t, r.WorkExperience, 1)
	assert.Equal(t, "Acme", r.WorkExperience[0].Company)
	require.Len(t, r.Education, 1)
	assert.Equal(t, "Computer Science", r.Education[0].FieldOfStudy)
	assert.Equal(t, []string{"courier: Message router"}, r.Projects)

	text := r.Flatten()
	for _, want := range []string{
		"Location: Lima, Peru",
		"Total Experience: 6 years",
		"Skills: Go, PostgreSQL",
		"Backend Engineer", "Senior", "Acme", "2019", "2024", "Built billing APIs",
		"BSc", "UNI", "Computer Science", "2012", "2017",
		"- CKA",
		"- courier: Message router",
		"- chess",
	} {
		assert.Contains(t, text, want)
	}
}

func TestNormalizeEmptyLists(t *testing.T) {
	r, err := Normalize(`{"location": "", "skills": [], "total_experience": "", "work_experience": [], "education": [], "certifications": [], "projects": [], "interests": []}`)
	require.NoError(t, err)
	assert.True(t, r.IsEmpty())

	text := r.Flatten()
	assert.True(t, strings.HasPrefix(text, "Location: \nTotal Experience: \nSkills: "))
	assert.Contains(t, text, "Work Experience:\n\nEducation:")
	assert.True(t, strings.HasSuffix(text, "Interests:"))
}

func TestNormalizeNullsAndMissingFields(t *testing.T) {
	r, err := Normalize(`{"location": null, "skills": null, "total_experience": 4, "work_experience": [{"title": "Dev", "company": null}]}`)
	require.NoError(t, err)

	assert.Equal(t, "", r.Location)
	assert.Equal(t, "4", r.TotalExperience)
	assert.NotNil(t, r.Skills)
	assert.NotNil(t, r.Education)
	assert.NotNil(t, r.Interests)
	require.Len(t, r.WorkExperience, 1)
	assert.Equal(t, "", r.WorkExperience[0].Company)
	assert.Contains(t, r.Flatten(), "- Dev")
}

func TestNormalizeSurroundingChatter(t *testing.T) {
	r, err := Normalize("Here is the JSON you asked for:\n{\"skills\": [\"Rust\"]}\nThanks!")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, r.Skills)
}

func TestNormalizeNoJSON(t *testing.T) {
	_, err := Normalize("I could not read this resume.")
	require.Error(t, err)
	assert.True(t, errx.IsCode(err, CodeNoJSON))
	assert.True(t, IsMalformedResponse(err))
}

func TestNormalizeSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array document", `["Go", "SQL"]`},
		{"skills as string", `{"skills": "Go, SQL"}`},
		{"no resume keys", `{"answer": "nope"}`},
		{"work experience scalar", `{"work_experience": ["Acme"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw)
			require.Error(t, err)
			assert.True(t, errx.IsCode(err, CodeSchemaMismatch))
			assert.True(t, IsMalformedResponse(err))

			var e *errx.Error
			require.ErrorAs(t, err, &e)
			assert.Contains(t, e.Details, "violation")
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var out struct {
		MissingSkill []string `json:"missing_skill"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"missing_skill\": [\"k8s\"]}\n```", &out))
	assert.Equal(t, []string{"k8s"}, out.MissingSkill)

	err := DecodeJSON("nothing here", &out)
	assert.True(t, errx.IsCode(err, CodeNoJSON))
}
