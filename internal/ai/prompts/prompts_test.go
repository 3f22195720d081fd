package prompts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeSchemaIsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ResumeSchema), &v))

	for _, key := range []string{"location", "skills", "total_experience", "work_experience", "education", "certifications", "projects", "interests"} {
		assert.Contains(t, v, key)
	}
}

func TestStructureResume(t *testing.T) {
	p := StructureResume("Go developer with 5 years")

	assert.Contains(t, p, ResumeSchema)
	assert.Contains(t, p, "---\nGo developer with 5 years\n---")
	assert.Equal(t, p, StructureResume("Go developer with 5 years"))
}

func TestMockInterview(t *testing.T) {
	p := MockInterview("Backend Engineer", "Build APIs", "resume", 2, 3, 1)

	assert.Contains(t, p, "Job Title: Backend Engineer")
	assert.Contains(t, p, "Number of easy questions: 2")
	assert.Contains(t, p, "Number of medium questions: 3")
	assert.Contains(t, p, "Number of hard questions: 1")
}

func TestCourseAndSkillGapRenderCatalogue(t *testing.T) {
	courses := []Course{{ID: "c1", Title: "Go Basics", Description: "Intro"}}

	for _, p := range []string{
		CourseRecommendation("resume", "Dev", "desc", courses),
		SkillGap("resume", "Dev", "desc", courses),
	} {
		assert.Contains(t, p, "[c1] Go Basics: Intro")
	}

	assert.Contains(t, SkillGap("r", "t", "d", nil), "(none)")
}

func TestPerformanceReviewAndTailor(t *testing.T) {
	p := PerformanceReview("I shipped X", "Solid work")
	assert.Contains(t, p, "Employee Self Review: I shipped X")
	assert.Contains(t, p, "Manager Review: Solid work")
	assert.Contains(t, p, `"Actionable_step": ""`)

	tp := TailorResume("resume", []TargetJob{{Title: "SRE", Description: "Run prod"}})
	assert.Contains(t, tp, "- SRE: Run prod")
}
