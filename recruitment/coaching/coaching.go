// Package coaching holds the LLM assisted career tools built on a parsed
// resume: mock interviews, skill gaps, resume tailoring and course
// recommendations.
package coaching

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// Question is one mock interview question with a model answer
type Question struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
}

type MockInterview struct {
	Easy   []Question `json:"easy"`
	Medium []Question `json:"medium"`
	Hard   []Question `json:"hard"`
}

type UpskillingStep struct {
	Step          string `json:"step"`
	EstimatedTime string `json:"estimated_time"`
	Reason        string `json:"reason"`
}

type SkillGap struct {
	MissingSkills  []string         `json:"missing_skill"`
	UpskillingPath []UpskillingStep `json:"upskilling_path"`
}

type TailoredResume struct {
	RewrittenSummary string   `json:"rewritten_summary"`
	RewrittenBullets []string `json:"rewritten_bullets"`
	ExplainedChanges []string `json:"explained_changes"`
}

type CourseRecommendation struct {
	CourseID          kernel.CourseID `json:"Course_id"`
	CourseTitle       string          `json:"Course_title"`
	CourseDescription string          `json:"Course_description"`
	Reason            string          `json:"reason"`
}

// Result wraps a tool output with the provider that produced it
type Result[T any] struct {
	ResumeID kernel.ResumeID `json:"resume_id"`
	Provider string          `json:"provider"`
	Data     T               `json:"data"`
}

// FillDefaults replaces nil lists with empty ones
func (m *MockInterview) FillDefaults() {
	if m.Easy == nil {
		m.Easy = []Question{}
	}
	if m.Medium == nil {
		m.Medium = []Question{}
	}
	if m.Hard == nil {
		m.Hard = []Question{}
	}
}

func (g *SkillGap) FillDefaults() {
	if g.MissingSkills == nil {
		g.MissingSkills = []string{}
	}
	if g.UpskillingPath == nil {
		g.UpskillingPath = []UpskillingStep{}
	}
}

func (t *TailoredResume) FillDefaults() {
	if t.RewrittenBullets == nil {
		t.RewrittenBullets = []string{}
	}
	if t.ExplainedChanges == nil {
		t.ExplainedChanges = []string{}
	}
}
