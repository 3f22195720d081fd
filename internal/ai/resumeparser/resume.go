package resumeparser

import (
	"fmt"
	"strings"
)

// StructuredResume is the normalized resume produced from a model reply.
// Every field is non-nil after Normalize.
type StructuredResume struct {
	Location        string           `json:"location" mapstructure:"location"`
	Skills          []string         `json:"skills" mapstructure:"skills"`
	TotalExperience string           `json:"total_experience" mapstructure:"total_experience"`
	WorkExperience  []WorkExperience `json:"work_experience" mapstructure:"work_experience"`
	Education       []Education      `json:"education" mapstructure:"education"`
	Certifications  []string         `json:"certifications" mapstructure:"certifications"`
	Projects        []string         `json:"projects" mapstructure:"projects"`
	Interests       []string         `json:"interests" mapstructure:"interests"`
}

type WorkExperience struct {
	Title       string `json:"title" mapstructure:"title"`
	Company     string `json:"company" mapstructure:"company"`
	Position    string `json:"position" mapstructure:"position"`
	StartDate   string `json:"start_date" mapstructure:"start_date"`
	EndDate     string `json:"end_date" mapstructure:"end_date"`
	Description string `json:"description" mapstructure:"description"`
}

type Education struct {
	Degree       string `json:"degree" mapstructure:"degree"`
	Institute    string `json:"institute" mapstructure:"institute"`
	FieldOfStudy string `json:"field_of_study" mapstructure:"field_of_study"`
	StartDate    string `json:"start_date" mapstructure:"start_date"`
	EndDate      string `json:"end_date" mapstructure:"end_date"`
}

// fillDefaults replaces nil slices with empty ones
func (r *StructuredResume) fillDefaults() {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.WorkExperience == nil {
		r.WorkExperience = []WorkExperience{}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
	if r.Projects == nil {
		r.Projects = []string{}
	}
	if r.Interests == nil {
		r.Interests = []string{}
	}
}

// IsEmpty reports whether no field carries any content
func (r StructuredResume) IsEmpty() bool {
	return r.Location == "" && r.TotalExperience == "" &&
		len(r.Skills) == 0 && len(r.WorkExperience) == 0 && len(r.Education) == 0 &&
		len(r.Certifications) == 0 && len(r.Projects) == 0 && len(r.Interests) == 0
}

// Flatten renders the resume as the labelled text block that gets embedded.
// Empty fields render as empty lines or empty sections.
func (r StructuredResume) Flatten() string {
	lines := []string{
		"Location: " + r.Location,
		"Total Experience: " + r.TotalExperience,
		"Skills: " + strings.Join(r.Skills, ", "),
	}

	lines = append(lines, "", "Work Experience:")
	for _, exp := range r.WorkExperience {
		lines = append(lines, "- "+exp.line())
	}

	lines = append(lines, "", "Education:")
	for _, edu := range r.Education {
		lines = append(lines, "- "+edu.line())
	}

	lines = append(lines, "", "Certifications:")
	for _, c := range r.Certifications {
		lines = append(lines, "- "+c)
	}

	lines = append(lines, "", "Projects:")
	for _, p := range r.Projects {
		lines = append(lines, "- "+p)
	}

	lines = append(lines, "", "Interests:")
	for _, i := range r.Interests {
		lines = append(lines, "- "+i)
	}

	return strings.Join(lines, "\n")
}

func (w WorkExperience) line() string {
	var sb strings.Builder
	sb.WriteString(w.Title)
	if w.Position != "" && w.Position != w.Title {
		sb.WriteString(", " + w.Position)
	}
	if w.Company != "" {
		sb.WriteString(" at " + w.Company)
	}
	if span := dateSpan(w.StartDate, w.EndDate); span != "" {
		sb.WriteString(" (" + span + ")")
	}
	if w.Description != "" {
		sb.WriteString(": " + w.Description)
	}
	return sb.String()
}

func (e Education) line() string {
	var sb strings.Builder
	sb.WriteString(e.Degree)
	if e.FieldOfStudy != "" {
		sb.WriteString(" in " + e.FieldOfStudy)
	}
	if e.Institute != "" {
		sb.WriteString(" from " + e.Institute)
	}
	if span := dateSpan(e.StartDate, e.EndDate); span != "" {
		sb.WriteString(" (" + span + ")")
	}
	return sb.String()
}

func dateSpan(start, end string) string {
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("%s to %s", start, end)
	case start != "":
		return start
	default:
		return end
	}
}
