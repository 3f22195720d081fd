// Package prompts builds the instruction text sent to LLM providers. Every
// builder is a pure template fill: no I/O, no validation.
package prompts

import (
	"fmt"
	"strings"
)

// ResumeSchema is the JSON shape the structuring prompt asks the model for
const ResumeSchema = `{
    "location": "",
    "skills": [],
    "total_experience": "",
    "work_experience": [
        {
            "title": "",
            "company": "",
            "position": "",
            "start_date": "",
            "end_date": "",
            "description": ""
        }
    ],
    "education": [
        {
            "degree": "",
            "institute": "",
            "field_of_study": "",
            "start_date": "",
            "end_date": ""
        }
    ],
    "certifications": [],
    "projects": [],
    "interests": []
}`

// Course is a catalogue entry offered to the model
type Course struct {
	ID          string
	Title       string
	Description string
}

// TargetJob is a job the resume should be tailored towards
type TargetJob struct {
	Title       string
	Description string
}

// StructureResume asks for the resume as a JSON object matching ResumeSchema
func StructureResume(resumeText string) string {
	return fmt.Sprintf(`You are an expert HR data extraction assistant.
You will be provided with the text of a resume.
Extract the information into a JSON object with exactly the following structure:

%s

Rules:
- The output must be a single valid JSON object.
- Calculate total_experience from the start_date and end_date values in work_experience.
- projects and certifications are lists of strings.
- If a field is missing, leave it empty ("" or []).
- Do not include extra text, a summary or any other information.

Resume text:
---
%s
---
`, ResumeSchema, resumeText)
}

// PerformanceReview asks for a summary of a self-assessment and a manager review
func PerformanceReview(selfReview, managerReview string) string {
	return fmt.Sprintf(`You are an expert performance review summarizer assistant.
You will be provided with an employee self-assessment and a manager review.
Summarize the employee's performance based on both.
Respond only in valid JSON and nothing else.
If you cannot answer, return the JSON with empty fields.

Schema:
{
    "Strengths": "",
    "Weaknesses": "",
    "Improvements": "",
    "Actionable_step": "",
    "Comments": ""
}

Inputs:
- Employee Self Review: %s
- Manager Review: %s

Rules:
- Strengths, weaknesses and areas for improvement each in less than 20 words.
- Actionable steps must be specific and prioritized (e.g. "Take X course").
- Comments is a single sentence summary.
- Output only valid JSON.
`, selfReview, managerReview)
}

// MockInterview asks for easy, medium and hard interview questions with answers
func MockInterview(jobTitle, jobDescription, resumeText string, easy, medium, hard int) string {
	return fmt.Sprintf(`You are an expert AI assistant for interview tasks.
Provide a mock interview tailored to the candidate, the job title and the job description.
Respond only in valid JSON and nothing else.
The output is a JSON object with keys "easy", "medium" and "hard".
Each key maps to a list of questions with the following structure:

{
    "question": "",
    "answer": "",
    "difficulty": ""
}

Inputs:
- Job Title: %s
- Job Description: %s
- Resume text: %s
- Number of easy questions: %d
- Number of medium questions: %d
- Number of hard questions: %d
- Tone: Professional and concise

Rules:
- Provide exactly the requested number of questions for each category.
- Questions contain keywords relevant to the job and are at most 30 words.
- Answers are a 1-3 sentence summary.
- Output only valid JSON.
`, jobTitle, jobDescription, resumeText, easy, medium, hard)
}

// CourseRecommendation asks the model to pick courses from the catalogue
func CourseRecommendation(resumeText, jobTitle, jobDescription string, courses []Course) string {
	return fmt.Sprintf(`You are an expert AI assistant for course recommendation tasks.
Recommend courses from the provided catalogue that close the gap between the candidate's resume and the job.
Return a JSON array of recommendations, each with the following structure:

{
    "Course_id": "",
    "Course_title": "",
    "Course_description": "",
    "reason": ""
}

Inputs:
- Resume text: %s
- Job Title: %s
- Job Description: %s
- Courses:
%s
- Tone: Professional and concise

Rules:
- Only recommend courses that appear in the catalogue, using their ids.
- Provide up to 4 recommendations.
- Output only valid JSON.
`, resumeText, jobTitle, jobDescription, renderCourses(courses))
}

// SkillGap asks for the missing skills and an upskilling path towards the job
func SkillGap(resumeText, jobTitle, jobDescription string, courses []Course) string {
	return fmt.Sprintf(`You are an expert career coach.
Compare the candidate with the target job and suggest how the candidate can upskill to match it.
Respond only in valid JSON matching the schema below.
If you cannot answer, return the JSON with empty fields.

Schema:
{
    "missing_skill": [],
    "upskilling_path": [
        {
            "step": "",
            "estimated_time": "",
            "reason": ""
        }
    ]
}

Inputs:
- Resume: %s
- Job Title: %s
- Job Description: %s
- Courses:
%s

Rules:
- missing_skill lists the key skills absent for the role.
- upskilling_path has up to 4 steps, each with estimated hours and a one line reason.
- Keep entries concise and output only valid JSON.
`, resumeText, jobTitle, jobDescription, renderCourses(courses))
}

// TailorResume asks for resume bullets rewritten towards the target jobs
func TailorResume(resumeText string, targetJobs []TargetJob) string {
	return fmt.Sprintf(`You are an expert AI assistant for HR tasks.
Respond only in valid JSON and nothing else.
If you cannot answer, return the JSON with empty fields.

Rewrite and optimize the candidate's resume to better match the target jobs.
The output is a JSON object with the following structure:

{
    "rewritten_summary": "",
    "rewritten_bullets": [],
    "explained_changes": []
}

Inputs:
- Resume text: %s
- Target Jobs:
%s
- Tone: Professional and concise

Rules:
- rewritten_summary is optimized for the target jobs.
- Up to 6 rewritten_bullets, each action-result formatted with keywords from the target jobs.
- Up to 4 explained_changes, each a short reason for a change.
- Output only valid JSON.
`, resumeText, renderTargetJobs(targetJobs))
}

func renderCourses(courses []Course) string {
	if len(courses) == 0 {
		return "  (none)"
	}
	var sb strings.Builder
	for i, c := range courses {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "  - [%s] %s: %s", c.ID, c.Title, c.Description)
	}
	return sb.String()
}

func renderTargetJobs(jobs []TargetJob) string {
	if len(jobs) == 0 {
		return "  (none)"
	}
	var sb strings.Builder
	for i, j := range jobs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "  - %s: %s", j.Title, j.Description)
	}
	return sb.String()
}
