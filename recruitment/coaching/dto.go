package coaching

import "github.com/Abraxas-365/peoplehub/pkg/kernel"

// MaxQuestionsPerLevel caps each difficulty of a mock interview
const MaxQuestionsPerLevel = 10

// MaxTargetJobs caps the jobs a resume can be tailored towards at once
const MaxTargetJobs = 5

// MockInterviewRequest - DTO for generating a mock interview
type MockInterviewRequest struct {
	ResumeID kernel.ResumeID `json:"resume_id" validate:"required"`
	JobID    kernel.JobID    `json:"job_id" validate:"required"`
	Easy     int             `json:"easy"`
	Medium   int             `json:"medium"`
	Hard     int             `json:"hard"`
	Provider string          `json:"provider,omitempty"`
}

// WithDefaults asks for two easy, two medium and one hard question when no
// count is given
func (r MockInterviewRequest) WithDefaults() MockInterviewRequest {
	if r.Easy == 0 && r.Medium == 0 && r.Hard == 0 {
		r.Easy, r.Medium, r.Hard = 2, 2, 1
	}
	return r
}

// ResumeJobRequest - DTO for tools comparing one resume with one job
type ResumeJobRequest struct {
	ResumeID kernel.ResumeID `json:"resume_id" validate:"required"`
	JobID    kernel.JobID    `json:"job_id" validate:"required"`
	Provider string          `json:"provider,omitempty"`
}

// TailorResumeRequest - DTO for tailoring a resume to several jobs
type TailorResumeRequest struct {
	ResumeID kernel.ResumeID `json:"resume_id" validate:"required"`
	JobIDs   []kernel.JobID  `json:"job_ids" validate:"required"`
	Provider string          `json:"provider,omitempty"`
}
