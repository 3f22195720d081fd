// Package matching relates resumes and job postings through the vector index.
package matching

import (
	"strings"

	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

// Stage names a step of resume ingestion
type Stage string

const (
	StageExtracting  Stage = "extracting"
	StageStructuring Stage = "structuring"
	StageEmbedding   Stage = "embedding"
	StageMatching    Stage = "matching"
)

// Progress is the completion percentage reached when a stage starts
func (s Stage) Progress() int {
	switch s {
	case StageExtracting:
		return 10
	case StageStructuring:
		return 30
	case StageEmbedding:
		return 70
	case StageMatching:
		return 90
	}
	return 0
}

// Metadata keys stored with each vector record
const (
	MetaUserID   = "user_id"
	MetaResumeID = "resume_id"
	MetaJobID    = "job_id"
	MetaPostedBy = "posted_by"
)

type IngestResumeRequest struct {
	FilePath string
	// Format defaults to the extension of FilePath
	Format   docextract.Format
	UserID   kernel.UserID
	ResumeID kernel.ResumeID
	Provider string
	TopK     int
	// OnStage, when set, is called as each stage begins
	OnStage func(Stage)
}

type IngestResult struct {
	ResumeID   kernel.ResumeID                `json:"resume_id"`
	Structured *resumeparser.StructuredResume `json:"structured"`
	Text       string                         `json:"text"`
	Matches    []JobMatch                     `json:"matches"`
}

type IngestJobPostRequest struct {
	JobID        kernel.JobID
	Title        string
	Description  string
	Requirements []string
	PostedBy     kernel.UserID
	TopK         int
}

type JobPostResult struct {
	JobID   kernel.JobID  `json:"job_id"`
	Text    string        `json:"text"`
	Matches []ResumeMatch `json:"matches"`
}

// JobMatch is a job posting near a resume
type JobMatch struct {
	JobID      kernel.JobID  `json:"job_id"`
	PostedBy   kernel.UserID `json:"posted_by"`
	Distance   float64       `json:"distance"`
	Similarity float64       `json:"similarity"`
}

// ResumeMatch is a resume near a job posting
type ResumeMatch struct {
	ResumeID   kernel.ResumeID `json:"resume_id"`
	UserID     kernel.UserID   `json:"user_id"`
	Distance   float64         `json:"distance"`
	Similarity float64         `json:"similarity"`
}

func ToJobMatches(matches []vectorstore.Match) []JobMatch {
	out := make([]JobMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, JobMatch{
			JobID:      kernel.JobID(m.ID),
			PostedBy:   kernel.UserID(m.Metadata.String(MetaPostedBy)),
			Distance:   m.Distance,
			Similarity: m.Similarity(),
		})
	}
	return out
}

func ToResumeMatches(matches []vectorstore.Match) []ResumeMatch {
	out := make([]ResumeMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, ResumeMatch{
			ResumeID:   kernel.ResumeID(m.ID),
			UserID:     kernel.UserID(m.Metadata.String(MetaUserID)),
			Distance:   m.Distance,
			Similarity: m.Similarity(),
		})
	}
	return out
}

// FlattenJobPost renders a job posting as the text block that gets embedded
func FlattenJobPost(title, description string, requirements []string) string {
	lines := []string{
		"Title: " + strings.TrimSpace(title),
		"Description: " + strings.TrimSpace(description),
		"",
		"Requirements:",
	}
	for _, r := range requirements {
		if r = strings.TrimSpace(r); r != "" {
			lines = append(lines, "- "+r)
		}
	}
	return strings.Join(lines, "\n")
}
