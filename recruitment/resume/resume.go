package resume

import (
	"path"
	"strings"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
)

type ResumeStatus string

const (
	ResumeStatusPending    ResumeStatus = "pending"
	ResumeStatusProcessing ResumeStatus = "processing"
	ResumeStatusParsed     ResumeStatus = "parsed"
	ResumeStatusFailed     ResumeStatus = "failed"
)

// Resume is an uploaded resume file and its structured form once parsed
type Resume struct {
	ID       kernel.ResumeID `json:"id"`
	OwnerID  kernel.UserID   `json:"owner_id"`
	FileURL  string          `json:"file_url"`
	FileName string          `json:"file_name"`
	FileType string          `json:"file_type"`
	Provider string          `json:"provider,omitempty"`

	// ParsedData is nil until the pipeline has structured the file
	ParsedData   *resumeparser.StructuredResume `json:"parsed_data,omitempty"`
	Status       ResumeStatus                   `json:"status"`
	ErrorMessage string                         `json:"error_message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// BelongsTo checks if the resume was uploaded by userID
func (r *Resume) BelongsTo(userID kernel.UserID) bool {
	return r.OwnerID == userID
}

// IsParsed checks if structured data is available
func (r *Resume) IsParsed() bool {
	return r.Status == ResumeStatusParsed && r.ParsedData != nil
}

// MarkProcessing flags the resume as being run through the pipeline
func (r *Resume) MarkProcessing() {
	r.Status = ResumeStatusProcessing
	r.ErrorMessage = ""
	r.UpdatedAt = time.Now()
}

// MarkParsed stores the structured resume
func (r *Resume) MarkParsed(data *resumeparser.StructuredResume) {
	r.ParsedData = data
	r.Status = ResumeStatusParsed
	r.ErrorMessage = ""
	r.UpdatedAt = time.Now()
}

// MarkFailed records why parsing failed. Previously parsed data is kept.
func (r *Resume) MarkFailed(reason string) {
	r.Status = ResumeStatusFailed
	r.ErrorMessage = reason
	r.UpdatedAt = time.Now()
}

// Text returns the flattened parsed resume, or "" when not parsed
func (r *Resume) Text() string {
	if r.ParsedData == nil {
		return ""
	}
	return r.ParsedData.Flatten()
}

// StoragePath is where the uploaded file of a resume lives in the file store
func StoragePath(ownerID kernel.UserID, id kernel.ResumeID, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	owner := ownerID.String()
	if owner == "" {
		owner = "anonymous"
	}
	return path.Join("resumes", owner, id.String()+ext)
}
