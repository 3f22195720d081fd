package resume

import (
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
)

// ============================================================================
// Request DTOs
// ============================================================================

// UploadResumeRequest carries a resume file from the multipart form
type UploadResumeRequest struct {
	OwnerID  kernel.UserID
	FileName string
	Data     []byte
	Provider string
	Async    bool
	TopK     int
}

// ListResumesRequest filters the resume list
type ListResumesRequest struct {
	OwnerID    kernel.UserID
	Pagination kernel.PaginationOptions
}

// ============================================================================
// Response DTOs
// ============================================================================

// UploadResumeResponse is the sync pipeline result, or the queued job when async
type UploadResumeResponse struct {
	Resume  *Resume             `json:"resume"`
	Matches []matching.JobMatch `json:"matches,omitempty"`
	JobID   string              `json:"job_id,omitempty"`
}
