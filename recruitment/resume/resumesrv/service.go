package resumesrv

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/fsx"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// Pipeline is the part of the matching orchestrator the resume service drives
type Pipeline interface {
	IngestResume(ctx context.Context, req matching.IngestResumeRequest) (*matching.IngestResult, error)
	RemoveResume(ctx context.Context, resumeID kernel.ResumeID) error
	ResolveProvider(name string) (llm.Provider, error)
}

type Service struct {
	repo     resume.Repository
	jobRepo  resume.JobRepository
	queue    resume.JobQueue
	files    fsx.FileSystem
	pipeline Pipeline
}

// NewService creates the resume service. queue may be nil, in which case only
// synchronous uploads are accepted.
func NewService(
	repo resume.Repository,
	jobRepo resume.JobRepository,
	queue resume.JobQueue,
	files fsx.FileSystem,
	pipeline Pipeline,
) *Service {
	return &Service{
		repo:     repo,
		jobRepo:  jobRepo,
		queue:    queue,
		files:    files,
		pipeline: pipeline,
	}
}

// Upload stores the file, creates the resume record and runs the pipeline
// inline or queues it
func (s *Service) Upload(ctx context.Context, req resume.UploadResumeRequest) (*resume.UploadResumeResponse, error) {
	if len(req.Data) == 0 {
		return nil, resume.ErrFileRequired()
	}

	format := docextract.FormatFromPath(req.FileName)
	if !format.IsSupported() {
		return nil, resume.ErrInvalidFileFormat().
			WithDetail("file_name", req.FileName).
			WithDetail("supported", docextract.SupportedFormats)
	}

	// unknown providers are rejected before anything is written
	if _, err := s.pipeline.ResolveProvider(req.Provider); err != nil {
		return nil, err
	}

	if req.Async && s.queue == nil {
		return nil, resume.ErrQueueEnqueueFailed().WithDetail("reason", "async processing is not configured")
	}

	now := time.Now()
	id := kernel.NewResumeID(uuid.NewString())
	filePath := resume.StoragePath(req.OwnerID, id, req.FileName)

	if err := s.files.WriteFile(ctx, filePath, req.Data); err != nil {
		return nil, resume.ErrFileStoreFailed().WithCause(err).WithDetail("path", filePath)
	}

	r := &resume.Resume{
		ID:        id,
		OwnerID:   req.OwnerID,
		FileURL:   filePath,
		FileName:  path.Base(req.FileName),
		FileType:  string(format),
		Provider:  req.Provider,
		Status:    resume.ResumeStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		_ = s.files.DeleteFile(ctx, filePath)
		return nil, errx.Wrap(err, "failed to create resume", errx.TypeInternal)
	}

	if req.Async {
		job, err := s.enqueue(ctx, r)
		if err != nil {
			return nil, err
		}
		return &resume.UploadResumeResponse{Resume: r, JobID: job.ID.String()}, nil
	}

	result, err := s.process(ctx, r, req.TopK, nil)
	if err != nil {
		return nil, err
	}
	return &resume.UploadResumeResponse{Resume: r, Matches: result.Matches}, nil
}

// process runs the pipeline for r and stores the outcome on the record
func (s *Service) process(ctx context.Context, r *resume.Resume, topK int, onStage func(matching.Stage)) (*matching.IngestResult, error) {
	r.MarkProcessing()
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, errx.Wrap(err, "failed to update resume", errx.TypeInternal)
	}

	result, err := s.pipeline.IngestResume(ctx, matching.IngestResumeRequest{
		FilePath: r.FileURL,
		Format:   docextract.ParseFormat(r.FileType),
		UserID:   r.OwnerID,
		ResumeID: r.ID,
		Provider: r.Provider,
		TopK:     topK,
		OnStage:  onStage,
	})
	if err != nil {
		r.MarkFailed(err.Error())
		if updateErr := s.repo.Update(ctx, r); updateErr != nil {
			logx.Errorf("failed to record resume %s failure: %v", r.ID, updateErr)
		}
		return nil, err
	}

	r.MarkParsed(result.Structured)
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, errx.Wrap(err, "failed to store parsed resume", errx.TypeInternal)
	}
	return result, nil
}

func (s *Service) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	return s.repo.GetByID(ctx, id)
}

// ResumeOwner returns the user who uploaded the resume
func (s *Service) ResumeOwner(ctx context.Context, id kernel.ResumeID) (kernel.UserID, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return r.OwnerID, nil
}

// ResumeText returns the flattened parsed resume
func (s *Service) ResumeText(ctx context.Context, id kernel.ResumeID) (string, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !r.IsParsed() {
		return "", resume.ErrResumeNotParsed().
			WithDetail("resume_id", id).
			WithDetail("status", r.Status)
	}
	return r.Text(), nil
}

func (s *Service) ListResumes(ctx context.Context, req resume.ListResumesRequest) (*kernel.Paginated[resume.Resume], error) {
	return s.repo.List(ctx, req.OwnerID, req.Pagination)
}

// DeleteResume removes the record, its vector and its stored file
func (s *Service) DeleteResume(ctx context.Context, id kernel.ResumeID) error {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.pipeline.RemoveResume(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.files.DeleteFile(ctx, r.FileURL); err != nil {
		logx.Warnf("failed to delete resume file %s: %v", r.FileURL, err)
	}

	logx.Infof("resume deleted: %s", id)
	return nil
}
