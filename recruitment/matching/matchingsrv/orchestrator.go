package matchingsrv

import (
	"context"
	"strings"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/prompts"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/internal/docextract"
	"github.com/Abraxas-365/peoplehub/internal/pii"
	"github.com/Abraxas-365/peoplehub/internal/vectorstore"
	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
)

// TextExtractor reads a stored document and returns its plain text
type TextExtractor interface {
	ExtractFile(ctx context.Context, path string, format docextract.Format) (string, error)
}

// Orchestrator runs resume and job post ingestion and matching
type Orchestrator struct {
	extractor   TextExtractor
	providers   *llm.Registry
	index       *vectorstore.Index
	defaultTopK int
}

func NewOrchestrator(
	extractor TextExtractor,
	providers *llm.Registry,
	index *vectorstore.Index,
	defaultTopK int,
) *Orchestrator {
	if defaultTopK <= 0 {
		defaultTopK = vectorstore.DefaultTopK
	}
	return &Orchestrator{
		extractor:   extractor,
		providers:   providers,
		index:       index,
		defaultTopK: defaultTopK,
	}
}

// IngestResume extracts, redacts, structures and indexes a resume, then
// returns the closest job posts. The previous record for the resume is
// replaced only once the new embedding exists.
func (o *Orchestrator) IngestResume(ctx context.Context, req matching.IngestResumeRequest) (*matching.IngestResult, error) {
	if req.ResumeID.IsEmpty() || strings.TrimSpace(req.FilePath) == "" {
		return nil, matching.ErrInvalidRequest().
			WithDetail("reason", "resume_id and file path are required")
	}

	provider, err := o.providers.Resolve(req.Provider)
	if err != nil {
		return nil, err
	}

	format := req.Format
	if format == "" {
		format = docextract.FormatFromPath(req.FilePath)
	}

	stage := func(s matching.Stage) {
		if req.OnStage != nil {
			req.OnStage(s)
		}
	}

	stage(matching.StageExtracting)
	text, err := o.extractor.ExtractFile(ctx, req.FilePath, format)
	if err != nil {
		return nil, err
	}
	text = pii.Redact(text)

	stage(matching.StageStructuring)
	raw, err := provider.Generate(ctx, prompts.StructureResume(text))
	if err != nil {
		return nil, err
	}
	structured, err := resumeparser.Normalize(raw)
	if err != nil {
		return nil, err
	}
	if structured.IsEmpty() {
		return nil, resumeparser.ErrSchemaMismatch().WithDetail("reason", "structured resume is empty")
	}
	flat := structured.Flatten()

	stage(matching.StageEmbedding)
	err = o.index.Replace(ctx, vectorstore.CollectionResume, req.ResumeID.String(), flat, vectorstore.Metadata{
		matching.MetaUserID:   req.UserID.String(),
		matching.MetaResumeID: req.ResumeID.String(),
	})
	if err != nil {
		return nil, err
	}

	stage(matching.StageMatching)
	matches, err := o.index.Search(ctx, vectorstore.CollectionJobPost, flat, o.topK(req.TopK))
	if err != nil {
		return nil, err
	}

	logx.Infof("resume %s indexed with %s, %d job matches", req.ResumeID, provider.Name(), len(matches))

	return &matching.IngestResult{
		ResumeID:   req.ResumeID,
		Structured: structured,
		Text:       flat,
		Matches:    matching.ToJobMatches(matches),
	}, nil
}

// IngestJobPost indexes a job posting and returns the closest resumes
func (o *Orchestrator) IngestJobPost(ctx context.Context, req matching.IngestJobPostRequest) (*matching.JobPostResult, error) {
	if req.JobID.IsEmpty() || strings.TrimSpace(req.Title) == "" {
		return nil, matching.ErrInvalidRequest().
			WithDetail("reason", "job_id and title are required")
	}

	text := pii.Redact(matching.FlattenJobPost(req.Title, req.Description, req.Requirements))

	err := o.index.Replace(ctx, vectorstore.CollectionJobPost, req.JobID.String(), text, vectorstore.Metadata{
		matching.MetaJobID:    req.JobID.String(),
		matching.MetaPostedBy: req.PostedBy.String(),
	})
	if err != nil {
		return nil, err
	}

	matches, err := o.index.Search(ctx, vectorstore.CollectionResume, text, o.topK(req.TopK))
	if err != nil {
		return nil, err
	}

	return &matching.JobPostResult{
		JobID:   req.JobID,
		Text:    text,
		Matches: matching.ToResumeMatches(matches),
	}, nil
}

// MatchJobsForResume returns the job posts nearest an indexed resume
func (o *Orchestrator) MatchJobsForResume(ctx context.Context, resumeID kernel.ResumeID, k int) ([]matching.JobMatch, error) {
	vector, err := o.storedVector(ctx, vectorstore.CollectionResume, resumeID.String())
	if err != nil {
		return nil, err
	}
	matches, err := o.index.SearchVector(ctx, vectorstore.CollectionJobPost, vector, o.topK(k))
	if err != nil {
		return nil, err
	}
	return matching.ToJobMatches(matches), nil
}

// MatchResumesForJob returns the resumes nearest an indexed job post
func (o *Orchestrator) MatchResumesForJob(ctx context.Context, jobID kernel.JobID, k int) ([]matching.ResumeMatch, error) {
	vector, err := o.storedVector(ctx, vectorstore.CollectionJobPost, jobID.String())
	if err != nil {
		return nil, err
	}
	matches, err := o.index.SearchVector(ctx, vectorstore.CollectionResume, vector, o.topK(k))
	if err != nil {
		return nil, err
	}
	return matching.ToResumeMatches(matches), nil
}

// ScoreResumeForJob returns the similarity between an indexed resume and an
// indexed job post, or nil when either is not indexed
func (o *Orchestrator) ScoreResumeForJob(ctx context.Context, resumeID kernel.ResumeID, jobID kernel.JobID) (*float64, error) {
	resumeVec, err := o.storedVector(ctx, vectorstore.CollectionResume, resumeID.String())
	if err != nil {
		if errx.IsCode(err, matching.CodeNotIndexed) {
			return nil, nil
		}
		return nil, err
	}

	// the job post collection is small, so scan its nearest neighbours for jobID
	n, err := o.index.Count(ctx, vectorstore.CollectionJobPost)
	if err != nil || n == 0 {
		return nil, err
	}
	matches, err := o.index.SearchVector(ctx, vectorstore.CollectionJobPost, resumeVec, n)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if m.ID == jobID.String() {
			s := m.Similarity()
			return &s, nil
		}
	}
	return nil, nil
}

func (o *Orchestrator) RemoveResume(ctx context.Context, resumeID kernel.ResumeID) error {
	return o.index.Remove(ctx, vectorstore.CollectionResume, resumeID.String())
}

func (o *Orchestrator) RemoveJobPost(ctx context.Context, jobID kernel.JobID) error {
	return o.index.Remove(ctx, vectorstore.CollectionJobPost, jobID.String())
}

// Providers lists the configured LLM provider names
func (o *Orchestrator) Providers() []string {
	return o.providers.Names()
}

// ResolveProvider returns the named provider or the default one
func (o *Orchestrator) ResolveProvider(name string) (llm.Provider, error) {
	return o.providers.Resolve(name)
}

func (o *Orchestrator) storedVector(ctx context.Context, collection, id string) ([]float32, error) {
	rec, err := o.index.Get(ctx, collection, id)
	if err != nil {
		if errx.IsCode(err, vectorstore.CodeRecordNotFound) {
			return nil, matching.ErrNotIndexed().
				WithDetail("collection", collection).
				WithDetail("id", id)
		}
		return nil, err
	}
	return rec.Vector, nil
}

func (o *Orchestrator) topK(k int) int {
	if k <= 0 {
		return o.defaultTopK
	}
	return k
}
