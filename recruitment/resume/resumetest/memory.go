// Package resumetest provides in-memory resume repositories, queue and
// pipeline for tests.
package resumetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Abraxas-365/peoplehub/internal/ai/llm"
	"github.com/Abraxas-365/peoplehub/internal/ai/resumeparser"
	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// ResumeRepo is an in-memory resume.Repository
type ResumeRepo struct {
	mu    sync.Mutex
	items map[kernel.ResumeID]resume.Resume
}

func NewResumeRepo() *ResumeRepo {
	return &ResumeRepo{items: map[kernel.ResumeID]resume.Resume{}}
}

func (m *ResumeRepo) Create(ctx context.Context, r *resume.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[r.ID]; ok {
		return resume.ErrResumeAlreadyExists()
	}
	m.items[r.ID] = *r
	return nil
}

func (m *ResumeRepo) Update(ctx context.Context, r *resume.Resume) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[r.ID]; !ok {
		return resume.ErrResumeNotFound()
	}
	m.items[r.ID] = *r
	return nil
}

func (m *ResumeRepo) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.Resume, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.items[id]
	if !ok {
		return nil, resume.ErrResumeNotFound()
	}
	return &r, nil
}

func (m *ResumeRepo) Delete(ctx context.Context, id kernel.ResumeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return resume.ErrResumeNotFound()
	}
	delete(m.items, id)
	return nil
}

func (m *ResumeRepo) List(ctx context.Context, ownerID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.Resume], error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := []resume.Resume{}
	for _, r := range m.items {
		if ownerID.IsEmpty() || r.OwnerID == ownerID {
			items = append(items, r)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return kernel.NewPaginated(items, pagination, len(items)), nil
}

// JobRepo is an in-memory resume.JobRepository that records progress steps
type JobRepo struct {
	mu    sync.Mutex
	items map[kernel.ProcessingJobID]resume.ProcessingJob
	Steps []resume.ProcessingStep
}

func NewJobRepo() *JobRepo {
	return &JobRepo{items: map[kernel.ProcessingJobID]resume.ProcessingJob{}}
}

func (m *JobRepo) Create(ctx context.Context, job *resume.ProcessingJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[job.ID] = *job
	return nil
}

func (m *JobRepo) Update(ctx context.Context, job *resume.ProcessingJob) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[job.ID] = *job
	return nil
}

func (m *JobRepo) GetByID(ctx context.Context, id kernel.ProcessingJobID) (*resume.ProcessingJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.items[id]
	if !ok {
		return nil, resume.ErrJobNotFound()
	}
	return &job, nil
}

func (m *JobRepo) mutate(id kernel.ProcessingJobID, fn func(*resume.ProcessingJob)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.items[id]
	if !ok {
		return resume.ErrJobNotFound()
	}
	fn(&job)
	m.items[id] = job
	return nil
}

func (m *JobRepo) MarkAsProcessing(ctx context.Context, id kernel.ProcessingJobID) error {
	return m.mutate(id, func(j *resume.ProcessingJob) {
		now := time.Now()
		j.Status = resume.JobStatusProcessing
		j.StartedAt = &now
	})
}

func (m *JobRepo) MarkAsCompleted(ctx context.Context, id kernel.ProcessingJobID) error {
	return m.mutate(id, func(j *resume.ProcessingJob) {
		now := time.Now()
		j.Status = resume.JobStatusCompleted
		j.CompletedAt = &now
		j.ProgressPercentage = 100
	})
}

func (m *JobRepo) MarkAsFailed(ctx context.Context, id kernel.ProcessingJobID, msg string, details map[string]any) error {
	return m.mutate(id, func(j *resume.ProcessingJob) {
		now := time.Now()
		j.Status = resume.JobStatusFailed
		j.FailedAt = &now
		j.ErrorMessage = msg
		j.ErrorDetails = details
	})
}

func (m *JobRepo) UpdateProgress(ctx context.Context, id kernel.ProcessingJobID, step resume.ProcessingStep, pct int) error {
	m.mu.Lock()
	m.Steps = append(m.Steps, step)
	m.mu.Unlock()
	return m.mutate(id, func(j *resume.ProcessingJob) {
		j.CurrentStep = &step
		j.ProgressPercentage = pct
	})
}

type DelayedJob struct {
	Job   resume.ProcessingJob
	Delay time.Duration
}

// Queue is an unbounded resume.JobQueue whose delayed jobs are always due
type Queue struct {
	mu      sync.Mutex
	Ready   []resume.ProcessingJob
	Delayed []DelayedJob
}

func (q *Queue) Enqueue(ctx context.Context, job *resume.ProcessingJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Ready = append(q.Ready, *job)
	return nil
}

func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*resume.ProcessingJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.Ready) == 0 {
		return nil, nil
	}
	job := q.Ready[0]
	q.Ready = q.Ready[1:]
	return &job, nil
}

func (q *Queue) EnqueueDelayed(ctx context.Context, job *resume.ProcessingJob, delay time.Duration) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Delayed = append(q.Delayed, DelayedJob{Job: *job, Delay: delay})
	return nil
}

func (q *Queue) MoveDelayedToReady(ctx context.Context) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.Delayed)
	for _, d := range q.Delayed {
		q.Ready = append(q.Ready, d.Job)
	}
	q.Delayed = nil
	return n, nil
}

func (q *Queue) Size(ctx context.Context) (int64, int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.Ready)), int64(len(q.Delayed)), nil
}

func (q *Queue) Ping(ctx context.Context) error { return nil }

// StubProvider is registered as gemini and replies with an empty object
type StubProvider struct{}

func (StubProvider) Name() string { return llm.ProviderGemini }

func (StubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return "{}", nil
}

// Pipeline reports every stage and returns a fixed structured resume
type Pipeline struct {
	// Errs are returned by successive IngestResume calls before succeeding
	Errs    []error
	Calls   int
	Removed []kernel.ResumeID
}

func (p *Pipeline) IngestResume(ctx context.Context, req matching.IngestResumeRequest) (*matching.IngestResult, error) {
	p.Calls++
	for _, s := range []matching.Stage{matching.StageExtracting, matching.StageStructuring, matching.StageEmbedding, matching.StageMatching} {
		if req.OnStage != nil {
			req.OnStage(s)
		}
	}
	if len(p.Errs) > 0 {
		err := p.Errs[0]
		p.Errs = p.Errs[1:]
		return nil, err
	}
	return &matching.IngestResult{
		ResumeID:   req.ResumeID,
		Structured: &resumeparser.StructuredResume{Skills: []string{"Go"}},
		Matches:    []matching.JobMatch{{JobID: "j1", Similarity: 0.9}},
	}, nil
}

func (p *Pipeline) RemoveResume(ctx context.Context, id kernel.ResumeID) error {
	p.Removed = append(p.Removed, id)
	return nil
}

func (p *Pipeline) ResolveProvider(name string) (llm.Provider, error) {
	return llm.NewRegistry(llm.ProviderGemini, StubProvider{}).Resolve(name)
}
