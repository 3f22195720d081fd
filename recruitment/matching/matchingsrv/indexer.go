package matchingsrv

import (
	"context"

	"github.com/Abraxas-365/peoplehub/pkg/kernel"
	"github.com/Abraxas-365/peoplehub/recruitment/job"
	"github.com/Abraxas-365/peoplehub/recruitment/matching"
)

// JobIndexer adapts the Orchestrator to job.Indexer
type JobIndexer struct {
	orchestrator *Orchestrator
}

var _ job.Indexer = (*JobIndexer)(nil)

func NewJobIndexer(o *Orchestrator) *JobIndexer {
	return &JobIndexer{orchestrator: o}
}

func (i *JobIndexer) IndexJob(ctx context.Context, j *job.Job) error {
	_, err := i.orchestrator.IngestJobPost(ctx, matching.IngestJobPostRequest{
		JobID:        j.ID,
		Title:        string(j.Title),
		Description:  string(j.Description),
		Requirements: j.RequirementStrings(),
		PostedBy:     j.PostedBy,
		TopK:         1,
	})
	return err
}

func (i *JobIndexer) RemoveJob(ctx context.Context, id kernel.JobID) error {
	return i.orchestrator.RemoveJobPost(ctx, id)
}
