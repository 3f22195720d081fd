package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/recruitment/resume"
	"github.com/Abraxas-365/peoplehub/recruitment/resume/resumetest"
)

type recordingProcessor struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
	want int
}

func (p *recordingProcessor) ProcessResumeJob(ctx context.Context, job *resume.ProcessingJob) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, job.ID.String())
	if len(p.seen) == p.want {
		close(p.done)
	}
	return nil
}

func TestResumeWorker_ProcessesQueuedAndDelayedJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := &resumetest.Queue{}
	require.NoError(t, queue.Enqueue(ctx, &resume.ProcessingJob{ID: "job-1"}))
	require.NoError(t, queue.EnqueueDelayed(ctx, &resume.ProcessingJob{ID: "job-2"}, time.Minute))

	proc := &recordingProcessor{done: make(chan struct{}), want: 2}
	w := NewResumeWorker(proc, queue, Options{
		Workers:         2,
		DequeueTimeout:  10 * time.Millisecond,
		DelayedInterval: 10 * time.Millisecond,
	})
	w.Start(ctx)

	select {
	case <-proc.done:
	case <-time.After(5 * time.Second):
		t.Fatal("jobs were not processed")
	}

	cancel()
	w.Wait()

	assert.ElementsMatch(t, []string{"job-1", "job-2"}, proc.seen)
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 1, o.Workers)
	assert.Equal(t, 5*time.Second, o.DequeueTimeout)
	assert.Equal(t, 30*time.Second, o.DelayedInterval)
}
