package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Abraxas-365/peoplehub/pkg/logx"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// JobProcessor runs one attempt of a processing job
type JobProcessor interface {
	ProcessResumeJob(ctx context.Context, job *resume.ProcessingJob) error
}

type Options struct {
	Workers        int
	DequeueTimeout time.Duration
	// DelayedInterval is how often due retries are moved to the ready queue
	DelayedInterval time.Duration
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.DequeueTimeout <= 0 {
		o.DequeueTimeout = 5 * time.Second
	}
	if o.DelayedInterval <= 0 {
		o.DelayedInterval = 30 * time.Second
	}
	return o
}

type ResumeWorker struct {
	processor JobProcessor
	queue     resume.JobQueue
	opts      Options
	wg        sync.WaitGroup
}

func NewResumeWorker(processor JobProcessor, queue resume.JobQueue, opts Options) *ResumeWorker {
	return &ResumeWorker{
		processor: processor,
		queue:     queue,
		opts:      opts.withDefaults(),
	}
}

// Start launches the worker pool and the delayed job mover. They stop when
// ctx is cancelled; Wait blocks until they have.
func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.opts.Workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayedJobs(ctx)
	}()

	for i := 0; i < w.opts.Workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			w.processJobs(ctx, id)
		}(i)
	}
}

// Wait blocks until every goroutine started by Start has returned
func (w *ResumeWorker) Wait() {
	w.wg.Wait()
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		if ctx.Err() != nil {
			logx.Infof("Worker %d stopping", workerID)
			return
		}

		job, err := w.queue.Dequeue(ctx, w.opts.DequeueTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				continue
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			// avoid spinning while the queue is unreachable
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if job == nil {
			continue
		}

		logx.Infof("Worker %d processing job: %s", workerID, job.ID)
		if err := w.processor.ProcessResumeJob(ctx, job); err != nil {
			logx.Errorf("Worker %d job failed: %v", workerID, err)
		}
	}
}

func (w *ResumeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(w.opts.DelayedInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
