package resumeinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/peoplehub/pkg/errx"
	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

// RedisQueue implements resume.JobQueue with a Redis list for ready jobs and a
// sorted set scored by due time for delayed ones
type RedisQueue struct {
	client    *redis.Client
	queueName string
	now       func() time.Time
}

var _ resume.JobQueue = (*RedisQueue)(nil)

// NewRedisQueue creates a new Redis-based queue
func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
		now:       time.Now,
	}
}

func (q *RedisQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}

// Enqueue adds a job to the queue
func (q *RedisQueue) Enqueue(ctx context.Context, job *resume.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errx.Wrap(err, "failed to marshal job", errx.TypeInternal)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return resume.ErrQueueEnqueueFailed().WithCause(err).WithDetail("job_id", job.ID)
	}
	return nil
}

// Dequeue pops the oldest job, blocking up to timeout
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*resume.ProcessingJob, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		// redis.Nil is returned when timeout occurs
		if err == redis.Nil {
			return nil, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, resume.ErrQueueDequeueFailed().WithCause(err)
	}

	if len(result) < 2 {
		return nil, resume.ErrQueueDequeueFailed().
			WithDetail("reason", fmt.Sprintf("expected 2 elements, got %d", len(result)))
	}

	var job resume.ProcessingJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, resume.ErrQueueDequeueFailed().
			WithCause(err).
			WithDetail("payload", result[1])
	}
	return &job, nil
}

// EnqueueDelayed schedules a job for later processing (for retries)
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, job *resume.ProcessingJob, delay time.Duration) error {
	data, err := json.Marshal(job)
	if err != nil {
		return errx.Wrap(err, "failed to marshal job", errx.TypeInternal)
	}

	score := float64(q.now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return resume.ErrQueueEnqueueFailed().WithCause(err).WithDetail("job_id", job.ID)
	}
	return nil
}

// MoveDelayedToReady moves delayed jobs that are due to the main queue
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := q.now().Unix()

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", now),
	}).Result()
	if err != nil {
		return 0, errx.Wrap(err, "failed to read delayed jobs", errx.TypeInternal)
	}
	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedQueue(), job)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, errx.Wrap(err, "failed to move delayed jobs", errx.TypeInternal)
	}

	return len(jobs), nil
}

// Size returns the number of ready and delayed jobs
func (q *RedisQueue) Size(ctx context.Context) (int64, int64, error) {
	ready, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, 0, errx.Wrap(err, "failed to get queue size", errx.TypeInternal)
	}
	delayed, err := q.client.ZCard(ctx, q.delayedQueue()).Result()
	if err != nil {
		return 0, 0, errx.Wrap(err, "failed to get delayed queue size", errx.TypeInternal)
	}
	return ready, delayed, nil
}

// Clear removes all jobs from both queues
func (q *RedisQueue) Clear(ctx context.Context) error {
	if err := q.client.Del(ctx, q.queueName, q.delayedQueue()).Err(); err != nil {
		return errx.Wrap(err, "failed to clear queue", errx.TypeInternal)
	}
	return nil
}

// Ping checks if Redis connection is alive
func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
