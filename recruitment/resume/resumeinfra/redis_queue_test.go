package resumeinfra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abraxas-365/peoplehub/recruitment/resume"
)

func newTestQueue(t *testing.T) (*RedisQueue, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisQueue(client, "resume_jobs"), mr
}

func TestRedisQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	require.NoError(t, q.Enqueue(ctx, &resume.ProcessingJob{ID: "job-1", ResumeID: "r1"}))
	require.NoError(t, q.Enqueue(ctx, &resume.ProcessingJob{ID: "job-2", ResumeID: "r2"}))

	ready, delayed, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ready)
	assert.Zero(t, delayed)

	first, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "job-1", first.ID.String())
	assert.Equal(t, "r1", first.ResumeID.String())

	second, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, "job-2", second.ID.String())
}

func TestRedisQueue_DequeueTimeoutReturnsNil(t *testing.T) {
	q, _ := newTestQueue(t)

	job, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestRedisQueue_DelayedJobsMoveWhenDue(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	now := time.Now()
	q.now = func() time.Time { return now }

	require.NoError(t, q.EnqueueDelayed(ctx, &resume.ProcessingJob{ID: "job-1", AttemptCount: 1}, 2*time.Minute))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	q.now = func() time.Time { return now.Add(2 * time.Minute) }
	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	ready, delayed, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ready)
	assert.Zero(t, delayed)

	job, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, 1, job.AttemptCount)
}

func TestRedisQueue_ClearAndPing(t *testing.T) {
	ctx := context.Background()
	q, _ := newTestQueue(t)

	require.NoError(t, q.Ping(ctx))
	require.NoError(t, q.Enqueue(ctx, &resume.ProcessingJob{ID: "job-1"}))
	require.NoError(t, q.EnqueueDelayed(ctx, &resume.ProcessingJob{ID: "job-2"}, time.Hour))
	require.NoError(t, q.Clear(ctx))

	ready, delayed, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, ready)
	assert.Zero(t, delayed)
}

func TestRedisQueue_PingFailsWhenDown(t *testing.T) {
	q, mr := newTestQueue(t)
	mr.Close()

	assert.Error(t, q.Ping(context.Background()))
}
