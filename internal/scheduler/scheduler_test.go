package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kassalytics/tracker/internal/worker"
)

// sweepJob is a simple job for testing
type sweepJob struct {
	Done chan struct{}
}

func (j *sweepJob) Process(ctx context.Context) error {
	select {
	case j.Done <- struct{}{}:
	default:
	}
	return nil
}

func TestScheduler(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &sweepJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	timeout := time.After(time.Second)
	runCount := 0
	for runCount < 2 {
		select {
		case <-job.Done:
			runCount++
		case <-timeout:
			t.Fatal("Timeout waiting for job execution")
		}
	}

	assert.GreaterOrEqual(t, runCount, 2)
}

func TestScheduler_StopEndsTicking(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	job := &sweepJob{Done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	// Let it tick at least once, then stop
	select {
	case <-job.Done:
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for first run")
	}
	sched.Stop()

	// Drain anything already enqueued, then expect silence
	time.Sleep(30 * time.Millisecond)
	for len(job.Done) > 0 {
		<-job.Done
	}
	select {
	case <-job.Done:
		t.Fatal("Job ran after scheduler stop")
	case <-time.After(50 * time.Millisecond):
	}
}
