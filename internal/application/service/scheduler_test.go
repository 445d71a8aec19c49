package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Navneet2569/WebScraper-Bot/internal/domain/model"
)

type countingRunner struct {
	runs atomic.Int32
	err  error
}

func (r *countingRunner) Run(ctx context.Context) (model.BatchResult, error) {
	r.runs.Add(1)
	if r.err != nil {
		return model.BatchResult{}, r.err
	}
	return model.BatchResult{RunID: "test", Updated: 1}, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSchedulerRunsOnInterval(t *testing.T) {
	runner := &countingRunner{}
	s := NewRefreshScheduler(runner, testLogger())
	s.Start(context.Background(), 20*time.Millisecond)
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for runner.runs.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler did not run, runs=%d", runner.runs.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerStop(t *testing.T) {
	runner := &countingRunner{}
	s := NewRefreshScheduler(runner, testLogger())
	s.Start(context.Background(), 10*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	s.Stop()
	// Let a tick that was already pending drain before sampling.
	time.Sleep(30 * time.Millisecond)
	after := runner.runs.Load()
	time.Sleep(50 * time.Millisecond)

	if got := runner.runs.Load(); got != after {
		t.Fatalf("scheduler kept running after Stop: %d -> %d", after, got)
	}
	// Stop is idempotent.
	s.Stop()
}

func TestSchedulerRestartsAfterStop(t *testing.T) {
	runner := &countingRunner{}
	s := NewRefreshScheduler(runner, testLogger())
	s.Start(context.Background(), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	time.Sleep(30 * time.Millisecond)
	stopped := runner.runs.Load()

	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for runner.runs.Load() <= stopped {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler did not resume after restart, runs=%d", runner.runs.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerSurvivesRunnerErrors(t *testing.T) {
	runner := &countingRunner{err: errors.New("store down")}
	s := NewRefreshScheduler(runner, testLogger())
	s.Start(context.Background(), 10*time.Millisecond)
	defer s.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for runner.runs.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler stopped after error, runs=%d", runner.runs.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestSchedulerContextCancel(t *testing.T) {
	runner := &countingRunner{}
	s := NewRefreshScheduler(runner, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	after := runner.runs.Load()
	time.Sleep(50 * time.Millisecond)

	if got := runner.runs.Load(); got != after {
		t.Fatalf("scheduler kept running after context cancel: %d -> %d", after, got)
	}
}
