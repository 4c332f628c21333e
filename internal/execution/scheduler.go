package execution

import (
	"context"
	"time"

	"cpr/internal/domain"
)

// Stats describes a finished scheduling session
type Stats struct {
	Launched    int
	Harvested   int
	PeakRunning int
	Elapsed     time.Duration
}

// runningSet holds the runs currently in flight, bounded by limit
type runningSet struct {
	limit int
	runs  []*domain.TestRun
}

func (rs *runningSet) Len() int   { return len(rs.runs) }
func (rs *runningSet) Full() bool { return len(rs.runs) >= rs.limit }

func (rs *runningSet) insert(run *domain.TestRun) {
	if rs.Full() {
		panic("execution: running set over limit")
	}
	rs.runs = append(rs.runs, run)
}

func (rs *runningSet) remove(run *domain.TestRun) bool {
	for i, r := range rs.runs {
		if r == run {
			rs.runs = append(rs.runs[:i], rs.runs[i+1:]...)
			return true
		}
	}
	return false
}

func (rs *runningSet) snapshot() []*domain.TestRun {
	out := make([]*domain.TestRun, len(rs.runs))
	copy(out, rs.runs)
	return out
}

// Scheduler runs occurrences with at most jobs processes in flight
type Scheduler struct {
	launcher Launcher
	jobs     int
	interval time.Duration
}

// NewScheduler creates a new Scheduler, treating jobs below 1 as 1
func NewScheduler(launcher Launcher, jobs int, interval time.Duration) *Scheduler {
	if jobs <= 0 {
		jobs = 1
	}
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Scheduler{launcher: launcher, jobs: jobs, interval: interval}
}

// Jobs returns the concurrency limit
func (s *Scheduler) Jobs() int {
	return s.jobs
}

// Run launches occurrences in order, keeping at most Jobs() running, and
// hands each completed run to obs as it exits. It returns once every
// launched run has been harvested.
//
// A launch failure or context cancellation aborts the session: runs still
// in flight are killed and drained without being reported.
func (s *Scheduler) Run(ctx context.Context, occurrences []domain.Occurrence, obs Observer) (Stats, error) {
	start := time.Now()
	stats := Stats{}
	running := &runningSet{limit: s.jobs}
	// One waiter per running process, so sends never block.
	done := make(chan *domain.TestRun, s.jobs)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	queue := occurrences
	for len(queue) > 0 || running.Len() > 0 {
		// A cancelled session must not reach Launch, which would report it as a spawn failure.
		if err := ctx.Err(); err != nil {
			s.abort(running, done)
			stats.Elapsed = time.Since(start)
			return stats, err
		}
		if len(queue) > 0 && !running.Full() {
			run, err := s.launcher.Launch(ctx, queue[0])
			if err != nil {
				s.abort(running, done)
				stats.Elapsed = time.Since(start)
				return stats, err
			}
			queue = queue[1:]
			running.insert(run)
			stats.Launched++
			if running.Len() > stats.PeakRunning {
				stats.PeakRunning = running.Len()
			}
			go func(run *domain.TestRun) {
				run.Wait()
				done <- run
			}(run)
			continue
		}

		select {
		case run := <-done:
			running.remove(run)
			stats.Harvested++
			obs.Completed(run)
		case <-ticker.C:
			obs.Waiting(running.snapshot())
		case <-ctx.Done():
			s.abort(running, done)
			stats.Elapsed = time.Since(start)
			return stats, ctx.Err()
		}
	}

	stats.Elapsed = time.Since(start)
	return stats, nil
}

// abort kills every run in flight and waits for their waiters to report
func (s *Scheduler) abort(running *runningSet, done <-chan *domain.TestRun) {
	for _, run := range running.runs {
		_ = run.Kill()
	}
	for running.Len() > 0 {
		run := <-done
		running.remove(run)
		run.Release()
	}
}
