package domain

import (
	"bytes"
	"errors"
	"os/exec"
	"sync"
)

// RunStatus is the lifecycle state of a TestRun.
type RunStatus int

const (
	StatusPending RunStatus = iota
	StatusRunning
	StatusCompleted
)

func (s RunStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// TestRun is one occurrence bound to its process. The process handle and
// output buffer belong to the run from MarkRunning until Release.
type TestRun struct {
	Occurrence

	mu       sync.Mutex
	status   RunStatus
	cmd      *exec.Cmd
	buf      *bytes.Buffer
	output   string
	exitCode int
	result   TestResult
	parsed   bool
}

// NewTestRun creates a pending run for occ.
func NewTestRun(occ Occurrence) *TestRun {
	return &TestRun{Occurrence: occ, status: StatusPending}
}

// Status returns the current lifecycle state.
func (r *TestRun) Status() RunStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// MarkRunning records the started process and the buffer receiving its
// combined output. The buffer must not be read until MarkCompleted.
func (r *TestRun) MarkRunning(cmd *exec.Cmd, buf *bytes.Buffer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmd = cmd
	r.buf = buf
	r.status = StatusRunning
}

// MarkCompleted is called once the process has exited and its output
// copying has finished.
func (r *TestRun) MarkCompleted(exitCode int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.buf != nil {
		r.output = r.buf.String()
	}
	r.exitCode = exitCode
	r.status = StatusCompleted
}

// Wait blocks until the process exits and its output is fully copied, then
// marks the run completed. A process that could not be waited on, or was
// killed by a signal, completes with exit code -1.
func (r *TestRun) Wait() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()

	code := -1
	if cmd != nil {
		code = exitCode(cmd.Wait())
	}
	r.MarkCompleted(code)
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// ExitCode returns the process exit code. ok is false until the run completed.
func (r *TestRun) ExitCode() (code int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusCompleted {
		return 0, false
	}
	return r.exitCode, true
}

// Output returns the captured output of a completed run.
func (r *TestRun) Output() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusCompleted {
		return ""
	}
	return r.output
}

// SetResult stores the parsed result. It is ignored unless the run completed.
func (r *TestRun) SetResult(res TestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusCompleted {
		return
	}
	r.result = res
	r.parsed = true
}

// Result returns the parsed result, if one was set.
func (r *TestRun) Result() (TestResult, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.result, r.parsed
}

// Kill terminates a running process. It is a no-op for runs that are not running.
func (r *TestRun) Kill() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusRunning || r.cmd == nil || r.cmd.Process == nil {
		return nil
	}
	return r.cmd.Process.Kill()
}

// Release drops the process handle and output buffer. The captured output
// string stays readable.
func (r *TestRun) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmd = nil
	r.buf = nil
}
