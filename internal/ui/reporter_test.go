package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpr/internal/config"
	"cpr/internal/domain"
	"cpr/internal/parser"
	"cpr/internal/storage"
)

type fakeStatus struct {
	updates []string
	clears  int
	done    bool
}

func (f *fakeStatus) Update(text string, done, total int) { f.updates = append(f.updates, text) }
func (f *fakeStatus) Clear()                              { f.clears++ }
func (f *fakeStatus) Finish()                             { f.done = true }

type reporterFixture struct {
	reporter *Reporter
	screen   *bytes.Buffer
	log      *bytes.Buffer
	status   *fakeStatus
}

func newFixture(cfg *config.Config, occs []domain.Occurrence) *reporterFixture {
	screen := &bytes.Buffer{}
	log := &bytes.Buffer{}
	status := &fakeStatus{}
	console := NewConsole(screen, storage.NewTranscript(log), status)
	return &reporterFixture{
		reporter: NewReporter(cfg, console, parser.NewCatch2Parser(), "run-1", occs),
		screen:   screen,
		log:      log,
		status:   status,
	}
}

func completedRun(occ domain.Occurrence, output string, code int) *domain.TestRun {
	run := domain.NewTestRun(occ)
	run.MarkRunning(nil, bytes.NewBufferString(output))
	run.MarkCompleted(code)
	return run
}

func catalog(names ...string) []domain.Occurrence {
	occs := make([]domain.Occurrence, len(names))
	for i, n := range names {
		occs[i] = domain.Occurrence{Case: domain.TestCase{Name: n, Tags: "[t]"}, Index: i}
	}
	return occs
}

const passOutput = "0.125 s: adds\n==========\nAll tests passed\n"

func TestReporter_PassAndFailLines(t *testing.T) {
	occs := catalog("adds", "divides")
	f := newFixture(config.New(), occs)

	f.reporter.Completed(completedRun(occs[1], "REQUIRE failed\n0.500 s: divides\n==========\n", 1))
	f.reporter.Completed(completedRun(occs[0], passOutput, 0))

	screen := stripansi.Strip(f.screen.String())
	assert.Contains(t, screen, `1/2 "divides" [t] FAIL 0.500s`)
	assert.Contains(t, screen, "REQUIRE failed", "failing output is echoed")
	assert.Contains(t, screen, `2/2 "adds" [t]    OK   0.125s`)
	assert.NotContains(t, screen, "All tests passed", "passing output hidden without verbose")

	log := f.log.String()
	assert.Contains(t, log, "All tests passed", "transcript keeps passing output")
	assert.NotContains(t, log, "\x1b[")

	s := f.reporter.Summary()
	assert.Equal(t, 1, s.OK)
	assert.Equal(t, 1, s.Failing)
	assert.Equal(t, s.Total, s.Completed())
}

func TestReporter_Verbose(t *testing.T) {
	cfg := config.New()
	cfg.Verbose = true
	occs := catalog("adds")
	f := newFixture(cfg, occs)

	f.reporter.Completed(completedRun(occs[0], passOutput, 0))
	assert.Contains(t, f.screen.String(), "All tests passed")
}

func TestReporter_Quiet(t *testing.T) {
	cfg := config.New()
	cfg.Quiet = true
	occs := catalog("adds", "divides")
	f := newFixture(cfg, occs)

	f.reporter.Completed(completedRun(occs[0], passOutput, 0))
	f.reporter.Completed(completedRun(occs[1], "boom", 2))

	screen := stripansi.Strip(f.screen.String())
	assert.NotContains(t, screen, `"adds"`)
	assert.Contains(t, screen, `"divides" [t] FAIL -1.000s`)
	assert.Contains(t, f.log.String(), `"adds"`, "quiet lines still reach the transcript")
}

func TestReporter_FinishListsFailuresInDiscoveryOrder(t *testing.T) {
	occs := catalog("a", "b", "c", "a", "b", "c")
	f := newFixture(config.New(), occs)

	// Harvest out of order; "b" fails in both repeats, "c" in the first.
	for _, i := range []int{4, 2, 0, 5, 1, 3} {
		code := 0
		if occs[i].Case.Name == "b" || i == 2 {
			code = 1
		}
		f.reporter.Completed(completedRun(occs[i], "", code))
	}
	f.reporter.Finish(1500 * time.Millisecond)

	screen := stripansi.Strip(f.screen.String())
	require.Contains(t, screen, "Failing test cases:")
	tail := screen[strings.Index(screen, "Failing test cases:"):]
	assert.Equal(t, "Failing test cases:\n\"b\" [t]\n\"c\" [t]\n\"b\" [t]\n", tail)

	assert.Contains(t, screen, "Total time: 1.500s")
	assert.Contains(t, screen, "OK    3")
	assert.Contains(t, screen, "FAIL  3")
	assert.True(t, f.status.done)

	failures := f.reporter.Failures()
	require.Len(t, failures, 3)
	assert.Equal(t, []int{1, 2, 4}, []int{failures[0].Index, failures[1].Index, failures[2].Index})
	assert.Len(t, f.reporter.Records(), 6)
	assert.Equal(t, 1500*time.Millisecond, f.reporter.Summary().Elapsed)
}

func TestReporter_FinishAllOK(t *testing.T) {
	occs := catalog("a")
	f := newFixture(config.New(), occs)
	f.reporter.Completed(completedRun(occs[0], passOutput, 0))
	f.reporter.Finish(time.Second)

	assert.Contains(t, stripansi.Strip(f.screen.String()), "All tests ok")
	assert.Empty(t, f.reporter.Failures())
}

func TestReporter_WaitingRotates(t *testing.T) {
	occs := catalog("a", "b", "c")
	f := newFixture(config.New(), occs)

	running := []*domain.TestRun{domain.NewTestRun(occs[0]), domain.NewTestRun(occs[1])}
	f.reporter.Waiting(running)
	f.reporter.Waiting(running)
	f.reporter.Waiting(nil)

	require.Len(t, f.status.updates, 2)
	assert.Contains(t, stripansi.Strip(f.status.updates[0]), `Running 0/3`)
	assert.Contains(t, f.status.updates[0], `"b"`)
	assert.Contains(t, f.status.updates[1], `"a"`)
	assert.Empty(t, f.screen.String(), "status never reaches the scrollback")
	assert.Empty(t, f.log.String(), "status never reaches the transcript")
}

func TestReporter_ResultReadableAfterHarvest(t *testing.T) {
	occs := catalog("a")
	f := newFixture(config.New(), occs)
	run := completedRun(occs[0], passOutput, 0)

	f.reporter.Completed(run)
	res, ok := run.Result()
	require.True(t, ok)
	assert.InDelta(t, 0.125, res.Duration, 1e-9)
}
