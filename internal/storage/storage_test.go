package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpr/internal/config"
	"cpr/internal/domain"
)

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.ResultsDir = filepath.Join(t.TempDir(), "results")
	st := NewJSONStorage(cfg)

	meta := domain.TestResultsMeta{RunID: "abc", Executable: "./tests", TotalRuns: 3, PassedRuns: 2, FailedRuns: 1}
	failures := []domain.TestFailure{{Name: "divides", Tags: "[math]", Index: 1, ExitCode: 1, Duration: 0.5, Output: "boom"}}
	require.NoError(t, st.Save(meta, failures))

	out, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", out.Meta.RunID)
	assert.NotEmpty(t, out.Meta.Timestamp)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "divides", out.Details[0].Name)
	assert.Equal(t, "boom", out.Details[0].Output)

	out.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(out))
	out, err = st.Load()
	require.NoError(t, err)
	assert.True(t, out.Details[0].Resolved)
}

func TestJSONStorage_SaveWithoutFailures(t *testing.T) {
	cfg := config.New()
	cfg.ResultsDir = t.TempDir()
	st := NewJSONStorage(cfg)

	require.NoError(t, st.Save(domain.TestResultsMeta{RunID: "x"}, nil))
	data, err := os.ReadFile(cfg.GetOutputPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"details": []`)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.ResultsDir = filepath.Join(t.TempDir(), "missing")
	_, err := NewJSONStorage(cfg).Load()
	assert.Error(t, err)
}

func TestTranscript_StripsANSI(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(&buf)

	require.NoError(t, tr.WriteLine("1/2 \"adds\" [math] \x1b[92mOK\x1b[0m   0.001s"))
	require.NoError(t, tr.WriteLine(""))
	require.NoError(t, tr.Close())

	assert.Equal(t, "1/2 \"adds\" [math] OK   0.001s\n\n", buf.String())
	assert.Empty(t, tr.Path())
}

type recordingCloser struct {
	bytes.Buffer
	closed bool
}

func (c *recordingCloser) Close() error {
	c.closed = true
	return nil
}

func TestTranscript_ClosesWrappedCloser(t *testing.T) {
	w := &recordingCloser{}
	tr := NewTranscript(w)
	require.NoError(t, tr.WriteLine("line"))
	require.NoError(t, tr.Close())
	assert.True(t, w.closed)
	assert.Equal(t, "line\n", w.String())
}

func TestOpenTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "testlog.txt")
	tr, err := OpenTranscript(path)
	require.NoError(t, err)
	require.NoError(t, tr.WriteLine("\x1b[91mFAIL\x1b[0m"))
	require.NoError(t, tr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FAIL\n", string(data))
	assert.Equal(t, path, tr.Path())

	_, err = OpenTranscript(filepath.Join(t.TempDir(), "no", "such", "dir", "log.txt"))
	assert.Error(t, err)
}
