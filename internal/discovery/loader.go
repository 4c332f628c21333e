package discovery

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"cpr/internal/domain"
)

// Loader lists the test cases of a test binary
type Loader struct {
	parser *Parser
}

// NewLoader creates a new Loader
func NewLoader(parser *Parser) *Loader {
	return &Loader{parser: parser}
}

// ListArgs returns the arguments of the listing invocation. An empty
// filter is left out so the binary applies its default selection.
func ListArgs(filter string) []string {
	var args []string
	if filter != "" {
		args = append(args, filter)
	}
	return append(args, "--list-tests", "--reporter=xml")
}

// Load runs the binary in list mode and returns its test cases in order.
// It returns a *domain.DiscoveryError when the binary cannot be listed and
// a *domain.NoMatchError when the filter selects nothing.
func (l *Loader) Load(ctx context.Context, executable, filter string) ([]domain.TestCase, error) {
	cmd := exec.CommandContext(ctx, executable, ListArgs(filter)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		// A zero-match listing may still exit non-zero; trust the document if it parses empty.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if cases, perr := l.parser.ParseListing(out); perr == nil && len(cases) == 0 {
				return nil, &domain.NoMatchError{Filter: filter}
			}
		}
		return nil, &domain.DiscoveryError{
			Executable: executable,
			Stderr:     strings.TrimSpace(stderr.String()),
			Err:        err,
		}
	}

	cases, err := l.parser.ParseListing(out)
	if err != nil {
		return nil, &domain.DiscoveryError{Executable: executable, Err: err}
	}
	if len(cases) == 0 {
		return nil, &domain.NoMatchError{Filter: filter}
	}
	return cases, nil
}
