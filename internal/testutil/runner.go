// Package testutil provides test utilities and helpers for commitlog tests.
package testutil

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// CallRecord captures a single invocation made through a FakeRunner.
type CallRecord struct {
	Dir       string
	Name      string
	Args      []string
	Timestamp time.Time
	Response  string
	Error     error
}

// CommandLine returns the program and arguments joined by spaces.
func (r CallRecord) CommandLine() string {
	return strings.TrimSpace(r.Name + " " + strings.Join(r.Args, " "))
}

type response struct {
	out string
	err error
}

// FakeRunner implements command.Runner by matching command prefixes against
// canned responses. Unmatched commands return the default response.
type FakeRunner struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string]response
	fallback  response
	calls     []CallRecord
}

// FakeRunnerBuilder configures a FakeRunner.
type FakeRunnerBuilder struct {
	runner *FakeRunner
}

// NewFakeRunnerBuilder starts a FakeRunner configuration.
func NewFakeRunnerBuilder(t *testing.T) *FakeRunnerBuilder {
	t.Helper()
	return &FakeRunnerBuilder{runner: &FakeRunner{
		t:         t,
		responses: make(map[string]response),
	}}
}

// On registers stdout for any command line starting with prefix.
// The longest matching prefix wins.
func (b *FakeRunnerBuilder) On(prefix, stdout string) *FakeRunnerBuilder {
	b.runner.responses[prefix] = response{out: stdout}
	return b
}

// OnError registers an error for any command line starting with prefix.
func (b *FakeRunnerBuilder) OnError(prefix string, err error) *FakeRunnerBuilder {
	b.runner.responses[prefix] = response{err: err}
	return b
}

// WithDefault sets the response for unmatched commands.
func (b *FakeRunnerBuilder) WithDefault(stdout string, err error) *FakeRunnerBuilder {
	b.runner.fallback = response{out: stdout, err: err}
	return b
}

// Build returns the configured FakeRunner.
func (b *FakeRunnerBuilder) Build() *FakeRunner {
	return b.runner
}

// Run records the call and returns the best matching canned response.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record := CallRecord{
		Dir:       dir,
		Name:      name,
		Args:      append([]string(nil), args...),
		Timestamp: time.Now(),
	}

	resp := f.match(record.CommandLine())
	record.Response = resp.out
	record.Error = resp.err
	f.calls = append(f.calls, record)

	return []byte(resp.out), resp.err
}

func (f *FakeRunner) match(line string) response {
	best := -1
	var found response
	for prefix, resp := range f.responses {
		if strings.HasPrefix(line, prefix) && len(prefix) > best {
			best = len(prefix)
			found = resp
		}
	}
	if best < 0 {
		return f.fallback
	}
	return found
}

// GetCalls returns a copy of all recorded calls in order.
func (f *FakeRunner) GetCalls() []CallRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CallRecord(nil), f.calls...)
}

// CommandLines returns the recorded calls as command lines.
func (f *FakeRunner) CommandLines() []string {
	calls := f.GetCalls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.CommandLine()
	}
	return lines
}
