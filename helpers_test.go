package sequencer

import (
	"reflect"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder keeps track of which steps ran, in which order, and holds on to the continuations of steps that have
// not completed yet.
type recorder struct {
	sync.Mutex
	ran     []string
	pending map[string]Next
}

func newRecorder() *recorder {
	return &recorder{pending: make(map[string]Next)}
}

// step returns a Step that records name and completes immediately.
func (r *recorder) step(name string) Step {
	return func(next Next) {
		r.record(name)
		next()
	}
}

// hold returns a Step that records name and waits for a call to release.
func (r *recorder) hold(name string) Step {
	return func(next Next) {
		r.record(name)
		r.Lock()
		r.pending[name] = next
		r.Unlock()
	}
}

// release calls the continuation held for name.
func (r *recorder) release(t *testing.T, name string) {
	t.Helper()

	r.Lock()
	next, ok := r.pending[name]
	delete(r.pending, name)
	r.Unlock()

	if !ok {
		t.Fatalf("expected step %q to be pending", name)
	}
	next()
}

func (r *recorder) record(name string) {
	r.Lock()
	defer r.Unlock()

	r.ran = append(r.ran, name)
}

func (r *recorder) names() []string {
	r.Lock()
	defer r.Unlock()

	return append([]string{}, r.ran...)
}

func verifyRan(t *testing.T, r *recorder, expected ...string) {
	t.Helper()

	if expected == nil {
		expected = []string{}
	}
	if diff := cmp.Diff(expected, r.names()); diff != "" {
		t.Fatalf("unexpected steps (-want +got):\n%s", diff)
	}
}

func verifyState(t *testing.T, s *Sequencer, expected State) {
	t.Helper()

	if actual := s.State(); actual != expected {
		t.Fatalf("expected state %s, got %s", expected, actual)
	}
}

func verifyCursor(t *testing.T, s *Sequencer, expected int) {
	t.Helper()

	if actual := s.Cursor(); actual != expected {
		t.Fatalf("expected cursor %d, got %d", expected, actual)
	}
}

func verifyPanicWithMsg(t *testing.T, expected string) {
	t.Helper()

	err := recover()
	if err == nil {
		t.Fatal("expected a panic")
	}
	actual, ok := err.(string)
	if !ok {
		t.Fatalf("expected to panic with string, got %v", reflect.TypeOf(err).String())
	}
	if actual != expected {
		t.Fatalf("expected panic message to equal %q, got %q", expected, actual)
	}
}

// progressLog collects every Progress delivered to a hook.
type progressLog struct {
	sync.Mutex
	events []string
}

func (p *progressLog) hook(pr Progress) {
	p.Lock()
	defer p.Unlock()

	p.events = append(p.events, pr.String())
}

func (p *progressLog) all() []string {
	p.Lock()
	defer p.Unlock()

	return append([]string{}, p.events...)
}
