package sequencer

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State represents a Sequencer's externally visible state. It's either:
// 1. never started (StateIdle),
// 2. waiting for a step to call its continuation (StateRunning),
// 3. stopped, possibly in the middle of the sequence (StateStopped),
// 4. done with every step (StateExhausted).
type State uint8

// States reported by Sequencer.State.
const (
	StateIdle State = iota
	StateRunning
	StateStopped
	StateExhausted
)

// Next is the continuation handed to every Step. Calling it advances the sequence by one.
type Next func()

// Step is one asynchronous unit of work in a sequence. A Step must call next exactly once when its work is done.
// Calling next more than once skips the following steps, one per extra call.
type Step func(next Next)

// Sequencer runs a fixed list of Steps strictly one at a time. Each Step signals completion by calling the
// continuation it was given, and only then is the following Step invoked.
// A Sequencer constructed with a group participates in group preemption: starting it stops every other Sequencer
// registered under the same group in the same Registry.
type Sequencer struct {
	sync.Mutex // Protects fields cursor, alive, started and exhausted.

	id       uuid.UUID
	name     string
	group    string
	registry *Registry
	logger   *slog.Logger
	hook     func(Progress)
	watch    func() // Set by Loop.Drive, protected by the mutex.

	steps []Step
	next  Next

	cursor    int  // Index of the next step to run.
	alive     bool // Whether the continuation may run the next step.
	started   bool
	exhausted bool
}

// New returns a Sequencer for the given steps. The steps are copied; later changes to the slice have no effect.
// If a group is set with InGroup, the Sequencer registers itself into its Registry before New returns.
// New does not validate the steps: a nil Step panics when the sequence reaches it. Call Validate to check up front.
func New(steps []Step, opts ...Option) *Sequencer {
	s := &Sequencer{
		id:       uuid.New(),
		registry: DefaultRegistry,
		logger:   slog.Default(),
		steps:    append([]Step(nil), steps...),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.next = s.advance
	if s.group != "" {
		s.registry.Register(s.group, s)
	}
	return s
}

// advance is the continuation shared by every step of the receiver.
func (s *Sequencer) advance() {
	s.Lock()
	if !s.alive {
		s.Unlock()
		return
	}
	if s.cursor >= len(s.steps) {
		done := !s.exhausted
		s.exhausted = true
		s.Unlock()
		if done {
			s.logger.Debug("Sequence exhausted", attrID(s.id), attrGroup(s.group))
			s.report(EventDone, len(s.steps))
		}
		return
	}
	idx := s.cursor
	step := s.steps[idx]
	s.cursor++
	s.Unlock()

	if step == nil {
		panic(fmt.Sprintf("%s: index %d", panicNilStep, idx))
	}
	s.logger.Debug("Running step", attrID(s.id), attrGroup(s.group), attrCursor(idx))
	s.report(EventStep, idx)
	step(s.next)
}

// Start runs the sequence from the first step, regardless of where it was stopped or whether it already completed.
// If the receiver is a registered member of a group, every member of that group is stopped first, the receiver
// included.
func (s *Sequencer) Start() {
	if s.group != "" {
		s.registry.preempt(s)
	}

	s.Lock()
	s.cursor = 0
	s.alive = true
	s.started = true
	s.exhausted = false
	s.Unlock()

	s.logger.Debug("Sequence started", attrID(s.id), attrGroup(s.group), attrSteps(len(s.steps)))
	s.report(EventStart, 0)
	s.next()
}

// Stop prevents the sequence from advancing. A step that is already running is not interrupted, but its call to the
// continuation becomes a no-op. Stop is idempotent and leaves the cursor where it is.
func (s *Sequencer) Stop() {
	s.Lock()
	wasAlive := s.alive
	s.alive = false
	cursor := s.cursor
	s.Unlock()

	if wasAlive {
		s.logger.Debug("Sequence stopped", attrID(s.id), attrGroup(s.group), attrCursor(cursor))
		s.report(EventStop, cursor)
	}
}

// Resume continues the sequence with the first step that has not run yet. Resume does not stop other Sequencers in
// the receiver's group.
func (s *Sequencer) Resume() {
	s.Lock()
	s.alive = true
	s.started = true
	cursor := s.cursor
	s.Unlock()

	s.logger.Debug("Sequence resumed", attrID(s.id), attrGroup(s.group), attrCursor(cursor))
	s.report(EventResume, cursor)
	s.next()
}

// Release removes the receiver from its Registry. A released Sequencer keeps working, but it no longer stops other
// members of its group when started, and is no longer stopped by them.
func (s *Sequencer) Release() {
	if s.group != "" {
		s.registry.Deregister(s)
	}
}

// Validate returns a NilStepError for the first nil Step, or nil if every Step can be invoked.
func (s *Sequencer) Validate() error {
	for i, step := range s.steps {
		if step == nil {
			return NilStepError(i)
		}
	}
	return nil
}

// State returns the receiver's current state.
func (s *Sequencer) State() State {
	s.Lock()
	defer s.Unlock()

	switch {
	case !s.started:
		return StateIdle
	case !s.alive:
		return StateStopped
	case s.exhausted:
		return StateExhausted
	default:
		return StateRunning
	}
}

// Cursor returns the index of the next step to run.
func (s *Sequencer) Cursor() int {
	s.Lock()
	defer s.Unlock()

	return s.cursor
}

// Len returns the number of steps.
func (s *Sequencer) Len() int {
	return len(s.steps)
}

// ID returns the identifier generated for the receiver by New.
func (s *Sequencer) ID() uuid.UUID {
	return s.id
}

// Group returns the receiver's group, or an empty string if it has none.
func (s *Sequencer) Group() string {
	return s.group
}

// Name returns the name set with WithName.
func (s *Sequencer) Name() string {
	return s.name
}

// String returns a short description of the receiver, such as "intro[g] 2/5 running".
func (s *Sequencer) String() string {
	label := s.name
	if label == "" {
		label = s.id.String()
	}
	if s.group != "" {
		label += "[" + s.group + "]"
	}
	return fmt.Sprintf("%s %d/%d %s", label, s.Cursor(), len(s.steps), s.State())
}

// report delivers a Progress to the hook, if any, and then notifies the watcher. It must be called without holding
// the lock.
func (s *Sequencer) report(ev Event, step int) {
	if s.hook != nil {
		s.hook(Progress{ID: s.id, Name: s.name, Group: s.group, Event: ev, Step: step})
	}

	s.Lock()
	watch := s.watch
	s.Unlock()

	if watch != nil {
		watch()
	}
}

// setWatch replaces the function called after every transition of the receiver. A nil fn removes it.
func (s *Sequencer) setWatch(fn func()) {
	s.Lock()
	defer s.Unlock()

	s.watch = fn
}

// String returns the lower case name of the state.
func (st State) String() string {
	switch st {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", uint8(st))
	}
}
