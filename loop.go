package sequencer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// Loop runs posted functions one at a time on a single goroutine, in the order they were posted. It gives
// Sequencers whose steps complete on timers or other goroutines a single logical thread to advance on.
type Loop struct {
	sync.Mutex // Protects fields queue, running, closed and settled.

	logger  *slog.Logger
	queue   []func()
	wake    chan struct{}
	running bool
	closed  bool
	settled func()
}

// NewLoop returns a new Loop. The Loop does nothing until Run or Drive is called.
func NewLoop(opts ...LoopOption) *Loop {
	l := &Loop{
		logger: slog.Default(),
		wake:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithLoopLogger sets the logger used by the Loop. It defaults to slog.Default().
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Post enqueues fn to be run by the Loop. Post never blocks. It returns ErrLoopClosed if Run has already returned.
func (l *Loop) Post(fn func()) error {
	l.Lock()
	if l.closed {
		l.Unlock()
		return ErrLoopClosed
	}
	l.queue = append(l.queue, fn)
	l.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Run executes posted functions on the calling goroutine until ctx is done, and then returns ctx.Err(). A Loop can
// only run once: after Run returns, Post and Run return ErrLoopClosed.
func (l *Loop) Run(ctx context.Context) error {
	l.Lock()
	switch {
	case l.closed:
		l.Unlock()
		return ErrLoopClosed
	case l.running:
		l.Unlock()
		return ErrLoopRunning
	}
	l.running = true
	l.Unlock()

	defer func() {
		l.Lock()
		l.running = false
		l.closed = true
		dropped := len(l.queue)
		l.queue = nil
		l.Unlock()
		if dropped > 0 {
			l.logger.Debug("Loop closed with pending calls", slog.Int("dropped", dropped))
		}
	}()

	for {
		for fn := l.pop(); fn != nil; fn = l.pop() {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			l.checkSettled()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Drive runs the Loop on its own goroutine, starts each of seqs on it, and waits until every one of them is either
// stopped or exhausted. Drive returns nil in that case, or ctx.Err() if ctx ends first. Transitions that happen off
// the Loop, such as an unbound step completing or Stop called from another goroutine, are noticed as well. Drive
// consumes the Loop.
func (l *Loop) Drive(ctx context.Context, seqs ...*Sequencer) error {
	grp, gctx := errgroup.WithContext(ctx)
	runCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	l.Lock()
	l.settled = func() {
		for _, s := range seqs {
			if st := s.State(); st != StateStopped && st != StateExhausted {
				return
			}
		}
		cancel()
	}
	l.Unlock()

	// Transitions made off the loop, such as unbound steps completing or Stop called from another goroutine, post a
	// settle check of their own.
	for _, s := range seqs {
		s.setWatch(func() { _ = l.Post(func() {}) })
	}
	defer func() {
		for _, s := range seqs {
			s.setWatch(nil)
		}
	}()

	grp.Go(func() error {
		err := l.Run(runCtx)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	})

	if len(seqs) == 0 {
		cancel()
	}
	for _, s := range seqs {
		if err := l.Post(s.Start); err != nil {
			cancel()
			break
		}
	}

	err := grp.Wait()
	if err != nil {
		l.logger.Debug("Loop drive ended", attrError(err))
	}
	return err
}

// Bind returns a Step that runs step and posts its continuation to the Loop instead of calling it on the goroutine
// where step completed. If the Loop is closed the continuation is dropped.
func (l *Loop) Bind(step Step) Step {
	return func(next Next) {
		step(func() {
			if err := l.Post(func() { next() }); err != nil {
				l.logger.Debug("Continuation dropped", attrError(err))
			}
		})
	}
}

// BindAll returns a copy of steps with each Step wrapped by Bind.
func (l *Loop) BindAll(steps []Step) []Step {
	bound := make([]Step, len(steps))
	for i, step := range steps {
		bound[i] = l.Bind(step)
	}
	return bound
}

func (l *Loop) pop() func() {
	l.Lock()
	defer l.Unlock()

	if len(l.queue) == 0 {
		return nil
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn
}

func (l *Loop) checkSettled() {
	l.Lock()
	settled := l.settled
	l.Unlock()

	if settled != nil {
		settled()
	}
}
