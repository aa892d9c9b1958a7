package sequencer

import "time"

// NoOp (no operation) is a Step that completes immediately. Use it as a placeholder in a sequence.
func NoOp(next Next) {
	next()
}

// Do returns a Step that runs fn synchronously and then completes.
func Do(fn func()) Step {
	return func(next Next) {
		fn()
		next()
	}
}

// Delay returns a Step that completes after d has elapsed. The continuation is called from the timer's goroutine.
func Delay(d time.Duration) Step {
	return func(next Next) {
		time.AfterFunc(d, func() { next() })
	}
}

// Go returns a Step that runs fn on a new goroutine and completes on that goroutine once fn returns.
func Go(fn func()) Step {
	return func(next Next) {
		go func() {
			fn()
			next()
		}()
	}
}

// Chain returns a Step that runs steps as a nested sequence and completes once the last of them has completed.
// Each invocation of the returned Step runs a fresh, ungrouped Sequencer.
func Chain(steps ...Step) Step {
	return func(next Next) {
		nested := make([]Step, 0, len(steps)+1)
		nested = append(nested, steps...)
		nested = append(nested, func(Next) { next() })
		New(nested).Start()
	}
}
