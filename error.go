package sequencer

import (
	"errors"
	"fmt"
)

// panicNilStep triggers when the continuation reaches a nil Step.
const panicNilStep = "nil step in sequence"

var (
	// ErrLoopClosed is returned by Loop.Post and Loop.Run once the Loop has stopped running.
	ErrLoopClosed = errors.New("sequencer: loop closed")

	// ErrLoopRunning is returned by Loop.Run when the Loop is already running.
	ErrLoopRunning = errors.New("sequencer: loop already running")
)

// NilStepError indicates a nil Step at the given index of a sequence.
type NilStepError int

// Error returns the error message for a NilStepError.
func (n NilStepError) Error() string {
	return fmt.Sprintf("nil step at index %d", int(n))
}

// Check that errors satisfy the error interface.
var _ error = NilStepError(0)
