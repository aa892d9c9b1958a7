package sequencer

import (
	"fmt"

	"github.com/google/uuid"
)

// Event identifies the kind of transition reported in a Progress.
type Event uint8

// Events reported to the hook set with WithHook.
const (
	EventStart  Event = iota // Start was called.
	EventStep                // A step is about to be invoked.
	EventStop                // A running Sequencer was stopped.
	EventResume              // Resume was called.
	EventDone                // The last step called its continuation.
)

// Progress is the sequence feedback medium. A Progress is delivered to the hook set with WithHook after every
// transition of a Sequencer, on the goroutine that caused the transition.
// Step is the index of the step about to run for EventStep, the cursor for EventStop and EventResume, 0 for
// EventStart, and the number of steps for EventDone.
type Progress struct {
	ID    uuid.UUID
	Name  string
	Group string
	Event Event
	Step  int
}

// String returns a compact representation of the receiver, such as "intro step 2".
func (p Progress) String() string {
	label := p.Name
	if label == "" {
		label = p.ID.String()
	}
	return fmt.Sprintf("%s %s %d", label, p.Event, p.Step)
}

// String returns the lower case name of the event.
func (e Event) String() string {
	switch e {
	case EventStart:
		return "start"
	case EventStep:
		return "step"
	case EventStop:
		return "stop"
	case EventResume:
		return "resume"
	case EventDone:
		return "done"
	default:
		return fmt.Sprintf("event(%d)", uint8(e))
	}
}
