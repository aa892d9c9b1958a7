// Package visualstate forwards the lifecycle of a declarative "visual state" binding to event emission.
//
// A binding framework calls Init once when the binding is applied to an element, and Update every time the bound
// value changes. Update first applies the value through the Applier, then emits EventChanged so that listeners can
// animate the transition. Without an Emitter the Binding only applies values.
package visualstate

import "log/slog"

// Event names emitted on the bound element.
const (
	EventInit    = "jqvs-init"
	EventChanged = "jqvs-changed"
)

type (
	// Emitter triggers a named event on an element, carrying the bound value.
	Emitter[E any] interface {
		Trigger(el E, event string, value any)
	}

	// EmitterFunc adapts a function to the Emitter interface.
	EmitterFunc[E any] func(el E, event string, value any)

	// Applier applies a bound value to an element, typically by toggling its classes.
	Applier[E any] func(el E, value any)

	// Option configures a Binding.
	Option[E any] func(*Binding[E])

	// Binding connects the init and update hooks of a binding framework to an Applier and an Emitter.
	Binding[E any] struct {
		apply  Applier[E]
		emit   Emitter[E]
		logger *slog.Logger
	}
)

// New returns a Binding that applies values with apply. A nil apply is allowed and skips application.
func New[E any](apply Applier[E], opts ...Option[E]) *Binding[E] {
	b := &Binding[E]{
		apply:  apply,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithEmitter sets the Emitter that receives EventInit and EventChanged.
func WithEmitter[E any](emit Emitter[E]) Option[E] {
	return func(b *Binding[E]) {
		b.emit = emit
	}
}

// WithLogger sets the logger. It defaults to slog.Default().
func WithLogger[E any](logger *slog.Logger) Option[E] {
	return func(b *Binding[E]) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Init emits EventInit with the current value. Without an Emitter, Init does nothing.
func (b *Binding[E]) Init(el E, value func() any) {
	if b.emit == nil {
		return
	}
	v := value()
	b.logger.Debug("Visual state bound", slog.String("event", EventInit))
	b.emit.Trigger(el, EventInit, v)
}

// Update applies the current value and then emits EventChanged with it.
func (b *Binding[E]) Update(el E, value func() any) {
	v := value()
	if b.apply != nil {
		b.apply(el, v)
	}
	if b.emit == nil {
		return
	}
	b.logger.Debug("Visual state changed", slog.String("event", EventChanged))
	b.emit.Trigger(el, EventChanged, v)
}

// Trigger calls f.
func (f EmitterFunc[E]) Trigger(el E, event string, value any) {
	f(el, event, value)
}
