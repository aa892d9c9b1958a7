package sequencer

import "log/slog"

// Option configures a Sequencer.
type Option func(*Sequencer)

// InGroup makes the Sequencer a member of group. Starting a member stops every other member of the same group in
// the same Registry. An empty group disables preemption.
func InGroup(group string) Option {
	return func(s *Sequencer) {
		s.group = group
	}
}

// WithRegistry sets the Registry the Sequencer registers into. It defaults to DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(s *Sequencer) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithLogger sets the logger used for transition messages. It defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithName sets a human readable name, used in logs, progress reports and String.
func WithName(name string) Option {
	return func(s *Sequencer) {
		s.name = name
	}
}

// WithHook sets a function that receives a Progress after every transition.
func WithHook(hook func(Progress)) Option {
	return func(s *Sequencer) {
		s.hook = hook
	}
}
