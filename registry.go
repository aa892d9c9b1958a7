package sequencer

import (
	"sort"
	"sync"
)

// DefaultRegistry is the Registry used by Sequencers that are constructed without WithRegistry. It lives for the
// life of the process; use Sequencer.Release or Registry.Reset to drop members from it.
var DefaultRegistry = NewRegistry()

// Registry maps group names to the Sequencers constructed with that group, in order of construction. It provides
// the "only one active Sequencer per group" semantics used by Sequencer.Start.
type Registry struct {
	sync.Mutex // Protects field groups.

	groups map[string][]*Sequencer
}

// NewRegistry returns a new and empty Registry.
func NewRegistry() *Registry {
	return &Registry{groups: make(map[string][]*Sequencer)}
}

// New is shorthand for constructing a Sequencer with InGroup(group) and WithRegistry(r).
func (r *Registry) New(group string, steps []Step, opts ...Option) *Sequencer {
	opts = append(opts[:len(opts):len(opts)], InGroup(group), WithRegistry(r))
	return New(steps, opts...)
}

// Register appends s to the members of group, creating the group if needed. Register does not check for duplicates;
// New registers each grouped Sequencer exactly once. Register ignores an empty group, and a group other than the one
// s was constructed with, so that Deregister and Start always find s where it was registered. It reports whether s
// was added.
func (r *Registry) Register(group string, s *Sequencer) bool {
	if group == "" || s == nil || s.group != group {
		return false
	}

	r.Lock()
	defer r.Unlock()

	r.groups[group] = append(r.groups[group], s)
	return true
}

// Deregister removes s from its group. Deregister returns false if s was not registered with the receiver.
func (r *Registry) Deregister(s *Sequencer) bool {
	if s == nil {
		return false
	}

	r.Lock()
	defer r.Unlock()

	members := r.groups[s.group]
	for i, m := range members {
		if m != s {
			continue
		}
		members = append(members[:i:i], members[i+1:]...)
		if len(members) == 0 {
			delete(r.groups, s.group)
		} else {
			r.groups[s.group] = members
		}
		return true
	}
	return false
}

// StopAll stops every member of group, in order of registration. Nothing happens if the group is empty or unknown.
func (r *Registry) StopAll(group string) {
	for _, s := range r.Members(group) {
		s.Stop()
	}
}

// preempt stops every member of s's group, provided s is still one of them.
func (r *Registry) preempt(s *Sequencer) {
	if r.contains(s) {
		r.StopAll(s.group)
	}
}

func (r *Registry) contains(s *Sequencer) bool {
	r.Lock()
	defer r.Unlock()

	for _, m := range r.groups[s.group] {
		if m == s {
			return true
		}
	}
	return false
}

// Members returns a snapshot of the members of group, in order of registration.
func (r *Registry) Members(group string) []*Sequencer {
	r.Lock()
	defer r.Unlock()

	members := r.groups[group]
	if len(members) == 0 {
		return nil
	}
	return append([]*Sequencer(nil), members...)
}

// Len returns the number of members of group.
func (r *Registry) Len(group string) int {
	r.Lock()
	defer r.Unlock()

	return len(r.groups[group])
}

// Groups returns the name of each group that has at least one member, sorted alphabetically.
func (r *Registry) Groups() []string {
	r.Lock()
	defer r.Unlock()

	names := make([]string, 0, len(r.groups))
	for name := range r.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset removes every group from the receiver. Sequencers that were registered keep their group name, but no longer
// take part in preemption.
func (r *Registry) Reset() {
	r.Lock()
	defer r.Unlock()

	r.groups = make(map[string][]*Sequencer)
}
