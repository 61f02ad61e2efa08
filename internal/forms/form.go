// Package forms holds the server-side model of an in-progress investment
// wizard form and the per-form session registry that wires each form to its
// draft persistence controller.
package forms

import "sync"

// Form is a mapping from field name to current value with a dirty indicator
// and a change-subscription mechanism. The persistence controller reads
// snapshots and applies restored ones; the paste handler writes individual
// fields as user edits.
type Form struct {
	mu       sync.RWMutex
	values   map[string]any
	defaults map[string]any
	dirty    bool
	subs     []func()
}

// New creates a form initialized to its defaults.
func New(defaults map[string]any) *Form {
	values := make(map[string]any, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}
	return &Form{values: values, defaults: defaults}
}

// Snapshot returns a copy of the current values.
func (f *Form) Snapshot() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// ApplySnapshot merges a restored snapshot into the form without marking it
// dirty and without firing change events; restoring is not a user edit.
func (f *Form) ApplySnapshot(snapshot map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, v := range snapshot {
		f.values[k] = v
	}
}

// SetField records a user edit and fires change subscribers.
func (f *Form) SetField(name string, value any) {
	f.mu.Lock()
	f.values[name] = value
	f.dirty = true
	subs := f.subs
	f.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// Dirty reports whether any user edit occurred since creation or Reset.
func (f *Form) Dirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty
}

// Subscribe registers a change callback, fired after every SetField.
func (f *Form) Subscribe(fn func()) {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
}

// Reset restores defaults and clears the dirty flag, for a cleared form.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = make(map[string]any, len(f.defaults))
	for k, v := range f.defaults {
		f.values[k] = v
	}
	f.dirty = false
}

// Defaults returns the known default-value set.
func (f *Form) Defaults() map[string]any {
	return f.defaults
}
