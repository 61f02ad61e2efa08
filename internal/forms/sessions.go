package forms

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/draft"
	"github.com/meridian/fund-console/internal/notify"
)

// Session binds one live form to its persistence controller and paste
// coordinator. Callers interact with the form through the session so the
// controller sees every edit.
type Session struct {
	ID          string
	Form        *Form
	Coordinator *draft.Coordinator
	Controller  *draft.Controller
}

// SetField applies a user edit and pokes the controller directly so edits
// made before any subscription fires are still debounced.
func (s *Session) SetField(name string, value any) {
	s.Coordinator.MarkInteracted()
	s.Form.SetField(name, value)
}

// BeginPaste marks a quick-paste application in progress. Field writes made
// between BeginPaste and EndPaste still count as interaction but the
// controller will not persist until the paste window closes.
func (s *Session) BeginPaste() { s.Coordinator.BeginPaste() }

// EndPaste schedules release of the paste window.
func (s *Session) EndPaste() { s.Coordinator.EndPaste() }

// RegistryOptions configures sessions created by a Registry.
type RegistryOptions struct {
	Debounce     time.Duration
	PasteRelease time.Duration
	Defaults     map[string]any
}

// Registry creates and caches one Session per form id, restoring any saved
// draft the first time a form is opened.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	store  draft.Store
	toasts *notify.Hub
	log    *zap.Logger
	opts   RegistryOptions
}

// NewRegistry builds a session registry backed by the given draft store.
func NewRegistry(store draft.Store, toasts *notify.Hub, log *zap.Logger, opts RegistryOptions) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		toasts:   toasts,
		log:      log,
		opts:     opts,
	}
}

// Get returns the session for formID, creating it and restoring its draft on
// first access.
func (r *Registry) Get(ctx context.Context, formID string) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[formID]; ok {
		r.mu.Unlock()
		return s
	}
	r.mu.Unlock()

	form := New(r.opts.Defaults)
	coord := draft.NewCoordinator(r.opts.PasteRelease)
	ctl := draft.NewController(formID, form, r.store, coord, r.toasts, r.log, draft.Options{
		Debounce: r.opts.Debounce,
		Defaults: r.opts.Defaults,
	})

	s := &Session{ID: formID, Form: form, Coordinator: coord, Controller: ctl}
	form.Subscribe(ctl.NoteChange)

	ctl.Restore(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[formID]; ok {
		// Another request opened the same form concurrently; keep the first.
		return existing
	}
	r.sessions[formID] = s
	return s
}

// Peek returns the session if it exists without creating one.
func (r *Registry) Peek(formID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[formID]
	return s, ok
}

// Drop clears a form's draft and discards its session.
func (r *Registry) Drop(ctx context.Context, formID string) error {
	r.mu.Lock()
	s, ok := r.sessions[formID]
	delete(r.sessions, formID)
	r.mu.Unlock()

	if !ok {
		return r.store.Remove(ctx, formID)
	}
	s.Form.Reset()
	return s.Controller.Clear(ctx)
}
