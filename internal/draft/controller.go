package draft

import (
	"bytes"
	"context"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meridian/fund-console/internal/metrics"
	"github.com/meridian/fund-console/internal/notify"
)

// DefaultDebounce is the quiet period after which a burst of form changes is
// considered settled.
const DefaultDebounce = 700 * time.Millisecond

// saveTimeout bounds a single background store write.
const saveTimeout = 5 * time.Second

// State names the controller's position in its lifecycle.
type State string

const (
	StateIdle      State = "idle"
	StateRestoring State = "restoring"
	StateWatching  State = "watching"
	StateSaving    State = "saving"
	StateCleared   State = "cleared"
)

// FormModel is the controller's view of the wizard form: current values, a
// dirty indicator, and one write operation to apply a restored snapshot.
type FormModel interface {
	Snapshot() map[string]any
	ApplySnapshot(map[string]any)
	Dirty() bool
}

// Options configures a Controller.
type Options struct {
	// Debounce overrides DefaultDebounce; zero keeps the default.
	Debounce time.Duration
	// Defaults is the known default-value set used to distinguish a snapshot
	// holding actual user data from one holding only initial values.
	Defaults map[string]any
}

// Controller watches a single form, debounces changes, and persists
// snapshots to the store. All storage failures degrade to toast warnings;
// nothing here may surface a panic or error to the form.
type Controller struct {
	formID   string
	form     FormModel
	store    Store
	coord    *Coordinator
	toasts   *notify.Hub
	log      *zap.Logger
	debounce time.Duration
	defaults map[string]any

	mu             sync.Mutex
	state          State
	timer          *time.Timer
	lastWritten    []byte
	restoredActual bool
	writeCount     int
}

// NewController creates a controller in StateIdle. Call Restore before
// routing change events to it.
func NewController(formID string, form FormModel, store Store, coord *Coordinator, toasts *notify.Hub, log *zap.Logger, opts Options) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Controller{
		formID:   formID,
		form:     form,
		store:    store,
		coord:    coord,
		toasts:   toasts,
		log:      log.With(zap.String("form_id", formID)),
		debounce: debounce,
		defaults: opts.Defaults,
		state:    StateIdle,
	}
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// WriteCount returns how many snapshots have been written this session.
func (c *Controller) WriteCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writeCount
}

// Restore reads the stored snapshot, applies it to the form, and transitions
// to Watching. A snapshot holding actual user data (any value outside the
// known defaults) marks the session as interacted; a defaults-only snapshot
// is applied without setting the flag, so an untouched form does not
// re-trigger saves. Corrupted stored JSON is discarded and the form proceeds
// with defaults.
func (c *Controller) Restore(ctx context.Context) {
	c.mu.Lock()
	c.state = StateRestoring
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.state = StateWatching
		c.mu.Unlock()
	}()

	data, ok, err := c.store.Get(ctx, c.formID)
	if err != nil {
		metrics.DraftErrors.Inc()
		c.log.Warn("draft restore failed", zap.Error(err))
		c.toasts.Warn("Could not restore your draft; starting fresh.")
		return
	}
	if !ok {
		return
	}

	snapshot, err := UnmarshalSnapshot(data)
	if err != nil {
		metrics.DraftErrors.Inc()
		c.log.Warn("stored draft is corrupted, discarding", zap.Error(err))
		_ = c.store.Remove(ctx, c.formID)
		c.toasts.Warn("Stored draft was unreadable and has been discarded.")
		return
	}

	actual := c.hasActualData(snapshot)
	c.form.ApplySnapshot(snapshot)

	c.mu.Lock()
	c.lastWritten = data
	c.restoredActual = actual
	c.mu.Unlock()

	if actual {
		c.coord.MarkInteracted()
		c.toasts.Info("Draft restored.")
	}
}

// hasActualData reports whether any snapshot value differs from the known
// default for its field and is not merely empty. Booleans are never treated
// as empty: a stored false that differs from its default is a user choice,
// not an absence.
func (c *Controller) hasActualData(snapshot map[string]any) bool {
	for k, v := range snapshot {
		if def, ok := c.defaults[k]; ok && reflect.DeepEqual(v, def) {
			continue
		}
		if isEmptyValue(v) {
			continue
		}
		return true
	}
	return false
}

func isEmptyValue(v any) bool {
	switch tv := v.(type) {
	case nil:
		return true
	case string:
		return tv == ""
	case []any:
		return len(tv) == 0
	case map[string]any:
		return len(tv) == 0
	}
	return false
}

// NoteChange records a form change event. Each call resets the debounce
// timer; only a quiet period of the full debounce duration triggers a save
// evaluation. Changes from direct user edits should be preceded by
// MarkInteracted on the coordinator (the HTTP layer does this).
func (c *Controller) NoteChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateWatching && c.state != StateSaving {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.settle)
}

// Flush forces an immediate save evaluation, bypassing the debounce timer.
// Used on shutdown so the debounce window does not become a data-loss window.
func (c *Controller) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.settle()
}

// settle runs when a change burst has been quiet for the debounce duration.
// It persists only when all gating conditions hold.
func (c *Controller) settle() {
	c.mu.Lock()
	if c.state != StateWatching {
		c.mu.Unlock()
		return
	}
	restoredActual := c.restoredActual
	c.mu.Unlock()

	if !c.coord.Interacted() {
		metrics.DraftSkips.WithLabelValues("no_interaction").Inc()
		return
	}
	if !c.form.Dirty() && !restoredActual {
		metrics.DraftSkips.WithLabelValues("not_dirty").Inc()
		return
	}
	if c.coord.PasteInFlight() {
		metrics.DraftSkips.WithLabelValues("paste_in_flight").Inc()
		c.rearm()
		return
	}

	data, err := MarshalSnapshot(c.form.Snapshot())
	if err != nil {
		metrics.DraftErrors.Inc()
		c.log.Warn("snapshot serialization failed", zap.Error(err))
		c.toasts.Warn("Draft could not be saved.")
		return
	}

	c.mu.Lock()
	if bytes.Equal(data, c.lastWritten) {
		c.mu.Unlock()
		metrics.DraftSkips.WithLabelValues("unchanged").Inc()
		return
	}
	// A paste may have started after the check above, in which case the
	// snapshot could hold half-applied fields. Recheck before committing.
	if c.coord.PasteInFlight() {
		c.mu.Unlock()
		metrics.DraftSkips.WithLabelValues("paste_in_flight").Inc()
		c.rearm()
		return
	}
	c.state = StateSaving
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	err = c.store.Set(ctx, c.formID, data)

	c.mu.Lock()
	c.state = StateWatching
	if err == nil {
		c.lastWritten = data
		c.writeCount++
	}
	c.mu.Unlock()

	if err != nil {
		metrics.DraftErrors.Inc()
		c.log.Warn("draft write failed", zap.Error(err))
		c.toasts.Warn("Draft could not be saved; you can keep working.")
		return
	}

	metrics.DraftWrites.Inc()
	c.toasts.Success("Draft saved.")
}

// rearm schedules another settle attempt one debounce period out. Used when
// a settled change is deferred by an in-flight paste, so the deferred data
// still persists once the release window closes even if the user goes idle.
func (c *Controller) rearm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateWatching {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, c.settle)
}

// Clear removes the stored snapshot and resets interaction tracking, so a
// subsequent mount starts fresh. Called on successful submission or an
// explicit clear action.
func (c *Controller) Clear(ctx context.Context) error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.state = StateCleared
	c.lastWritten = nil
	c.restoredActual = false
	c.mu.Unlock()

	c.coord.Reset()

	if err := c.store.Remove(ctx, c.formID); err != nil {
		metrics.DraftErrors.Inc()
		c.log.Warn("draft clear failed", zap.Error(err))
		return err
	}
	return nil
}
