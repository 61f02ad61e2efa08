package draft

import (
	"sync"
	"time"
)

// DefaultPasteRelease is how long after a paste completes before saves
// resume. Downstream formatting side effects (currency re-formatting and the
// like) need a moment to settle before the data is considered stable.
const DefaultPasteRelease = time.Second

// Coordinator carries the cross-component state shared between the paste
// engine and the persistence controller: whether a paste is in flight and
// whether a real user interaction has happened this session. Passing it
// explicitly keeps the mutual-exclusion contract visible in types instead of
// ambient flags.
type Coordinator struct {
	mu            sync.Mutex
	pasteInFlight bool
	interacted    bool
	release       time.Duration
	releaseTimer  *time.Timer
}

// NewCoordinator creates a coordinator with the given paste-release delay;
// zero or negative selects DefaultPasteRelease.
func NewCoordinator(release time.Duration) *Coordinator {
	if release <= 0 {
		release = DefaultPasteRelease
	}
	return &Coordinator{release: release}
}

// BeginPaste blocks saves until EndPaste plus the release delay. Applying
// parsed fields counts as user interaction.
func (c *Coordinator) BeginPaste() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.releaseTimer != nil {
		c.releaseTimer.Stop()
		c.releaseTimer = nil
	}
	c.pasteInFlight = true
	c.interacted = true
}

// EndPaste schedules the paste flag to clear after the release delay.
func (c *Coordinator) EndPaste() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.pasteInFlight {
		return
	}
	if c.releaseTimer != nil {
		c.releaseTimer.Stop()
	}
	c.releaseTimer = time.AfterFunc(c.release, func() {
		c.mu.Lock()
		c.pasteInFlight = false
		c.releaseTimer = nil
		c.mu.Unlock()
	})
}

// PasteInFlight reports whether saves must be skipped.
func (c *Coordinator) PasteInFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pasteInFlight
}

// MarkInteracted records that a genuine user edit (or restored actual data)
// occurred this session.
func (c *Coordinator) MarkInteracted() {
	c.mu.Lock()
	c.interacted = true
	c.mu.Unlock()
}

// Interacted reports whether any genuine interaction has been recorded.
func (c *Coordinator) Interacted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interacted
}

// Reset clears all flags, for use after a form is cleared or submitted.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.releaseTimer != nil {
		c.releaseTimer.Stop()
		c.releaseTimer = nil
	}
	c.pasteInFlight = false
	c.interacted = false
}
