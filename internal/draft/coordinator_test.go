package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatorPasteLifecycle(t *testing.T) {
	c := NewCoordinator(20 * time.Millisecond)
	assert.False(t, c.PasteInFlight())
	assert.False(t, c.Interacted())

	c.BeginPaste()
	assert.True(t, c.PasteInFlight())
	assert.True(t, c.Interacted(), "applying a paste counts as interaction")

	// The flag holds through the release window, then clears.
	c.EndPaste()
	assert.True(t, c.PasteInFlight())
	waitFor(t, func() bool { return !c.PasteInFlight() })
	assert.True(t, c.Interacted(), "interaction outlives the paste window")
}

func TestCoordinatorBeginPasteCancelsPendingRelease(t *testing.T) {
	c := NewCoordinator(20 * time.Millisecond)

	c.BeginPaste()
	c.EndPaste()
	c.BeginPaste() // second paste before the first released

	time.Sleep(60 * time.Millisecond)
	assert.True(t, c.PasteInFlight(), "release from the first paste must not clear the second")
}

func TestCoordinatorEndPasteWithoutBeginIsNoop(t *testing.T) {
	c := NewCoordinator(20 * time.Millisecond)
	c.EndPaste()
	assert.False(t, c.PasteInFlight())
}

func TestCoordinatorReset(t *testing.T) {
	c := NewCoordinator(time.Hour)
	c.BeginPaste()
	c.MarkInteracted()

	c.Reset()
	assert.False(t, c.PasteInFlight())
	assert.False(t, c.Interacted())
}
