package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/fund-console/internal/types"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	a, cancelA := hub.Subscribe()
	defer cancelA()
	b, cancelB := hub.Subscribe()
	defer cancelB()

	hub.Success("saved")

	for _, ch := range []<-chan types.Toast{a, b} {
		toast := <-ch
		assert.Equal(t, types.ToastSuccess, toast.Severity)
		assert.Equal(t, "saved", toast.Message)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	cancel()

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cancel must not panic on the closed channel.
	hub.Info("after cancel")

	// Cancel is idempotent.
	cancel()
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.Warn("overflow")
	}

	// The buffer is full; the extra publishes were dropped, not queued.
	assert.Len(t, ch, subscriberBuffer)
}

func TestSeverityHelpers(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Info("i")
	hub.Warn("w")
	hub.Error("e")

	want := []types.ToastSeverity{types.ToastInfo, types.ToastWarning, types.ToastError}
	for _, sev := range want {
		toast := <-ch
		require.Equal(t, sev, toast.Severity)
	}
}
