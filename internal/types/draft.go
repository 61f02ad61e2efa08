package types

import "time"

// DraftRecord is the persisted snapshot of an in-progress form. At most one
// record exists per form key; writes overwrite, never append.
type DraftRecord struct {
	FormID  string         `json:"form_id"`
	Data    map[string]any `json:"data"`
	SavedAt time.Time      `json:"saved_at"`
}

// ToastSeverity classifies a transient user-facing notification.
type ToastSeverity string

const (
	ToastInfo    ToastSeverity = "info"
	ToastSuccess ToastSeverity = "success"
	ToastWarning ToastSeverity = "warning"
	ToastError   ToastSeverity = "error"
)

// Toast is a fire-and-forget notification surfaced to the admin UI. There is
// no delivery guarantee; subscribers that fall behind miss events.
type Toast struct {
	Severity ToastSeverity `json:"severity"`
	Message  string        `json:"message"`
}
