package sync

import "errors"

var (
	// ErrDisabled is returned by operations when no remote URL is configured.
	ErrDisabled = errors.New("sync is disabled (no remote url)")
	// ErrPushInFlight is returned when a manual push overlaps a running one.
	ErrPushInFlight = errors.New("a push is already in flight")
	// ErrPushFailed wraps transport failures, non-2xx statuses and ok:false
	// responses.
	ErrPushFailed = errors.New("push rejected by remote")
	// ErrMalformedResponse marks a pull response missing the books or
	// borrowedBooks sequences.
	ErrMalformedResponse = errors.New("malformed pull response")
	// ErrConfirmationRequired marks an interactive pull that would empty a
	// non-empty local catalog and was not confirmed.
	ErrConfirmationRequired = errors.New("pull would empty the local catalog; confirmation required")
)
