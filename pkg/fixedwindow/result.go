package fixedwindow

import "time"

// Result is the outcome of one admission check.
type Result struct {
	// Allowed reports whether the request may proceed. A rejection is a
	// normal decision, not an error.
	Allowed bool

	// Limit is the maximum number of requests permitted in the window.
	// Zero when limiting is disabled for the path.
	Limit int

	// Remaining is the number of requests left in the current window.
	Remaining int

	// ResetAt is when the current window ends. Zero when no accounting
	// occurred (disabled path or unknown identity).
	ResetAt time.Time

	// RetryAfter is how long to wait before retrying, rounded up to whole
	// seconds. Zero when the request was allowed.
	RetryAfter time.Duration

	// Message describes the rejection. Empty when the request was allowed.
	Message string
}
