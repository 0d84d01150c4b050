package unfold

import "errors"

// Sentinel errors signalled by the engine. Callers check with errors.Is.
var (
	// ErrBoundExceeded is returned by AddEvent (general variant only) when a
	// derived cut would exceed Setup.MaxBound for some place. The prefix
	// built so far remains queryable.
	ErrBoundExceeded = errors.New("unfold: cut would exceed MAX_BOUND for some place")

	// ErrEventLimitReached is informational, not a failure: construction
	// stopped because Setup.MaxEvents was reached. Run never returns it
	// directly (reaching the cap is not an error for callers); it is
	// exposed only via Prefix.Truncated. The sentinel exists for hooks and
	// callers that want to report the same condition with errors.Is.
	ErrEventLimitReached = errors.New("unfold: MAX_EVENTS reached")

	// ErrInvalidInput is returned when the originative net has no places or
	// no initial marking at all.
	ErrInvalidInput = errors.New("unfold: net system has no places or empty initial marking")
)
