package timer

import "github.com/ayoisaiah/tasktimer/internal/apperr"

var (
	// ErrInvalidSession is returned when a timer is started without a task or
	// project identifier.
	ErrInvalidSession = &apperr.Error{
		Message: "invalid session: %s is required",
	}

	// ErrAlreadyRunning is returned when a timer or break is started while one
	// is already active.
	ErrAlreadyRunning = &apperr.Error{
		Message: "a timer is already active (%s)",
	}

	// ErrNotRunning is returned when an operation needs an active timer.
	ErrNotRunning = &apperr.Error{
		Message: "no timer is running",
	}

	// ErrOnBreak is returned when a timer is started during a break.
	ErrOnBreak = &apperr.Error{
		Message: "cannot start a timer during a break",
	}

	// ErrNotOnBreak is returned when a break is ended while none is open.
	ErrNotOnBreak = &apperr.Error{
		Message: "no break is in progress",
	}

	// ErrInvalidBreak is returned when a break length is zero or negative.
	ErrInvalidBreak = &apperr.Error{
		Message: "break duration must be positive, got %v",
	}

	// ErrPersistence reports a failed write to local timer storage. The timer
	// keeps working in memory but may not survive a restart.
	ErrPersistence = &apperr.Error{
		Message: "saving timer state failed: the timer may be lost on restart",
	}

	// ErrRepository reports a failed time entry write. The local state change
	// has already happened.
	ErrRepository = &apperr.Error{
		Message: "recording time entry failed",
	}

	errCorruptSnapshot = &apperr.Error{
		Message: "persisted timer for task %s is malformed",
	}
)
