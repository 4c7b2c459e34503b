package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent operator-facing failure conditions.
// They are wrapped with the offending value and matched with errors.Is.
var (
	// Configuration errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnsupportedKind = errors.New("unsupported kind")
	ErrInvalidCron     = errors.New("invalid cron expression")

	// Task errors
	ErrTask            = errors.New("task failed")
	ErrTriggerDisabled = errors.New("trigger is disabled")

	// Management endpoint errors
	ErrEndpointUnavailable = errors.New("management endpoint unavailable")
	ErrRemoteOperation     = errors.New("remote operation failed")
)

// TaskError reports a flush failure for a single keyspace.
type TaskError struct {
	Keyspace string
	Err      error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("failed to flush keyspace %q: %v", e.Keyspace, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTask) match any TaskError.
func (e *TaskError) Is(target error) bool {
	return target == ErrTask
}
