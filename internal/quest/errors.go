package quest

import "errors"

var (
	// ErrDuplicateTaskName is returned when a task name is already used in the quest.
	ErrDuplicateTaskName = errors.New("duplicate task name")
	// ErrTaskNotFound is returned when editing or removing a missing task.
	ErrTaskNotFound = errors.New("task not found")
	// ErrEmptyTaskName is returned when a task name is blank.
	ErrEmptyTaskName = errors.New("task name is required")
	// ErrInvalidBatch is returned for unusable batch setup values.
	ErrInvalidBatch = errors.New("invalid batch setup")
)
