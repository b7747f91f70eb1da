package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("department schedule not found")
)
