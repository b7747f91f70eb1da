package attendance

import "errors"

// Attendance domain errors
var (
	// Clock boundary errors
	ErrAlreadyClockedIn = errors.New("employee is already clocked in")
	ErrNotClockedIn     = errors.New("employee is not currently clocked in")

	// General errors
	ErrSegmentNotFound = errors.New("attendance segment not found")

	// Overtime decision errors
	ErrOvertimeDecisionNotAllowed = errors.New("segment has no clock-out or no worked hours")
	ErrInvalidApprover            = errors.New("a valid approver employee id is required")
)
