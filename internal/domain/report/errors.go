package report

import "errors"

var (
	ErrInvalidPeriod = errors.New("year must be 1900-2100 and month 1-12")
	ErrInvalidRange  = errors.New("end date must not be before start date")
)
