package attendance

import (
	"errors"
	"time"
)

type ClockRequest struct {
	EmployeeID          string       `json:"employee_id"`
	ClockedByEmployeeID string       `json:"clocked_by_employee_id"`
	Latitude            *float64     `json:"latitude,omitempty"`
	Longitude           *float64     `json:"longitude,omitempty"`
	SiteID              *string      `json:"site_id,omitempty"`
	WorkCategory        WorkCategory `json:"work_category,omitempty"`
}

func (r ClockRequest) Validate() error {
	if r.EmployeeID == "" {
		return errors.New("employee_id is required")
	}
	return nil
}

type ClockStatus struct {
	IsClockedIn      bool       `json:"is_clocked_in"`
	LastClockInTime  *time.Time `json:"last_clock_in_time,omitempty"`
	LastClockOutTime *time.Time `json:"last_clock_out_time,omitempty"`
}

// DayFilter narrows a day or range listing.
type DayFilter struct {
	EmployeeID   *string
	DepartmentID *string
}

// EditTimesRequest is an admin correction of a segment's raw times. Applying
// it resets the segment's overtime fields so the day is re-evaluated.
type EditTimesRequest struct {
	SegmentID    string       `json:"segment_id"`
	ClockIn      time.Time    `json:"clock_in"`
	ClockOut     *time.Time   `json:"clock_out,omitempty"`
	WorkCategory WorkCategory `json:"work_category,omitempty"`
}

// OvertimeDecision is an operator decision against a single segment.
// Status must be OvertimeApproved, OvertimeDenied or OvertimePending (reset).
type OvertimeDecision struct {
	SegmentID  string         `json:"segment_id"`
	Status     OvertimeStatus `json:"status"`
	Location   *string        `json:"location,omitempty"`
	Note       *string        `json:"note,omitempty"`
	ApproverID *string        `json:"approver_id,omitempty"`
}

// QuickEntryRequest backfills clock times for a past day. Times are "15:04"
// strings in local time; an empty clock-out leaves the segment open.
type QuickEntryRequest struct {
	EmployeeID          string    `json:"employee_id"`
	Day                 time.Time `json:"day"`
	ClockInTime         string    `json:"clock_in_time"`
	ClockOutTime        string    `json:"clock_out_time,omitempty"`
	ClockedByEmployeeID string    `json:"clocked_by_employee_id"`
}

type SegmentResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName string     `json:"employee_name"`
	ClockIn      time.Time  `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`

	HoursWorked *float64 `json:"hours_worked,omitempty"`

	// Day-level figures, repeated on each of the day's segments.
	ExpectedHours              float64        `json:"expected_hours"`
	OvertimeHours              float64        `json:"overtime_hours"`
	WeekdayOvertimeHours       float64        `json:"weekday_overtime_hours"`
	SundayHolidayOvertimeHours float64        `json:"sunday_holiday_overtime_hours"`
	OvertimeStatus             OvertimeStatus `json:"overtime_status"`

	WorkCategory   WorkCategory `json:"work_category"`
	NormalHours    *float64     `json:"normal_hours,omitempty"`
	DriverHours    *float64     `json:"driver_hours,omitempty"`
	BreakdownHours *float64     `json:"breakdown_hours,omitempty"`

	SiteID   *string `json:"site_id,omitempty"`
	SiteName *string `json:"site_name,omitempty"`

	OvertimeLocation     *string    `json:"overtime_location,omitempty"`
	OvertimeNote         *string    `json:"overtime_note,omitempty"`
	OvertimeApprovedName *string    `json:"overtime_approved_by,omitempty"`
	OvertimeDecisionTime *time.Time `json:"overtime_decision_time,omitempty"`
}
