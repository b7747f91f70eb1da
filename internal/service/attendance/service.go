package attendance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
)

type AttendanceServiceImpl struct {
	segments  attendance.SegmentRepository
	employees employee.EmployeeRepository
	schedules schedule.ScheduleRepository
	holidays  attendance.HolidayChecker
	loc       *time.Location
}

func NewAttendanceService(
	segmentRepo attendance.SegmentRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	holidays attendance.HolidayChecker,
	loc *time.Location,
) attendance.AttendanceService {
	if holidays == nil {
		holidays = attendance.NoHolidays{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		segments:  segmentRepo,
		employees: employeeRepo,
		schedules: scheduleRepo,
		holidays:  holidays,
		loc:       loc,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.Segment, error) {
	if err := req.Validate(); err != nil {
		return attendance.Segment{}, err
	}

	category := req.WorkCategory
	if category == "" {
		category = attendance.WorkCategoryNormal
	}

	clockedBy := req.ClockedByEmployeeID
	if clockedBy == "" {
		clockedBy = req.EmployeeID
	}

	seg := attendance.Segment{
		EmployeeID:          req.EmployeeID,
		ClockedByEmployeeID: clockedBy,
		ClockIn:             time.Now().UTC(),
		ClockInLatitude:     req.Latitude,
		ClockInLongitude:    req.Longitude,
		SiteID:              req.SiteID,
		WorkCategory:        category,
		OvertimeStatus:      attendance.OvertimeNone,
	}

	created, err := a.segments.CreateIfNotClockedIn(ctx, seg)
	if err != nil {
		return attendance.Segment{}, fmt.Errorf("failed to create attendance segment: %w", err)
	}
	return created, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	clockedBy := req.ClockedByEmployeeID
	if clockedBy == "" {
		clockedBy = req.EmployeeID
	}

	if err := a.segments.CloseOpenSegment(ctx, req.EmployeeID, time.Now().UTC(), req.Latitude, req.Longitude, clockedBy); err != nil {
		return fmt.Errorf("failed to close open segment: %w", err)
	}
	return nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context, employeeID string) (attendance.ClockStatus, error) {
	open, err := a.segments.GetOpenSegment(ctx, employeeID)
	if err != nil {
		return attendance.ClockStatus{}, fmt.Errorf("failed to get open segment: %w", err)
	}
	if open != nil {
		return attendance.ClockStatus{
			IsClockedIn:     true,
			LastClockInTime: &open.ClockIn,
		}, nil
	}

	last, err := a.segments.GetLastSegment(ctx, employeeID)
	if err != nil {
		return attendance.ClockStatus{}, fmt.Errorf("failed to get last segment: %w", err)
	}
	if last == nil {
		return attendance.ClockStatus{}, nil
	}
	return attendance.ClockStatus{
		IsClockedIn:      false,
		LastClockInTime:  &last.ClockIn,
		LastClockOutTime: last.ClockOut,
	}, nil
}

// ComputeDaily implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ComputeDaily(ctx context.Context, employeeID string, day time.Time) (attendance.DailyAggregate, error) {
	startUTC, endUTC := a.dayWindow(day)

	segs, err := a.segments.ListByRange(ctx, startUTC, endUTC, attendance.DayFilter{EmployeeID: &employeeID})
	if err != nil {
		return attendance.DailyAggregate{}, fmt.Errorf("failed to list segments: %w", err)
	}
	if len(segs) == 0 {
		local := day.In(a.loc)
		return attendance.DailyAggregate{
			EmployeeID:     employeeID,
			Day:            time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc),
			OvertimeStatus: attendance.OvertimeNone,
		}, nil
	}

	sched, err := a.scheduleFor(ctx, segs[0])
	if err != nil {
		return attendance.DailyAggregate{}, err
	}

	agg := BuildDailyAggregate(segs, sched, a.holidays, a.loc)

	if err := a.segments.PersistDerived(ctx, agg.Segments); err != nil {
		return attendance.DailyAggregate{}, fmt.Errorf("failed to persist derived fields: %w", err)
	}
	return agg, nil
}

// ListDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListDay(ctx context.Context, day time.Time, filter attendance.DayFilter) ([]attendance.SegmentResponse, error) {
	startUTC, endUTC := a.dayWindow(day)

	segs, err := a.segments.ListByRange(ctx, startUTC, endUTC, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}

	aggregated, expected, err := a.aggregateGroups(ctx, segs)
	if err != nil {
		return nil, err
	}

	if err := a.segments.PersistDerived(ctx, aggregated); err != nil {
		return nil, fmt.Errorf("failed to persist derived fields: %w", err)
	}

	responses := make([]attendance.SegmentResponse, 0, len(aggregated))
	for _, s := range aggregated {
		responses = append(responses, mapSegmentToResponse(s, expected[s.ID]))
	}
	return responses, nil
}

// ListRange implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListRange(ctx context.Context, fromDay, toDay time.Time, filter attendance.DayFilter) ([]attendance.Segment, error) {
	startUTC, _ := a.dayWindow(fromDay)
	_, endUTC := a.dayWindow(toDay)

	segs, err := a.segments.ListByRange(ctx, startUTC, endUTC, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	out, _, err := a.aggregateGroups(ctx, segs)
	return out, err
}

// aggregateGroups runs the daily aggregation over every employee/day bucket
// in the listing and returns the segments with derived figures attached,
// plus each segment's day-level expected hours keyed by segment id.
func (a *AttendanceServiceImpl) aggregateGroups(ctx context.Context, segs []attendance.Segment) ([]attendance.Segment, map[string]float64, error) {
	groups := groupByEmployeeDay(segs, a.loc)

	out := make([]attendance.Segment, 0, len(segs))
	expected := make(map[string]float64, len(segs))
	for _, group := range groups {
		sched, err := a.scheduleFor(ctx, group[0])
		if err != nil {
			return nil, nil, err
		}
		agg := BuildDailyAggregate(group, sched, a.holidays, a.loc)
		for _, s := range agg.Segments {
			expected[s.ID] = agg.ExpectedHours
		}
		out = append(out, agg.Segments...)
	}

	sortSegments(out)
	return out, expected, nil
}

func (a *AttendanceServiceImpl) scheduleFor(ctx context.Context, seg attendance.Segment) (schedule.DepartmentSchedule, error) {
	departmentID := ""
	if seg.DepartmentID != nil {
		departmentID = *seg.DepartmentID
	} else {
		emp, err := a.employees.GetByID(ctx, seg.EmployeeID)
		if err != nil {
			return schedule.DepartmentSchedule{}, fmt.Errorf("failed to get employee: %w", err)
		}
		departmentID = emp.DepartmentID
	}

	sched, err := a.schedules.GetByDepartmentID(ctx, departmentID)
	if err != nil {
		return schedule.DepartmentSchedule{}, fmt.Errorf("failed to get department schedule: %w", err)
	}
	return sched, nil
}

// DecideOvertime implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) DecideOvertime(ctx context.Context, decision attendance.OvertimeDecision) error {
	seg, err := a.segments.GetByID(ctx, decision.SegmentID)
	if err != nil {
		return err
	}

	if seg.ClockOut == nil || seg.WorkedHours() <= 0 {
		return attendance.ErrOvertimeDecisionNotAllowed
	}

	switch decision.Status {
	case attendance.OvertimeApproved, attendance.OvertimeDenied:
		if decision.ApproverID == nil || *decision.ApproverID == "" {
			return attendance.ErrInvalidApprover
		}
		now := time.Now().UTC()
		seg.OvertimeStatus = decision.Status
		seg.OvertimeLocation = decision.Location
		seg.OvertimeNote = decision.Note
		seg.OvertimeApprovedByID = decision.ApproverID
		seg.OvertimeDecisionTime = &now

	case attendance.OvertimePending:
		// Reopen: back to pending with decision metadata cleared.
		seg.OvertimeStatus = attendance.OvertimePending
		seg.OvertimeLocation = nil
		seg.OvertimeNote = nil
		seg.OvertimeApprovedByID = nil
		seg.OvertimeDecisionTime = nil

	default:
		return fmt.Errorf("overtime status %q cannot be set directly", decision.Status)
	}

	if err := a.segments.Update(ctx, seg); err != nil {
		return fmt.Errorf("failed to update segment: %w", err)
	}
	return nil
}

// UpdateTimes implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateTimes(ctx context.Context, req attendance.EditTimesRequest) error {
	seg, err := a.segments.GetByID(ctx, req.SegmentID)
	if err != nil {
		return err
	}

	seg.ClockIn = req.ClockIn.UTC()
	if req.ClockOut != nil {
		out := req.ClockOut.UTC()
		seg.ClockOut = &out
	} else {
		seg.ClockOut = nil
	}
	if req.WorkCategory != "" {
		seg.WorkCategory = req.WorkCategory
	}

	resetOvertime(&seg)

	if err := a.segments.Update(ctx, seg); err != nil {
		return fmt.Errorf("failed to update segment: %w", err)
	}
	return nil
}

// SaveQuickEntry implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SaveQuickEntry(ctx context.Context, req attendance.QuickEntryRequest) error {
	if req.ClockInTime == "" {
		return fmt.Errorf("clock_in_time is required")
	}

	local := req.Day.In(a.loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)

	clockIn, err := a.parseDayTime(dayStart, req.ClockInTime)
	if err != nil {
		return fmt.Errorf("invalid clock_in_time: %w", err)
	}

	var clockOut *time.Time
	if req.ClockOutTime != "" {
		out, err := a.parseDayTime(dayStart, req.ClockOutTime)
		if err != nil {
			return fmt.Errorf("invalid clock_out_time: %w", err)
		}
		clockOut = &out
	}

	seg := attendance.Segment{
		EmployeeID:          req.EmployeeID,
		ClockedByEmployeeID: req.ClockedByEmployeeID,
		ClockIn:             clockIn,
		ClockOut:            clockOut,
		WorkCategory:        attendance.WorkCategoryNormal,
		OvertimeStatus:      attendance.OvertimeNone,
	}

	startUTC := dayStart.UTC()
	endUTC := dayStart.AddDate(0, 0, 1).UTC()

	if err := a.segments.ReplaceForDay(ctx, req.EmployeeID, startUTC, endUTC, seg); err != nil {
		return fmt.Errorf("failed to save quick entry: %w", err)
	}
	return nil
}

// ClearDay implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClearDay(ctx context.Context, employeeID string, day time.Time) error {
	startUTC, endUTC := a.dayWindow(day)

	deleted, err := a.segments.DeleteForDay(ctx, employeeID, startUTC, endUTC)
	if err != nil {
		return fmt.Errorf("failed to clear day: %w", err)
	}
	if deleted == 0 {
		return attendance.ErrSegmentNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return a.segments.Delete(ctx, id)
}

// dayWindow converts a local calendar day into its UTC clock-in window.
func (a *AttendanceServiceImpl) dayWindow(day time.Time) (time.Time, time.Time) {
	local := day.In(a.loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

func (a *AttendanceServiceImpl) parseDayTime(dayStart time.Time, value string) (time.Time, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(),
		t.Hour(), t.Minute(), 0, 0, a.loc).UTC(), nil
}

func resetOvertime(seg *attendance.Segment) {
	seg.OvertimeStatus = attendance.OvertimeNone
	seg.OvertimeLocation = nil
	seg.OvertimeNote = nil
	seg.OvertimeApprovedByID = nil
	seg.OvertimeDecisionTime = nil
}

func sortSegments(segs []attendance.Segment) {
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].ClockIn.Before(segs[j].ClockIn)
	})
}

func mapSegmentToResponse(s attendance.Segment, expectedHours float64) attendance.SegmentResponse {
	var employeeName string
	if s.EmployeeName != nil {
		employeeName = *s.EmployeeName
	}

	resp := attendance.SegmentResponse{
		ID:             s.ID,
		EmployeeID:     s.EmployeeID,
		EmployeeName:   employeeName,
		ClockIn:        s.ClockIn,
		ClockOut:       s.ClockOut,
		HoursWorked:    s.HoursWorked,
		ExpectedHours:  expectedHours,
		OvertimeStatus: s.OvertimeStatus,
		WorkCategory:   s.WorkCategory,
		SiteID:         s.SiteID,
		SiteName:       s.SiteName,

		OvertimeLocation:     s.OvertimeLocation,
		OvertimeNote:         s.OvertimeNote,
		OvertimeApprovedName: s.OvertimeApprovedName,
		OvertimeDecisionTime: s.OvertimeDecisionTime,
	}

	if s.OvertimeHours != nil {
		resp.OvertimeHours = *s.OvertimeHours
	}
	if s.WeekdayOvertimeHours != nil {
		resp.WeekdayOvertimeHours = *s.WeekdayOvertimeHours
	}
	if s.SundayHolidayOvertimeHours != nil {
		resp.SundayHolidayOvertimeHours = *s.SundayHolidayOvertimeHours
	}

	switch s.WorkCategory {
	case attendance.WorkCategoryDriver:
		resp.DriverHours = s.HoursWorked
	case attendance.WorkCategoryBreakdown:
		resp.BreakdownHours = s.HoursWorked
	default:
		resp.NormalHours = s.HoursWorked
	}

	return resp
}
