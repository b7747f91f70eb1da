package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/report"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
)

type ReportServiceImpl struct {
	leaves     leave.LeaveService
	leaveTypes leave.LeaveTypeRepository
	requests   leave.RequestRepository
	employees  employee.EmployeeRepository
	schedules  schedule.ScheduleRepository
	attendance attendance.AttendanceService
	loc        *time.Location
}

func NewReportService(
	leaveSvc leave.LeaveService,
	leaveTypeRepo leave.LeaveTypeRepository,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleRepo schedule.ScheduleRepository,
	attendanceSvc attendance.AttendanceService,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.Local
	}
	return &ReportServiceImpl{
		leaves:     leaveSvc,
		leaveTypes: leaveTypeRepo,
		requests:   requestRepo,
		employees:  employeeRepo,
		schedules:  scheduleRepo,
		attendance: attendanceSvc,
		loc:        loc,
	}
}

// EmployeeMonthlyLines implements report.ReportService.
func (r *ReportServiceImpl) EmployeeMonthlyLines(ctx context.Context, employeeID string, year, month int) ([]report.LeaveLine, error) {
	monthStart, monthEnd, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}

	emp, err := r.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	types, err := r.leaveTypes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	inMonth, err := r.requests.ListApprovedStartingIn(ctx, monthStart, monthStart.AddDate(0, 1, 0), &employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved requests: %w", err)
	}
	takenByType := make(map[string]decimal.Decimal, len(inMonth))
	for _, req := range inMonth {
		takenByType[req.LeaveTypeID] = takenByType[req.LeaveTypeID].Add(req.DaysTaken)
	}

	lines := make([]report.LeaveLine, 0, len(types))
	for _, lt := range types {
		summary, err := r.leaves.Summary(ctx, employeeID, lt.ID, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to compute summary for leave type %s: %w", lt.ID, err)
		}

		hireDate := emp.HireDate
		lines = append(lines, report.LeaveLine{
			LeaveTypeID:       lt.ID,
			LeaveTypeName:     summary.LeaveTypeName,
			TotalEntitlement:  summary.TotalEntitlement,
			TakenToDate:       summary.Taken,
			Remaining:         summary.Remaining,
			TakenInMonth:      takenByType[lt.ID],
			EmployeeHireDate:  &hireDate,
			OpeningFromDate:   summary.OpeningFromDate,
			AccruedSinceStart: summary.AccruedSinceStart,
		})
	}
	return lines, nil
}

// AdminMonthlyMatrix implements report.ReportService. Each cell differences
// the calculator at the day before month-start against month-end.
func (r *ReportServiceImpl) AdminMonthlyMatrix(ctx context.Context, year, month int) ([]report.LeaveTypeBalanceRow, error) {
	monthStart, monthEnd, err := monthWindow(year, month)
	if err != nil {
		return nil, err
	}
	openingAsAt := monthStart.AddDate(0, 0, -1)

	employees, err := r.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	types, err := r.leaveTypes.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	inMonth, err := r.requests.ListApprovedStartingIn(ctx, monthStart, monthStart.AddDate(0, 1, 0), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved requests: %w", err)
	}
	type cellKey struct{ employeeID, leaveTypeID string }
	takenByCell := make(map[cellKey]decimal.Decimal, len(inMonth))
	for _, req := range inMonth {
		k := cellKey{req.EmployeeID, req.LeaveTypeID}
		takenByCell[k] = takenByCell[k].Add(req.DaysTaken)
	}

	rows := make([]report.LeaveTypeBalanceRow, 0, len(employees)*len(types))
	for _, emp := range employees {
		for _, lt := range types {
			opening, err := r.leaves.Summary(ctx, emp.ID, lt.ID, openingAsAt)
			if err != nil {
				return nil, fmt.Errorf("failed to compute opening summary: %w", err)
			}
			closing, err := r.leaves.Summary(ctx, emp.ID, lt.ID, monthEnd)
			if err != nil {
				return nil, fmt.Errorf("failed to compute closing summary: %w", err)
			}

			takenInMonth := takenByCell[cellKey{emp.ID, lt.ID}]

			departmentName := ""
			if emp.DepartmentName != nil {
				departmentName = *emp.DepartmentName
			}

			rows = append(rows, report.LeaveTypeBalanceRow{
				EmployeeID:     emp.ID,
				EmployeeName:   emp.Name,
				DepartmentName: departmentName,
				LeaveTypeID:    lt.ID,
				LeaveTypeName:  lt.Name,
				OpeningBalance: opening.Remaining,
				AccruedInMonth: closing.Remaining.Add(takenInMonth).Sub(opening.Remaining),
				TakenInMonth:   takenInMonth,
				CurrentBalance: closing.Remaining,
			})
		}
	}
	return rows, nil
}

// dayLine is one employee-day collapsed from that day's segments. Overtime
// figures are day-level and identical across the day's segments, so they are
// read once from the first.
type dayLine struct {
	employeeID   string
	employeeName string

	normalHours    float64
	driverHours    float64
	breakdownHours float64

	weekdayOvertime       float64
	sundayHolidayOvertime float64
	status                attendance.OvertimeStatus
}

// PayrollHoursSummary implements report.ReportService.
func (r *ReportServiceImpl) PayrollHoursSummary(ctx context.Context, from, to time.Time, filter report.RangeFilter) ([]report.PayrollRow, error) {
	days, err := r.collapseDays(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]*report.PayrollRow)
	for _, d := range days {
		row, ok := byEmployee[d.employeeID]
		if !ok {
			row = &report.PayrollRow{
				EmployeeID:   d.employeeID,
				EmployeeName: d.employeeName,
				StartDate:    from,
				EndDate:      to,
			}
			byEmployee[d.employeeID] = row
		}
		row.NormalHours += d.normalHours
		row.DriverHours += d.driverHours
		if d.status == attendance.OvertimeApproved {
			row.OvertimeWeekdayApproved += d.weekdayOvertime
			row.OvertimeSundayApproved += d.sundayHolidayOvertime
		}
	}

	rows := make([]report.PayrollRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		row.NormalHours = round2(row.NormalHours)
		row.DriverHours = round2(row.DriverHours)
		row.OvertimeWeekdayApproved = round2(row.OvertimeWeekdayApproved)
		row.OvertimeSundayApproved = round2(row.OvertimeSundayApproved)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeName < rows[j].EmployeeName })
	return rows, nil
}

// OvertimeSummary implements report.ReportService.
func (r *ReportServiceImpl) OvertimeSummary(ctx context.Context, from, to time.Time, filter report.RangeFilter) ([]report.OvertimeSummaryRow, error) {
	days, err := r.collapseDays(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}

	byEmployee := make(map[string]*report.OvertimeSummaryRow)
	for _, d := range days {
		row, ok := byEmployee[d.employeeID]
		if !ok {
			row = &report.OvertimeSummaryRow{
				EmployeeID:   d.employeeID,
				EmployeeName: d.employeeName,
				StartDate:    from,
				EndDate:      to,
			}
			byEmployee[d.employeeID] = row
		}
		dayOT := d.weekdayOvertime + d.sundayHolidayOvertime
		row.NormalHours += d.normalHours
		row.WeekdayOvertimeHours += d.weekdayOvertime
		row.SundayHolidayOvertimeHours += d.sundayHolidayOvertime
		if d.status == attendance.OvertimeApproved {
			row.ApprovedOvertimeHours += dayOT
		} else {
			row.UnapprovedOvertimeHours += dayOT
		}
	}

	rows := make([]report.OvertimeSummaryRow, 0, len(byEmployee))
	for _, row := range byEmployee {
		row.NormalHours = round2(row.NormalHours)
		row.WeekdayOvertimeHours = round2(row.WeekdayOvertimeHours)
		row.SundayHolidayOvertimeHours = round2(row.SundayHolidayOvertimeHours)
		row.ApprovedOvertimeHours = round2(row.ApprovedOvertimeHours)
		row.UnapprovedOvertimeHours = round2(row.UnapprovedOvertimeHours)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeName < rows[j].EmployeeName })
	return rows, nil
}

// SaturdayWorkReport implements report.ReportService.
func (r *ReportServiceImpl) SaturdayWorkReport(ctx context.Context, from, to time.Time, filter report.RangeFilter) ([]report.SaturdayWorkRow, error) {
	if to.Before(from) {
		return nil, report.ErrInvalidRange
	}

	employees, err := r.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	segs, err := r.attendance.ListRange(ctx, from, to, attendance.DayFilter{
		EmployeeID:   filter.EmployeeID,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	type workedKey struct {
		employeeID string
		day        time.Time
	}
	worked := make(map[workedKey]struct{})
	for _, s := range segs {
		local := s.ClockIn.In(r.loc)
		if local.Weekday() != time.Saturday {
			continue
		}
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)
		worked[workedKey{s.EmployeeID, day}] = struct{}{}
	}

	saturdays := countSaturdays(from.In(r.loc), to.In(r.loc))

	rows := make([]report.SaturdayWorkRow, 0, len(employees))
	for _, emp := range employees {
		if filter.EmployeeID != nil && emp.ID != *filter.EmployeeID {
			continue
		}
		if filter.DepartmentID != nil && emp.DepartmentID != *filter.DepartmentID {
			continue
		}

		sched, err := r.schedules.GetByDepartmentID(ctx, emp.DepartmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to get department schedule: %w", err)
		}

		expected := 0
		if sched.WorksSaturday {
			expected = saturdays
		}

		workedCount := 0
		for k := range worked {
			if k.employeeID == emp.ID {
				workedCount++
			}
		}

		missed := expected - workedCount
		if missed < 0 {
			missed = 0
		}

		departmentName := ""
		if emp.DepartmentName != nil {
			departmentName = *emp.DepartmentName
		}

		rows = append(rows, report.SaturdayWorkRow{
			EmployeeID:        emp.ID,
			EmployeeName:      emp.Name,
			DepartmentName:    departmentName,
			ExpectedSaturdays: expected,
			WorkedSaturdays:   workedCount,
			MissedSaturdays:   missed,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].EmployeeName < rows[j].EmployeeName })
	return rows, nil
}

// collapseDays lists the range and folds each employee's segments into one
// line per local day.
func (r *ReportServiceImpl) collapseDays(ctx context.Context, from, to time.Time, filter report.RangeFilter) ([]dayLine, error) {
	if to.Before(from) {
		return nil, report.ErrInvalidRange
	}

	segs, err := r.attendance.ListRange(ctx, from, to, attendance.DayFilter{
		EmployeeID:   filter.EmployeeID,
		DepartmentID: filter.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	type dayKey struct {
		employeeID string
		day        time.Time
	}
	lines := make(map[dayKey]*dayLine)
	order := make([]dayKey, 0)

	for _, s := range segs {
		local := s.ClockIn.In(r.loc)
		k := dayKey{s.EmployeeID, time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, r.loc)}

		line, ok := lines[k]
		if !ok {
			line = &dayLine{
				employeeID: s.EmployeeID,
				status:     s.OvertimeStatus,
			}
			if s.EmployeeName != nil {
				line.employeeName = *s.EmployeeName
			}
			if s.WeekdayOvertimeHours != nil {
				line.weekdayOvertime = *s.WeekdayOvertimeHours
			}
			if s.SundayHolidayOvertimeHours != nil {
				line.sundayHolidayOvertime = *s.SundayHolidayOvertimeHours
			}
			lines[k] = line
			order = append(order, k)
		}

		hours := 0.0
		if s.HoursWorked != nil {
			hours = *s.HoursWorked
		}
		switch s.WorkCategory {
		case attendance.WorkCategoryDriver:
			line.driverHours += hours
		case attendance.WorkCategoryBreakdown:
			line.breakdownHours += hours
		default:
			line.normalHours += hours
		}
	}

	out := make([]dayLine, 0, len(order))
	for _, k := range order {
		out = append(out, *lines[k])
	}
	return out, nil
}

func monthWindow(year, month int) (time.Time, time.Time, error) {
	if year < 1900 || year > 2100 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, report.ErrInvalidPeriod
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end, nil
}

func countSaturdays(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
