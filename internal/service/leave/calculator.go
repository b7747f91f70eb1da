package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
)

// Summary implements leave.LeaveService. It dispatches on the resolved policy
// branch for the leave type and never writes anything.
func (s *LeaveServiceImpl) Summary(ctx context.Context, employeeID, leaveTypeID string, asAt time.Time) (leave.BalanceSummary, error) {
	lt, err := s.types.GetByID(ctx, leaveTypeID)
	if err != nil {
		return leave.BalanceSummary{}, err
	}

	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to get employee: %w", err)
	}

	asAt = dateOnly(asAt)

	switch leave.ResolvePolicy(lt) {
	case leave.PolicySick:
		return s.sickSummary(ctx, emp, lt, asAt)
	case leave.PolicyUnpaid:
		return s.unpaidSummary(ctx, emp, lt, asAt)
	case leave.PolicyFamilyResponsibility:
		return s.familySummary(ctx, emp, lt, asAt)
	case leave.PolicyParental:
		return s.parentalSummary(ctx, emp, lt, asAt)
	case leave.PolicyAnnual:
		return s.annualSummary(ctx, emp, lt, asAt)
	default:
		return s.standardSummary(ctx, emp, lt, asAt)
	}
}

// sickSummary: a fixed pool per rolling multi-year cycle. The cycle anchor is
// the cutover date for employees hired before it, otherwise the hire date.
// Remaining may go negative; overdrawn sick leave is surfaced, not hidden.
func (s *LeaveServiceImpl) sickSummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	hire := dateOnly(emp.HireDate)

	anchor := leave.AccrualCutoverDate
	if !hire.Before(leave.AccrualCutoverDate) {
		anchor = hire
		if asAt.Before(hire.AddDate(0, leave.QualifyingPeriodMonths, 0)) {
			return zeroSummary(lt, &anchor), nil
		}
	}

	if asAt.Before(anchor) {
		return zeroSummary(lt, &anchor), nil
	}

	cycleIndex := wholeYearsBetween(anchor, asAt) / leave.SickCycleYears
	cycleStart := anchor.AddDate(cycleIndex*leave.SickCycleYears, 0, 0)

	taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, &cycleStart, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	return leave.BalanceSummary{
		LeaveTypeName:     lt.Name,
		TotalEntitlement:  leave.SickDaysPerCycle,
		Taken:             taken,
		Remaining:         leave.SickDaysPerCycle.Sub(taken),
		OpeningFromDate:   &cycleStart,
		AccruedSinceStart: decimal.Zero,
	}, nil
}

// unpaidSummary: unpaid leave holds no pool. Taken is reported for
// information only.
func (s *LeaveServiceImpl) unpaidSummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, nil, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	return leave.BalanceSummary{
		LeaveTypeName:    lt.Name,
		TotalEntitlement: decimal.Zero,
		Taken:            taken,
		Remaining:        decimal.Zero,
	}, nil
}

// familySummary: a small fixed pool per annual cycle advancing from the
// cutover date. The qualifying period gate applies to every employee.
// Remaining is clamped at zero.
func (s *LeaveServiceImpl) familySummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	hire := dateOnly(emp.HireDate)

	if asAt.Before(hire.AddDate(0, leave.QualifyingPeriodMonths, 0)) {
		from := leave.AccrualCutoverDate
		return zeroSummary(lt, &from), nil
	}

	// Before the cutover the cycle simply has not advanced; the full pool
	// stands with the first cycle anchored at the cutover.
	cycleStart := leave.AccrualCutoverDate
	for !cycleStart.AddDate(leave.FamilyCycleYears, 0, 0).After(asAt) {
		cycleStart = cycleStart.AddDate(leave.FamilyCycleYears, 0, 0)
	}

	taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, &cycleStart, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	remaining := leave.FamilyDaysPerCycle.Sub(taken)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return leave.BalanceSummary{
		LeaveTypeName:     lt.Name,
		TotalEntitlement:  leave.FamilyDaysPerCycle,
		Taken:             taken,
		Remaining:         remaining,
		OpeningFromDate:   &cycleStart,
		AccruedSinceStart: decimal.Zero,
	}, nil
}

// parentalSummary: a once-off entitlement per event. The first approved
// request on or after the cutover opens a block; inside the block the pool is
// exhausted, after the block a fresh entitlement stands.
func (s *LeaveServiceImpl) parentalSummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	cutover := leave.AccrualCutoverDate
	if lt.IsGenderSpecific && lt.RequiredGender != nil && emp.Gender != *lt.RequiredGender {
		return zeroSummary(lt, &cutover), nil
	}
	if asAt.Before(cutover) {
		return zeroSummary(lt, &cutover), nil
	}

	entitlement := leave.ParentalEntitlementPerEvent(lt)
	row, err := s.balances.GetByEmployeeAndType(ctx, emp.ID, lt.ID)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to get balance row: %w", err)
	}
	if row != nil && row.OpeningBalance.GreaterThan(entitlement) {
		entitlement = row.OpeningBalance
	}

	first, err := s.requests.FirstApprovedFrom(ctx, emp.ID, lt.ID, leave.AccrualCutoverDate, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to find first approved request: %w", err)
	}

	if first == nil {
		return leave.BalanceSummary{
			LeaveTypeName:     lt.Name,
			TotalEntitlement:  entitlement,
			Taken:             decimal.Zero,
			Remaining:         entitlement,
			OpeningFromDate:   &cutover,
			AccruedSinceStart: decimal.Zero,
		}, nil
	}

	blockStart := dateOnly(first.StartDate)
	blockEnd := blockStart.AddDate(0, leave.ParentalBlockMonths, 0)

	if asAt.Before(blockEnd) {
		taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, &blockStart, asAt)
		if err != nil {
			return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
		}
		return leave.BalanceSummary{
			LeaveTypeName:     lt.Name,
			TotalEntitlement:  entitlement,
			Taken:             taken,
			Remaining:         decimal.Zero,
			OpeningFromDate:   &blockStart,
			AccruedSinceStart: decimal.Zero,
		}, nil
	}

	return leave.BalanceSummary{
		LeaveTypeName:     lt.Name,
		TotalEntitlement:  entitlement,
		Taken:             decimal.Zero,
		Remaining:         entitlement,
		OpeningFromDate:   &blockEnd,
		AccruedSinceStart: decimal.Zero,
	}, nil
}

// annualSummary: opening balance plus monthly accrual. Employees hired on or
// after the cutover accrue from their hire month with no opening; everyone
// else carries the legacy opening balance and accrues from the cutover.
func (s *LeaveServiceImpl) annualSummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	if asAt.Before(leave.AccrualCutoverDate) {
		from := leave.AccrualCutoverDate
		return zeroSummary(lt, &from), nil
	}

	hire := dateOnly(emp.HireDate)

	// Accrual always counts from the first of a month, so the figure can only
	// grow as asAt advances.
	opening := decimal.Zero
	accrualStart := monthStart(leave.AccrualCutoverDate)
	if !hire.Before(leave.AccrualCutoverDate) {
		accrualStart = monthStart(hire)
	} else {
		row, err := s.balances.GetByEmployeeAndType(ctx, emp.ID, lt.ID)
		if err != nil {
			return leave.BalanceSummary{}, fmt.Errorf("failed to get balance row: %w", err)
		}
		if row != nil {
			opening = row.OpeningBalance
		}
	}

	rate := decimal.Zero
	accrual, err := s.accruals.GetByEmployeeID(ctx, emp.ID)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to get accrual record: %w", err)
	}
	if accrual != nil {
		rate = accrual.AccrualRatePerMonth
	}

	months := monthIndexDiff(accrualStart, asAt)
	if isLastDayOfMonth(asAt) {
		months++
	}
	accrued := rate.Mul(decimal.NewFromInt(int64(months)))

	taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, nil, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	entitlement := opening.Add(accrued)

	return leave.BalanceSummary{
		LeaveTypeName:     lt.Name,
		TotalEntitlement:  entitlement,
		Taken:             taken,
		Remaining:         entitlement.Sub(taken),
		OpeningFromDate:   &accrualStart,
		AccruedSinceStart: accrued,
	}, nil
}

// standardSummary: the fallback for any type without a dedicated branch.
// Entitlement resolution order: explicit balance row, then the type's yearly
// or cycle amount, then the unlimited sentinel.
func (s *LeaveServiceImpl) standardSummary(ctx context.Context, emp employee.Employee, lt leave.LeaveType, asAt time.Time) (leave.BalanceSummary, error) {
	row, err := s.balances.GetByEmployeeAndType(ctx, emp.ID, lt.ID)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to get balance row: %w", err)
	}

	var entitlement decimal.Decimal
	switch {
	case row != nil:
		entitlement = row.OpeningBalance
	case (lt.AccrualType == leave.AccrualAnnual || lt.AccrualType == leave.AccrualFixed) && lt.DaysPerYear.IsPositive():
		entitlement = lt.DaysPerYear
	case (lt.AccrualType == leave.AccrualCycle || lt.AccrualType == leave.AccrualFixed) && lt.DaysPerCycle != nil:
		entitlement = *lt.DaysPerCycle
	default:
		entitlement = leave.UnlimitedEntitlement
	}

	taken, err := s.requests.SumApprovedDays(ctx, emp.ID, lt.ID, nil, asAt)
	if err != nil {
		return leave.BalanceSummary{}, fmt.Errorf("failed to sum approved days: %w", err)
	}

	return leave.BalanceSummary{
		LeaveTypeName:    lt.Name,
		TotalEntitlement: entitlement,
		Taken:            taken,
		Remaining:        entitlement.Sub(taken),
	}, nil
}

func zeroSummary(lt leave.LeaveType, from *time.Time) leave.BalanceSummary {
	return leave.BalanceSummary{
		LeaveTypeName:     lt.Name,
		TotalEntitlement:  decimal.Zero,
		Taken:             decimal.Zero,
		Remaining:         decimal.Zero,
		OpeningFromDate:   from,
		AccruedSinceStart: decimal.Zero,
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// wholeYearsBetween counts complete years from start to end, adjusting for
// the month and day so an anniversary not yet reached does not count.
func wholeYearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() ||
		(end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// monthIndexDiff counts calendar months between the months containing start
// and end, ignoring the day of month.
func monthIndexDiff(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}
