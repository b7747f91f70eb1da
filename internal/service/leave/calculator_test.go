package leave

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
)

type fakeTypeRepo struct {
	types map[string]leave.LeaveType
}

func (f *fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok || lt.IsDeleted {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeTypeRepo) ListActive(_ context.Context) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, lt := range f.types {
		if !lt.IsDeleted {
			out = append(out, lt)
		}
	}
	return out, nil
}

type fakeBalanceRepo struct {
	rows map[string]leave.BalanceRow // keyed by employeeID + "/" + leaveTypeID
}

func (f *fakeBalanceRepo) GetByEmployeeAndType(_ context.Context, employeeID, leaveTypeID string) (*leave.BalanceRow, error) {
	row, ok := f.rows[employeeID+"/"+leaveTypeID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeBalanceRepo) Update(_ context.Context, row leave.BalanceRow) error {
	f.rows[row.EmployeeID+"/"+row.LeaveTypeID] = row
	return nil
}

type fakeRequestRepo struct {
	requests []leave.Request
}

func (f *fakeRequestRepo) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	request.ID = "req-new"
	f.requests = append(f.requests, request)
	return request, nil
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.Request{}, leave.ErrLeaveRequestNotFound
}

func (f *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListPending(_ context.Context) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.Status == leave.StatusPending {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, request leave.Request) error {
	for i, r := range f.requests {
		if r.ID == request.ID {
			f.requests[i] = request
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func (f *fakeRequestRepo) SumApprovedDays(_ context.Context, employeeID, leaveTypeID string, from *time.Time, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, r := range f.requests {
		if r.EmployeeID != employeeID || r.LeaveTypeID != leaveTypeID || r.Status != leave.StatusApproved {
			continue
		}
		if r.StartDate.After(to) {
			continue
		}
		if from != nil && r.StartDate.Before(*from) {
			continue
		}
		sum = sum.Add(r.DaysTaken)
	}
	return sum, nil
}

func (f *fakeRequestRepo) FirstApprovedFrom(_ context.Context, employeeID, leaveTypeID string, from, to time.Time) (*leave.Request, error) {
	var first *leave.Request
	for i, r := range f.requests {
		if r.EmployeeID != employeeID || r.LeaveTypeID != leaveTypeID || r.Status != leave.StatusApproved {
			continue
		}
		if r.StartDate.Before(from) || r.StartDate.After(to) {
			continue
		}
		if first == nil || r.StartDate.Before(first.StartDate) {
			first = &f.requests[i]
		}
	}
	return first, nil
}

func (f *fakeRequestRepo) ListApprovedStartingIn(_ context.Context, from, to time.Time, employeeID *string) ([]leave.Request, error) {
	var out []leave.Request
	for _, r := range f.requests {
		if r.Status != leave.StatusApproved {
			continue
		}
		if r.StartDate.Before(from) || !r.StartDate.Before(to) {
			continue
		}
		if employeeID != nil && r.EmployeeID != *employeeID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		out = append(out, e)
	}
	return out, nil
}

type fakeAccrualRepo struct {
	records map[string]employee.AccrualRecord
}

func (f *fakeAccrualRepo) GetByEmployeeID(_ context.Context, employeeID string) (*employee.AccrualRecord, error) {
	rec, ok := f.records[employeeID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeAccrualRepo) Upsert(_ context.Context, record employee.AccrualRecord) (employee.AccrualRecord, error) {
	f.records[record.EmployeeID] = record
	return record, nil
}

type fixture struct {
	types     *fakeTypeRepo
	balances  *fakeBalanceRepo
	requests  *fakeRequestRepo
	employees *fakeEmployeeRepo
	accruals  *fakeAccrualRepo
	svc       leave.LeaveService
}

func newFixture() *fixture {
	f := &fixture{
		types:     &fakeTypeRepo{types: make(map[string]leave.LeaveType)},
		balances:  &fakeBalanceRepo{rows: make(map[string]leave.BalanceRow)},
		requests:  &fakeRequestRepo{},
		employees: &fakeEmployeeRepo{employees: make(map[string]employee.Employee)},
		accruals:  &fakeAccrualRepo{records: make(map[string]employee.AccrualRecord)},
	}
	f.svc = NewLeaveService(f.types, f.balances, f.requests, f.employees, f.accruals)

	f.types.types[leave.TypeIDSick] = leave.LeaveType{ID: leave.TypeIDSick, Name: "Sick Leave"}
	f.types.types[leave.TypeIDUnpaid] = leave.LeaveType{ID: leave.TypeIDUnpaid, Name: "Unpaid Leave"}
	f.types.types[leave.TypeIDAnnual] = leave.LeaveType{ID: leave.TypeIDAnnual, Name: "Annual Leave"}
	f.types.types[leave.TypeIDFamilyResponsibility] = leave.LeaveType{ID: leave.TypeIDFamilyResponsibility, Name: "Family Responsibility Leave"}

	return f
}

func (f *fixture) addEmployee(id string, hireDate time.Time, gender employee.Gender) {
	f.employees.employees[id] = employee.Employee{ID: id, Name: id, HireDate: hireDate, Gender: gender, IsActive: true}
}

func (f *fixture) addApproved(employeeID, typeID string, start time.Time, days float64) {
	f.requests.requests = append(f.requests.requests, leave.Request{
		ID:          "req-" + start.Format("20060102"),
		EmployeeID:  employeeID,
		LeaveTypeID: typeID,
		StartDate:   start,
		EndDate:     start,
		DaysTaken:   decimal.NewFromFloat(days),
		Status:      leave.StatusApproved,
	})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummary_SickCycleAnchoredAtCutover(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", leave.TypeIDSick, date(2027, time.March, 3), 5)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDSick, date(2028, time.December, 31))
	require.NoError(t, err)

	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(30)))
	assert.True(t, s.Taken.Equal(decimal.NewFromInt(5)))
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(25)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.January, 1), *s.OpeningFromDate)
	// The pool is granted per cycle, never accrued.
	assert.True(t, s.AccruedSinceStart.IsZero())
}

func TestSummary_SickCycleRollsOverAfterThreeYears(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", leave.TypeIDSick, date(2027, time.March, 3), 5)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDSick, date(2029, time.January, 2))
	require.NoError(t, err)

	// New cycle starts 2029-01-01; the old cycle's usage no longer counts.
	assert.True(t, s.Taken.Equal(decimal.Zero))
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2029, time.January, 1), *s.OpeningFromDate)
}

func TestSummary_SickQualifyingPeriodForNewHire(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2026, time.February, 1), employee.GenderMale)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDSick, date(2026, time.April, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.IsZero())
	assert.True(t, s.Remaining.IsZero())

	s, err = f.svc.Summary(context.Background(), "emp-1", leave.TypeIDSick, date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(30)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.February, 1), *s.OpeningFromDate)
}

func TestSummary_SickRemainingMayGoNegative(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", leave.TypeIDSick, date(2026, time.March, 1), 32)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDSick, date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(-2)))
}

func TestSummary_UnpaidIsAlwaysZero(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2025, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", leave.TypeIDUnpaid, date(2026, time.March, 1), 4)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDUnpaid, date(2026, time.June, 1))
	require.NoError(t, err)

	assert.True(t, s.TotalEntitlement.IsZero())
	assert.True(t, s.Remaining.IsZero())
	assert.True(t, s.Taken.Equal(decimal.NewFromInt(4)))
}

func TestSummary_FamilyQualifyingPeriodGate(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2026, time.January, 15), employee.GenderMale)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.March, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.IsZero())

	s, err = f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(3)))
}

func TestSummary_FamilyCycleAdvancesYearly(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)
	f.addApproved("emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.August, 10), 2)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.December, 1))
	require.NoError(t, err)
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(1)))

	// The 2026 usage falls outside the 2027 cycle.
	s, err = f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2027, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.Taken.IsZero())
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(3)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2027, time.January, 1), *s.OpeningFromDate)
}

func TestSummary_FamilyFullPoolBeforeCutover(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	// Before the first cycle starts the pool already stands at its full size,
	// anchored at the cutover. The admin matrix opening for January relies on
	// this when it evaluates the prior December 31.
	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2025, time.December, 31))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(3)))
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(3)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.January, 1), *s.OpeningFromDate)
}

func TestSummary_FamilyRemainingClampedAtZero(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)
	f.addApproved("emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.August, 10), 5)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDFamilyResponsibility, date(2026, time.December, 1))
	require.NoError(t, err)
	assert.True(t, s.Remaining.IsZero())
	assert.True(t, s.Taken.Equal(decimal.NewFromInt(5)))
}

func newMaternityType() leave.LeaveType {
	female := employee.GenderFemale
	return leave.LeaveType{
		ID:               "type-maternity",
		Name:             "Maternity Leave",
		IsGenderSpecific: true,
		RequiredGender:   &female,
	}
}

func TestSummary_ParentalGenderRestriction(t *testing.T) {
	f := newFixture()
	f.types.types["type-maternity"] = newMaternityType()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-maternity", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.IsZero())
	assert.True(t, s.Remaining.IsZero())
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.January, 1), *s.OpeningFromDate)
}

func TestSummary_ParentalBlockPinsRemainingToZero(t *testing.T) {
	f := newFixture()
	f.types.types["type-maternity"] = newMaternityType()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", "type-maternity", date(2026, time.March, 10), 90)

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-maternity", date(2026, time.September, 1))
	require.NoError(t, err)

	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(120)))
	assert.True(t, s.Taken.Equal(decimal.NewFromInt(90)))
	assert.True(t, s.Remaining.IsZero())
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.March, 10), *s.OpeningFromDate)
	assert.True(t, s.AccruedSinceStart.IsZero())
}

func TestSummary_ParentalFreshEntitlementAfterBlock(t *testing.T) {
	f := newFixture()
	f.types.types["type-maternity"] = newMaternityType()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderFemale)
	f.addApproved("emp-1", "type-maternity", date(2026, time.March, 10), 90)

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-maternity", date(2027, time.April, 1))
	require.NoError(t, err)

	assert.True(t, s.Taken.IsZero())
	assert.True(t, s.Remaining.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2027, time.March, 10), *s.OpeningFromDate)
}

func TestSummary_ParentalBalanceRowRaisesEntitlement(t *testing.T) {
	f := newFixture()
	f.types.types["type-maternity"] = newMaternityType()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderFemale)
	f.balances.rows["emp-1/type-maternity"] = leave.BalanceRow{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-maternity",
		OpeningBalance: decimal.NewFromInt(150),
	}

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-maternity", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(150)))
}

func TestSummary_AnnualBeforeCutoverIsZero(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2025, time.December, 15))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.IsZero())
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.January, 1), *s.OpeningFromDate)
}

func TestSummary_AnnualLegacyOpeningPlusAccrual(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.May, 15), employee.GenderMale)
	f.balances.rows["emp-1/"+leave.TypeIDAnnual] = leave.BalanceRow{
		EmployeeID:     "emp-1",
		LeaveTypeID:    leave.TypeIDAnnual,
		OpeningBalance: decimal.NewFromInt(10),
	}
	f.accruals.records["emp-1"] = employee.AccrualRecord{
		EmployeeID:          "emp-1",
		AccrualRatePerMonth: decimal.NewFromFloat(1.25),
	}

	// 6 whole months from 2026-01-01.
	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.July, 15))
	require.NoError(t, err)
	assert.True(t, s.AccruedSinceStart.Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromFloat(17.5)))
}

func TestSummary_AnnualMonthEndCountsTheMonth(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.May, 15), employee.GenderMale)
	f.accruals.records["emp-1"] = employee.AccrualRecord{
		EmployeeID:          "emp-1",
		AccrualRatePerMonth: decimal.NewFromFloat(1.25),
	}

	midMonth, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.July, 30))
	require.NoError(t, err)
	monthEnd, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.July, 31))
	require.NoError(t, err)

	assert.True(t, midMonth.AccruedSinceStart.Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, monthEnd.AccruedSinceStart.Equal(decimal.NewFromFloat(8.75)))
}

func TestSummary_AnnualNewHireAccruesFromHireDate(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2026, time.March, 10), employee.GenderMale)
	f.accruals.records["emp-1"] = employee.AccrualRecord{
		EmployeeID:          "emp-1",
		AccrualRatePerMonth: decimal.NewFromFloat(1.25),
	}
	// A balance row for a post-cutover hire is ignored; accrual starts clean.
	f.balances.rows["emp-1/"+leave.TypeIDAnnual] = leave.BalanceRow{
		EmployeeID:     "emp-1",
		LeaveTypeID:    leave.TypeIDAnnual,
		OpeningBalance: decimal.NewFromInt(10),
	}

	s, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.June, 15))
	require.NoError(t, err)

	// 3 months counting from the start of the hire month, 2026-03-01.
	assert.True(t, s.AccruedSinceStart.Equal(decimal.NewFromFloat(3.75)))
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromFloat(3.75)))
	require.NotNil(t, s.OpeningFromDate)
	assert.Equal(t, date(2026, time.March, 1), *s.OpeningFromDate)
}

func TestSummary_AnnualAccrualNeverDecreasesAcrossMonthBoundary(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2026, time.March, 10), employee.GenderMale)
	f.accruals.records["emp-1"] = employee.AccrualRecord{
		EmployeeID:          "emp-1",
		AccrualRatePerMonth: decimal.NewFromFloat(1.25),
	}

	mayEnd, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.May, 31))
	require.NoError(t, err)
	juneStart, err := f.svc.Summary(context.Background(), "emp-1", leave.TypeIDAnnual, date(2026, time.June, 1))
	require.NoError(t, err)

	// The month-end bump on May 31 credits May; June 1 counts the same three
	// months from March, so the figure holds rather than dipping.
	assert.True(t, mayEnd.AccruedSinceStart.Equal(decimal.NewFromFloat(3.75)))
	assert.True(t, juneStart.AccruedSinceStart.Equal(decimal.NewFromFloat(3.75)))
	assert.True(t, juneStart.AccruedSinceStart.GreaterThanOrEqual(mayEnd.AccruedSinceStart))
}

func TestSummary_StandardFallbackChain(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	perYear := leave.LeaveType{ID: "type-study", Name: "Study Leave", AccrualType: leave.AccrualAnnual, DaysPerYear: decimal.NewFromInt(10)}
	cycleDays := decimal.NewFromInt(6)
	perCycle := leave.LeaveType{ID: "type-rotation", Name: "Rotation Leave", AccrualType: leave.AccrualCycle, DaysPerCycle: &cycleDays}
	fixedCycle := leave.LeaveType{ID: "type-sabbatical", Name: "Sabbatical Leave", AccrualType: leave.AccrualFixed, DaysPerCycle: &cycleDays}
	untracked := leave.LeaveType{ID: "type-special", Name: "Special Leave", AccrualType: leave.AccrualNone}
	f.types.types["type-study"] = perYear
	f.types.types["type-rotation"] = perCycle
	f.types.types["type-sabbatical"] = fixedCycle
	f.types.types["type-special"] = untracked

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-study", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(10)))

	s, err = f.svc.Summary(context.Background(), "emp-1", "type-rotation", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(6)))

	// A fixed type without a yearly amount falls back to its cycle amount.
	s, err = f.svc.Summary(context.Background(), "emp-1", "type-sabbatical", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(6)))

	s, err = f.svc.Summary(context.Background(), "emp-1", "type-special", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(9999)))
}

func TestSummary_StandardBalanceRowWins(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)
	f.types.types["type-study"] = leave.LeaveType{ID: "type-study", Name: "Study Leave", AccrualType: leave.AccrualAnnual, DaysPerYear: decimal.NewFromInt(10)}
	f.balances.rows["emp-1/type-study"] = leave.BalanceRow{
		EmployeeID:     "emp-1",
		LeaveTypeID:    "type-study",
		OpeningBalance: decimal.NewFromInt(7),
	}

	s, err := f.svc.Summary(context.Background(), "emp-1", "type-study", date(2026, time.June, 1))
	require.NoError(t, err)
	assert.True(t, s.TotalEntitlement.Equal(decimal.NewFromInt(7)))
}

func TestSummary_UnknownTypeNotFound(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	_, err := f.svc.Summary(context.Background(), "emp-1", "missing", date(2026, time.June, 1))
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}
