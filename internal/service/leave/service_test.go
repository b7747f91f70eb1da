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

func TestDaysTakenFor_ExcludesWeekends(t *testing.T) {
	// Monday 2026-01-05 through Sunday 2026-01-11: five working days.
	days := DaysTakenFor(date(2026, time.January, 5), date(2026, time.January, 11), leave.PortionFullDay)
	assert.True(t, days.Equal(decimal.NewFromInt(5)))
}

func TestDaysTakenFor_HalfDayPortion(t *testing.T) {
	days := DaysTakenFor(date(2026, time.January, 5), date(2026, time.January, 6), leave.PortionHalfDay)
	assert.True(t, days.Equal(decimal.NewFromInt(1)))
}

func TestDaysTakenFor_WeekendOnlyFloors(t *testing.T) {
	// Saturday and Sunday only: zero working days, floored to the minimum.
	full := DaysTakenFor(date(2026, time.January, 3), date(2026, time.January, 4), leave.PortionFullDay)
	assert.True(t, full.Equal(decimal.NewFromInt(1)))

	half := DaysTakenFor(date(2026, time.January, 3), date(2026, time.January, 4), leave.PortionHalfDay)
	assert.True(t, half.Equal(decimal.NewFromFloat(0.5)))
}

func TestCreateRequest_ComputesDaysAndDefaults(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.TypeIDAnnual,
		StartDate:   date(2026, time.February, 2),
		EndDate:     date(2026, time.February, 6),
		Reason:      "Family visit",
	})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, leave.PortionFullDay, created.Portion)
	assert.True(t, created.DaysTaken.Equal(decimal.NewFromInt(5)))
}

func TestCreateRequest_RejectsInvertedRange(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.TypeIDAnnual,
		StartDate:   date(2026, time.February, 6),
		EndDate:     date(2026, time.February, 2),
	})
	assert.Error(t, err)
}

func TestCreateRequest_UnknownLeaveType(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: "missing",
		StartDate:   date(2026, time.February, 2),
		EndDate:     date(2026, time.February, 3),
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestApproveRequest_OnlyFromPending(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.TypeIDAnnual,
		StartDate:   date(2026, time.February, 2),
		EndDate:     date(2026, time.February, 3),
	})
	require.NoError(t, err)

	approver := "mgr-1"
	err = f.svc.ApproveRequest(context.Background(), leave.DecideRequestRequest{
		RequestID:  created.ID,
		ApproverID: &approver,
	})
	require.NoError(t, err)

	stored, err := f.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, stored.Status)
	assert.NotNil(t, stored.ApprovedAt)
	assert.Equal(t, "mgr-1", *stored.ApprovedBy)

	// Second decision fails.
	err = f.svc.RejectRequest(context.Background(), leave.DecideRequestRequest{RequestID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestRejectRequest_MarksRejected(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)

	created, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.TypeIDAnnual,
		StartDate:   date(2026, time.February, 2),
		EndDate:     date(2026, time.February, 3),
	})
	require.NoError(t, err)

	err = f.svc.RejectRequest(context.Background(), leave.DecideRequestRequest{RequestID: created.ID})
	require.NoError(t, err)

	stored, err := f.requests.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, stored.Status)
}

func TestListPendingRequests_FiltersByStatus(t *testing.T) {
	f := newFixture()
	f.addEmployee("emp-1", date(2024, time.June, 1), employee.GenderMale)
	f.addApproved("emp-1", leave.TypeIDAnnual, date(2026, time.March, 2), 2)

	_, err := f.svc.CreateRequest(context.Background(), leave.CreateRequestRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: leave.TypeIDAnnual,
		StartDate:   date(2026, time.April, 6),
		EndDate:     date(2026, time.April, 7),
	})
	require.NoError(t, err)

	pending, err := f.svc.ListPendingRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, leave.StatusPending, pending[0].Status)
}
