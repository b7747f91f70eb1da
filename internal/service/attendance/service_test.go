package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/attendance"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/schedule"
)

type fakeSegmentRepo struct {
	segments map[string]attendance.Segment

	updated     *attendance.Segment
	replaceCall *struct {
		employeeID string
		start, end time.Time
		segment    attendance.Segment
	}
	deleteForDayCount int64
}

func newFakeSegmentRepo(segments ...attendance.Segment) *fakeSegmentRepo {
	repo := &fakeSegmentRepo{segments: make(map[string]attendance.Segment)}
	for _, s := range segments {
		repo.segments[s.ID] = s
	}
	return repo
}

func (f *fakeSegmentRepo) GetByID(_ context.Context, id string) (attendance.Segment, error) {
	seg, ok := f.segments[id]
	if !ok {
		return attendance.Segment{}, attendance.ErrSegmentNotFound
	}
	return seg, nil
}

func (f *fakeSegmentRepo) GetOpenSegment(_ context.Context, employeeID string) (*attendance.Segment, error) {
	for _, s := range f.segments {
		if s.EmployeeID == employeeID && s.ClockOut == nil {
			seg := s
			return &seg, nil
		}
	}
	return nil, nil
}

func (f *fakeSegmentRepo) GetLastSegment(_ context.Context, employeeID string) (*attendance.Segment, error) {
	var last *attendance.Segment
	for _, s := range f.segments {
		if s.EmployeeID != employeeID {
			continue
		}
		if last == nil || s.ClockIn.After(last.ClockIn) {
			seg := s
			last = &seg
		}
	}
	return last, nil
}

func (f *fakeSegmentRepo) CreateIfNotClockedIn(_ context.Context, segment attendance.Segment) (attendance.Segment, error) {
	for _, s := range f.segments {
		if s.EmployeeID == segment.EmployeeID && s.ClockOut == nil {
			return attendance.Segment{}, attendance.ErrAlreadyClockedIn
		}
	}
	segment.ID = "new-segment"
	f.segments[segment.ID] = segment
	return segment, nil
}

func (f *fakeSegmentRepo) CloseOpenSegment(_ context.Context, employeeID string, clockOut time.Time, lat, lng *float64, clockedBy string) error {
	for id, s := range f.segments {
		if s.EmployeeID == employeeID && s.ClockOut == nil {
			s.ClockOut = &clockOut
			s.ClockOutLatitude = lat
			s.ClockOutLongitude = lng
			s.ClockedByEmployeeID = clockedBy
			f.segments[id] = s
			return nil
		}
	}
	return attendance.ErrNotClockedIn
}

func (f *fakeSegmentRepo) ListByRange(_ context.Context, fromUTC, toUTC time.Time, filter attendance.DayFilter) ([]attendance.Segment, error) {
	var out []attendance.Segment
	for _, s := range f.segments {
		if s.ClockIn.Before(fromUTC) || !s.ClockIn.Before(toUTC) {
			continue
		}
		if filter.EmployeeID != nil && s.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSegmentRepo) Update(_ context.Context, segment attendance.Segment) error {
	if _, ok := f.segments[segment.ID]; !ok {
		return attendance.ErrSegmentNotFound
	}
	f.segments[segment.ID] = segment
	f.updated = &segment
	return nil
}

func (f *fakeSegmentRepo) PersistDerived(_ context.Context, segments []attendance.Segment) error {
	for _, s := range segments {
		if _, ok := f.segments[s.ID]; ok {
			f.segments[s.ID] = s
		}
	}
	return nil
}

func (f *fakeSegmentRepo) ReplaceForDay(_ context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time, segment attendance.Segment) error {
	f.replaceCall = &struct {
		employeeID string
		start, end time.Time
		segment    attendance.Segment
	}{employeeID, dayStartUTC, dayEndUTC, segment}
	return nil
}

func (f *fakeSegmentRepo) DeleteForDay(_ context.Context, employeeID string, dayStartUTC, dayEndUTC time.Time) (int64, error) {
	return f.deleteForDayCount, nil
}

func (f *fakeSegmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.segments[id]; !ok {
		return attendance.ErrSegmentNotFound
	}
	delete(f.segments, id)
	return nil
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

type fakeScheduleRepo struct {
	schedules map[string]schedule.DepartmentSchedule
}

func (f *fakeScheduleRepo) GetByDepartmentID(_ context.Context, departmentID string) (schedule.DepartmentSchedule, error) {
	sched, ok := f.schedules[departmentID]
	if !ok {
		return schedule.DepartmentSchedule{}, schedule.ErrScheduleNotFound
	}
	return sched, nil
}

func (f *fakeScheduleRepo) List(_ context.Context) ([]schedule.DepartmentSchedule, error) {
	var out []schedule.DepartmentSchedule
	for _, s := range f.schedules {
		out = append(out, s)
	}
	return out, nil
}

func newTestService(repo *fakeSegmentRepo) attendance.AttendanceService {
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", Name: "Alice Mokoena", DepartmentID: "dep-1"},
	}}
	schedules := &fakeScheduleRepo{schedules: map[string]schedule.DepartmentSchedule{
		"dep-1": testSchedule,
	}}
	return NewAttendanceService(repo, employees, schedules, attendance.NoHolidays{}, time.UTC)
}

func closedSegment(id string, in, out time.Time) attendance.Segment {
	return attendance.Segment{
		ID:             id,
		EmployeeID:     "emp-1",
		ClockIn:        in,
		ClockOut:       &out,
		WorkCategory:   attendance.WorkCategoryNormal,
		OvertimeStatus: attendance.OvertimePending,
	}
}

func TestClockIn_DefaultsAndCreate(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	seg, err := svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, attendance.WorkCategoryNormal, seg.WorkCategory)
	assert.Equal(t, "emp-1", seg.ClockedByEmployeeID)
	assert.Nil(t, seg.ClockOut)
}

func TestClockIn_AlreadyClockedIn(t *testing.T) {
	repo := newFakeSegmentRepo(attendance.Segment{ID: "open", EmployeeID: "emp-1", ClockIn: time.Now().UTC()})
	svc := newTestService(repo)

	_, err := svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockOut_NotClockedIn(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	err := svc.ClockOut(context.Background(), attendance.ClockRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestStatus_ReportsOpenSegment(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(attendance.Segment{ID: "open", EmployeeID: "emp-1", ClockIn: in})
	svc := newTestService(repo)

	status, err := svc.Status(context.Background(), "emp-1")
	require.NoError(t, err)

	assert.True(t, status.IsClockedIn)
	require.NotNil(t, status.LastClockInTime)
	assert.Equal(t, in, *status.LastClockInTime)
}

func TestDecideOvertime_RequiresClosedSegment(t *testing.T) {
	repo := newFakeSegmentRepo(attendance.Segment{
		ID:         "open",
		EmployeeID: "emp-1",
		ClockIn:    time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC),
	})
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID:  "open",
		Status:     attendance.OvertimeApproved,
		ApproverID: ptr("mgr-1"),
	})
	assert.ErrorIs(t, err, attendance.ErrOvertimeDecisionNotAllowed)
}

func TestDecideOvertime_RequiresWorkedHours(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(closedSegment("zero", in, in))
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID:  "zero",
		Status:     attendance.OvertimeApproved,
		ApproverID: ptr("mgr-1"),
	})
	assert.ErrorIs(t, err, attendance.ErrOvertimeDecisionNotAllowed)
}

func TestDecideOvertime_RequiresApprover(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(closedSegment("seg-1", in, in.Add(10*time.Hour)))
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID: "seg-1",
		Status:    attendance.OvertimeApproved,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidApprover)

	err = svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID:  "seg-1",
		Status:     attendance.OvertimeDenied,
		ApproverID: ptr(""),
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidApprover)
}

func TestDecideOvertime_ApproveStampsDecision(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(closedSegment("seg-1", in, in.Add(10*time.Hour)))
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID:  "seg-1",
		Status:     attendance.OvertimeApproved,
		Location:   ptr("Depot"),
		Note:       ptr("Breakdown callout"),
		ApproverID: ptr("mgr-1"),
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, attendance.OvertimeApproved, repo.updated.OvertimeStatus)
	assert.Equal(t, "Depot", *repo.updated.OvertimeLocation)
	assert.Equal(t, "mgr-1", *repo.updated.OvertimeApprovedByID)
	assert.NotNil(t, repo.updated.OvertimeDecisionTime)
}

func TestDecideOvertime_ResetClearsDecision(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	seg := closedSegment("seg-1", in, in.Add(10*time.Hour))
	seg.OvertimeStatus = attendance.OvertimeApproved
	seg.OvertimeLocation = ptr("Depot")
	seg.OvertimeApprovedByID = ptr("mgr-1")
	now := time.Now().UTC()
	seg.OvertimeDecisionTime = &now

	repo := newFakeSegmentRepo(seg)
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID: "seg-1",
		Status:    attendance.OvertimePending,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, attendance.OvertimePending, repo.updated.OvertimeStatus)
	assert.Nil(t, repo.updated.OvertimeLocation)
	assert.Nil(t, repo.updated.OvertimeNote)
	assert.Nil(t, repo.updated.OvertimeApprovedByID)
	assert.Nil(t, repo.updated.OvertimeDecisionTime)
}

func TestDecideOvertime_RejectsComputedStatus(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(closedSegment("seg-1", in, in.Add(10*time.Hour)))
	svc := newTestService(repo)

	err := svc.DecideOvertime(context.Background(), attendance.OvertimeDecision{
		SegmentID: "seg-1",
		Status:    attendance.OvertimeNone,
	})
	assert.Error(t, err)
}

func TestUpdateTimes_ResetsOvertimeFields(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	seg := closedSegment("seg-1", in, in.Add(10*time.Hour))
	seg.OvertimeStatus = attendance.OvertimeApproved
	seg.OvertimeApprovedByID = ptr("mgr-1")

	repo := newFakeSegmentRepo(seg)
	svc := newTestService(repo)

	newOut := in.Add(9 * time.Hour)
	err := svc.UpdateTimes(context.Background(), attendance.EditTimesRequest{
		SegmentID: "seg-1",
		ClockIn:   in,
		ClockOut:  &newOut,
	})
	require.NoError(t, err)

	require.NotNil(t, repo.updated)
	assert.Equal(t, attendance.OvertimeNone, repo.updated.OvertimeStatus)
	assert.Nil(t, repo.updated.OvertimeApprovedByID)
	assert.Nil(t, repo.updated.OvertimeDecisionTime)
}

func TestSaveQuickEntry_BuildsLocalDayWindow(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	day := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	err := svc.SaveQuickEntry(context.Background(), attendance.QuickEntryRequest{
		EmployeeID:          "emp-1",
		Day:                 day,
		ClockInTime:         "07:30",
		ClockOutTime:        "16:00",
		ClockedByEmployeeID: "admin-1",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.replaceCall)
	assert.Equal(t, "emp-1", repo.replaceCall.employeeID)
	assert.Equal(t, day, repo.replaceCall.start)
	assert.Equal(t, day.AddDate(0, 0, 1), repo.replaceCall.end)
	assert.Equal(t, time.Date(2026, time.January, 5, 7, 30, 0, 0, time.UTC), repo.replaceCall.segment.ClockIn)
	require.NotNil(t, repo.replaceCall.segment.ClockOut)
	assert.Equal(t, time.Date(2026, time.January, 5, 16, 0, 0, 0, time.UTC), *repo.replaceCall.segment.ClockOut)
}

func TestSaveQuickEntry_RejectsBadTime(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	err := svc.SaveQuickEntry(context.Background(), attendance.QuickEntryRequest{
		EmployeeID:  "emp-1",
		Day:         time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		ClockInTime: "25:99",
	})
	assert.Error(t, err)
}

func TestClearDay_NothingToClear(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	err := svc.ClearDay(context.Background(), "emp-1", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrSegmentNotFound)
}

func TestComputeDaily_PersistsDerivedFigures(t *testing.T) {
	in := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.UTC)
	repo := newFakeSegmentRepo(closedSegment("seg-1", in, in.Add(11*time.Hour)))
	svc := newTestService(repo)

	agg, err := svc.ComputeDaily(context.Background(), "emp-1", in)
	require.NoError(t, err)

	assert.Equal(t, 11.0, agg.TotalHours)
	assert.Equal(t, 2.0, agg.OvertimeHours)

	stored := repo.segments["seg-1"]
	require.NotNil(t, stored.OvertimeHours)
	assert.Equal(t, 2.0, *stored.OvertimeHours)
}

func TestComputeDaily_EmptyDay(t *testing.T) {
	repo := newFakeSegmentRepo()
	svc := newTestService(repo)

	agg, err := svc.ComputeDaily(context.Background(), "emp-1", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 0.0, agg.TotalHours)
	assert.Equal(t, attendance.OvertimeNone, agg.OvertimeStatus)
	assert.Empty(t, agg.Segments)
}
