package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/employee"
	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
)

type LeaveServiceImpl struct {
	types     leave.LeaveTypeRepository
	balances  leave.BalanceRepository
	requests  leave.RequestRepository
	employees employee.EmployeeRepository
	accruals  employee.AccrualRepository
}

func NewLeaveService(
	typeRepo leave.LeaveTypeRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	accrualRepo employee.AccrualRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		types:     typeRepo,
		balances:  balanceRepo,
		requests:  requestRepo,
		employees: employeeRepo,
		accruals:  accrualRepo,
	}
}

// CreateRequest implements leave.LeaveService. DaysTaken is fixed here from
// the weekend-excluding working-day count and the portion.
func (s *LeaveServiceImpl) CreateRequest(ctx context.Context, req leave.CreateRequestRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.Request{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if _, err := s.types.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.Request{}, err
	}

	portion := req.Portion
	if portion == "" {
		portion = leave.PortionFullDay
	}

	request := leave.Request{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   dateOnly(req.StartDate),
		EndDate:     dateOnly(req.EndDate),
		DaysTaken:   DaysTakenFor(req.StartDate, req.EndDate, portion),
		Portion:     portion,
		Status:      leave.StatusPending,
		Reason:      req.Reason,
		RequestedAt: time.Now().UTC(),
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		return leave.Request{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// ApproveRequest implements leave.LeaveService. Only a pending request can be
// approved; a second decision fails.
func (s *LeaveServiceImpl) ApproveRequest(ctx context.Context, req leave.DecideRequestRequest) error {
	return s.decide(ctx, req, leave.StatusApproved)
}

// RejectRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectRequest(ctx context.Context, req leave.DecideRequestRequest) error {
	return s.decide(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) decide(ctx context.Context, req leave.DecideRequestRequest, status leave.RequestStatus) error {
	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if request.Status != leave.StatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	now := time.Now().UTC()
	request.Status = status
	request.ApprovedAt = &now
	request.ApprovedBy = req.ApproverID

	if err := s.requests.Update(ctx, request); err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	return nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, employeeID string) ([]leave.RequestResponse, error) {
	requests, err := s.requests.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return mapRequestsToResponses(requests), nil
}

// ListPendingRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPendingRequests(ctx context.Context) ([]leave.RequestResponse, error) {
	requests, err := s.requests.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return mapRequestsToResponses(requests), nil
}

// DaysTakenFor counts working days between start and end inclusive, skipping
// Saturdays and Sundays, then applies the portion. A half-day request counts
// half per day with a floor of half a day; a full-day request floors at one.
func DaysTakenFor(start, end time.Time, portion leave.Portion) decimal.Decimal {
	start = dateOnly(start)
	end = dateOnly(end)

	workingDays := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			workingDays++
		}
	}

	days := decimal.NewFromInt(int64(workingDays))
	if portion == leave.PortionHalfDay {
		days = days.Mul(decimal.NewFromFloat(0.5))
		if days.LessThan(decimal.NewFromFloat(0.5)) {
			days = decimal.NewFromFloat(0.5)
		}
		return days
	}

	if days.LessThan(decimal.NewFromInt(1)) {
		days = decimal.NewFromInt(1)
	}
	return days
}

func mapRequestsToResponses(requests []leave.Request) []leave.RequestResponse {
	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		resp := leave.RequestResponse{
			ID:          r.ID,
			EmployeeID:  r.EmployeeID,
			LeaveTypeID: r.LeaveTypeID,
			StartDate:   r.StartDate.Format("2006-01-02"),
			EndDate:     r.EndDate.Format("2006-01-02"),
			DaysTaken:   r.DaysTaken,
			Portion:     r.Portion,
			Status:      r.Status,
			Reason:      r.Reason,
			RequestedAt: r.RequestedAt,
			ApprovedAt:  r.ApprovedAt,
		}
		if r.EmployeeName != nil {
			resp.EmployeeName = *r.EmployeeName
		}
		if r.LeaveTypeName != nil {
			resp.LeaveTypeName = *r.LeaveTypeName
		}
		responses = append(responses, resp)
	}
	return responses
}
