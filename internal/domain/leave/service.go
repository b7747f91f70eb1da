package leave

import (
	"context"
	"time"
)

// LeaveService exposes the entitlement calculator and the request lifecycle.
type LeaveService interface {
	// Summary computes the as-at-date balance snapshot for one employee and
	// leave type. Returns ErrLeaveTypeNotFound when the type does not exist
	// or is soft-deleted. Deterministic and side-effect-free.
	Summary(ctx context.Context, employeeID, leaveTypeID string, asAt time.Time) (BalanceSummary, error)

	// Request lifecycle
	CreateRequest(ctx context.Context, req CreateRequestRequest) (Request, error)
	ApproveRequest(ctx context.Context, req DecideRequestRequest) error
	RejectRequest(ctx context.Context, req DecideRequestRequest) error
	ListRequests(ctx context.Context, employeeID string) ([]RequestResponse, error)
	ListPendingRequests(ctx context.Context) ([]RequestResponse, error)
}
