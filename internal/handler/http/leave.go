package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/crestline-hr/timekeeping-backend-go/internal/domain/leave"
	"github.com/crestline-hr/timekeeping-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	GetSummary(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ListPendingRequests(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// GetSummary implements LeaveHandler. The as_at query parameter defaults to
// today.
func (h *LeaveHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveTypeID := chi.URLParam(r, "leaveTypeID")
	if employeeID == "" || leaveTypeID == "" {
		response.BadRequest(w, "Employee ID and leave type ID are required", nil)
		return
	}

	asAt := time.Now().UTC()
	if raw := r.URL.Query().Get("as_at"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, "Invalid as_at format, expected YYYY-MM-DD", nil)
			return
		}
		asAt = parsed
	}

	summary, err := h.leaveService.Summary(r.Context(), employeeID, leaveTypeID, asAt)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", created)
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.ApproveRequest, "Leave request approved")
}

// RejectRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.leaveService.RejectRequest, "Leave request rejected")
}

func (h *LeaveHandlerImpl) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, req leave.DecideRequestRequest) error, message string) {
	var req leave.DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	if req.RequestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	if err := fn(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, nil)
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	requests, err := h.leaveService.ListRequests(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// ListPendingRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPendingRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.leaveService.ListPendingRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}
