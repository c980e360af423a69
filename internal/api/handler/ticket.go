package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/helpdesk14/helpdesk/internal/api/middleware"
	"github.com/helpdesk14/helpdesk/internal/api/response"
	"github.com/helpdesk14/helpdesk/internal/api/validation"
	"github.com/helpdesk14/helpdesk/internal/authz"
	"github.com/helpdesk14/helpdesk/internal/ticket"
	"github.com/helpdesk14/helpdesk/internal/user"
)

type createTicketRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	AssigneeEmail string `json:"assigneeEmail"`
}

type updateTicketRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	AssigneeEmail string `json:"assigneeEmail"`
}

type ticketResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	RequesterID string  `json:"requesterId"`
	AssigneeID  *string `json:"assigneeId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toTicketResponse(t *ticket.Ticket) ticketResponse {
	resp := ticketResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		RequesterID: t.RequesterID.String(),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.AssigneeID != nil {
		aid := t.AssigneeID.String()
		resp.AssigneeID = &aid
	}
	return resp
}

// TicketHandler handles ticket CRUD endpoints. Role gates for update and
// delete sit in the route middleware; read and list consult the policy here,
// where the ticket's requester is known.
type TicketHandler struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
}

// NewTicketHandler creates a new TicketHandler.
func NewTicketHandler(ticketRepo ticket.Repository, userRepo user.Repository) *TicketHandler {
	return &TicketHandler{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// Create handles POST /tickets. The requester is always the authenticated
// caller; the request body cannot create a ticket on another identity's
// behalf.
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetCaller(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req createTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title:         req.Title,
		Description:   req.Description,
		AssigneeEmail: req.AssigneeEmail,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	assigneeID, ok := h.resolveAssignee(r.Context(), w, req.AssigneeEmail, requestID)
	if !ok {
		return
	}

	t := &ticket.Ticket{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      ticket.StatusOpen,
		RequesterID: caller.User.ID,
		AssigneeID:  assigneeID,
	}

	if err := h.ticketRepo.Create(r.Context(), t); err != nil {
		slog.Error("failed to create ticket", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create ticket", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toTicketResponse(t), requestID)
}

// List handles GET /tickets. The policy decides the visible scope: TECH sees
// everything, USER only their own tickets. A USER's narrower scope is
// filtering, never an error.
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetCaller(r.Context())

	var tickets []ticket.Ticket
	var err error

	switch authz.ListScope(caller) {
	case authz.ScopeAll:
		tickets, err = h.ticketRepo.List(r.Context())
	case authz.ScopeOwn:
		tickets, err = h.ticketRepo.ListByRequester(r.Context(), caller.User.ID)
	default:
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "Access denied", requestID)
		return
	}
	if err != nil {
		slog.Error("failed to list tickets", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tickets", requestID)
		return
	}

	items := make([]ticketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, toTicketResponse(&tickets[i]))
	}

	response.Success(w, http.StatusOK, items, requestID)
}

// GetByID handles GET /tickets/{id}. A USER asking for someone else's
// ticket gets 403, not 404: the denial is surfaced, never silently degraded.
func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	caller := middleware.GetCaller(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	t, err := h.ticketRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to get ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get ticket", requestID)
		return
	}

	decision := authz.Decide(caller, authz.OpTicketRead, &authz.Resource{RequesterID: t.RequesterID})
	if !decision.Allow {
		response.Err(w, http.StatusForbidden, "FORBIDDEN", "Access denied", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTicketResponse(t), requestID)
}

// Update handles PUT /tickets/{id}. TECH only, enforced by the route
// middleware. The request replaces the ticket's mutable fields wholesale:
// omitting assigneeEmail unassigns the ticket rather than leaving the
// current assignee in place.
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req updateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidateUpdateTicketRequest(validation.UpdateTicketRequest{
		Title:         req.Title,
		Description:   req.Description,
		Status:        req.Status,
		AssigneeEmail: req.AssigneeEmail,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	t, err := h.ticketRepo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to get ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update ticket", requestID)
		return
	}

	assigneeID, ok := h.resolveAssignee(r.Context(), w, req.AssigneeEmail, requestID)
	if !ok {
		return
	}

	status, _ := ticket.ParseStatus(req.Status) // already validated

	t.Title = strings.TrimSpace(req.Title)
	t.Description = req.Description
	t.Status = status
	t.AssigneeID = assigneeID

	if err := h.ticketRepo.Update(r.Context(), t); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to update ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update ticket", requestID)
		return
	}

	response.Success(w, http.StatusOK, toTicketResponse(t), requestID)
}

// Delete handles DELETE /tickets/{id}. TECH only, enforced by the route
// middleware.
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.ticketRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Ticket not found", requestID)
			return
		}
		slog.Error("failed to delete ticket", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete ticket", requestID)
		return
	}

	response.NoContent(w)
}

// resolveAssignee looks up the optional assignee email and checks the target
// is a TECH. It writes the error response itself and reports success via the
// second return value; a nil id with ok=true means no assignee.
func (h *TicketHandler) resolveAssignee(ctx context.Context, w http.ResponseWriter, email, requestID string) (*uuid.UUID, bool) {
	if email == "" {
		return nil, true
	}

	assignee, err := h.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Assignee not found", requestID)
			return nil, false
		}
		slog.Error("failed to look up assignee", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to resolve assignee", requestID)
		return nil, false
	}

	if assignee.Role != user.RoleTech {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed",
			[]validation.FieldError{{Field: "assigneeEmail", Message: "assignee must be a support technician"}}, requestID)
		return nil, false
	}

	return &assignee.ID, true
}
