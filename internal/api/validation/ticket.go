package validation

import (
	"strings"

	"github.com/helpdesk14/helpdesk/internal/ticket"
)

// CreateTicketRequest mirrors the fields needed for ticket creation
// validation.
type CreateTicketRequest struct {
	Title         string
	Description   string
	AssigneeEmail string
}

// ValidateCreateTicketRequest validates the fields of a create ticket
// request.
func ValidateCreateTicketRequest(req CreateTicketRequest) []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > 255 {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 255 characters"})
	}

	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}

	if req.AssigneeEmail != "" && !emailRegex.MatchString(req.AssigneeEmail) {
		errs = append(errs, FieldError{Field: "assigneeEmail", Message: "assigneeEmail must be a valid address"})
	}

	return errs
}

// UpdateTicketRequest mirrors the fields needed for ticket update
// validation.
type UpdateTicketRequest struct {
	Title         string
	Description   string
	Status        string
	AssigneeEmail string
}

// ValidateUpdateTicketRequest validates the fields of an update ticket
// request.
func ValidateUpdateTicketRequest(req UpdateTicketRequest) []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > 255 {
		errs = append(errs, FieldError{Field: "title", Message: "title must be at most 255 characters"})
	}

	if strings.TrimSpace(req.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "description is required"})
	}

	if req.Status == "" {
		errs = append(errs, FieldError{Field: "status", Message: "status is required"})
	} else if _, err := ticket.ParseStatus(req.Status); err != nil {
		errs = append(errs, FieldError{Field: "status", Message: "status must be OPEN, IN_PROGRESS or CLOSED"})
	}

	if req.AssigneeEmail != "" && !emailRegex.MatchString(req.AssigneeEmail) {
		errs = append(errs, FieldError{Field: "assigneeEmail", Message: "assigneeEmail must be a valid address"})
	}

	return errs
}
