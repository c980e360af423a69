package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helpdesk14/helpdesk/internal/api/validation"
)

func TestValidateCreateTicketRequest(t *testing.T) {
	valid := validation.CreateTicketRequest{Title: "Printer on fire", Description: "It is actually on fire"}
	assert.Empty(t, validation.ValidateCreateTicketRequest(valid))

	valid.AssigneeEmail = "tech@x.com"
	assert.Empty(t, validation.ValidateCreateTicketRequest(valid))

	assert.NotEmpty(t, validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{Description: "no title"}))
	assert.NotEmpty(t, validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{Title: "   ", Description: "blank title"}))
	assert.NotEmpty(t, validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{Title: "no description"}))
	assert.NotEmpty(t, validation.ValidateCreateTicketRequest(validation.CreateTicketRequest{
		Title: "bad assignee", Description: "x", AssigneeEmail: "not-an-email",
	}))
}

func TestValidateUpdateTicketRequest(t *testing.T) {
	valid := validation.UpdateTicketRequest{Title: "Printer on fire", Description: "Still burning", Status: "IN_PROGRESS"}
	assert.Empty(t, validation.ValidateUpdateTicketRequest(valid))

	cases := []struct {
		name string
		req  validation.UpdateTicketRequest
	}{
		{"missing status", validation.UpdateTicketRequest{Title: "t", Description: "d"}},
		{"unknown status", validation.UpdateTicketRequest{Title: "t", Description: "d", Status: "BURNING"}},
		{"missing title", validation.UpdateTicketRequest{Description: "d", Status: "OPEN"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, validation.ValidateUpdateTicketRequest(tc.req))
		})
	}
}
