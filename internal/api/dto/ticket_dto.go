package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Department  string `json:"department"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TicketResponse is the API view of a ticket.
type TicketResponse struct {
	ID             int64               `json:"id"`
	Subject        string              `json:"subject"`
	Description    string              `json:"description"`
	Status         domain.TicketStatus `json:"status"`
	RequesterEmail string              `json:"requester_email"`
	Department     string              `json:"department"`
	Emotions       []string            `json:"emotions"`
	Categories     []string            `json:"categories"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// NewTicketResponse maps a ticket, rendering missing tags as empty lists.
func NewTicketResponse(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:             t.ID,
		Subject:        t.Subject,
		Description:    t.Description,
		Status:         t.Status,
		RequesterEmail: t.RequesterEmail,
		Department:     t.Department,
		Emotions:       nonNil(t.Emotions),
		Categories:     nonNil(t.Categories),
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
