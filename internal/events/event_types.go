package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketReclassified  EventType = "ticket_reclassified"
	EventDictionaryWordAdded EventType = "dictionary_word_added"
)

// Actor identifies who triggered an event.
type Actor struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	TicketID  int64     `json:"ticket_id,omitempty"`
	Actor     Actor     `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Department string   `json:"department"`
	Subject    string   `json:"subject"`
	Emotions   []string `json:"emotions"`
	Categories []string `json:"categories"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketReclassifiedPayload payload.
type TicketReclassifiedPayload struct {
	Emotions   []string `json:"emotions"`
	Categories []string `json:"categories"`
}

// DictionaryWordAddedPayload payload.
type DictionaryWordAddedPayload struct {
	Dictionary string `json:"dictionary"`
	Word       string `json:"word"`
	Category   string `json:"category"`
}
