package domain

import (
	"fmt"
	"strings"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "NEW"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus resolves a status ignoring case.
func ParseTicketStatus(s string) (TicketStatus, error) {
	st := TicketStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown ticket status %q", s)
}

// Ticket is a support request filed against a department.
type Ticket struct {
	ID             int64
	Subject        string
	Description    string
	Status         TicketStatus
	RequesterEmail string
	Department     string
	Emotions       []string
	Categories     []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
