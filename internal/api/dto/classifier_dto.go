package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TextRequest carries free text to analyze.
type TextRequest struct {
	Text string `json:"text"`
}

// TokenizeResponse lists the tokens of a text.
type TokenizeResponse struct {
	Tokens []string `json:"tokens"`
}

// AddWordRequest payload for dictionary inserts.
type AddWordRequest struct {
	Word     string `json:"word"`
	Category string `json:"category"`
}

// AddWordResponse reports the insert outcome.
type AddWordResponse struct {
	Outcome    classifier.Outcome `json:"outcome"`
	Dictionary classifier.Kind    `json:"dictionary"`
	Entry      classifier.Entry   `json:"entry"`
}

// DictionaryResponse lists a dictionary in insertion order.
type DictionaryResponse struct {
	Dictionary classifier.Kind    `json:"dictionary"`
	Version    uint64             `json:"version"`
	Entries    []classifier.Entry `json:"entries"`
}

// DepartmentRequest payload.
type DepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
}

// DepartmentResponse is the API view of a department.
type DepartmentResponse struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Contact     string    `json:"contact"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDepartmentResponse maps a department.
func NewDepartmentResponse(d *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		Name:        d.Name,
		Description: d.Description,
		Contact:     d.Contact,
		CreatedAt:   d.CreatedAt,
	}
}
