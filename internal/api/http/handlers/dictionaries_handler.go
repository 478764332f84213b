package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DictionariesHandler exposes the emotional and technical dictionaries.
type DictionariesHandler struct {
	dictionaries *service.DictionaryService
	classifier   *classifier.Classifier
}

// NewDictionariesHandler constructs handler.
func NewDictionariesHandler(dictionaries *service.DictionaryService, c *classifier.Classifier) *DictionariesHandler {
	return &DictionariesHandler{dictionaries: dictionaries, classifier: c}
}

// List handles GET /dictionaries/:kind.
func (h *DictionariesHandler) List(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	d, err := h.classifier.Dictionary(kind)
	if err != nil {
		return apperrors.NewNotFound("dictionary", map[string]any{"dictionary": string(kind)})
	}
	snap := d.Snapshot()
	return c.JSON(fiber.Map{"data": dto.DictionaryResponse{
		Dictionary: kind,
		Version:    snap.Version(),
		Entries:    snap.Entries(),
	}})
}

// Add handles POST /dictionaries/:kind. A duplicate word fails with 409 and
// message "already exists".
func (h *DictionariesHandler) Add(c *fiber.Ctx) error {
	kind, err := kindParam(c)
	if err != nil {
		return err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.AddWordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	entry, outcome, err := h.dictionaries.AddWord(c.UserContext(), principal.User, kind, req.Word, req.Category)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.AddWordResponse{Outcome: outcome, Dictionary: kind, Entry: entry},
	})
}

func kindParam(c *fiber.Ctx) (classifier.Kind, error) {
	kind, err := classifier.ParseKind(c.Params("kind"))
	if err != nil {
		return "", apperrors.NewNotFound("dictionary", map[string]any{"dictionary": c.Params("kind")})
	}
	return kind, nil
}
