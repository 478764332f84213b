package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	users       repository.UserRepository
	departments repository.DepartmentRepository
	classifier  *classifier.Classifier
	ids         *repository.Sequence
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	UserRepo       repository.UserRepository
	DepartmentRepo repository.DepartmentRepository
	Classifier     *classifier.Classifier
	IDs            *repository.Sequence
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Department  string
}

// TicketListFilter describes listing filters accepted from callers.
type TicketListFilter struct {
	Department *string
	Statuses   []domain.TicketStatus
	Limit      int
	Offset     int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	ids := deps.IDs
	if ids == nil {
		ids = repository.NewSequence(0)
	}
	return &TicketService{
		tickets:     deps.TicketRepo,
		users:       deps.UserRepo,
		departments: deps.DepartmentRepo,
		classifier:  deps.Classifier,
		ids:         ids,
		dispatcher:  deps.Dispatcher,
		logger:      loggerOrNop(deps.Logger),
	}
}

// CreateTicket files a ticket for the requester and tags it from its description.
func (s *TicketService) CreateTicket(ctx context.Context, requester *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if requester == nil {
		return nil, apperrors.NewUnauthorized("requester required")
	}
	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	if subject == "" || description == "" || strings.TrimSpace(input.Department) == "" {
		return nil, apperrors.NewValidationError("subject, description, department required", nil)
	}
	if _, err := s.users.GetByEmail(ctx, requester.Email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": requester.Email})
		}
		return nil, err
	}
	dept, err := s.departments.GetByName(ctx, input.Department)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("department", map[string]any{"name": input.Department})
		}
		return nil, err
	}

	emotions, categories := s.tags(description)
	ticket := &domain.Ticket{
		ID:             s.ids.Next(),
		Subject:        subject,
		Description:    description,
		Status:         domain.TicketStatusNew,
		RequesterEmail: requester.Email,
		Department:     dept.Name,
		Emotions:       emotions,
		Categories:     categories,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.logger.Info("ticket created",
		zap.Int64("ticket_id", ticket.ID),
		zap.String("department", ticket.Department),
		zap.Strings("emotions", ticket.Emotions),
		zap.Strings("categories", ticket.Categories))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    actorOf(requester),
		Payload: events.TicketCreatedPayload{
			Department: ticket.Department,
			Subject:    ticket.Subject,
			Emotions:   ticket.Emotions,
			Categories: ticket.Categories,
		},
	})
	return ticket, nil
}

// GetTicket returns a ticket the actor may see.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, id int64) (*domain.Ticket, error) {
	ticket, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canSee(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// ListTickets returns tickets visible to the actor. Students only see their own.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	repoFilter := repository.TicketFilter{
		Department: filter.Department,
		Statuses:   filter.Statuses,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if !actor.Role.CanManageTickets() {
		email := actor.Email
		repoFilter.RequesterEmail = &email
	}
	return s.tickets.List(ctx, repoFilter)
}

// UpdateStatus moves a ticket through its lifecycle. Closed tickets stay closed.
func (s *TicketService) UpdateStatus(ctx context.Context, actor *domain.User, id int64, next domain.TicketStatus) (*domain.Ticket, error) {
	if actor == nil || !actor.Role.CanManageTickets() {
		return nil, apperrors.NewForbidden("staff or administrator required")
	}
	ticket, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(ticket.Status, next) {
		return nil, apperrors.NewValidationError("invalid status transition", map[string]any{
			"from": ticket.Status,
			"to":   next,
		})
	}
	old := ticket.Status
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload:  events.TicketStatusChangedPayload{OldStatus: old, NewStatus: next},
	})
	return ticket, nil
}

// Reclassify recomputes a ticket's tags against the current dictionaries.
func (s *TicketService) Reclassify(ctx context.Context, actor *domain.User, id int64) (*domain.Ticket, error) {
	if actor == nil || !actor.Role.CanManageTickets() {
		return nil, apperrors.NewForbidden("staff or administrator required")
	}
	ticket, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ticket.Emotions, ticket.Categories = s.tags(ticket.Description)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventTicketReclassified,
		TicketID: ticket.ID,
		Actor:    actorOf(actor),
		Payload: events.TicketReclassifiedPayload{
			Emotions:   ticket.Emotions,
			Categories: ticket.Categories,
		},
	})
	return ticket, nil
}

func (s *TicketService) tags(text string) ([]string, []string) {
	res := s.classifier.Classify(text)
	return classifier.Distinct(res.Emotions), classifier.Distinct(res.Categories)
}

func (s *TicketService) load(ctx context.Context, id int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}
	return ticket, nil
}

func canSee(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}
	if actor.Role.CanManageTickets() {
		return true
	}
	return actor.Key() == domain.EmailKey(ticket.RequesterEmail)
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusNew:        {domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusClosed},
	domain.TicketStatusResolved:   {domain.TicketStatusInProgress, domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
