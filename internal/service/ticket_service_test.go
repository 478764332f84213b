package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

func seedTicketFixture(t *testing.T) (*fixture, *domain.User, *domain.User) {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	student := f.register(t, "ana@uni.edu", domain.RoleStudent)
	staff := f.register(t, "luis@uni.edu", domain.RoleStaff)
	_, err := f.depts.Create(ctx, "Soporte TI", "Mesa de ayuda", "ti@uni.edu")
	require.NoError(t, err)
	_, _, err = f.dicts.AddEmotionalWord(ctx, staff, "lento", "frustración")
	require.NoError(t, err)
	_, _, err = f.dicts.AddTechnicalWord(ctx, staff, "impresora", "hardware")
	require.NoError(t, err)
	_, _, err = f.dicts.AddTechnicalWord(ctx, staff, "monitor", "hardware")
	require.NoError(t, err)
	f.published = nil
	return f, student, staff
}

func TestCreateTicket_TagsFromDescription(t *testing.T) {
	f, student, _ := seedTicketFixture(t)

	ticket, err := f.ticketsSvc.CreateTicket(context.Background(), student, TicketCreateInput{
		Subject:     "Impresora",
		Description: "La impresora y el monitor van muy LENTO, lento de verdad",
		Department:  "soporte ti",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), ticket.ID)
	assert.Equal(t, domain.TicketStatusNew, ticket.Status)
	assert.Equal(t, "Soporte TI", ticket.Department)
	assert.Equal(t, []string{"frustración"}, ticket.Emotions)
	assert.Equal(t, []string{"hardware"}, ticket.Categories)
	assert.Equal(t, []events.EventType{events.EventTicketCreated}, f.eventTypes())

	second, err := f.ticketsSvc.CreateTicket(context.Background(), student, TicketCreateInput{
		Subject: "Otra", Description: "sin etiquetas", Department: "Soporte TI",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Empty(t, second.Emotions)
	assert.Empty(t, second.Categories)
}

func TestCreateTicket_RequiresKnownDepartmentAndUser(t *testing.T) {
	f, student, _ := seedTicketFixture(t)
	ctx := context.Background()

	_, err := f.ticketsSvc.CreateTicket(ctx, student, TicketCreateInput{
		Subject: "x", Description: "y", Department: "Biblioteca",
	})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	ghost := &domain.User{Email: "ghost@uni.edu", Role: domain.RoleStudent}
	_, err = f.ticketsSvc.CreateTicket(ctx, ghost, TicketCreateInput{
		Subject: "x", Description: "y", Department: "Soporte TI",
	})
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	_, err = f.ticketsSvc.CreateTicket(ctx, student, TicketCreateInput{Department: "Soporte TI"})
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestTicketVisibility(t *testing.T) {
	f, student, staff := seedTicketFixture(t)
	ctx := context.Background()
	other := f.register(t, "eva@uni.edu", domain.RoleStudent)

	mine, err := f.ticketsSvc.CreateTicket(ctx, student, TicketCreateInput{
		Subject: "a", Description: "impresora", Department: "Soporte TI",
	})
	require.NoError(t, err)
	_, err = f.ticketsSvc.CreateTicket(ctx, other, TicketCreateInput{
		Subject: "b", Description: "monitor", Department: "Soporte TI",
	})
	require.NoError(t, err)

	list, err := f.ticketsSvc.ListTickets(ctx, student, TicketListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, mine.ID, list[0].ID)

	all, err := f.ticketsSvc.ListTickets(ctx, staff, TicketListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.ticketsSvc.GetTicket(ctx, other, mine.ID)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	got, err := f.ticketsSvc.GetTicket(ctx, staff, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.Subject, got.Subject)

	_, err = f.ticketsSvc.GetTicket(ctx, staff, 99)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateStatus(t *testing.T) {
	f, student, staff := seedTicketFixture(t)
	ctx := context.Background()
	ticket, err := f.ticketsSvc.CreateTicket(ctx, student, TicketCreateInput{
		Subject: "a", Description: "b", Department: "Soporte TI",
	})
	require.NoError(t, err)

	_, err = f.ticketsSvc.UpdateStatus(ctx, student, ticket.ID, domain.TicketStatusResolved)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	updated, err := f.ticketsSvc.UpdateStatus(ctx, staff, ticket.ID, domain.TicketStatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, updated.Status)

	_, err = f.ticketsSvc.UpdateStatus(ctx, staff, ticket.ID, domain.TicketStatusClosed)
	require.NoError(t, err)

	_, err = f.ticketsSvc.UpdateStatus(ctx, staff, ticket.ID, domain.TicketStatusInProgress)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	assert.Equal(t, []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketStatusChanged,
	}, f.eventTypes())
}

func TestReclassify_PicksUpNewWords(t *testing.T) {
	f, student, staff := seedTicketFixture(t)
	ctx := context.Background()
	ticket, err := f.ticketsSvc.CreateTicket(ctx, student, TicketCreateInput{
		Subject: "wifi", Description: "el wifi no conecta", Department: "Soporte TI",
	})
	require.NoError(t, err)
	assert.Empty(t, ticket.Categories)

	_, _, err = f.dicts.AddTechnicalWord(ctx, staff, "WiFi", "redes")
	require.NoError(t, err)

	_, err = f.ticketsSvc.Reclassify(ctx, student, ticket.ID)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	updated, err := f.ticketsSvc.Reclassify(ctx, staff, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"redes"}, updated.Categories)

	stored, err := f.ticketsSvc.GetTicket(ctx, student, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"redes"}, stored.Categories)
}
