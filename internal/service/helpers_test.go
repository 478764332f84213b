package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

type fixture struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	tickets     repository.TicketRepository
	dictStore   repository.DictionaryRepository
	classifier  *classifier.Classifier
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	published   []events.Event

	auth       *AuthService
	depts      *DepartmentService
	dicts      *DictionaryService
	ticketsSvc *TicketService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:       repository.NewMemoryUserRepository(),
		departments: repository.NewMemoryDepartmentRepository(),
		tickets:     repository.NewMemoryTicketRepository(),
		dictStore:   repository.NewMemoryDictionaryRepository(),
		classifier:  classifier.New(nil),
		dispatcher:  events.NewInMemoryDispatcher(),
		metrics:     observability.NewMetrics(),
	}
	record := func(_ context.Context, e events.Event) error {
		f.published = append(f.published, e)
		return nil
	}
	for _, et := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketStatusChanged,
		events.EventTicketReclassified,
		events.EventDictionaryWordAdded,
	} {
		f.dispatcher.Subscribe(et, record)
	}

	f.auth = NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            bcrypt.MinCost,
	}, f.users, nil)
	f.depts = NewDepartmentService(f.departments, nil)
	f.dicts = NewDictionaryService(DictionaryDependencies{
		Classifier: f.classifier,
		Store:      f.dictStore,
		Dispatcher: f.dispatcher,
		Metrics:    f.metrics,
	})
	f.ticketsSvc = NewTicketService(TicketDependencies{
		TicketRepo:     f.tickets,
		UserRepo:       f.users,
		DepartmentRepo: f.departments,
		Classifier:     f.classifier,
		IDs:            repository.NewSequence(0),
		Dispatcher:     f.dispatcher,
	})
	return f
}

func (f *fixture) register(t *testing.T, email string, role domain.Role) *domain.User {
	t.Helper()
	user, _, _, err := f.auth.RegisterUser(context.Background(), RegisterInput{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "secret123",
		Role:     string(role),
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) eventTypes() []events.EventType {
	out := make([]events.EventType, 0, len(f.published))
	for _, e := range f.published {
		out = append(out, e.Type)
	}
	return out
}
