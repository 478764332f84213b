package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/classifier"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// keyedStore keeps values by normalized key, remembering insertion order.
type keyedStore[T any] struct {
	mu    sync.RWMutex
	order []string
	items map[string]T
}

func newKeyedStore[T any]() *keyedStore[T] {
	return &keyedStore[T]{items: make(map[string]T)}
}

func (s *keyedStore[T]) insert(key string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[key]; exists {
		return ErrAlreadyExists
	}
	s.items[key] = v
	s.order = append(s.order, key)
	return nil
}

func (s *keyedStore[T]) get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *keyedStore[T]) list() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.items[k])
	}
	return out
}

type memoryUserRepository struct {
	store *keyedStore[domain.User]
	now   func() time.Time
}

// NewMemoryUserRepository returns an in-process user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{store: newKeyedStore[domain.User](), now: time.Now}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	user.CreatedAt = r.now().UTC()
	return r.store.insert(user.Key(), cloneUser(*user))
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := r.store.get(domain.EmailKey(email))
	if !ok {
		return nil, ErrNotFound
	}
	u = cloneUser(u)
	return &u, nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	users := r.store.list()
	for i := range users {
		users[i] = cloneUser(users[i])
	}
	return users, nil
}

func cloneUser(u domain.User) domain.User {
	if u.Specialty != nil {
		s := *u.Specialty
		u.Specialty = &s
	}
	return u
}

type memoryDepartmentRepository struct {
	store *keyedStore[domain.Department]
	now   func() time.Time
}

// NewMemoryDepartmentRepository returns an in-process department store.
func NewMemoryDepartmentRepository() DepartmentRepository {
	return &memoryDepartmentRepository{store: newKeyedStore[domain.Department](), now: time.Now}
}

func (r *memoryDepartmentRepository) Create(_ context.Context, dept *domain.Department) error {
	dept.CreatedAt = r.now().UTC()
	return r.store.insert(dept.Key(), *dept)
}

func (r *memoryDepartmentRepository) GetByName(_ context.Context, name string) (*domain.Department, error) {
	d, ok := r.store.get(domain.DepartmentKey(name))
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *memoryDepartmentRepository) List(_ context.Context) ([]domain.Department, error) {
	return r.store.list(), nil
}

type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[int64]domain.Ticket
	now     func() time.Time
}

// NewMemoryTicketRepository returns an in-process ticket store.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{tickets: make(map[int64]domain.Ticket), now: time.Now}
}

func (r *memoryTicketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tickets[ticket.ID]; exists {
		return ErrAlreadyExists
	}
	now := r.now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *memoryTicketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.tickets[ticket.ID]
	if !ok {
		return ErrNotFound
	}
	ticket.CreatedAt = existing.CreatedAt
	ticket.RequesterEmail = existing.RequesterEmail
	ticket.Department = existing.Department
	ticket.UpdatedAt = r.now().UTC()
	r.tickets[ticket.ID] = cloneTicket(*ticket)
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id int64) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	t = cloneTicket(t)
	return &t, nil
}

func (r *memoryTicketRepository) List(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	filter = filter.normalized()
	r.mu.RLock()
	matched := make([]domain.Ticket, 0, len(r.tickets))
	for _, t := range r.tickets {
		if filter.matches(&t) {
			matched = append(matched, cloneTicket(t))
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if filter.Offset >= len(matched) {
		return []domain.Ticket{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

func (r *memoryTicketRepository) MaxID(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var maxID int64
	for id := range r.tickets {
		if id > maxID {
			maxID = id
		}
	}
	return maxID, nil
}

func (f TicketFilter) matches(t *domain.Ticket) bool {
	if f.RequesterEmail != nil && domain.EmailKey(t.RequesterEmail) != domain.EmailKey(*f.RequesterEmail) {
		return false
	}
	if f.Department != nil && domain.DepartmentKey(t.Department) != domain.DepartmentKey(*f.Department) {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if t.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func cloneTicket(t domain.Ticket) domain.Ticket {
	t.Emotions = append([]string(nil), t.Emotions...)
	t.Categories = append([]string(nil), t.Categories...)
	return t
}

type memoryDictionaryRepository struct {
	mu      sync.RWMutex
	entries map[classifier.Kind][]classifier.Entry
	keys    map[classifier.Kind]map[string]struct{}
}

// NewMemoryDictionaryRepository returns an in-process dictionary store.
func NewMemoryDictionaryRepository() DictionaryRepository {
	return &memoryDictionaryRepository{
		entries: make(map[classifier.Kind][]classifier.Entry),
		keys:    make(map[classifier.Kind]map[string]struct{}),
	}
}

func (r *memoryDictionaryRepository) Append(_ context.Context, kind classifier.Kind, entry classifier.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys, ok := r.keys[kind]
	if !ok {
		keys = make(map[string]struct{})
		r.keys[kind] = keys
	}
	if _, exists := keys[entry.Key()]; exists {
		return ErrAlreadyExists
	}
	keys[entry.Key()] = struct{}{}
	r.entries[kind] = append(r.entries[kind], entry)
	return nil
}

func (r *memoryDictionaryRepository) List(_ context.Context, kind classifier.Kind) ([]classifier.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]classifier.Entry(nil), r.entries[kind]...), nil
}
