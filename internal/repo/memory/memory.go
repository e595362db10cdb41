// Package memory is a process-local backend for development and tests.
// Data is lost on restart.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type Users struct {
	mu     sync.RWMutex
	users  []domain.User
	nextID int
}

func NewUsers() *Users { return &Users{} }

func (s *Users) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return nil, &domain.DuplicateKeyError{Field: "username"}
		}
		if existing.Email == u.Email {
			return nil, &domain.DuplicateKeyError{Field: "email"}
		}
	}

	s.nextID++
	out := *u
	out.ID = strconv.Itoa(s.nextID)
	s.users = append(s.users, out)
	return &out, nil
}

func (s *Users) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return u.Username == username }), nil
}

func (s *Users) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.find(func(u domain.User) bool { return u.Email == email }), nil
}

func (s *Users) find(match func(domain.User) bool) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			out := u
			return &out
		}
	}
	return nil
}

type Contacts struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
}

func NewContacts() *Contacts { return &Contacts{} }

func (s *Contacts) Create(_ context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *m
	out.ID = strconv.Itoa(len(s.messages) + 1)
	s.messages = append(s.messages, out)
	return &out, nil
}

// All returns a copy of every stored message.
func (s *Contacts) All() []domain.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ContactMessage(nil), s.messages...)
}

type Bookings struct {
	mu       sync.RWMutex
	bookings []domain.Booking
}

func NewBookings() *Bookings { return &Bookings{} }

func (s *Bookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := *b
	if out.Status == "" {
		out.Status = domain.BookingActive
	}
	out.ID = strconv.Itoa(len(s.bookings) + 1)
	s.bookings = append(s.bookings, out)
	return &out, nil
}

func (s *Bookings) ListActiveSlots(_ context.Context, now time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	slots := make([]string, 0)
	for i := range s.bookings {
		if s.bookings[i].IsActive(now) {
			slots = append(slots, s.bookings[i].Slot)
		}
	}
	return slots, nil
}

func (s *Bookings) CancelActive(_ context.Context, user, slot string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		b := &s.bookings[i]
		if b.User == user && b.Slot == slot && b.IsActive(now) {
			b.Status = domain.BookingCancelled
			return true, nil
		}
	}
	return false, nil
}

func (s *Bookings) ListByUser(_ context.Context, user string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Booking, 0)
	for i := len(s.bookings) - 1; i >= 0; i-- {
		if s.bookings[i].User == user {
			out = append(out, s.bookings[i])
		}
	}
	// newest start first; equal starts keep the later insert first
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

// NewStore returns an empty in-memory backend.
func NewStore() *repo.Store {
	return &repo.Store{
		Users:    NewUsers(),
		Contacts: NewContacts(),
		Bookings: NewBookings(),
		Ping:     func(context.Context) error { return nil },
		Close:    func() {},
	}
}

var (
	_ repo.UserRepository    = (*Users)(nil)
	_ repo.ContactRepository = (*Contacts)(nil)
	_ repo.BookingRepository = (*Bookings)(nil)
)
