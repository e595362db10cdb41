// Package repo declares the persistence contracts shared by the Postgres,
// Mongo and in-memory backends.
package repo

import (
	"context"
	"time"

	"github.com/diagnosis/parkingpro/internal/domain"
)

// UserRepository stores accounts. Find* return (nil, nil) when nothing
// matches. Create returns a *domain.DuplicateKeyError when username or email
// is already taken.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ContactRepository interface {
	Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error)
}

// BookingRepository is the booking ledger. It never rejects a booking for
// overlapping another one on the same slot.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// ListActiveSlots returns one slot per booking that is active and whose
	// expiry is after now, in insertion order.
	ListActiveSlots(ctx context.Context, now time.Time) ([]string, error)
	// CancelActive flips at most one booking for (user, slot) that is active
	// at now to cancelled, and reports whether it did.
	CancelActive(ctx context.Context, user, slot string, now time.Time) (bool, error)
	// ListByUser returns every booking of user, newest start first.
	ListByUser(ctx context.Context, user string) ([]domain.Booking, error)
}

// Store bundles the repositories of one backend.
type Store struct {
	Users    UserRepository
	Contacts ContactRepository
	Bookings BookingRepository
	// Ping checks the backend is reachable.
	Ping func(ctx context.Context) error
	// Close releases connections.
	Close func()
}
