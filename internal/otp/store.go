package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/diagnosis/parkingpro/internal/domain"
)

// Entry is one outstanding code for an email address.
type Entry struct {
	Code      int       `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its deadline at now.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store keeps at most one Entry per email. Put overwrites. Get returns
// ok=false when nothing is stored; expiry is the caller's concern so that an
// expired entry can still be told apart from a missing one.
type Store interface {
	Put(ctx context.Context, email string, e Entry) error
	Get(ctx context.Context, email string) (Entry, bool, error)
	Delete(ctx context.Context, email string) error
}

// Generator returns a fresh code.
type Generator func() (int, error)

// GenerateCode draws a uniform code in [100000, 999999] from crypto/rand.
func GenerateCode() (int, error) {
	span := big.NewInt(domain.MaxOTPCode - domain.MinOTPCode + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return domain.MinOTPCode + int(n.Int64()), nil
}
