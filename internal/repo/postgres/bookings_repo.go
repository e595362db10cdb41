package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type BookingRepoImpl struct{ pool *pgxpool.Pool }

func NewBookingRepo(pool *pgxpool.Pool) *BookingRepoImpl { return &BookingRepoImpl{pool: pool} }

const bookingCols = `id, user_name, slot, start_time, expiry_time, status`

func (r *BookingRepoImpl) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	const q = `
INSERT INTO bookings (user_name, slot, start_time, expiry_time, status)
VALUES ($1,$2,$3,$4,$5)
RETURNING ` + bookingCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := b.Status
	if status == "" {
		status = domain.BookingActive
	}
	return scanBooking(r.pool.QueryRow(ctx, q, b.User, b.Slot, b.StartTime, b.ExpiryTime, string(status)))
}

func (r *BookingRepoImpl) ListActiveSlots(ctx context.Context, now time.Time) ([]string, error) {
	const q = `SELECT slot FROM bookings WHERE status='active' AND expiry_time > $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]string, 0)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *BookingRepoImpl) CancelActive(ctx context.Context, user, slot string, now time.Time) (bool, error) {
	const q = `
UPDATE bookings SET status='cancelled'
WHERE id = (
    SELECT id FROM bookings
    WHERE user_name=$1 AND slot=$2 AND status='active' AND expiry_time > $3
    ORDER BY id
    LIMIT 1
)`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	ct, err := r.pool.Exec(ctx, q, user, slot, now)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *BookingRepoImpl) ListByUser(ctx context.Context, user string) ([]domain.Booking, error) {
	const q = `SELECT ` + bookingCols + ` FROM bookings WHERE user_name=$1 ORDER BY start_time DESC, id DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bs := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bs = append(bs, *b)
	}
	return bs, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		id     int64
		status string
		b      domain.Booking
	)
	if err := row.Scan(&id, &b.User, &b.Slot, &b.StartTime, &b.ExpiryTime, &status); err != nil {
		return nil, err
	}
	b.ID = strconv.FormatInt(id, 10)
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

var _ repo.BookingRepository = (*BookingRepoImpl)(nil)
