package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type ContactRepoImpl struct{ pool *pgxpool.Pool }

func NewContactRepo(pool *pgxpool.Pool) *ContactRepoImpl { return &ContactRepoImpl{pool: pool} }

func (r *ContactRepoImpl) Create(ctx context.Context, m *domain.ContactMessage) (*domain.ContactMessage, error) {
	const q = `
INSERT INTO messages (name, email, message, submitted_at)
VALUES ($1,$2,$3,$4)
RETURNING id`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var id int64
	if err := r.pool.QueryRow(ctx, q, m.Name, m.Email, m.Message, m.SubmittedAt).Scan(&id); err != nil {
		return nil, err
	}
	out := *m
	out.ID = strconv.FormatInt(id, 10)
	return &out, nil
}

var _ repo.ContactRepository = (*ContactRepoImpl)(nil)
