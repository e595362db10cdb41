package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/diagnosis/parkingpro/internal/domain"
	"github.com/diagnosis/parkingpro/internal/repo"
)

type UserRepoImpl struct{ pool *pgxpool.Pool }

func NewUserRepo(pool *pgxpool.Pool) *UserRepoImpl { return &UserRepoImpl{pool: pool} }

const userCols = `id, fullname, username, email, password_hash`

func (r *UserRepoImpl) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (fullname, username, email, password_hash)
VALUES ($1,$2,$3,$4)
RETURNING ` + userCols
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	out, err := scanUser(r.pool.QueryRow(ctx, q, u.Fullname, u.Username, u.Email, u.PasswordHash))
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return out, nil
}

func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE username=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return findUser(r.pool.QueryRow(ctx, q, username))
}

func (r *UserRepoImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userCols + ` FROM users WHERE email=$1`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return findUser(r.pool.QueryRow(ctx, q, email))
}

func findUser(row pgx.Row) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		id int64
		u  domain.User
	)
	if err := row.Scan(&id, &u.Fullname, &u.Username, &u.Email, &u.PasswordHash); err != nil {
		return nil, err
	}
	u.ID = strconv.FormatInt(id, 10)
	return &u, nil
}

var _ repo.UserRepository = (*UserRepoImpl)(nil)
