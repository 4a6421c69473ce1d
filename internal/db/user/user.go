package user

import (
	"context"
	"database/sql"
	"errors"
	c "resetpoint/internal/core/domain/common"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/db"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "app_user_email_idx"

type PgxDirectory struct {
	querier db.Querier
}

func NewPgxDirectory(querier db.Querier) *PgxDirectory {
	if querier == nil {
		panic(e.NewNilArgumentError("querier"))
	}
	return &PgxDirectory{querier: querier}
}

func (r *PgxDirectory) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.querier.QueryRow(
		ctx,
		`INSERT INTO app_user (email, password_hash, created_at)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, created_at, deleted_at`,
		string(input.Email),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	return u, err
}

func (r *PgxDirectory) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.querier.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at, deleted_at
		 FROM app_user
		 WHERE email = $1`,
		string(email),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxDirectory) GetActiveByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.querier.QueryRow(
		ctx,
		`SELECT id, email, password_hash, created_at, deleted_at
		 FROM app_user
		 WHERE id = $1 AND deleted_at IS NULL`,
		int64(id),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	return u, err
}

func (r *PgxDirectory) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	commandTag, err := r.querier.Exec(
		ctx,
		`UPDATE app_user SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(password),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		passwordHash string
		createdAt    time.Time
		deletedAt    sql.NullTime
	)
	if err = row.Scan(&id, &email, &passwordHash, &createdAt, &deletedAt); err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt,
		DeletedAt:    c.NewOptional(deletedAt.Time, deletedAt.Valid),
	}, nil
}
