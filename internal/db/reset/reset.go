package reset

import (
	"context"
	"errors"
	e "resetpoint/internal/core/domain/errors"
	"resetpoint/internal/core/domain/reset"
	"resetpoint/internal/core/domain/user"
	"resetpoint/internal/db"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const USER_ID_CONSTRAINT_NAME = "password_reset_request_user_id_idx"

type PgxRequestRepository struct {
	querier db.Querier
}

func NewPgxRequestRepository(querier db.Querier) *PgxRequestRepository {
	if querier == nil {
		panic(e.NewNilArgumentError("querier"))
	}
	return &PgxRequestRepository{querier: querier}
}

// Create clears expired rows for the user first, so only a live pending
// request raises the uniqueness violation.
func (r *PgxRequestRepository) Create(ctx context.Context, input reset.CreateInput) (req reset.Request, err error) {
	_, err = r.querier.Exec(
		ctx,
		`DELETE FROM password_reset_request WHERE user_id = $1 AND expires_at <= $2`,
		int64(input.UserID),
		input.CreatedAt,
	)
	if err != nil {
		return req, err
	}

	id := uuid.New()
	_, err = r.querier.Exec(
		ctx,
		`INSERT INTO password_reset_request (id, user_id, token_digest, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		id.String(),
		int64(input.UserID),
		string(input.TokenDigest),
		input.ExpiresAt,
		input.CreatedAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == USER_ID_CONSTRAINT_NAME {
			return req, reset.ErrResetAlreadyPending
		}
	}
	if err != nil {
		return req, err
	}
	return reset.Request{
		ID:          reset.ID(id.String()),
		UserID:      input.UserID,
		TokenDigest: input.TokenDigest,
		ExpiresAt:   input.ExpiresAt,
		CreatedAt:   input.CreatedAt,
	}, nil
}

func (r *PgxRequestRepository) GetByID(ctx context.Context, id reset.ID) (req reset.Request, err error) {
	parsedID, err := uuid.Parse(string(id))
	if err != nil {
		return req, reset.ErrRequestDoesNotExist
	}

	var (
		userID      int64
		tokenDigest string
		expiresAt   time.Time
		createdAt   time.Time
	)
	err = r.querier.QueryRow(
		ctx,
		`SELECT user_id, token_digest, expires_at, created_at
		 FROM password_reset_request
		 WHERE id = $1`,
		parsedID.String(),
	).Scan(&userID, &tokenDigest, &expiresAt, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return req, reset.ErrRequestDoesNotExist
	}
	if err != nil {
		return req, err
	}
	return reset.Request{
		ID:          reset.ID(parsedID.String()),
		UserID:      user.ID(userID),
		TokenDigest: reset.TokenDigest(tokenDigest),
		ExpiresAt:   expiresAt,
		CreatedAt:   createdAt,
	}, nil
}

func (r *PgxRequestRepository) DeleteAllForUser(ctx context.Context, userID user.ID) ([]reset.ID, error) {
	rows, err := r.querier.Query(
		ctx,
		`DELETE FROM password_reset_request WHERE user_id = $1 RETURNING id`,
		int64(userID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deleted := make([]reset.ID, 0, 1)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		deleted = append(deleted, reset.ID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return deleted, nil
}
