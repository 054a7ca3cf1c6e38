// Package csrfrepo manages repository layer of one-time CSRF tokens.
package csrfrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/dbpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
)

// RepoPGS facilitates CSRF token repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns CSRF token RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const issueQuery = `
INSERT INTO
    valid_csrf_tokens (token, user_id, usage)
VALUES
    ($1, $2, $3)
RETURNING token, user_id, usage, created_at
`

// Issue mints a one-time token for the given user and usage.
func (r *RepoPGS) Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, issueQuery, uuid.NewString(), userID, usage)

	var t domain.CSRFToken

	err := row.Scan(
		&t.Token,
		&t.UserID,
		&t.Usage,
		&t.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "valid_csrf_tokens_user_id_fkey" {
				return t, domain.ErrUserNotFound
			}
		}

		return t, errorspkg.ErrInternal
	}

	return t, nil
}

const consumeQuery = `
DELETE FROM valid_csrf_tokens
WHERE token = $1 AND user_id = $2 AND usage = $3 AND created_at >= $4
RETURNING token
`

// Consume atomically validates and deletes the token. A token that was never
// issued, was already consumed, belongs to another user or usage, or was
// minted before the cutoff is rejected the same way.
func (r *RepoPGS) Consume(ctx context.Context, token, userID, usage string, cutoff time.Time) error {
	l := zerolog.Ctx(ctx)

	if _, err := uuid.Parse(token); err != nil {
		return domain.ErrInvalidCSRF
	}

	var consumed string

	err := r.db.QueryRowContext(ctx, consumeQuery, token, userID, usage, cutoff).Scan(&consumed)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ErrInvalidCSRF
		}

		l.Error().Err(err).Send()

		return errorspkg.ErrInternal
	}

	return nil
}
