// Package accountrepo manages repository layer of accounts and their ownerships.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/dbpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (id, name)
VALUES
    ($1, $2)
RETURNING id, name, created_at
`

// Create creates the account and then returns it.
func (r *RepoPGS) Create(ctx context.Context, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, uuid.NewString(), name)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, name, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listByIDsQuery = `
SELECT
	id, name, created_at
FROM accounts
WHERE id = ANY($1)
ORDER BY name
`

// ListByIDs returns the accounts with the given ids.
func (r *RepoPGS) ListByIDs(ctx context.Context, ids []string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByIDsQuery, pq.Array(ids))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const listOwnedQuery = `
SELECT
	a.id, a.name, a.created_at
FROM accounts a
JOIN accounts_ownerships o ON o.account_id = a.id
WHERE o.user_id = $1
ORDER BY a.name
`

// ListOwned returns all accounts owned by the given user.
func (r *RepoPGS) ListOwned(ctx context.Context, userID string) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listOwnedQuery, userID)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const createOwnershipQuery = `
INSERT INTO
    accounts_ownerships (user_id, account_id)
VALUES
    ($1, $2)
RETURNING id, user_id, account_id
`

// CreateOwnership makes the user an owner of the account.
func (r *RepoPGS) CreateOwnership(ctx context.Context, userID, accountID string) (domain.AccountOwnership, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createOwnershipQuery, userID, accountID)

	var o domain.AccountOwnership

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.AccountID,
	)

	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "accounts_ownerships_user_id_fkey":
				return o, domain.ErrUserNotFound
			case "accounts_ownerships_account_id_fkey":
				return o, domain.ErrAccountNotFound
			case "accounts_ownerships_user_id_account_id_key":
				return o, domain.ErrOwnershipAlreadyExists
			}
		}

		return o, errorspkg.ErrInternal
	}

	return o, nil
}

const listOwnershipsQuery = `
SELECT
	id, user_id, account_id
FROM accounts_ownerships
WHERE account_id = ANY($1)
ORDER BY id
`

// ListOwnerships returns all ownership rows referencing the given accounts.
func (r *RepoPGS) ListOwnerships(ctx context.Context, accountIDs []string) ([]domain.AccountOwnership, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listOwnershipsQuery, pq.Array(accountIDs))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.AccountOwnership{}

	for rows.Next() {
		var o domain.AccountOwnership
		if err := rows.Scan(&o.ID, &o.UserID, &o.AccountID); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, o)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
