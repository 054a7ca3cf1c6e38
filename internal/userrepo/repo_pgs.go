// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/accountrepo"
	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/dbpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db   dbpkg.SQLInterface
	conn *sql.DB
}

// NewTxRepoPGS returns user RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns user RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB) *RepoPGS {
	return &RepoPGS{
		db:   db,
		conn: db,
	}
}

const userColumns = `id, email, hashed_password, timezone, favorite_asset_id, favorite_account_id, created_at`

const createQuery = `
INSERT INTO
    users (id, email, hashed_password, timezone, favorite_asset_id, favorite_account_id)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING ` + userColumns

func (r *RepoPGS) create(ctx context.Context, db dbpkg.SQLInterface, arg domain.CreateUserParams, favoriteAccountID string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := db.QueryRowContext(ctx, createQuery,
		uuid.NewString(),
		arg.Email,
		arg.HashedPassword,
		arg.Timezone,
		arg.FavoriteAssetID,
		favoriteAccountID,
	)

	u, err := scanUser(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Constraint {
			case "users_email_key":
				return u, domain.ErrEmailAlreadyExists
			case "users_favorite_asset_id_fkey":
				return u, domain.ErrAssetNotFound
			}
		}

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

// Create registers a user together with their first account. The account
// insert, the user insert and the ownership row form a single transaction.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	accountRepo := accountrepo.NewRepoPGS(tx)

	account, err := accountRepo.Create(ctx, arg.AccountName)
	if err != nil {
		return domain.User{}, err
	}

	user, err := r.create(ctx, tx, arg, account.ID)
	if err != nil {
		return domain.User{}, err
	}

	if _, err := accountRepo.CreateOwnership(ctx, user.ID, account.ID); err != nil {
		return domain.User{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	return user, nil
}

const getQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.User, error) {
	return r.get(ctx, getQuery, id)
}

const getByEmailQuery = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
`

// GetByEmail returns the user with the given email.
func (r *RepoPGS) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.get(ctx, getByEmailQuery, email)
}

func (r *RepoPGS) get(ctx context.Context, query, key string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	u, err := scanUser(r.db.QueryRowContext(ctx, query, key))
	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const listByIDsQuery = `
SELECT ` + userColumns + `
FROM users
WHERE id = ANY($1)
ORDER BY email
`

// ListByIDs returns the users with the given ids.
func (r *RepoPGS) ListByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listByIDsQuery, pq.Array(ids))
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.User{}

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, u)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

func scanUser(row interface{ Scan(...interface{}) error }) (domain.User, error) {
	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.HashedPassword,
		&u.Timezone,
		&u.FavoriteAssetID,
		&u.FavoriteAccountID,
		&u.CreatedAt,
	)

	return u, err
}
