// Package assetrepo manages repository layer of assets.
package assetrepo

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

// RepoPGS facilitates asset repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns asset RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

func scanAsset(row interface{ Scan(...interface{}) error }) (domain.Asset, error) {
	var (
		a      domain.Asset
		symbol sql.NullString
	)

	err := row.Scan(
		&a.ID,
		&a.Ticker,
		&symbol,
		&a.Label,
		&a.Precision,
		&a.Type,
		&a.CreatedAt,
	)

	a.Symbol = symbol.String

	return a, err
}

const createQuery = `
INSERT INTO
    assets (id, ticker, symbol, label, precision, type)
VALUES
    ($1, $2, $3, $4, $5, $6)
RETURNING id, ticker, symbol, label, precision, type, created_at
`

// Create creates the asset and then returns it.
func (r *RepoPGS) Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	symbol := sql.NullString{String: arg.Symbol, Valid: arg.Symbol != ""}

	row := r.db.QueryRowContext(ctx, createQuery,
		uuid.NewString(),
		arg.Ticker,
		symbol,
		arg.Label,
		arg.Precision,
		domain.AssetTypeCurrency,
	)

	a, err := scanAsset(row)
	if err != nil {
		l.Error().Err(err).Send()

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "assets_ticker_key" {
				return a, domain.ErrTickerAlreadyExists
			}
		}

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getQuery = `
SELECT
	id, ticker, symbol, label, precision, type, created_at
FROM assets
WHERE id = $1
`

// Get returns the asset with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	a, err := scanAsset(r.db.QueryRowContext(ctx, getQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAssetNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, ticker, symbol, label, precision, type, created_at
FROM assets
ORDER BY ticker
`

// List returns all assets ordered by ticker.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Asset, error) {
	return r.list(ctx, listQuery)
}

const listByIDsQuery = `
SELECT
	id, ticker, symbol, label, precision, type, created_at
FROM assets
WHERE id = ANY($1)
ORDER BY ticker
`

// ListByIDs returns the assets with the given ids.
func (r *RepoPGS) ListByIDs(ctx context.Context, ids []string) ([]domain.Asset, error) {
	return r.list(ctx, listByIDsQuery, pq.Array(ids))
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Asset, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Asset{}

	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
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
