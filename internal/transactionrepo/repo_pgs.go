// Package transactionrepo manages repository layer of ledger transactions.
package transactionrepo

import (
	"context"
	"database/sql"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/pluto-fin/pluto/internal/accountrepo"
	"github.com/pluto-fin/pluto/internal/assetrepo"
	"github.com/pluto-fin/pluto/internal/csrfrepo"
	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/internal/userrepo"
	"github.com/pluto-fin/pluto/pkg/dbpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
	"github.com/pluto-fin/pluto/pkg/moneypkg"
)

// RepoPGS facilitates transaction repository layer logic.
type RepoPGS struct {
	db      dbpkg.SQLInterface
	conn    *sql.DB
	csrfTTL time.Duration
}

// NewTxRepoPGS returns transaction RepoPGS bound to an existing transaction.
func NewTxRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

// NewRepoPGS returns transaction RepoPGS with a connection to start transactions.
func NewRepoPGS(db *sql.DB, csrfTTL time.Duration) *RepoPGS {
	return &RepoPGS{
		db:      db,
		conn:    db,
		csrfTTL: csrfTTL,
	}
}

const transactionColumns = `id, note,
	credit_account_id, debit_account_id,
	credit_asset_id, debit_asset_id,
	credit_stamp, debit_stamp,
	credit_amount, debit_amount,
	credit_settled, debit_settled,
	created_at`

const createQuery = `
INSERT INTO
    transactions (id, note,
        credit_account_id, debit_account_id,
        credit_asset_id, debit_asset_id,
        credit_stamp, debit_stamp,
        credit_amount, debit_amount,
        credit_settled, debit_settled)
VALUES
    ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + transactionColumns

type createParams struct {
	note            string
	creditAccountID string
	debitAccountID  string
	creditAssetID   string
	debitAssetID    string
	stamp           time.Time
	creditAmount    int64
	debitAmount     int64
	creditSettled   bool
	debitSettled    bool
}

func (r *RepoPGS) create(ctx context.Context, db dbpkg.SQLInterface, arg createParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	row := db.QueryRowContext(ctx, createQuery,
		uuid.NewString(),
		arg.note,
		arg.creditAccountID,
		arg.debitAccountID,
		arg.creditAssetID,
		arg.debitAssetID,
		arg.stamp,
		arg.stamp,
		arg.creditAmount,
		arg.debitAmount,
		arg.creditSettled,
		arg.debitSettled,
	)

	t, err := scanTransaction(row)
	if err != nil {
		l.Error().Err(err).Send()
		return t, errorspkg.ErrInternal
	}

	return t, nil
}

// CreateTx validates and atomically persists a new double-leg transaction.
//
// All checks run inside one database transaction in a fixed order, so the
// first failing check determines the reported error: CSRF, note, timestamp,
// account resolution, ownership, assets, amounts, distinct accounts. Any
// failure rolls the whole unit back, including the CSRF token consumption
// and any ad-hoc account inserts.
func (r *RepoPGS) CreateTx(ctx context.Context, viewer domain.User, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			l.Error().Err(err).Send()
		}
	}()

	csrfRepo := csrfrepo.NewRepoPGS(tx)
	accountRepo := accountrepo.NewRepoPGS(tx)
	assetRepo := assetrepo.NewRepoPGS(tx)

	cutoff := time.Now().Add(-r.csrfTTL)
	if err := csrfRepo.Consume(ctx, arg.CSRF, viewer.ID, domain.CSRFUsageNewTransaction, cutoff); err != nil {
		return domain.Transaction{}, err
	}

	note, err := domain.ValidateNote(arg.Note)
	if err != nil {
		return domain.Transaction{}, err
	}

	loc, err := time.LoadLocation(viewer.Timezone)
	if err != nil {
		l.Error().Err(err).Str("timezone", viewer.Timezone).Msg("stored timezone does not parse")
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	stamp, err := time.ParseInLocation(domain.StampLayout, strings.TrimSpace(arg.Timestamp), loc)
	if err != nil {
		return domain.Transaction{}, domain.ErrInvalidTimestamp
	}

	creditAccount, creditCreated, err := resolveAccount(ctx, accountRepo,
		arg.CreditAccount, arg.CreateCreditAccount, domain.ErrMissingCreditAccount)
	if err != nil {
		return domain.Transaction{}, err
	}

	debitAccount, debitCreated, err := resolveAccount(ctx, accountRepo,
		arg.DebitAccount, arg.CreateDebitAccount, domain.ErrMissingDebitAccount)
	if err != nil {
		return domain.Transaction{}, err
	}

	ownerships, err := accountRepo.ListOwnerships(ctx, []string{creditAccount.ID, debitAccount.ID})
	if err != nil {
		return domain.Transaction{}, err
	}

	flags := domain.NewOwnershipFlags(ownerships, creditAccount.ID, debitAccount.ID, viewer.ID)

	// Newly created accounts are exempt from the ownership gate.
	creditHeld := flags.CreditOwnedByViewer || creditCreated
	debitHeld := flags.DebitOwnedByViewer || debitCreated

	if !creditHeld && !debitHeld {
		return domain.Transaction{}, domain.ErrAccountsNotOwned
	}

	creditAsset, err := resolveAsset(ctx, assetRepo, arg.CreditAssetInput(),
		domain.ErrMissingCreditAsset, domain.ErrInvalidCreditAsset)
	if err != nil {
		return domain.Transaction{}, err
	}

	debitAsset, err := resolveAsset(ctx, assetRepo, arg.DebitAssetInput(),
		domain.ErrMissingDebitAsset, domain.ErrInvalidDebitAsset)
	if err != nil {
		return domain.Transaction{}, err
	}

	creditAmount, err := parseAmount(arg.CreditAmountInput(), creditAsset.Precision,
		domain.ErrMissingCreditAmount, domain.ErrInvalidCreditAmount)
	if err != nil {
		return domain.Transaction{}, err
	}

	debitAmount, err := parseAmount(arg.DebitAmountInput(), debitAsset.Precision,
		domain.ErrMissingDebitAmount, domain.ErrInvalidDebitAmount)
	if err != nil {
		return domain.Transaction{}, err
	}

	if creditAccount.ID == debitAccount.ID {
		return domain.Transaction{}, domain.ErrMatchingAccounts
	}

	creditSettled, debitSettled := flags.Settlement()

	transaction, err := r.create(ctx, tx, createParams{
		note:            note,
		creditAccountID: creditAccount.ID,
		debitAccountID:  debitAccount.ID,
		creditAssetID:   creditAsset.ID,
		debitAssetID:    debitAsset.ID,
		stamp:           stamp.UTC(),
		creditAmount:    creditAmount,
		debitAmount:     debitAmount,
		creditSettled:   creditSettled,
		debitSettled:    debitSettled,
	})
	if err != nil {
		return domain.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Send()
		return domain.Transaction{}, errorspkg.ErrInternal
	}

	return transaction, nil
}

func resolveAccount(ctx context.Context, repo *accountrepo.RepoPGS, input string, create bool, missingErr domain.ValidationError) (domain.Account, bool, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return domain.Account{}, false, missingErr
	}

	if create {
		if utf8.RuneCountInString(input) > domain.AccountNameMaxLen {
			return domain.Account{}, false, missingErr
		}

		account, err := repo.Create(ctx, input)
		if err != nil {
			return domain.Account{}, false, err
		}

		return account, true, nil
	}

	if _, err := uuid.Parse(input); err != nil {
		return domain.Account{}, false, missingErr
	}

	account, err := repo.Get(ctx, input)
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return domain.Account{}, false, missingErr
		}

		return domain.Account{}, false, err
	}

	return account, false, nil
}

func resolveAsset(ctx context.Context, repo *assetrepo.RepoPGS, input string, missingErr, invalidErr domain.ValidationError) (domain.Asset, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return domain.Asset{}, missingErr
	}

	if _, err := uuid.Parse(input); err != nil {
		return domain.Asset{}, invalidErr
	}

	asset, err := repo.Get(ctx, input)
	if err != nil {
		if err == domain.ErrAssetNotFound {
			return domain.Asset{}, invalidErr
		}

		return domain.Asset{}, err
	}

	return asset, nil
}

func parseAmount(input string, precision int32, missingErr, invalidErr domain.ValidationError) (int64, error) {
	input = strings.TrimSpace(input)

	if input == "" {
		return 0, missingErr
	}

	amount, err := decimal.NewFromString(input)
	if err != nil {
		return 0, invalidErr
	}

	minor := moneypkg.ToMinorUnits(amount, precision)
	if minor <= 0 {
		return 0, invalidErr
	}

	return minor, nil
}

const listUnsettledQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE NOT (credit_settled AND debit_settled)
ORDER BY credit_stamp DESC, created_at DESC
`

// ListUnsettled returns all transactions with at least one unconfirmed leg,
// newest first.
func (r *RepoPGS) ListUnsettled(ctx context.Context) ([]domain.Transaction, error) {
	return r.list(ctx, listUnsettledQuery)
}

const listSettledQuery = `
SELECT ` + transactionColumns + `
FROM transactions
WHERE credit_settled AND debit_settled
ORDER BY credit_stamp DESC, created_at DESC
LIMIT $1 OFFSET $2
`

// ListSettled returns one page of fully settled transactions, newest first.
func (r *RepoPGS) ListSettled(ctx context.Context, limit, offset int32) ([]domain.Transaction, error) {
	return r.list(ctx, listSettledQuery, limit, offset)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, t)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

// References fetches the users, assets, accounts and ownership rows needed
// to resolve the given transactions, scoped to the ids they reference.
func (r *RepoPGS) References(ctx context.Context, transactions []domain.Transaction) (domain.References, error) {
	var refs domain.References

	accountIDs := collect(transactions, func(t domain.Transaction) []string {
		return []string{t.CreditAccountID, t.DebitAccountID}
	})
	assetIDs := collect(transactions, func(t domain.Transaction) []string {
		return []string{t.CreditAssetID, t.DebitAssetID}
	})

	if len(accountIDs) == 0 {
		return refs, nil
	}

	accountRepo := accountrepo.NewRepoPGS(r.db)
	assetRepo := assetrepo.NewRepoPGS(r.db)
	userRepo := userrepo.NewTxRepoPGS(r.db)

	accounts, err := accountRepo.ListByIDs(ctx, accountIDs)
	if err != nil {
		return refs, err
	}

	assets, err := assetRepo.ListByIDs(ctx, assetIDs)
	if err != nil {
		return refs, err
	}

	ownerships, err := accountRepo.ListOwnerships(ctx, accountIDs)
	if err != nil {
		return refs, err
	}

	userIDs := make([]string, 0, len(ownerships))
	seen := make(map[string]bool, len(ownerships))

	for _, o := range ownerships {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
	}

	users, err := userRepo.ListByIDs(ctx, userIDs)
	if err != nil {
		return refs, err
	}

	refs.Users = users
	refs.Assets = assets
	refs.Accounts = accounts
	refs.Ownerships = ownerships

	return refs, nil
}

func collect(transactions []domain.Transaction, ids func(domain.Transaction) []string) []string {
	var out []string

	seen := make(map[string]bool)

	for _, t := range transactions {
		for _, id := range ids(t) {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	return out
}

func scanTransaction(row interface{ Scan(...interface{}) error }) (domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.Note,
		&t.CreditAccountID,
		&t.DebitAccountID,
		&t.CreditAssetID,
		&t.DebitAssetID,
		&t.CreditStamp,
		&t.DebitStamp,
		&t.CreditAmount,
		&t.DebitAmount,
		&t.CreditSettled,
		&t.DebitSettled,
		&t.CreatedAt,
	)

	return t, err
}
