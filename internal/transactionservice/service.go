// Package transactionservice manages business logic layer of transactions.
package transactionservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/configpkg"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
	"github.com/pluto-fin/pluto/pkg/moneypkg"
)

// Repo provides data access layer interface needed by transaction service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transactionservice
type Repo interface {
	CreateTx(ctx context.Context, viewer domain.User, arg domain.CreateTransactionParams) (domain.Transaction, error)
	ListUnsettled(ctx context.Context) ([]domain.Transaction, error)
	ListSettled(ctx context.Context, limit, offset int32) ([]domain.Transaction, error)
	References(ctx context.Context, transactions []domain.Transaction) (domain.References, error)
}

// Service facilitates transaction service layer logic.
type Service struct {
	repo        Repo
	pageSizeMin int32
	pageSizeMax int32
}

// New returns transaction service struct to manage transaction business logic.
func New(tr Repo, config configpkg.Config) *Service {
	return &Service{
		repo:        tr,
		pageSizeMin: config.PageSizeMin,
		pageSizeMax: config.PageSizeMax,
	}
}

// Create validates and persists a new transaction on behalf of the viewer.
func (s *Service) Create(ctx context.Context, viewer domain.User, arg domain.CreateTransactionParams) (domain.Transaction, error) {
	return s.repo.CreateTx(ctx, viewer, arg)
}

// Page is one rendered page of the transactions list: all unsettled
// transactions followed by one page of settled ones.
type Page struct {
	Unsettled []domain.ResolvedTransaction
	Settled   []domain.ResolvedTransaction
	Number    int32
	Size      int32
}

// ClampPageSize bounds a requested page size to the configured window.
func (s *Service) ClampPageSize(size int32) int32 {
	if size < s.pageSizeMin {
		return s.pageSizeMin
	}

	if size > s.pageSizeMax {
		return s.pageSizeMax
	}

	return size
}

// List returns the transactions page as seen by the viewer. Stored rows that
// no longer resolve against the reference data are silently dropped from the
// page rather than failing the request.
func (s *Service) List(ctx context.Context, viewer domain.User, page, size int32) (Page, error) {
	l := zerolog.Ctx(ctx)

	if page < 1 {
		page = 1
	}

	size = s.ClampPageSize(size)

	loc, err := time.LoadLocation(viewer.Timezone)
	if err != nil {
		l.Error().Err(err).Str("timezone", viewer.Timezone).Msg("stored timezone does not parse")
		return Page{}, errorspkg.ErrInternal
	}

	unsettled, err := s.repo.ListUnsettled(ctx)
	if err != nil {
		return Page{}, err
	}

	settled, err := s.repo.ListSettled(ctx, size, (page-1)*size)
	if err != nil {
		return Page{}, err
	}

	refs, err := s.repo.References(ctx, append(append([]domain.Transaction{}, unsettled...), settled...))
	if err != nil {
		return Page{}, err
	}

	result := Page{
		Unsettled: resolveAll(unsettled, viewer.ID, loc, refs),
		Settled:   resolveAll(settled, viewer.ID, loc, refs),
		Number:    page,
		Size:      size,
	}

	return result, nil
}

func resolveAll(transactions []domain.Transaction, viewerID string, loc *time.Location, refs domain.References) []domain.ResolvedTransaction {
	resolved := []domain.ResolvedTransaction{}

	for _, t := range transactions {
		r, ok := Resolve(t, viewerID, loc, refs)
		if !ok {
			continue
		}

		resolved = append(resolved, r)
	}

	return resolved
}

// Resolve projects a stored transaction into its display form for the given
// viewer. The second return value is false when a referenced asset or account
// row is gone, in which case the transaction is excluded from list views.
func Resolve(t domain.Transaction, viewerID string, loc *time.Location, refs domain.References) (domain.ResolvedTransaction, bool) {
	creditAsset, ok := refs.Asset(t.CreditAssetID)
	if !ok {
		return domain.ResolvedTransaction{}, false
	}

	debitAsset, ok := refs.Asset(t.DebitAssetID)
	if !ok {
		return domain.ResolvedTransaction{}, false
	}

	credit, ok := resolveParty(t.CreditAccountID, viewerID, refs)
	if !ok {
		return domain.ResolvedTransaction{}, false
	}

	debit, ok := resolveParty(t.DebitAccountID, viewerID, refs)
	if !ok {
		return domain.ResolvedTransaction{}, false
	}

	return domain.ResolvedTransaction{
		Note:         t.Note,
		Credit:       credit,
		Debit:        debit,
		CreditAsset:  creditAsset,
		DebitAsset:   debitAsset,
		CreditAmount: moneypkg.FromMinorUnits(t.CreditAmount, creditAsset.Precision),
		DebitAmount:  moneypkg.FromMinorUnits(t.DebitAmount, debitAsset.Precision),
		CreditStamp:  t.CreditStamp.In(loc),
		DebitStamp:   t.DebitStamp.In(loc),
	}, true
}

// resolveParty picks the leg's display variant. An account that is unowned or
// owned by the viewer shows as the account itself; one owned only by others
// shows as its owners. Ownership rows pointing at deleted users are skipped,
// so the owners list may be empty.
func resolveParty(accountID, viewerID string, refs domain.References) (domain.TransactionParty, bool) {
	account, ok := refs.Account(accountID)
	if !ok {
		return domain.TransactionParty{}, false
	}

	ownerIDs := domain.OwnerIDs(refs.Ownerships, accountID)

	if len(ownerIDs) == 0 || domain.OwnedBy(refs.Ownerships, accountID, viewerID) {
		return domain.TransactionParty{Account: &account}, true
	}

	owners := []domain.User{}

	for _, id := range ownerIDs {
		owner, ok := refs.User(id)
		if !ok {
			continue
		}

		owner.HashedPassword = ""
		owners = append(owners, owner)
	}

	return domain.TransactionParty{Owners: owners}, true
}
