// Package assetservice manages business logic layer of assets.
package assetservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pluto-fin/pluto/internal/domain"
)

// Repo provides data access layer interface needed by asset service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package assetservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error)
	Get(ctx context.Context, id string) (domain.Asset, error)
	List(ctx context.Context) ([]domain.Asset, error)
}

// Service facilitates asset service layer logic.
type Service struct {
	repo Repo
}

// New returns asset service struct to manage asset business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create validates the input bounds and creates the asset. Assets are
// immutable once created; there is no update path.
func (s *Service) Create(ctx context.Context, arg domain.CreateAssetParams) (domain.Asset, error) {
	arg.Ticker = strings.ToUpper(strings.TrimSpace(arg.Ticker))
	arg.Symbol = strings.TrimSpace(arg.Symbol)
	arg.Label = strings.TrimSpace(arg.Label)

	if arg.Ticker == "" || utf8.RuneCountInString(arg.Ticker) > domain.TickerMaxLen {
		return domain.Asset{}, domain.ErrInvalidTicker
	}

	if utf8.RuneCountInString(arg.Symbol) > domain.SymbolMaxLen {
		return domain.Asset{}, domain.ErrInvalidSymbol
	}

	if arg.Label == "" || utf8.RuneCountInString(arg.Label) > domain.AssetLabelMaxLen {
		return domain.Asset{}, domain.ErrInvalidLabel
	}

	if arg.Precision < 0 || arg.Precision > domain.AssetMaxPrecision {
		return domain.Asset{}, domain.ErrInvalidPrecision
	}

	return s.repo.Create(ctx, arg)
}

// Get returns the asset with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Asset, error) {
	return s.repo.Get(ctx, id)
}

// List returns all assets.
func (s *Service) List(ctx context.Context) ([]domain.Asset, error) {
	return s.repo.List(ctx)
}
