// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/pluto-fin/pluto/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, name string) (domain.Account, error)
	Get(ctx context.Context, id string) (domain.Account, error)
	ListOwned(ctx context.Context, userID string) ([]domain.Account, error)
	CreateOwnership(ctx context.Context, userID, accountID string) (domain.AccountOwnership, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account business logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// CreateOwned creates an account owned by the given user.
func (s *Service) CreateOwned(ctx context.Context, ownerID, name string) (domain.Account, error) {
	name = strings.TrimSpace(name)

	if name == "" || utf8.RuneCountInString(name) > domain.AccountNameMaxLen {
		return domain.Account{}, domain.ErrInvalidAccountName
	}

	account, err := s.repo.Create(ctx, name)
	if err != nil {
		return domain.Account{}, err
	}

	if _, err := s.repo.CreateOwnership(ctx, ownerID, account.ID); err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// ListOwned returns all accounts owned by the given user.
func (s *Service) ListOwned(ctx context.Context, userID string) ([]domain.Account, error) {
	return s.repo.ListOwned(ctx, userID)
}
