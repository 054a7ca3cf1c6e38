// Package csrfservice manages business logic layer of one-time CSRF tokens.
package csrfservice

import (
	"context"
	"time"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/configpkg"
)

// Repo provides data access layer interface needed by CSRF service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package csrfservice
type Repo interface {
	Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error)
	Consume(ctx context.Context, token, userID, usage string, cutoff time.Time) error
}

// Service facilitates CSRF token service layer logic.
type Service struct {
	repo Repo
	ttl  time.Duration
}

// New returns CSRF service struct.
func New(cr Repo, config configpkg.Config) *Service {
	return &Service{
		repo: cr,
		ttl:  config.CSRFTokenDuration,
	}
}

// Issue mints a one-time token for the given user and usage.
func (s *Service) Issue(ctx context.Context, userID, usage string) (domain.CSRFToken, error) {
	return s.repo.Issue(ctx, userID, usage)
}

// Consume atomically validates and deletes the token.
func (s *Service) Consume(ctx context.Context, token, userID, usage string) error {
	return s.repo.Consume(ctx, token, userID, usage, time.Now().Add(-s.ttl))
}
