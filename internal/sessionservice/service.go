// Package sessionservice manages business logic layer of sessions.
package sessionservice

import (
	"context"
	"errors"
	"time"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/configpkg"
	"github.com/pluto-fin/pluto/pkg/tokenpkg"
)

// Repo provides data access layer interface needed by session service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package sessionservice
type Repo interface {
	Create(ctx context.Context, userID string, expiresAt time.Time) (domain.Session, error)
	Get(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// UserGetter provides the user lookup needed to resolve a session to its user.
type UserGetter interface {
	Get(ctx context.Context, id string) (domain.User, error)
}

// Service facilitates session service layer logic.
type Service struct {
	repo     Repo
	users    UserGetter
	duration time.Duration

	// TokenMaker wraps session ids into the signed cookie value.
	TokenMaker tokenpkg.Maker
}

// New returns session service struct to manage session business logic.
func New(sr Repo, ug UserGetter, config configpkg.Config) (*Service, error) {
	tokenMaker, err := tokenpkg.NewPasetoMaker(config.CookieSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create cookie token maker")
	}

	return &Service{
		repo:       sr,
		users:      ug,
		duration:   config.SessionDuration,
		TokenMaker: tokenMaker,
	}, nil
}

// Create starts a session for the user and returns the signed cookie value.
func (s *Service) Create(ctx context.Context, userID string) (string, domain.Session, error) {
	session, err := s.repo.Create(ctx, userID, time.Now().Add(s.duration))
	if err != nil {
		return "", domain.Session{}, err
	}

	token, _, err := s.TokenMaker.CreateToken(session.ID, s.duration)
	if err != nil {
		return "", domain.Session{}, err
	}

	return token, session, nil
}

// Resolve verifies the cookie value and returns the session's user. The
// session row is looked up fresh on every request so revoked or expired
// sessions take effect immediately.
func (s *Service) Resolve(ctx context.Context, token string) (domain.User, error) {
	payload, err := s.TokenMaker.VerifyToken(token)
	if err != nil {
		return domain.User{}, domain.ErrSessionNotFound
	}

	session, err := s.repo.Get(ctx, payload.SessionID)
	if err != nil {
		return domain.User{}, err
	}

	if time.Now().After(session.ExpiresAt) {
		return domain.User{}, domain.ErrExpiredSession
	}

	return s.users.Get(ctx, session.UserID)
}

// Delete ends the session carried by the cookie value.
func (s *Service) Delete(ctx context.Context, token string) error {
	payload, err := s.TokenMaker.VerifyToken(token)
	if err != nil {
		return domain.ErrSessionNotFound
	}

	return s.repo.Delete(ctx, payload.SessionID)
}
