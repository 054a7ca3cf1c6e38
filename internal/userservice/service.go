// Package userservice manages business logic layer of users.
package userservice

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/errorspkg"
	"github.com/pluto-fin/pluto/pkg/passpkg"
)

// Repo provides data access layer interface needed by user service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package userservice
type Repo interface {
	Create(ctx context.Context, arg domain.CreateUserParams) (domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// Service facilitates user service layer logic.
type Service struct {
	repo Repo
}

// New returns user service struct to manage user business logic.
func New(ur Repo) *Service {
	return &Service{
		repo: ur,
	}
}

// NewUserWithoutPassword returns user with removed sensitive data.
func NewUserWithoutPassword(u domain.User) domain.UserWithoutPassword {
	return domain.UserWithoutPassword{
		ID:                u.ID,
		Email:             u.Email,
		Timezone:          u.Timezone,
		FavoriteAssetID:   u.FavoriteAssetID,
		FavoriteAccountID: u.FavoriteAccountID,
		CreatedAt:         u.CreatedAt,
	}
}

// RegisterParams is the registration form input.
type RegisterParams struct {
	Email           string
	Password        string
	Timezone        string
	AccountName     string
	FavoriteAssetID string
}

const passwordMinLen = 6

// Register validates the input, hashes the password and creates the user
// together with their first account.
func (s *Service) Register(ctx context.Context, arg RegisterParams) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	if _, err := time.LoadLocation(arg.Timezone); err != nil || arg.Timezone == "" {
		return domain.User{}, domain.ErrInvalidTimezone
	}

	if len(arg.Password) < passwordMinLen {
		return domain.User{}, domain.ErrInvalidPassword
	}

	accountName := strings.TrimSpace(arg.AccountName)
	if accountName == "" || utf8.RuneCountInString(accountName) > domain.AccountNameMaxLen {
		return domain.User{}, domain.ErrInvalidAccountName
	}

	hashedPassword, err := passpkg.Hash(arg.Password)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.User{}, errorspkg.ErrInternal
	}

	return s.repo.Create(ctx, domain.CreateUserParams{
		Email:           strings.ToLower(strings.TrimSpace(arg.Email)),
		HashedPassword:  hashedPassword,
		Timezone:        arg.Timezone,
		AccountName:     accountName,
		FavoriteAssetID: arg.FavoriteAssetID,
	})
}

// Get returns the user with the given id.
func (s *Service) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// CheckPassword checks if the password is valid for the given email.
func (s *Service) CheckPassword(ctx context.Context, email, password string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, err
	}

	if err := passpkg.Check(password, user.HashedPassword); err != nil {
		l.Warn().Err(err).Send()
		return domain.User{}, domain.ErrWrongPassword
	}

	return user, nil
}
