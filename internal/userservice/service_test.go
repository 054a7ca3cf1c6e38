package userservice

import (
	"context"
	"fmt"
	reflect "reflect"
	"strings"
	"testing"

	gomock "github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pluto-fin/pluto/internal/domain"
	"github.com/pluto-fin/pluto/pkg/passpkg"
	"github.com/pluto-fin/pluto/pkg/randompkg"
)

func randomUser(t *testing.T) (domain.User, string) {
	password := randompkg.String(10)

	hashedPassword, err := passpkg.Hash(password)
	if err != nil {
		t.Fatalf("passpkg.Hash(%v) failed: %v", password, err)
	}

	return domain.User{
		ID:              uuid.NewString(),
		Email:           randompkg.Email(),
		HashedPassword:  hashedPassword,
		Timezone:        randompkg.Timezone(),
		FavoriteAssetID: uuid.NewString(),
	}, password
}

type eqCreateUserParamsMatcher struct {
	arg      domain.CreateUserParams
	password string
}

func (e eqCreateUserParamsMatcher) Matches(x interface{}) bool {
	arg, ok := x.(domain.CreateUserParams)
	if !ok {
		return false
	}

	err := passpkg.Check(e.password, arg.HashedPassword)
	if err != nil {
		return false
	}

	e.arg.HashedPassword = arg.HashedPassword

	return reflect.DeepEqual(e.arg, arg)
}

func (e eqCreateUserParamsMatcher) String() string {
	return fmt.Sprintf("matches arg %v and password %v", e.arg, e.password)
}

func EqCreateUserParams(arg domain.CreateUserParams, password string) gomock.Matcher {
	return eqCreateUserParamsMatcher{arg, password}
}

func TestRegister(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	okParams := RegisterParams{
		Email:           user.Email,
		Password:        password,
		Timezone:        user.Timezone,
		AccountName:     "Checking",
		FavoriteAssetID: user.FavoriteAssetID,
	}

	testCases := []struct {
		name          string
		input         RegisterParams
		buildStubs    func(userRepo *MockRepo)
		checkResponse func(t *testing.T, got domain.User)
		wantError     error
	}{
		{
			name:  "OK",
			input: okParams,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(
						domain.CreateUserParams{
							Email:           user.Email,
							HashedPassword:  user.HashedPassword,
							Timezone:        user.Timezone,
							AccountName:     "Checking",
							FavoriteAssetID: user.FavoriteAssetID,
						}, password)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.User) {
				if !cmp.Equal(got, user) {
					t.Errorf("Register() = %+v, want %+v", got, user)
				}
			},
		},
		{
			name: "EmailIsNormalized",
			input: RegisterParams{
				Email:           "  " + strings.ToUpper(user.Email) + "  ",
				Password:        password,
				Timezone:        user.Timezone,
				AccountName:     "Checking",
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), EqCreateUserParams(
						domain.CreateUserParams{
							Email:           user.Email,
							HashedPassword:  user.HashedPassword,
							Timezone:        user.Timezone,
							AccountName:     "Checking",
							FavoriteAssetID: user.FavoriteAssetID,
						}, password)).
					Times(1).
					Return(user, nil)
			},
			checkResponse: func(t *testing.T, got domain.User) {
				require.Equal(t, user.Email, got.Email)
			},
		},
		{
			name: "InvalidTimezone",
			input: RegisterParams{
				Email:           user.Email,
				Password:        password,
				Timezone:        "Neverland/Nowhere",
				AccountName:     "Checking",
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTimezone,
		},
		{
			name: "EmptyTimezone",
			input: RegisterParams{
				Email:           user.Email,
				Password:        password,
				Timezone:        "",
				AccountName:     "Checking",
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidTimezone,
		},
		{
			name: "ShortPassword",
			input: RegisterParams{
				Email:           user.Email,
				Password:        "12345",
				Timezone:        user.Timezone,
				AccountName:     "Checking",
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidPassword,
		},
		{
			name: "BlankAccountName",
			input: RegisterParams{
				Email:           user.Email,
				Password:        password,
				Timezone:        user.Timezone,
				AccountName:     "   ",
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidAccountName,
		},
		{
			name: "AccountNameTooLong",
			input: RegisterParams{
				Email:           user.Email,
				Password:        password,
				Timezone:        user.Timezone,
				AccountName:     strings.Repeat("a", domain.AccountNameMaxLen+1),
				FavoriteAssetID: user.FavoriteAssetID,
			},
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)
			},
			wantError: domain.ErrInvalidAccountName,
		},
		{
			name:  "EmailTaken",
			input: okParams,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.User{}, domain.ErrEmailAlreadyExists)
			},
			wantError: domain.ErrEmailAlreadyExists,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			tc.buildStubs(userRepo)

			service := New(userRepo)

			got, err := service.Register(context.Background(), tc.input)

			if tc.wantError != nil {
				require.EqualError(t, err, tc.wantError.Error())
				return
			}

			require.NoError(t, err)
			tc.checkResponse(t, got)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	user, password := randomUser(t)

	testCases := []struct {
		name       string
		email      string
		password   string
		buildStubs func(userRepo *MockRepo)
		wantError  error
	}{
		{
			name:     "OK",
			email:    user.Email,
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)
			},
		},
		{
			name:     "WrongPassword",
			email:    user.Email,
			password: "not-the-password",
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq(user.Email)).
					Times(1).
					Return(user, nil)
			},
			wantError: domain.ErrWrongPassword,
		},
		{
			name:     "UserNotFound",
			email:    "missing@example.com",
			password: password,
			buildStubs: func(userRepo *MockRepo) {
				userRepo.EXPECT().
					GetByEmail(gomock.Any(), gomock.Eq("missing@example.com")).
					Times(1).
					Return(domain.User{}, domain.ErrUserNotFound)
			},
			wantError: domain.ErrUserNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			userRepo := NewMockRepo(ctrl)
			tc.buildStubs(userRepo)

			service := New(userRepo)

			got, err := service.CheckPassword(context.Background(), tc.email, tc.password)

			if tc.wantError != nil {
				require.EqualError(t, err, tc.wantError.Error())
				return
			}

			require.NoError(t, err)
			require.Equal(t, user, got)
		})
	}
}
