package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailAlreadyExists indicates that a user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
)

// User holds user data. Every user has exactly one favorite account and one
// favorite asset, both required at registration.
type User struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	HashedPassword    string    `json:"hashed_password"`
	Timezone          string    `json:"timezone"`
	FavoriteAssetID   string    `json:"favorite_asset_id"`
	FavoriteAccountID string    `json:"favorite_account_id"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to register a user together with their
// first account.
type CreateUserParams struct {
	Email           string `json:"email"`
	HashedPassword  string `json:"hashed_password"`
	Timezone        string `json:"timezone"`
	AccountName     string `json:"account_name"`
	FavoriteAssetID string `json:"favorite_asset_id"`
}

// UserWithoutPassword is User data excluding password data.
type UserWithoutPassword struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Timezone          string    `json:"timezone"`
	FavoriteAssetID   string    `json:"favorite_asset_id"`
	FavoriteAccountID string    `json:"favorite_account_id"`
	CreatedAt         time.Time `json:"created_at"`
}
