package domain

import "time"

// CSRF token usages. A token is only valid for the usage it was minted for.
const (
	CSRFUsageNewTransaction = "new-transaction"
	CSRFUsageNewAccount     = "new-account"
	CSRFUsageNewAsset       = "new-asset"
)

// CSRFToken is a one-time token bound to a user and a usage tag. It is
// consumed atomically (read-and-delete) when the guarded form is submitted.
type CSRFToken struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Usage     string    `json:"usage"`
	CreatedAt time.Time `json:"created_at"`
}
