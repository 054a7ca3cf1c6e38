// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrOwnerNotFound indicates that the owner for the account is not found.
	ErrOwnerNotFound = errors.New("owner not found")
	// ErrOwnershipAlreadyExists indicates that the user already owns the account.
	ErrOwnershipAlreadyExists = errors.New("account ownership already exists")
)

// Account is an anonymous ledger target. Whether it is "owned" or "shared"
// is derived from the ownership relation, not stored on the account itself.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountNameMaxLen bounds the account name length.
const AccountNameMaxLen = 200

// AccountOwnership is one row of the many-to-many relation between users
// and accounts.
type AccountOwnership struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
}

// Owned reports whether any ownership row references the account.
// Membership is keyed strictly by account id.
func Owned(ownerships []AccountOwnership, accountID string) bool {
	for _, o := range ownerships {
		if o.AccountID == accountID {
			return true
		}
	}

	return false
}

// OwnedBy reports whether the given user owns the account.
func OwnedBy(ownerships []AccountOwnership, accountID, userID string) bool {
	for _, o := range ownerships {
		if o.AccountID == accountID && o.UserID == userID {
			return true
		}
	}

	return false
}

// OwnerIDs returns the ids of all users owning the account, in row order.
func OwnerIDs(ownerships []AccountOwnership, accountID string) []string {
	var ids []string

	for _, o := range ownerships {
		if o.AccountID == accountID {
			ids = append(ids, o.UserID)
		}
	}

	return ids
}
