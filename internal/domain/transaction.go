package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound indicates that the transaction is not found.
var ErrTransactionNotFound = errors.New("transaction not found")

// NoteMaxLen bounds the transaction note length.
const NoteMaxLen = 200

// StampLayout is the fixed wire format for transaction timestamps. The same
// layout parses form input and renders displayed stamps, so values round-trip
// exactly.
const StampLayout = "2006-01-02 15:04"

// Transaction is one append-only double-sided ledger entry. Amounts are
// positive integer minor units; direction is implied by the credit/debit
// role. Stamps are stored as naive UTC.
type Transaction struct {
	ID              string    `json:"id"`
	Note            string    `json:"note"`
	CreditAccountID string    `json:"credit_account_id"`
	DebitAccountID  string    `json:"debit_account_id"`
	CreditAssetID   string    `json:"credit_asset_id"`
	DebitAssetID    string    `json:"debit_asset_id"`
	CreditStamp     time.Time `json:"credit_stamp"`
	DebitStamp      time.Time `json:"debit_stamp"`
	CreditAmount    int64     `json:"credit_amount"`
	DebitAmount     int64     `json:"debit_amount"`
	CreditSettled   bool      `json:"credit_settled"`
	DebitSettled    bool      `json:"debit_settled"`
	CreatedAt       time.Time `json:"created_at"`
}

// Settled reports whether both legs are confirmed.
func (t Transaction) Settled() bool {
	return t.CreditSettled && t.DebitSettled
}

// CreateTransactionParams carries the raw new-transaction form input. Fields
// stay unparsed strings so validation can run in the contractual order with
// the CSRF check first.
type CreateTransactionParams struct {
	CSRF                string `json:"csrf"`
	Note                string `json:"note"`
	CreditAccount       string `json:"credit_account"`
	CreateCreditAccount bool   `json:"create_credit_account"`
	DebitAccount        string `json:"debit_account"`
	CreateDebitAccount  bool   `json:"create_debit_account"`
	Asset               string `json:"asset"`
	CreditAsset         string `json:"credit_asset"`
	DebitAsset          string `json:"debit_asset"`
	Amount              string `json:"amount"`
	CreditAmount        string `json:"credit_amount"`
	DebitAmount         string `json:"debit_amount"`
	Timestamp           string `json:"timestamp"`
}

// CreditAssetInput returns the asset id to use for the credit leg. A single
// shared asset field covers both legs when the per-leg field is blank.
func (p CreateTransactionParams) CreditAssetInput() string {
	if p.CreditAsset != "" {
		return p.CreditAsset
	}

	return p.Asset
}

// DebitAssetInput returns the asset id to use for the debit leg.
func (p CreateTransactionParams) DebitAssetInput() string {
	if p.DebitAsset != "" {
		return p.DebitAsset
	}

	return p.Asset
}

// CreditAmountInput returns the raw amount for the credit leg, falling back
// to the shared amount field.
func (p CreateTransactionParams) CreditAmountInput() string {
	if p.CreditAmount != "" {
		return p.CreditAmount
	}

	return p.Amount
}

// DebitAmountInput returns the raw amount for the debit leg.
func (p CreateTransactionParams) DebitAmountInput() string {
	if p.DebitAmount != "" {
		return p.DebitAmount
	}

	return p.Amount
}

// ValidateNote trims and bounds-checks a transaction note.
func ValidateNote(note string) (string, error) {
	note = strings.TrimSpace(note)

	if note == "" || utf8.RuneCountInString(note) > NoteMaxLen {
		return "", ErrInvalidNote
	}

	return note, nil
}

// OwnershipFlags captures the four ownership facts the settlement rule and
// the creation gate depend on.
type OwnershipFlags struct {
	CreditOwned         bool
	DebitOwned          bool
	CreditOwnedByViewer bool
	DebitOwnedByViewer  bool
}

// NewOwnershipFlags derives the flags for a credit/debit account pair from
// the ownership rows, as seen by the viewer.
func NewOwnershipFlags(ownerships []AccountOwnership, creditAccountID, debitAccountID, viewerID string) OwnershipFlags {
	return OwnershipFlags{
		CreditOwned:         Owned(ownerships, creditAccountID),
		DebitOwned:          Owned(ownerships, debitAccountID),
		CreditOwnedByViewer: OwnedBy(ownerships, creditAccountID, viewerID),
		DebitOwnedByViewer:  OwnedBy(ownerships, debitAccountID, viewerID),
	}
}

// Settlement derives the per-leg settled flags at creation time. A leg is
// settled when the creating user owns it and not the other leg, or when the
// leg's account is entirely unowned; anything else awaits confirmation by
// the other party.
func (f OwnershipFlags) Settlement() (creditSettled, debitSettled bool) {
	creditSettled = (f.CreditOwnedByViewer && !f.DebitOwnedByViewer) || !f.CreditOwned
	debitSettled = (f.DebitOwnedByViewer && !f.CreditOwnedByViewer) || !f.DebitOwned

	return creditSettled, debitSettled
}

// TransactionParty is the resolved identity of one leg: the account itself,
// or the users who own it when the viewer is not among them. Exactly one
// variant is set.
type TransactionParty struct {
	Account *Account `json:"account,omitempty"`
	Owners  []User   `json:"owners,omitempty"`
}

// IsAccount reports whether the party resolved to the account variant.
func (p TransactionParty) IsAccount() bool {
	return p.Account != nil
}

// ResolvedTransaction is the per-viewer, display-ready projection of a
// stored Transaction. It is derived on every read and never persisted.
type ResolvedTransaction struct {
	Note         string           `json:"note"`
	Credit       TransactionParty `json:"credit"`
	Debit        TransactionParty `json:"debit"`
	CreditAsset  Asset            `json:"credit_asset"`
	DebitAsset   Asset            `json:"debit_asset"`
	CreditAmount decimal.Decimal  `json:"credit_amount"`
	DebitAmount  decimal.Decimal  `json:"debit_amount"`
	CreditStamp  time.Time        `json:"credit_stamp"`
	DebitStamp   time.Time        `json:"debit_stamp"`
}

// References bundles the reference rows needed to resolve a page of
// transactions, scoped to the ids appearing across that page.
type References struct {
	Users      []User
	Assets     []Asset
	Accounts   []Account
	Ownerships []AccountOwnership
}

// Asset looks up an asset by id.
func (r References) Asset(id string) (Asset, bool) {
	for _, a := range r.Assets {
		if a.ID == id {
			return a, true
		}
	}

	return Asset{}, false
}

// Account looks up an account by id.
func (r References) Account(id string) (Account, bool) {
	for _, a := range r.Accounts {
		if a.ID == id {
			return a, true
		}
	}

	return Account{}, false
}

// User looks up a user by id.
func (r References) User(id string) (User, bool) {
	for _, u := range r.Users {
		if u.ID == id {
			return u, true
		}
	}

	return User{}, false
}
