package domain

// ValidationError is a user-correctable failure. Its value doubles as the
// stable error code surfaced in redirect query strings, so the set below is
// part of the external contract.
type ValidationError string

// Error implements the error interface.
func (e ValidationError) Error() string { return string(e) }

// ErrorCode returns the stable code surfaced to the client.
func (e ValidationError) ErrorCode() string { return string(e) }

// Transaction creation error codes, in validation order.
const (
	ErrInvalidCSRF          = ValidationError("invalid-csrf")
	ErrInvalidNote          = ValidationError("invalid-note")
	ErrInvalidTimestamp     = ValidationError("invalid-timestamp")
	ErrMissingCreditAccount = ValidationError("missing-credit-account")
	ErrMissingDebitAccount  = ValidationError("missing-debit-account")
	ErrAccountsNotOwned     = ValidationError("accounts-not-owned")
	ErrMissingCreditAsset   = ValidationError("missing-credit-asset")
	ErrMissingDebitAsset    = ValidationError("missing-debit-asset")
	ErrInvalidCreditAsset   = ValidationError("invalid-credit-asset")
	ErrInvalidDebitAsset    = ValidationError("invalid-debit-asset")
	ErrMissingCreditAmount  = ValidationError("missing-credit-amount")
	ErrMissingDebitAmount   = ValidationError("missing-debit-amount")
	ErrInvalidCreditAmount  = ValidationError("invalid-credit-amount")
	ErrInvalidDebitAmount   = ValidationError("invalid-debit-amount")
	ErrMatchingAccounts     = ValidationError("matching-accounts")
)

// Registration, login and registry form error codes.
const (
	ErrInvalidEmail       = ValidationError("invalid-email")
	ErrInvalidPassword    = ValidationError("invalid-password")
	ErrInvalidTimezone    = ValidationError("invalid-timezone")
	ErrEmailTaken         = ValidationError("email-taken")
	ErrInvalidCredentials = ValidationError("invalid-credentials")
	ErrInvalidAccountName = ValidationError("invalid-account-name")
	ErrInvalidTicker      = ValidationError("invalid-ticker")
	ErrInvalidSymbol      = ValidationError("invalid-symbol")
	ErrInvalidLabel       = ValidationError("invalid-label")
	ErrInvalidPrecision   = ValidationError("invalid-precision")
	ErrTickerTaken        = ValidationError("ticker-taken")
)
