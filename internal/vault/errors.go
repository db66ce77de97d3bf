package vault

import (
	"errors"
	"fmt"
)

// Expected, recoverable outcomes. Callers branch on these with
// errors.Is; messages always carry the account name they concern.
var (
	// ErrNotFound indicates the referenced account does not exist in the store.
	ErrNotFound = errors.New("account not found")

	// ErrAccountExists indicates an add without the overwrite flag hit an
	// existing account name.
	ErrAccountExists = errors.New("account already exists")

	// ErrAlreadyExpired indicates a stored record's expiry is in the past.
	// Surfaced separately from ErrInvalidCredentials because it is
	// resolvable locally, without a remote call.
	ErrAlreadyExpired = errors.New("credentials expired")

	// ErrInvalidCredentials covers every identity-check failure: bad
	// secrets, expired token, access denied, network error, timeout.
	// Callers should not branch on sub-reasons, only log them.
	ErrInvalidCredentials = errors.New("credentials invalid")
)

// PersistenceError reports that the encrypted store file could not be
// read or written. On save it propagates to the caller; on load the
// store logs it and starts empty.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("credential store %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
