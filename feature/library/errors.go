package library

import "errors"

// Sentinel errors for catalog and ledger operations. Callers classify with
// errors.Is; operations wrap them with fmt.Errorf("...: %w", ...) to attach
// the offending code or loan id.
var (
	// Validation errors: the operation aborted with no partial mutation.
	ErrInvalidCode   = errors.New("invalid book code")
	ErrEmptyTitle    = errors.New("empty title")
	ErrDuplicateCode = errors.New("duplicate book code")

	// State errors: the operation conflicts with current catalog state.
	ErrNotFound           = errors.New("not found")
	ErrNoCopiesAvailable  = errors.New("no copies available")
	ErrAlreadyBorrowed    = errors.New("already borrowed by this user")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrInvariantViolation = errors.New("availability outside 0..copies")
	ErrHasOpenLoans       = errors.New("book has open loans")
	ErrGuestBorrow        = errors.New("guest borrowing is disabled")
)
