package library

import (
	"fmt"
	"time"

	"catalog-manager/feature/library/models"
)

// Ledger is the in-memory collection of borrow records. Loans are created by
// Borrow, closed once by Return, and never deleted. Like Store, the ledger
// relies on the owning State for serialization, and every operation that
// touches both the ledger and the store runs under the same lock so no
// reader observes a loan without its availability decrement or vice versa.
type Ledger struct {
	loans []*models.LoanRecord
	byID  map[string]*models.LoanRecord
}

// NewLedger creates an empty loan ledger.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[string]*models.LoanRecord)}
}

// Borrow creates an open loan for (code, userID) and decrements the store's
// availability as one unit. It fails with ErrNotFound when the code is
// absent, ErrNoCopiesAvailable when nothing is left to lend, and
// ErrAlreadyBorrowed when the user already holds an open loan on that code.
func (l *Ledger) Borrow(store *Store, code, userID string, loanDays int, now time.Time) (models.LoanRecord, error) {
	code = NormalizeCode(code)

	rec, ok := store.FindByCode(code)
	if !ok {
		return models.LoanRecord{}, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	if rec.AvailableCopies <= 0 {
		return models.LoanRecord{}, fmt.Errorf("%w: %s", ErrNoCopiesAvailable, code)
	}
	for _, loan := range l.loans {
		if loan.Open() && loan.BookID == code && loan.UserID == userID {
			return models.LoanRecord{}, fmt.Errorf("%w: %s has %s", ErrAlreadyBorrowed, userID, code)
		}
	}

	if err := store.AdjustAvailability(code, -1); err != nil {
		return models.LoanRecord{}, err
	}
	loan := &models.LoanRecord{
		ID:         l.nextID(now),
		BookID:     code,
		BookTitle:  rec.Title,
		UserID:     userID,
		BorrowDate: now,
		DueDate:    now.AddDate(0, 0, loanDays),
	}
	l.loans = append(l.loans, loan)
	l.byID[loan.ID] = loan
	return *loan, nil
}

// Return closes a loan and gives the copy back to the store. It fails with
// ErrNotFound for an unknown loan id and ErrAlreadyReturned when the loan is
// already closed.
func (l *Ledger) Return(store *Store, loanID string, now time.Time) (models.LoanRecord, error) {
	loan, ok := l.byID[loanID]
	if !ok {
		return models.LoanRecord{}, fmt.Errorf("%w: loan %s", ErrNotFound, loanID)
	}
	if !loan.Open() {
		return models.LoanRecord{}, fmt.Errorf("%w: loan %s", ErrAlreadyReturned, loanID)
	}
	if err := store.AdjustAvailability(loan.BookID, +1); err != nil {
		return models.LoanRecord{}, err
	}
	ts := now
	loan.ReturnedAt = &ts
	return *loan, nil
}

// OpenLoansFor counts open loans against the record owning code, across all
// of its merged copy codes. For a code absent from the store it counts loans
// on the literal code only.
func (l *Ledger) OpenLoansFor(store *Store, code string) int {
	code = NormalizeCode(code)
	member := map[string]struct{}{code: {}}
	if rec, ok := store.FindByCode(code); ok {
		for _, c := range rec.BookIDs {
			member[c] = struct{}{}
		}
	}
	count := 0
	for _, loan := range l.loans {
		if !loan.Open() {
			continue
		}
		if _, ok := member[loan.BookID]; ok {
			count++
		}
	}
	return count
}

// VisibleTo is the read projection for loan listings: staff see every open
// loan, every other role sees only its own open loans.
func (l *Ledger) VisibleTo(userID, role string) []models.LoanRecord {
	out := []models.LoanRecord{}
	for _, loan := range l.loans {
		if !loan.Open() {
			continue
		}
		if role == models.RoleStaff || loan.UserID == userID {
			out = append(out, *loan)
		}
	}
	return out
}

// List returns a copy of every loan, open and closed, in creation order.
func (l *Ledger) List() []models.LoanRecord {
	out := make([]models.LoanRecord, 0, len(l.loans))
	for _, loan := range l.loans {
		out = append(out, *loan)
	}
	return out
}

// ReplaceAll discards the ledger and installs loans in its place. Used when
// a remote pull is authoritative.
func (l *Ledger) ReplaceAll(loans []models.LoanRecord) {
	l.loans = l.loans[:0]
	l.byID = make(map[string]*models.LoanRecord, len(loans))
	for _, loan := range loans {
		stored := loan
		l.loans = append(l.loans, &stored)
		l.byID[stored.ID] = &stored
	}
}

// nextID derives a unique loan id from the borrow timestamp, bumping the
// nanosecond component on the rare collision.
func (l *Ledger) nextID(now time.Time) string {
	n := now.UnixNano()
	for {
		id := fmt.Sprintf("loan-%d", n)
		if _, taken := l.byID[id]; !taken {
			return id
		}
		n++
	}
}
