// Package library implements the inventory core: the catalog store, the loan
// ledger, the book-code identifier policy, and the application state that
// ties them together.
//
// # Data model
//
// Physical copies sharing a title are merged into one BookRecord; each copy
// keeps its own code (a genre letter A-C plus digits) in BookIDs. Loans are
// append-only: a borrow creates an open LoanRecord, a return closes it, and
// the count of open loans for a record always equals Copies minus
// AvailableCopies.
//
// # State
//
// State is the single owner of the store and the ledger. All mutation goes
// through it under one mutex, so a borrow (loan creation plus availability
// decrement) is one observable unit. Committed changes are published to
// subscribers - the sync coordinator and the persister - instead of the core
// reaching into either.
package library
