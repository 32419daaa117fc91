package library

import (
	"fmt"
	"sync"
	"time"

	"catalog-manager/feature/library/models"
)

// ChangeOrigin distinguishes local edits from writes applied by a remote
// pull, so the sync coordinator does not push back its own pulls.
type ChangeOrigin string

const (
	OriginLocal ChangeOrigin = "local"
	OriginSync  ChangeOrigin = "sync"
)

// Change describes one committed state mutation, delivered to subscribers
// after the state lock is released.
type Change struct {
	Kind   string
	Origin ChangeOrigin
}

// Change kinds emitted by State.
const (
	ChangeBookAdded   = "book-added"
	ChangeBookRemoved = "book-removed"
	ChangeBorrow      = "borrow"
	ChangeReturn      = "return"
	ChangeImport      = "import"
	ChangeReplace     = "replace"
	ChangeUsers       = "users"
	ChangeSettings    = "settings"
)

// MergeItem is one accepted import entry replayed into the live catalog by
// MergeBooks.
type MergeItem struct {
	Code   string
	Title  string
	Year   int
	Copies int
}

// Snapshot is a consistent copy of the whole library state, taken under one
// lock acquisition. Used to build sync payloads and persistence writes.
type Snapshot struct {
	Books      []models.BookRecord
	Loans      []models.LoanRecord
	Users      []models.User
	ActiveUser string
	Settings   models.Settings
}

// State is the application-wide library state: the catalog store, the loan
// ledger, the user registry and the settings, behind a single mutex. Every
// multi-step mutation (borrow, return, import, pull replace) runs under the
// lock as one observable unit. The state is constructed by the application
// root and handed to each component; nothing reaches it through ambient
// globals.
type State struct {
	mu         sync.Mutex
	store      *Store
	ledger     *Ledger
	users      []models.User
	activeUser string
	settings   models.Settings

	subMu sync.Mutex
	subs  []func(Change)
}

// NewState creates an empty library state with the given initial settings.
func NewState(settings models.Settings) *State {
	return &State{
		store:    NewStore(),
		ledger:   NewLedger(),
		settings: settings,
	}
}

// Subscribe registers a change listener. Listeners run synchronously after
// the mutation commits and the state lock is released; they must not block
// for long.
func (s *State) Subscribe(fn func(Change)) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *State) notify(ch Change) {
	s.subMu.Lock()
	subs := append([]func(Change){}, s.subs...)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(ch)
	}
}

// Books returns a copy of the catalog in insertion order.
func (s *State) Books() []models.BookRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.List()
}

// BookCount returns the number of title records.
func (s *State) BookCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

// FindBook looks up the record owning code.
func (s *State) FindBook(code string) (models.BookRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.store.FindByCode(code)
	if !ok {
		return models.BookRecord{}, false
	}
	return rec.Clone(), true
}

// Codes returns the set of every book code in use.
func (s *State) Codes() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Codes()
}

// AddBook inserts a distinct title record. An empty code is generated from
// the genre prefix via NextAvailableCode; a provided code is validated.
func (s *State) AddBook(code, prefix, title string, year, copies int) (models.BookRecord, error) {
	if title == "" {
		return models.BookRecord{}, ErrEmptyTitle
	}
	if copies < 1 {
		copies = 1
	}

	s.mu.Lock()
	if code == "" {
		code = NextAvailableCode(prefix, s.store.Codes())
	}
	if !ValidateCode(code) {
		s.mu.Unlock()
		return models.BookRecord{}, fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}
	rec := models.BookRecord{
		ID:              NormalizeCode(code),
		Title:           title,
		Genre:           GenreOf(code),
		Year:            year,
		Copies:          copies,
		AvailableCopies: copies,
	}
	if err := s.store.InsertDistinct(rec); err != nil {
		s.mu.Unlock()
		return models.BookRecord{}, err
	}
	stored, _ := s.store.FindByCode(rec.ID)
	out := stored.Clone()
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeBookAdded, Origin: OriginLocal})
	return out, nil
}

// RemoveBook deletes a title record. It fails with ErrHasOpenLoans when the
// ledger reports any open loan against the record; this is the
// cross-component check the store itself does not perform.
func (s *State) RemoveBook(code string) error {
	s.mu.Lock()
	if n := s.ledger.OpenLoansFor(s.store, code); n > 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s has %d open", ErrHasOpenLoans, NormalizeCode(code), n)
	}
	if err := s.store.Remove(code); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.notify(Change{Kind: ChangeBookRemoved, Origin: OriginLocal})
	return nil
}

// Borrow lends one copy of code to userID. The guest gate applies when the
// user's registered role is guest and guest borrowing is disabled. Loan
// creation and the availability decrement commit as one unit.
func (s *State) Borrow(code, userID string, now time.Time) (models.LoanRecord, error) {
	s.mu.Lock()
	if s.roleOf(userID) == models.RoleGuest && !s.settings.GuestBorrow {
		s.mu.Unlock()
		return models.LoanRecord{}, fmt.Errorf("%w: %s", ErrGuestBorrow, userID)
	}
	loan, err := s.ledger.Borrow(s.store, code, userID, s.settings.LoanDays, now)
	s.mu.Unlock()
	if err != nil {
		return models.LoanRecord{}, err
	}

	s.notify(Change{Kind: ChangeBorrow, Origin: OriginLocal})
	return loan, nil
}

// Return closes a loan and restores one available copy.
func (s *State) Return(loanID string, now time.Time) (models.LoanRecord, error) {
	s.mu.Lock()
	loan, err := s.ledger.Return(s.store, loanID, now)
	s.mu.Unlock()
	if err != nil {
		return models.LoanRecord{}, err
	}

	s.notify(Change{Kind: ChangeReturn, Origin: OriginLocal})
	return loan, nil
}

// OpenLoansFor counts open loans against the record owning code.
func (s *State) OpenLoansFor(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.OpenLoansFor(s.store, code)
}

// LoansVisibleTo returns the loan listing projection for a user and role.
func (s *State) LoansVisibleTo(userID, role string) []models.LoanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.VisibleTo(userID, role)
}

// Loans returns every loan, open and closed.
func (s *State) Loans() []models.LoanRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.List()
}

// ReplaceBooks installs records as the whole catalog. The destructive CSV
// import path and pull application go through here.
func (s *State) ReplaceBooks(records []models.BookRecord, origin ChangeOrigin) {
	s.mu.Lock()
	s.store.ReplaceAll(records)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeImport, Origin: origin})
}

// MergeBooks replays accepted import entries into the live catalog as one
// unit. Used by the additive tabular import path.
func (s *State) MergeBooks(items []MergeItem, origin ChangeOrigin) {
	if len(items) == 0 {
		return
	}
	s.mu.Lock()
	for _, it := range items {
		s.store.UpsertMerged(it.Code, it.Title, it.Year, it.Copies)
	}
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeImport, Origin: origin})
}

// ReplaceAll installs a full remote payload: catalog and ledger together.
func (s *State) ReplaceAll(books []models.BookRecord, loans []models.LoanRecord, origin ChangeOrigin) {
	s.mu.Lock()
	s.store.ReplaceAll(books)
	s.ledger.ReplaceAll(loans)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeReplace, Origin: origin})
}

// Users returns a copy of the user registry.
func (s *State) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.User(nil), s.users...)
}

// AddUser registers a user. An existing id is updated in place.
func (s *State) AddUser(u models.User) {
	s.mu.Lock()
	replaced := false
	for i, existing := range s.users {
		if existing.ID == u.ID {
			s.users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		s.users = append(s.users, u)
	}
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeUsers, Origin: OriginLocal})
}

// SetUsers replaces the user registry, used when loading persisted state.
func (s *State) SetUsers(users []models.User, origin ChangeOrigin) {
	s.mu.Lock()
	s.users = append([]models.User(nil), users...)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeUsers, Origin: origin})
}

// ActiveUser returns the id of the currently selected user.
func (s *State) ActiveUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeUser
}

// SetActiveUser records the currently selected user.
func (s *State) SetActiveUser(id string) {
	s.mu.Lock()
	s.activeUser = id
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeUsers, Origin: OriginLocal})
}

// seedActiveUser restores the active user while loading persisted state,
// without emitting a change.
func (s *State) seedActiveUser(id string) {
	s.mu.Lock()
	s.activeUser = id
	s.mu.Unlock()
}

// Settings returns the current settings.
func (s *State) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the settings.
func (s *State) UpdateSettings(settings models.Settings, origin ChangeOrigin) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeSettings, Origin: origin})
}

// TakeSnapshot copies the whole state under one lock acquisition.
func (s *State) TakeSnapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Books:      s.store.List(),
		Loans:      s.ledger.List(),
		Users:      append([]models.User(nil), s.users...),
		ActiveUser: s.activeUser,
		Settings:   s.settings,
	}
}

// roleOf resolves a user's registered role; unregistered ids default to the
// member role. Caller holds the state lock.
func (s *State) roleOf(userID string) string {
	for _, u := range s.users {
		if u.ID == userID {
			return u.Role
		}
	}
	return models.RoleMember
}
