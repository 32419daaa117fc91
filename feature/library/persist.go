package library

import (
	"catalog-manager/core/database"
	"catalog-manager/feature/library/models"

	"go.uber.org/zap"
)

// Persisted state keys. The shapes stored under them match the sync payload,
// so a persisted catalog and a pulled one are interchangeable.
const (
	KeyBooks      = "books"
	KeyLoans      = "borrowedBooks"
	KeyUsers      = "users"
	KeyActiveUser = "activeUser"
	KeySettings   = "settings"
)

// Persister bridges the in-memory state and the database-backed key/value
// store. It loads persisted documents at startup and, once attached, writes
// the full state back after every committed change.
type Persister struct {
	store  *database.StateStore
	logger *zap.Logger
}

// NewPersister creates a persister over store.
func NewPersister(store *database.StateStore, logger *zap.Logger) *Persister {
	return &Persister{store: store, logger: logger}
}

// Load seeds state from the persisted documents. Missing keys keep the
// state's current values (configuration defaults on first run).
func (p *Persister) Load(state *State) error {
	var books []models.BookRecord
	foundBooks, err := p.store.LoadJSON(KeyBooks, &books)
	if err != nil {
		return err
	}
	var loans []models.LoanRecord
	foundLoans, err := p.store.LoadJSON(KeyLoans, &loans)
	if err != nil {
		return err
	}
	if foundBooks || foundLoans {
		state.ReplaceAll(books, loans, OriginSync)
	}

	var users []models.User
	if found, err := p.store.LoadJSON(KeyUsers, &users); err != nil {
		return err
	} else if found {
		state.SetUsers(users, OriginSync)
	}

	var active string
	if found, err := p.store.LoadJSON(KeyActiveUser, &active); err != nil {
		return err
	} else if found {
		state.seedActiveUser(active)
	}

	var settings models.Settings
	if found, err := p.store.LoadJSON(KeySettings, &settings); err != nil {
		return err
	} else if found {
		state.UpdateSettings(settings, OriginSync)
	}

	return nil
}

// Save writes a consistent snapshot of the whole state.
func (p *Persister) Save(state *State) error {
	snap := state.TakeSnapshot()
	for key, v := range map[string]any{
		KeyBooks:      snap.Books,
		KeyLoans:      snap.Loans,
		KeyUsers:      snap.Users,
		KeyActiveUser: snap.ActiveUser,
		KeySettings:   snap.Settings,
	} {
		if err := p.store.SaveJSON(key, v); err != nil {
			return err
		}
	}
	return nil
}

// Attach subscribes the persister to state changes. Save failures are logged
// and do not interrupt the mutation that triggered them; durability beyond
// the remote endpoint is explicitly not promised.
func (p *Persister) Attach(state *State) {
	state.Subscribe(func(Change) {
		if err := p.Save(state); err != nil {
			p.logger.Warn("failed to persist state", zap.Error(err))
		}
	})
}
