package library_test

import (
	"testing"
	"time"

	"catalog-manager/core/database"
	"catalog-manager/feature/library"
	"catalog-manager/feature/library/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPersistedState(t *testing.T) (*library.Persister, *library.State) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	stateStore, err := database.NewStateStore(db)
	require.NoError(t, err)

	return library.NewPersister(stateStore, zap.NewNop()), library.NewState(testSettings())
}

func TestPersisterRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	persister, state := newPersistedState(t)

	_, err := state.AddBook("A0001", "", "Gruffalo", 1999, 2)
	require.NoError(t, err)
	loan, err := state.Borrow("A0001", "alice", now)
	require.NoError(t, err)
	state.AddUser(models.User{ID: "alice", Name: "Alice", Role: models.RoleStaff})
	state.SetActiveUser("alice")
	require.NoError(t, persister.Save(state))

	// Load into a fresh state, as on restart.
	restored := library.NewState(testSettings())
	require.NoError(t, persister.Load(restored))

	rec, ok := restored.FindBook("A0001")
	require.True(t, ok)
	assert.Equal(t, "Gruffalo", rec.Title)
	assert.Equal(t, 1, rec.AvailableCopies)

	loans := restored.Loans()
	require.Len(t, loans, 1)
	assert.Equal(t, loan.ID, loans[0].ID)
	assert.True(t, loans[0].Open())

	users := restored.Users()
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleStaff, users[0].Role)
	assert.Equal(t, "alice", restored.ActiveUser())
}

func TestPersisterLoadMissingKeysKeepsDefaults(t *testing.T) {
	persister, state := newPersistedState(t)

	require.NoError(t, persister.Load(state))
	assert.Equal(t, 0, state.BookCount())
	assert.Equal(t, 14, state.Settings().LoanDays)
}

func TestPersisterAttachSavesOnChange(t *testing.T) {
	persister, state := newPersistedState(t)
	persister.Attach(state)

	_, err := state.AddBook("A0001", "", "Gruffalo", 1999, 1)
	require.NoError(t, err)

	restored := library.NewState(testSettings())
	require.NoError(t, persister.Load(restored))
	assert.Equal(t, 1, restored.BookCount())
}
