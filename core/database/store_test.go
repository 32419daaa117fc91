package database_test

import (
	"testing"

	"catalog-manager/core/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *database.StateStore {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	store, err := database.NewStateStore(db)
	require.NoError(t, err)
	return store
}

func TestStateStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type doc struct {
		Title string `json:"title"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.SaveJSON("books", []doc{{Title: "Gruffalo", Count: 2}}))

	var out []doc
	found, err := store.LoadJSON("books", &out)
	require.NoError(t, err)
	assert.True(t, found)
	require.Len(t, out, 1)
	assert.Equal(t, "Gruffalo", out[0].Title)
	assert.Equal(t, 2, out[0].Count)
}

func TestStateStoreUpsert(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveJSON("activeUser", "alice"))
	require.NoError(t, store.SaveJSON("activeUser", "bob"))

	var out string
	found, err := store.LoadJSON("activeUser", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "bob", out)
}

func TestStateStoreMissingKey(t *testing.T) {
	store := newTestStore(t)

	var out string
	found, err := store.LoadJSON("nope", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, out)
}
