package sync_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"catalog-manager/feature/library"
	"catalog-manager/feature/library/models"
	"catalog-manager/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSyncApp(t *testing.T, remote *fakeRemote) (*fiber.App, *library.State) {
	t.Helper()

	state := library.NewState(models.Settings{LoanDays: 14, DefaultCopies: 1})
	var c *sync.Coordinator
	if remote != nil {
		c = sync.NewCoordinator(syncConfig(remote.server.URL), state, newFakeClock(), zap.NewNop(), nil)
	} else {
		c = sync.NewCoordinator(sync.Config{}, state, newFakeClock(), zap.NewNop(), nil)
	}

	app := fiber.New()
	sync.NewHandler(c, zap.NewNop()).RegisterRoutes(app)
	return app, state
}

func TestHandleSyncStatus(t *testing.T) {
	app, _ := newSyncApp(t, newFakeRemote(t))

	req := httptest.NewRequest("GET", "/sync/status", nil)
	resp, err := app.Test(req, 2000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var status sync.Status
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	assert.True(t, status.Enabled)
	assert.Equal(t, sync.PhaseIdle, status.Phase)
}

func TestHandleSyncPush(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		remote := newFakeRemote(t)
		app, _ := newSyncApp(t, remote)

		req := httptest.NewRequest("POST", "/sync/push", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, remote.pushCount())
	})

	t.Run("Disabled", func(t *testing.T) {
		app, _ := newSyncApp(t, nil)

		req := httptest.NewRequest("POST", "/sync/push", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Remote Failure", func(t *testing.T) {
		remote := newFakeRemote(t)
		remote.setFailPush(true)
		app, _ := newSyncApp(t, remote)

		req := httptest.NewRequest("POST", "/sync/push", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	})
}

func TestHandleSyncPull(t *testing.T) {
	t.Run("Applies Remote", func(t *testing.T) {
		remote := newFakeRemote(t)
		remote.pullBooks = []models.BookRecord{
			{ID: "A0001", BookIDs: []string{"A0001"}, Title: "Gruffalo", Copies: 1, AvailableCopies: 1},
		}
		app, state := newSyncApp(t, remote)

		req := httptest.NewRequest("POST", "/sync/pull", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, state.BookCount())
	})

	t.Run("Empty Remote Needs Confirmation", func(t *testing.T) {
		remote := newFakeRemote(t)
		app, state := newSyncApp(t, remote)
		_, err := state.AddBook("A0001", "", "Gruffalo", 1999, 1)
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/sync/pull", nil)
		resp, err := app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, 1, state.BookCount())

		req = httptest.NewRequest("POST", "/sync/pull?confirm=true", nil)
		resp, err = app.Test(req, 2000)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, 0, state.BookCount())
	})
}
