package loader_test

import (
	"testing"

	"catalog-manager/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type stubFeature struct {
	name    string
	enabled bool
	loadErr error
	loaded  bool
}

func (f *stubFeature) Name() string    { return f.name }
func (f *stubFeature) IsEnabled() bool { return f.enabled }
func (f *stubFeature) Load(fiber.Router) error {
	f.loaded = true
	return f.loadErr
}

func TestManagerLoadAll(t *testing.T) {
	t.Run("Skips Disabled", func(t *testing.T) {
		enabled := &stubFeature{name: "on", enabled: true}
		disabled := &stubFeature{name: "off"}

		m := loader.NewManager()
		m.Register(enabled)
		m.Register(disabled)

		assert.NoError(t, m.LoadAll(fiber.New()))
		assert.True(t, enabled.loaded)
		assert.False(t, disabled.loaded)
	})

	t.Run("Stops At First Failure", func(t *testing.T) {
		failing := &stubFeature{name: "bad", enabled: true, loadErr: assert.AnError}
		after := &stubFeature{name: "later", enabled: true}

		m := loader.NewManager()
		m.Register(failing)
		m.Register(after)

		err := m.LoadAll(fiber.New())
		assert.ErrorContains(t, err, "bad")
		assert.False(t, after.loaded)
	})
}
