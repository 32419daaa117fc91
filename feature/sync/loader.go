package sync

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	coordinator *Coordinator
	handler     *Handler
}

// NewFeature creates the sync feature around an existing coordinator.
func NewFeature(coordinator *Coordinator, logger *zap.Logger) *Feature {
	return &Feature{
		coordinator: coordinator,
		handler:     NewHandler(coordinator, logger),
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether a remote URL is configured.
func (f *Feature) IsEnabled() bool {
	return f.coordinator.Enabled()
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
