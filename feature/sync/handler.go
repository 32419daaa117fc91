package sync

import (
	"errors"

	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync operations.
type Handler struct {
	coordinator *Coordinator
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(coordinator *Coordinator, logger *zap.Logger) *Handler {
	return &Handler{coordinator: coordinator, logger: logger}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync")
	group.Get("/status", h.HandleStatus)
	group.Post("/push", h.HandlePush)
	group.Post("/pull", h.HandlePull)
}

// HandleStatus reports the coordinator phase and gate timestamps.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.coordinator.Status())
}

// HandlePush performs an immediate push, bypassing the debounce window.
func (h *Handler) HandlePush(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.coordinator.PushNow(c.Context()); err != nil {
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, ErrDisabled):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, ErrPushInFlight):
			status = fiber.StatusConflict
		}
		l.Error("manual push failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}

// HandlePull performs an interactive pull. A pull that would empty a
// non-empty local catalog returns 409 until called with ?confirm=true.
func (h *Handler) HandlePull(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	opts := PullOptions{Confirmed: c.QueryBool("confirm")}
	if err := h.coordinator.Pull(c.Context(), opts); err != nil {
		status := fiber.StatusBadGateway
		switch {
		case errors.Is(err, ErrDisabled):
			status = fiber.StatusServiceUnavailable
		case errors.Is(err, ErrConfirmationRequired):
			status = fiber.StatusConflict
		case errors.Is(err, ErrMalformedResponse):
			status = fiber.StatusBadGateway
		}
		l.Error("manual pull failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"ok": true})
}
