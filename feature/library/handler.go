package library

import (
	"errors"

	"catalog-manager/core/logger"
	"catalog-manager/feature/library/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog, loans, users and settings.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the library routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	books := app.Group("/books")
	books.Get("/", h.HandleListBooks)
	books.Post("/", h.HandleAddBook)
	books.Delete("/:code", h.HandleRemoveBook)

	loans := app.Group("/loans")
	loans.Get("/", h.HandleListLoans)
	loans.Post("/", h.HandleBorrow)
	loans.Post("/:id/return", h.HandleReturn)

	users := app.Group("/users")
	users.Get("/", h.HandleListUsers)
	users.Post("/", h.HandleAddUser)
	users.Put("/active", h.HandleSetActiveUser)

	app.Get("/settings", h.HandleGetSettings)
	app.Put("/settings", h.HandleUpdateSettings)
}

// statusFor maps domain errors onto HTTP statuses. Validation problems are
// 400, missing entities 404, state conflicts 409.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCode), errors.Is(err, ErrEmptyTitle):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateCode),
		errors.Is(err, ErrNoCopiesAvailable),
		errors.Is(err, ErrAlreadyBorrowed),
		errors.Is(err, ErrAlreadyReturned),
		errors.Is(err, ErrHasOpenLoans),
		errors.Is(err, ErrGuestBorrow):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// HandleListBooks returns the whole catalog.
func (h *Handler) HandleListBooks(c *fiber.Ctx) error {
	return c.JSON(h.service.ListBooks())
}

// HandleAddBook inserts a distinct title. Body: {code?, prefix?, title,
// year?, copies?}; when code is omitted one is generated from prefix.
func (h *Handler) HandleAddBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body struct {
		Code   string `json:"code"`
		Prefix string `json:"prefix"`
		Title  string `json:"title"`
		Year   int    `json:"year"`
		Copies int    `json:"copies"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if body.Code == "" && body.Prefix == "" {
		body.Prefix = "A"
	}

	rec, err := h.service.AddBook(body.Code, body.Prefix, body.Title, body.Year, body.Copies)
	if err != nil {
		l.Warn("add book rejected", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

// HandleRemoveBook deletes a title; 409 while open loans exist.
func (h *Handler) HandleRemoveBook(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.RemoveBook(c.Params("code")); err != nil {
		l.Warn("remove book rejected", zap.Error(err))
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListLoans returns open loans visible to ?user= with ?role=.
func (h *Handler) HandleListLoans(c *fiber.Ctx) error {
	userID := c.Query("user")
	role := c.Query("role", models.RoleMember)
	return c.JSON(h.service.Loans(userID, role))
}

// HandleBorrow lends a copy. Body: {code, userId}.
func (h *Handler) HandleBorrow(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body struct {
		Code   string `json:"code"`
		UserID string `json:"userId"`
	}
	if err := c.BodyParser(&body); err != nil || body.Code == "" || body.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "code and userId are required"})
	}

	loan, err := h.service.Borrow(body.Code, body.UserID)
	if err != nil {
		l.Warn("borrow rejected", zap.Error(err))
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loan)
}

// HandleReturn closes the loan named in the path.
func (h *Handler) HandleReturn(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	loan, err := h.service.Return(c.Params("id"))
	if err != nil {
		l.Warn("return rejected", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(loan)
}

// HandleListUsers returns the user registry.
func (h *Handler) HandleListUsers(c *fiber.Ctx) error {
	return c.JSON(h.service.Users())
}

// HandleAddUser registers or updates a user. Body: {id, name, role?}.
func (h *Handler) HandleAddUser(c *fiber.Ctx) error {
	var u models.User
	if err := c.BodyParser(&u); err != nil || u.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id is required"})
	}
	return c.Status(fiber.StatusCreated).JSON(h.service.AddUser(u))
}

// HandleSetActiveUser records the currently selected user. Body: {id}.
func (h *Handler) HandleSetActiveUser(c *fiber.Ctx) error {
	var body struct {
		ID string `json:"id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	h.service.State().SetActiveUser(body.ID)
	return c.JSON(fiber.Map{"activeUser": body.ID})
}

// HandleGetSettings returns the current settings.
func (h *Handler) HandleGetSettings(c *fiber.Ctx) error {
	return c.JSON(h.service.Settings())
}

// HandleUpdateSettings replaces the settings wholesale.
func (h *Handler) HandleUpdateSettings(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if settings.LoanDays < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "loanDays must be at least 1"})
	}
	h.service.UpdateSettings(settings)
	return c.JSON(settings)
}
