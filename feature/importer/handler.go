package importer

import (
	"catalog-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for imports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/import")
	group.Post("/csv", h.HandleImportCSV)
	group.Post("/rows", h.HandleImportRows)
}

// HandleImportCSV accepts a multipart "file" upload in the fixed CSV layout
// and replaces the whole catalog with the reconciled records.
func (h *Handler) HandleImportCSV(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing file upload",
		})
	}
	f, err := fileHeader.Open()
	if err != nil {
		l.Error("failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	defer f.Close()

	res, err := h.service.ImportCSV(f)
	if err != nil {
		l.Error("CSV import failed", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(res)
}

// HandleImportRows accepts a JSON body {"rows": [["A0001","Title","2"],...]}
// and merges the accepted rows into the existing catalog.
func (h *Handler) HandleImportRows(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var body struct {
		Rows []Row `json:"rows"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid body: expected {\"rows\": [[...]]}",
		})
	}

	res := h.service.ImportRows(body.Rows)
	l.Info("rows import handled", zap.Int("success", res.SuccessCount), zap.Int("errors", res.ErrorCount))
	return c.JSON(res)
}
