package handlers

import (
	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Routes
// ============================================================

// Register подключает маршруты редактора. Индексы элементов считаются
// снизу вверх по z-порядку.
func Register(app fiber.Router, h *DocumentHandler) {
	app.Get("/health/live", LivenessProbe)
	app.Get("/health/ready", h.ReadinessProbe)
	app.Get("/docs", SwaggerUI)
	app.Get("/docs/openapi.yaml", OpenAPIDocument)

	app.Get("/stored", h.ListStored)
	app.Delete("/stored/:storeId", h.DeleteStored)
	app.Post("/documents/open/:storeId", h.Open)

	app.Post("/documents", h.Create)
	app.Get("/documents/:id", h.Get)
	app.Put("/documents/:id", h.Replace)
	app.Delete("/documents/:id", h.Delete)
	app.Get("/documents/:id/info", h.Info)

	app.Post("/documents/:id/import", h.Import)
	app.Post("/documents/:id/images", h.AddImage)
	app.Get("/documents/:id/export.svg", h.ExportSVG)
	app.Get("/documents/:id/export.png", h.ExportPNG)
	app.Post("/documents/:id/store", h.Store)

	app.Post("/documents/:id/elements", h.AddElement)
	app.Get("/documents/:id/elements/:index", h.GetElement)
	app.Delete("/documents/:id/elements/:index", h.DeleteElement)
	app.Post("/documents/:id/elements/:index/move", h.Move)
	app.Post("/documents/:id/elements/:index/resize", h.Resize)
	app.Post("/documents/:id/elements/:index/ungroup", h.Ungroup)
	app.Post("/documents/:id/elements/:index/release-mask", h.ReleaseMask)
	app.Post("/documents/:id/elements/:index/order", h.Order)

	app.Post("/documents/:id/group", h.Group)
	app.Post("/documents/:id/copy", h.Copy)
	app.Post("/documents/:id/cut", h.Cut)
	app.Post("/documents/:id/paste", h.Paste)
	app.Post("/documents/:id/undo", h.Undo)
	app.Post("/documents/:id/redo", h.Redo)
}
