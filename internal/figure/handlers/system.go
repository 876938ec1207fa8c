package handlers

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

//go:embed openapi.yaml
var openAPIDoc []byte

// ============================================================
// Health Check Handlers
// ============================================================

// LivenessProbe проверяет, что приложение работает
func LivenessProbe(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// ReadinessProbe проверяет, что хранилище документов отвечает.
func (h *DocumentHandler) ReadinessProbe(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := h.workspaces.Stored(ctx); err != nil {
		log.Warnf("[HTTP] readiness: document store: %v", err)
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ============================================================
// API Docs
// ============================================================

// OpenAPIDocument отдаёт OpenAPI YAML.
func OpenAPIDocument(c fiber.Ctx) error {
	c.Type("yaml")
	return c.Send(openAPIDoc)
}

// SwaggerUI отдаёт страницу Swagger UI, читающую описание API из /docs/openapi.yaml.
func SwaggerUI(c fiber.Ctx) error {
	page := `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Figure Editor API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script>
  window.onload = () => {
    window.ui = SwaggerUIBundle({
      url: '/docs/openapi.yaml',
      dom_id: '#swagger-ui',
    });
  };
</script>
</body>
</html>`

	c.Type("html")
	return c.SendString(page)
}
