package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// CORS открывает API редактора для браузерного клиента. В production
// источник ограничивается списком origins.
func CORS(production bool, origins []string) fiber.Handler {
	cfg := cors.Config{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders: []string{"Content-Disposition"},
	}
	if production && len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
