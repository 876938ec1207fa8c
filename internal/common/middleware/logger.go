package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// quietPrefixes пути, которые опрашиваются часто и в журнал не пишутся.
var quietPrefixes = []string{"/health/", "/docs"}

// Logger журнал запросов к редактору: статус, время, размер ответа.
func Logger() fiber.Handler {
	return logger.New(logger.Config{
		Next:       quiet,
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}?${queryParams} | ${bytesSent}B | ${reqHeader:Content-Type}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}

func quiet(c fiber.Ctx) bool {
	path := c.Path()
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
