package codec

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3/log"
)

// colorNone значение поля цвета при отсутствии краски.
const colorNone = "none"

// FormatColor кодирует цвет как #rrggbb в нижнем регистре, nil как "none".
func FormatColor(c *color.RGBA) string {
	if c == nil {
		return colorNone
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor обратная к FormatColor. Пустая строка и "none" дают nil,
// нераспознанное значение даёт чёрный с предупреждением.
func ParseColor(s string) *color.RGBA {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, colorNone) {
		return nil
	}
	if c, ok := parseHex(s); ok {
		return &c
	}
	log.Warnf("[CODEC] unrecognized color %q, using black", s)
	return &color.RGBA{A: 0xff}
}

// parseHex разбирает #rgb и #rrggbb.
func parseHex(s string) (color.RGBA, bool) {
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}
