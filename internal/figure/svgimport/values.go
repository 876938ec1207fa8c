package svgimport

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	pstrconv "github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"
)

var (
	ErrBadNumber   = errors.New("malformed number")
	ErrMissingAttr = errors.New("missing required attribute")
)

// ============================================================
// Numbers
// ============================================================

// parseLength разбирает число с необязательной единицей измерения ("12px", "50%").
// Единица отбрасывается без пересчёта.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrBadNumber
	}
	f, n := pstrconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	for _, c := range s[n:] {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '%') {
			return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
		}
	}
	return f, nil
}

// lengthAttr читает необязательный атрибут длины; отсутствующий даёт def.
func lengthAttr(n *Node, name string, def float64) (float64, error) {
	v := n.Attr(name)
	if v == "" {
		return def, nil
	}
	f, err := parseLength(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return f, nil
}

// requiredLength читает обязательный атрибут длины.
func requiredLength(n *Node, name string) (float64, error) {
	if n.Attr(name) == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingAttr, name)
	}
	return lengthAttr(n, name, 0)
}

// ============================================================
// Style & transform
// ============================================================

// parseStyle разбирает inline-стиль "fill:red; stroke:#000" в карту свойств.
func parseStyle(s string) map[string]string {
	props := map[string]string{}
	if strings.TrimSpace(s) == "" {
		return props
	}
	p := css.NewParser(parse.NewInputString(s), true)
	for {
		gt, _, data := p.Next()
		if gt == css.ErrorGrammar {
			break
		}
		if gt != css.DeclarationGrammar {
			continue
		}
		var val strings.Builder
		for _, v := range p.Values() {
			val.Write(v.Data)
		}
		props[strings.ToLower(string(data))] = strings.TrimSpace(val.String())
	}
	return props
}

// parseTranslate суммирует все функции translate(tx[, ty]) атрибута transform.
// Остальные функции преобразования игнорируются.
func parseTranslate(s string) (int, int) {
	var dx, dy int
	for {
		i := strings.Index(s, "translate(")
		if i < 0 {
			return dx, dy
		}
		s = s[i+len("translate("):]
		end := strings.IndexByte(s, ')')
		if end < 0 {
			return dx, dy
		}
		sc := scanner{d: []byte(s[:end])}
		if tx, err := sc.num(); err == nil {
			dx += int(tx)
			if sc.more() {
				if ty, err := sc.num(); err == nil {
					dy += int(ty)
				}
			}
		}
		s = s[end+1:]
	}
}

// ============================================================
// Colors
// ============================================================

// parseColor разбирает цвет SVG. Пустая строка и "none" означают отсутствие
// краски. ok=false для нераспознанного значения, тогда возвращается чёрный.
func parseColor(s string) (*color.RGBA, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if lower == "" || lower == "none" {
		return nil, true
	}
	black := &color.RGBA{A: 0xff}

	switch {
	case strings.HasPrefix(lower, "#"):
		if c, ok := parseHexColor(lower[1:]); ok {
			return &c, true
		}
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		if c, ok := parseRGBFunc(lower[4 : len(lower)-1]); ok {
			return &c, true
		}
	default:
		if c, ok := colornames.Map[lower]; ok {
			return &c, true
		}
	}
	return black, false
}

func parseHexColor(hex string) (color.RGBA, bool) {
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

// parseRGBFunc разбирает аргументы rgb(r, g, b): целые 0..255 или проценты.
func parseRGBFunc(args string) (color.RGBA, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != 3 {
		return color.RGBA{}, false
	}
	var ch [3]uint8
	for i, part := range parts {
		part = strings.TrimSpace(part)
		scale := 1.0
		if strings.HasSuffix(part, "%") {
			part = strings.TrimSuffix(part, "%")
			scale = 255.0 / 100.0
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return color.RGBA{}, false
		}
		v *= scale
		ch[i] = uint8(max(0, min(255, int(v+0.5))))
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, true
}
