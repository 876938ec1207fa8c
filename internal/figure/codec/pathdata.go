package codec

import (
	"fmt"
	"strconv"
	"strings"

	"figuremaker/internal/figure/geom"

	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Path mini-language
// ============================================================

// FormatPath кодирует контур: "M x,y L x,y Q x,y x,y C x,y x,y x,y Z".
func FormatPath(p *geom.Path) string {
	if p == nil {
		return ""
	}
	var sb strings.Builder
	for i, seg := range p.Segments() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(seg.Op.String())
		for j := 0; j < seg.Op.NumPoints(); j++ {
			sb.WriteByte(' ')
			sb.WriteString(formatFloat(seg.Pts[j].X))
			sb.WriteByte(',')
			sb.WriteString(formatFloat(seg.Pts[j].Y))
		}
	}
	return sb.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParsePath разбирает мини-язык контура. Принимается и форма с буквой,
// приклеенной к первой паре ("M1.0,2.0"). Испорченная команда пропускается
// с предупреждением, разбор продолжается со следующей команды.
func ParsePath(data string) *geom.Path {
	p := geom.NewPath()
	fields := strings.Fields(data)
	for i := 0; i < len(fields); {
		head := fields[i]
		i++
		if !isCommandLetter(head[0]) {
			log.Warnf("[CODEC] path data: stray token %q", head)
			continue
		}

		var pairs []string
		if rest := head[1:]; rest != "" {
			pairs = append(pairs, rest)
		}
		for i < len(fields) && !isCommandLetter(fields[i][0]) {
			pairs = append(pairs, fields[i])
			i++
		}

		seg, err := parseSegment(head[0], pairs)
		if err != nil {
			log.Warnf("[CODEC] path data: skipping command %q: %v", head, err)
			continue
		}
		p.Append(seg)
	}
	return p
}

func isCommandLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func parseSegment(cmd byte, pairs []string) (geom.Segment, error) {
	var seg geom.Segment
	switch cmd {
	case 'M':
		seg.Op = geom.MoveTo
	case 'L':
		seg.Op = geom.LineTo
	case 'Q':
		seg.Op = geom.QuadTo
	case 'C':
		seg.Op = geom.CubicTo
	case 'Z':
		seg.Op = geom.Close
	default:
		return seg, fmt.Errorf("unknown command %q", cmd)
	}

	if len(pairs) != seg.Op.NumPoints() {
		return seg, fmt.Errorf("want %d coordinate pairs, got %d", seg.Op.NumPoints(), len(pairs))
	}
	for j, pair := range pairs {
		pt, err := parsePair(pair)
		if err != nil {
			return seg, err
		}
		seg.Pts[j] = pt
	}
	return seg, nil
}

func parsePair(s string) (geom.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return geom.Point{}, fmt.Errorf("malformed pair %q", s)
	}
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("pair %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("pair %q: %w", s, err)
	}
	return geom.Point{X: x, Y: y}, nil
}
