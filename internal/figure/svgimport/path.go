package svgimport

import (
	"errors"
	"fmt"
	"strings"

	"figuremaker/internal/figure/geom"

	pstrconv "github.com/tdewolff/parse/v2/strconv"
)

// ErrSmoothCurve данные контура содержат сокращённые кривые S/T,
// такой контур отклоняется целиком.
var ErrSmoothCurve = errors.New("smooth curve commands (S/T) are not supported")

// ============================================================
// Path data scanner
// ============================================================

type scanner struct {
	d []byte
	i int
}

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func isNumberStart(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+'
}

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (s *scanner) skip() {
	for s.i < len(s.d) && isSeparator(s.d[s.i]) {
		s.i++
	}
}

func (s *scanner) done() bool {
	s.skip()
	return s.i >= len(s.d)
}

// more сообщает, начинается ли дальше число.
func (s *scanner) more() bool {
	s.skip()
	return s.i < len(s.d) && isNumberStart(s.d[s.i])
}

func (s *scanner) num() (float64, error) {
	s.skip()
	f, n := pstrconv.ParseFloat(s.d[s.i:])
	if n == 0 {
		return 0, fmt.Errorf("%w at offset %d", ErrBadNumber, s.i)
	}
	s.i += n
	return f, nil
}

func (s *scanner) nums(dst ...*float64) error {
	for _, p := range dst {
		v, err := s.num()
		if err != nil {
			return err
		}
		*p = v
	}
	return nil
}

// flag читает флаг дуги: одиночный символ 0 или 1, разделитель не обязателен.
func (s *scanner) flag() (bool, error) {
	s.skip()
	if s.i < len(s.d) && (s.d[s.i] == '0' || s.d[s.i] == '1') {
		v := s.d[s.i] == '1'
		s.i++
		return v, nil
	}
	return false, fmt.Errorf("%w: arc flag at offset %d", ErrBadNumber, s.i)
}

// ============================================================
// Path parser
// ============================================================

const pathCommands = "MmLlHhVvCcQqAaZz"

// parsePathData переводит атрибут d в контур в абсолютных координатах.
// Неизвестная команда пропускается вместе с аргументами, команда без аргументов
// пропускается; обе попадают в warnings. Испорченное число или команда S/T делают весь контур недействительным.
func parsePathData(d string) (*geom.Path, []string, error) {
	if strings.ContainsAny(d, "SsTt") {
		return nil, nil, ErrSmoothCurve
	}

	var warnings []string
	p := geom.NewPath()
	s := &scanner{d: []byte(d)}
	var cmd byte
	for !s.done() {
		c := s.d[s.i]
		switch {
		case isLetter(c):
			s.i++
			if strings.IndexByte(pathCommands, c) < 0 {
				warnings = append(warnings, fmt.Sprintf("unknown path command %q skipped", c))
				for s.i < len(s.d) && strings.IndexByte(pathCommands, s.d[s.i]) < 0 {
					s.i++
				}
				cmd = 0
				continue
			}
			cmd = c
			if cmd != 'Z' && cmd != 'z' && !s.more() {
				warnings = append(warnings, fmt.Sprintf("path command %q without arguments skipped", c))
				cmd = 0
				continue
			}
		case isNumberStart(c) && cmd != 0 && cmd != 'Z' && cmd != 'z':
			// повтор предыдущей команды; после moveto повторяется lineto
			if cmd == 'M' {
				cmd = 'L'
			} else if cmd == 'm' {
				cmd = 'l'
			}
		default:
			return nil, warnings, fmt.Errorf("%w: unexpected %q at offset %d", ErrBadNumber, c, s.i)
		}

		if err := applyCommand(p, s, cmd); err != nil {
			return nil, warnings, fmt.Errorf("command %q: %w", cmd, err)
		}
	}
	if p.Empty() {
		return nil, warnings, fmt.Errorf("%w: empty path data", ErrMissingAttr)
	}
	return p, warnings, nil
}

func applyCommand(p *geom.Path, s *scanner, cmd byte) error {
	cur := p.Current()
	rel := cmd >= 'a' && cmd <= 'z'
	ox, oy := 0.0, 0.0
	if rel {
		ox, oy = cur.X, cur.Y
	}

	switch cmd {
	case 'M', 'm':
		var x, y float64
		if err := s.nums(&x, &y); err != nil {
			return err
		}
		p.MoveTo(x+ox, y+oy)
	case 'L', 'l':
		var x, y float64
		if err := s.nums(&x, &y); err != nil {
			return err
		}
		p.LineTo(x+ox, y+oy)
	case 'H', 'h':
		var x float64
		if err := s.nums(&x); err != nil {
			return err
		}
		p.LineTo(x+ox, cur.Y)
	case 'V', 'v':
		var y float64
		if err := s.nums(&y); err != nil {
			return err
		}
		p.LineTo(cur.X, y+oy)
	case 'C', 'c':
		var x1, y1, x2, y2, x, y float64
		if err := s.nums(&x1, &y1, &x2, &y2, &x, &y); err != nil {
			return err
		}
		p.CubicTo(x1+ox, y1+oy, x2+ox, y2+oy, x+ox, y+oy)
	case 'Q', 'q':
		var x1, y1, x, y float64
		if err := s.nums(&x1, &y1, &x, &y); err != nil {
			return err
		}
		p.QuadTo(x1+ox, y1+oy, x+ox, y+oy)
	case 'A', 'a':
		var rx, ry, angle float64
		if err := s.nums(&rx, &ry, &angle); err != nil {
			return err
		}
		large, err := s.flag()
		if err != nil {
			return err
		}
		sweep, err := s.flag()
		if err != nil {
			return err
		}
		var x, y float64
		if err := s.nums(&x, &y); err != nil {
			return err
		}
		p.ArcTo(rx, ry, angle, large, sweep, x+ox, y+oy)
	case 'Z', 'z':
		p.Close()
	}
	return nil
}
