package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"figuremaker/internal/figure/element"

	"github.com/gofiber/fiber/v3/log"
)

var (
	ErrUnknownType = errors.New("unknown element type")
	ErrMalformed   = errors.New("malformed document")
)

// ============================================================
// Encode
// ============================================================

// Encode переводит элемент в запись. Вложенные группы внутри группы
// разворачиваются в листья: в файле у детей группы своих детей нет.
func Encode(e element.Element) (Record, error) {
	b := e.Bounds()
	rec := Record{Type: string(e.Kind()), X: b.X, Y: b.Y, Width: b.W, Height: b.H}

	switch v := e.(type) {
	case *element.Rect:
		encodePaint(&rec, v.Paint)
	case *element.Circle:
		encodePaint(&rec, v.Paint)
	case *element.Path:
		encodePaint(&rec, v.Paint)
		rec.PathData = FormatPath(v.Path)
	case *element.Text:
		encodeFont(&rec, v.Text, v.Font)
		if v.Color != nil {
			rec.TextColor = FormatColor(v.Color)
		}
	case *element.SVGText:
		encodeFont(&rec, v.Text, v.Font)
		rec.TextColor = FormatColor(&v.Color)
		rec.Rotation = v.Rotation
	case *element.Image:
		data, err := EncodeRaster(v.Img)
		if err != nil {
			return Record{}, err
		}
		rec.ImagePath = v.Source
		rec.ImageData = data
	case *element.Group:
		rec.GroupID = v.GroupID
		rec.IsClippingMask = v.ClippingMask
		rec.Children = []Record{}
		for leaf := range element.Leaves(v) {
			child, err := Encode(leaf)
			if err != nil {
				return Record{}, fmt.Errorf("group %q child: %w", v.GroupID, err)
			}
			rec.Children = append(rec.Children, child)
		}
	default:
		return Record{}, fmt.Errorf("%w: %T", ErrUnknownType, e)
	}
	return rec, nil
}

func encodePaint(rec *Record, p element.Paint) {
	rec.FillColor = FormatColor(p.Fill)
	rec.StrokeColor = FormatColor(p.Stroke)
	w := p.StrokeWidth
	rec.StrokeWidth = &w
}

func encodeFont(rec *Record, text string, f element.Font) {
	rec.Text = text
	rec.FontName = f.Family
	rec.FontSize = f.Size
	rec.FontStyle = int(f.Style)
}

// ============================================================
// Decode
// ============================================================

// Decode строит элемент из записи. Отсутствующие необязательные поля
// получают значения по умолчанию.
func Decode(rec Record) (element.Element, error) {
	kind, ok := element.ParseKind(rec.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, rec.Type)
	}

	switch kind {
	case element.KindRect:
		return element.NewRect(rec.X, rec.Y, rec.Width, rec.Height, decodePaint(rec)), nil
	case element.KindCircle:
		return element.NewCircle(rec.X, rec.Y, rec.Width, rec.Height, decodePaint(rec)), nil
	case element.KindPath:
		return element.NewPath(rec.X, rec.Y, rec.Width, rec.Height, ParsePath(rec.PathData), decodePaint(rec)), nil
	case element.KindText:
		t := element.NewText(rec.X, rec.Y, rec.Width, rec.Height, rec.Text, decodeFont(rec))
		if rec.TextColor != "" {
			t.Color = ParseColor(rec.TextColor)
		}
		return t, nil
	case element.KindSVGText:
		return element.NewSVGText(rec.X, rec.Y, rec.Width, rec.Height, rec.Text, decodeFont(rec),
			ParseColor(rec.TextColor), rec.Rotation), nil
	case element.KindImage:
		if rec.ImageData == "" {
			return nil, fmt.Errorf("%w: image record without data", ErrImageDecode)
		}
		img, err := DecodeRaster(rec.ImageData)
		if err != nil {
			return nil, err
		}
		return element.NewImage(rec.X, rec.Y, rec.Width, rec.Height, img, rec.ImagePath), nil
	case element.KindGroup, element.KindClippingMask:
		g := element.NewGroupAt(rec.X, rec.Y, rec.Width, rec.Height)
		g.GroupID = rec.GroupID
		g.ClippingMask = rec.IsClippingMask || kind == element.KindClippingMask
		for _, childRec := range rec.Children {
			child, err := Decode(childRec)
			if errors.Is(err, ErrUnknownType) {
				log.Warnf("[CODEC] group %q: skipping child: %v", rec.GroupID, err)
				continue
			}
			if err != nil {
				return nil, err
			}
			g.AddChild(child)
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownType, rec.Type)
}

func decodePaint(rec Record) element.Paint {
	p := element.Paint{
		Fill:   ParseColor(rec.FillColor),
		Stroke: ParseColor(rec.StrokeColor),
	}
	if rec.StrokeWidth != nil {
		p.StrokeWidth = *rec.StrokeWidth
	}
	return p
}

func decodeFont(rec Record) element.Font {
	f := element.DefaultFont
	if rec.FontName != "" {
		f.Family = rec.FontName
	}
	if rec.FontSize > 0 {
		f.Size = rec.FontSize
	}
	f.Style = element.FontStyle(rec.FontStyle)
	return f
}

// ============================================================
// Documents
// ============================================================

// EncodeAll кодирует список элементов в порядке снизу вверх.
func EncodeAll(elems []element.Element) (File, error) {
	f := File{Elements: make([]Record, 0, len(elems))}
	for i, e := range elems {
		rec, err := Encode(e)
		if err != nil {
			return File{}, fmt.Errorf("element %d: %w", i, err)
		}
		f.Elements = append(f.Elements, rec)
	}
	return f, nil
}

// DecodeAll декодирует все записи. Записи неизвестного типа пропускаются
// с предупреждением; ошибка декодирования изображения прерывает загрузку целиком.
func DecodeAll(f File) ([]element.Element, error) {
	elems := make([]element.Element, 0, len(f.Elements))
	for i, rec := range f.Elements {
		e, err := Decode(rec)
		if errors.Is(err, ErrUnknownType) {
			log.Warnf("[CODEC] element %d: %v", i, err)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		elems = append(elems, e)
	}
	return elems, nil
}

// Clone глубокая копия через кодирование и декодирование каждого элемента.
func Clone(elems []element.Element) ([]element.Element, error) {
	f, err := EncodeAll(elems)
	if err != nil {
		return nil, err
	}
	return DecodeAll(f)
}

// Marshal кодирует документ в JSON с отступом в два пробела.
func Marshal(elems []element.Element) ([]byte, error) {
	f, err := EncodeAll(elems)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(f, "", "  ")
}

// Unmarshal разбирает JSON документа.
func Unmarshal(data []byte) ([]element.Element, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return DecodeAll(f)
}

func Write(w io.Writer, elems []element.Element) error {
	data, err := Marshal(elems)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func Read(r io.Reader) ([]element.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return Unmarshal(data)
}
