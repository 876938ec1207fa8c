package element

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage файл не распознан как растровое изображение.
var ErrNotImage = errors.New("not a raster image")

// ============================================================
// Image
// ============================================================

// Image растровое изображение. Source только подпись источника, данные берутся из Img.
type Image struct {
	Base
	Img    image.Image
	Source string
}

func NewImage(x, y, w, h int, img image.Image, source string) *Image {
	return &Image{Base: Base{X: x, Y: y, W: w, H: h}, Img: img, Source: source}
}

func (e *Image) Kind() Kind { return KindImage }

func (e *Image) Draw(r Renderer) {
	if e.Img == nil {
		return
	}
	r.DrawImage(e.Img, e.Bounds())
	if e.selected {
		r.StrokeShape(Shape{Kind: ShapeRect, Rect: e.box()}, SelectionColor, 2)
	}
}

// DecodeImage определяет тип по сигнатуре и декодирует растр.
func DecodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// LoadImage читает изображение с диска; размер элемента равен размеру растра.
func LoadImage(path string, x, y int) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	b := img.Bounds()
	return NewImage(x, y, b.Dx(), b.Dy(), img, path), nil
}
