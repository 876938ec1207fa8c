package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"figuremaker/internal/figure/element"
)

var (
	ErrImageDecode = errors.New("image decode failed")
	ErrImageEncode = errors.New("image encode failed")
)

// EncodeRaster кодирует растр в PNG и затем в base64.
func EncodeRaster(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("%w: no raster", ErrImageEncode)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageEncode, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeRaster обратная к EncodeRaster. Принимаются и другие растровые
// форматы, для которых зарегистрирован декодер.
func DecodeRaster(data string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrImageDecode, err)
	}
	img, err := element.DecodeImage(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return img, nil
}
