// Package codec переводит элементы в записи файла документа и обратно.
package codec

// ============================================================
// Records
// ============================================================

// File структура файла документа: {"elements": [...]}.
type File struct {
	Elements []Record `json:"elements"`
}

// Record плоская запись элемента. Набор заполненных полей зависит от Type.
type Record struct {
	Type   string `json:"type"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	// rect, circle, path
	FillColor   string   `json:"fillColor,omitempty"`
	StrokeColor string   `json:"strokeColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	PathData    string   `json:"pathData,omitempty"`

	// text, svg-text
	Text      string  `json:"text,omitempty"`
	FontName  string  `json:"fontName,omitempty"`
	FontSize  int     `json:"fontSize,omitempty"`
	FontStyle int     `json:"fontStyle,omitempty"`
	TextColor string  `json:"textColor,omitempty"`
	Rotation  float64 `json:"rotation,omitempty"`

	// image
	ImagePath string `json:"imagePath,omitempty"`
	ImageData string `json:"imageData,omitempty"`

	// group, clipping-mask
	GroupID        string   `json:"groupId,omitempty"`
	IsClippingMask bool     `json:"isClippingMask,omitempty"`
	Children       []Record `json:"children,omitempty"`
}
