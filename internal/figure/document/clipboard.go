package document

import (
	"fmt"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/element"
)

// PasteOffset сдвиг вставленных элементов относительно оригинала.
const PasteOffset = 20

// ============================================================
// Clipboard
// ============================================================

// Clipboard хранит закодированные записи, поэтому вставка всегда создаёт
// независимые копии.
type Clipboard struct {
	records []codec.Record
}

func (c *Clipboard) Empty() bool {
	return len(c.records) == 0
}

func (c *Clipboard) Len() int {
	return len(c.records)
}

// Copy заменяет содержимое буфера копиями элементов.
func (c *Clipboard) Copy(elems []element.Element) error {
	records := make([]codec.Record, 0, len(elems))
	for _, e := range elems {
		rec, err := codec.Encode(e)
		if err != nil {
			return fmt.Errorf("copy: %w", err)
		}
		records = append(records, rec)
	}
	c.records = records
	return nil
}

// Cut копирует элементы и удаляет их из документа после снимка истории.
func (c *Clipboard) Cut(doc *Document, hist *History, elems []element.Element) error {
	if len(elems) == 0 {
		return nil
	}
	if err := c.Copy(elems); err != nil {
		return err
	}
	if err := hist.Snapshot(); err != nil {
		return err
	}
	for _, e := range elems {
		doc.Remove(e)
	}
	return nil
}

// Paste добавляет копии поверх документа со сдвигом PasteOffset.
// Вставленные элементы становятся выделением.
func (c *Clipboard) Paste(doc *Document, hist *History) ([]element.Element, error) {
	if c.Empty() {
		return nil, nil
	}
	pasted := make([]element.Element, 0, len(c.records))
	for _, rec := range c.records {
		e, err := codec.Decode(rec)
		if err != nil {
			return nil, fmt.Errorf("paste: %w", err)
		}
		e.Translate(PasteOffset, PasteOffset)
		pasted = append(pasted, e)
	}

	if err := hist.Snapshot(); err != nil {
		return nil, err
	}
	doc.ClearSelection()
	for _, e := range pasted {
		e.SetSelected(true)
		doc.Add(e)
	}
	return pasted, nil
}
