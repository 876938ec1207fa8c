// Package document хранит упорядоченный список элементов холста,
// историю отмены и буфер обмена.
package document

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"slices"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/element"
)

var (
	ErrNotFound = errors.New("element not in document")
	ErrNotGroup = errors.New("element is not a group")
	ErrEmpty    = errors.New("nothing to group")
)

// ============================================================
// Document
// ============================================================

// Document упорядоченный список элементов верхнего уровня. Порядок задаёт
// z-порядок: последний рисуется поверх и побеждает при попадании.
// Document не потокобезопасен.
type Document struct {
	elements []element.Element
}

func New(elems ...element.Element) *Document {
	return &Document{elements: slices.Clone(elems)}
}

func (d *Document) Add(e element.Element) {
	d.elements = append(d.elements, e)
}

// Insert вставляет элемент на позицию i (0 снизу).
func (d *Document) Insert(i int, e element.Element) {
	i = max(0, min(i, len(d.elements)))
	d.elements = slices.Insert(d.elements, i, e)
}

// Remove удаляет элемент по идентичности. false, если элемента нет.
func (d *Document) Remove(e element.Element) bool {
	i := d.IndexOf(e)
	if i < 0 {
		return false
	}
	d.elements = slices.Delete(d.elements, i, i+1)
	return true
}

func (d *Document) Clear() {
	d.elements = nil
}

// Elements копия списка снизу вверх.
func (d *Document) Elements() []element.Element {
	return slices.Clone(d.elements)
}

// SetElements заменяет список целиком.
func (d *Document) SetElements(elems []element.Element) {
	d.elements = slices.Clone(elems)
}

func (d *Document) Len() int {
	return len(d.elements)
}

func (d *Document) At(i int) (element.Element, bool) {
	if i < 0 || i >= len(d.elements) {
		return nil, false
	}
	return d.elements[i], true
}

func (d *Document) IndexOf(e element.Element) int {
	for i, el := range d.elements {
		if el == e {
			return i
		}
	}
	return -1
}

// BottomToTop обход в порядке отрисовки.
func (d *Document) BottomToTop() iter.Seq[element.Element] {
	return func(yield func(element.Element) bool) {
		for _, e := range d.elements {
			if !yield(e) {
				return
			}
		}
	}
}

// TopToBottom ленивый обратный обход для поиска попаданий.
func (d *Document) TopToBottom() iter.Seq[element.Element] {
	return func(yield func(element.Element) bool) {
		for i := len(d.elements) - 1; i >= 0; i-- {
			if !yield(d.elements[i]) {
				return
			}
		}
	}
}

// ElementAt верхний элемент, содержащий точку.
func (d *Document) ElementAt(px, py int) (element.Element, bool) {
	for e := range d.TopToBottom() {
		if e.Contains(px, py) {
			return e, true
		}
	}
	return nil, false
}

// Replace ставит next на место prev, сохраняя z-позицию.
func (d *Document) Replace(prev, next element.Element) error {
	i := d.IndexOf(prev)
	if i < 0 {
		return ErrNotFound
	}
	d.elements[i] = next
	return nil
}

// ============================================================
// Reorder
// ============================================================

// Move переносит элемент на позицию to в z-порядке.
func (d *Document) Move(e element.Element, to int) error {
	i := d.IndexOf(e)
	if i < 0 {
		return ErrNotFound
	}
	d.elements = slices.Delete(d.elements, i, i+1)
	d.Insert(to, e)
	return nil
}

func (d *Document) BringToFront(e element.Element) error {
	return d.Move(e, len(d.elements))
}

func (d *Document) SendToBack(e element.Element) error {
	return d.Move(e, 0)
}

// ============================================================
// Grouping
// ============================================================

// Ungroup удаляет группу и вставляет её детей на её z-позицию.
// Дети сохраняют абсолютные координаты.
func (d *Document) Ungroup(e element.Element) ([]element.Element, error) {
	g, ok := e.(*element.Group)
	if !ok {
		return nil, ErrNotGroup
	}
	i := d.IndexOf(g)
	if i < 0 {
		return nil, ErrNotFound
	}
	children := slices.Clone(g.Children())
	d.elements = slices.Replace(d.elements, i, i+1, children...)
	return children, nil
}

// Group объединяет элементы верхнего уровня в новую группу. Дети идут
// в z-порядке документа, группа встаёт на место самого верхнего из них.
func (d *Document) Group(elems []element.Element) (*element.Group, error) {
	if len(elems) == 0 {
		return nil, ErrEmpty
	}
	members := make(map[element.Element]bool, len(elems))
	for _, e := range elems {
		if d.IndexOf(e) < 0 {
			return nil, ErrNotFound
		}
		members[e] = true
	}

	g := element.NewGroup()
	top := 0
	kept := d.elements[:0:0]
	for _, e := range d.elements {
		if members[e] {
			g.AddChild(e)
			top = len(kept)
			continue
		}
		kept = append(kept, e)
	}
	d.elements = slices.Insert(kept, top, element.Element(g))
	return g, nil
}

// ============================================================
// Selection
// ============================================================

// Selection выделенные элементы верхнего уровня снизу вверх.
func (d *Document) Selection() []element.Element {
	var out []element.Element
	for _, e := range d.elements {
		if e.Selected() {
			out = append(out, e)
		}
	}
	return out
}

func (d *Document) ClearSelection() {
	for _, e := range d.elements {
		e.SetSelected(false)
	}
}

// ============================================================
// Persistence
// ============================================================

// Save пишет документ в формате файла.
func (d *Document) Save(w io.Writer) error {
	return codec.Write(w, d.elements)
}

// Load читает документ и заменяет элементы только при полном успехе.
func (d *Document) Load(r io.Reader) error {
	elems, err := codec.Read(r)
	if err != nil {
		return err
	}
	d.elements = elems
	return nil
}

// SaveFile атомарно записывает документ: во временный файл, затем переименование.
func (d *Document) SaveFile(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".figure-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.Save(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("save document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (d *Document) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return d.Load(f)
}
