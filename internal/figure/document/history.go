package document

import (
	"fmt"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/element"

	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// History
// ============================================================

// HistoryLimit глубина стеков отмены и повтора.
const HistoryLimit = 50

// History ограниченные стеки полных снимков документа. Снимок строится
// кодированием и декодированием каждого элемента, поэтому записи истории
// не разделяют состояние с живым документом.
type History struct {
	doc   *Document
	undo  [][]element.Element
	redo  [][]element.Element
	limit int
}

func NewHistory(doc *Document) *History {
	return &History{doc: doc, limit: HistoryLimit}
}

// Snapshot сохраняет копию текущего состояния перед изменением и очищает стек повтора.
func (h *History) Snapshot() error {
	state, err := codec.Clone(h.doc.elements)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	h.undo = push(h.undo, state, h.limit)
	h.redo = nil
	log.Debugf("[HISTORY] snapshot taken (undo=%d)", len(h.undo))
	return nil
}

// Undo возвращает предыдущее состояние. На пустом стеке ничего не делает и возвращает false.
// Выделение сбрасывается.
func (h *History) Undo() (bool, error) {
	if len(h.undo) == 0 {
		return false, nil
	}
	current, err := codec.Clone(h.doc.elements)
	if err != nil {
		return false, fmt.Errorf("undo: %w", err)
	}
	h.redo = push(h.redo, current, h.limit)

	prev := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.doc.SetElements(prev)
	h.doc.ClearSelection()
	return true, nil
}

// Redo симметричен Undo.
func (h *History) Redo() (bool, error) {
	if len(h.redo) == 0 {
		return false, nil
	}
	current, err := codec.Clone(h.doc.elements)
	if err != nil {
		return false, fmt.Errorf("redo: %w", err)
	}
	h.undo = push(h.undo, current, h.limit)

	next := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.doc.SetElements(next)
	h.doc.ClearSelection()
	return true, nil
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
func (h *History) UndoLen() int  { return len(h.undo) }
func (h *History) RedoLen() int  { return len(h.redo) }

// Reset очищает оба стека, например после загрузки файла.
func (h *History) Reset() {
	h.undo = nil
	h.redo = nil
}

// push добавляет запись, вытесняя самую старую при превышении лимита.
func push(stack [][]element.Element, state []element.Element, limit int) [][]element.Element {
	stack = append(stack, state)
	if len(stack) > limit {
		stack = append(stack[:0], stack[len(stack)-limit:]...)
	}
	return stack
}
