package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/document"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/service"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Elements
// ============================================================

// AddElement добавляет элемент из записи файла документа. Текстовая запись
// без текста и размера даёт блок по умолчанию.
func (h *DocumentHandler) AddElement(c fiber.Ctx) error {
	var rec codec.Record
	if err := decodeBody(c, &rec); err != nil {
		return fail(c, err)
	}
	var e element.Element
	if rec.Type == string(element.KindText) && rec.Text == "" && rec.Width == 0 && rec.Height == 0 {
		e = element.NewTextBox(rec.X, rec.Y)
	} else {
		var err error
		if e, err = codec.Decode(rec); err != nil {
			return fail(c, err)
		}
	}

	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	var index int
	err = w.Edit(func(s service.Session) error {
		if err := s.History.Snapshot(); err != nil {
			return err
		}
		s.Doc.Add(e)
		index = s.Doc.Len() - 1
		return nil
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"index": index, "workspace": w.Summary()})
}

func (h *DocumentHandler) GetElement(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	i, err := indexParam(c)
	if err != nil {
		return fail(c, err)
	}
	var rec codec.Record
	err = w.Edit(func(s service.Session) error {
		e, err := elementAt(s.Doc, i)
		if err != nil {
			return err
		}
		rec, err = codec.Encode(e)
		return err
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(rec)
}

// editElement проверяет элемент по индексу через check (если задан), затем
// снимает снимок истории и применяет fn.
func (h *DocumentHandler) editElement(c fiber.Ctx, check func(e element.Element) error, fn func(s service.Session, e element.Element) error) error {
	i, err := indexParam(c)
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(s service.Session) error {
		e, err := elementAt(s.Doc, i)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(e); err != nil {
				return err
			}
		}
		if err := s.History.Snapshot(); err != nil {
			return err
		}
		return fn(s, e)
	})
}

func (h *DocumentHandler) DeleteElement(c fiber.Ctx) error {
	return h.editElement(c, nil, func(s service.Session, e element.Element) error {
		s.Doc.Remove(e)
		return nil
	})
}

type moveRequest struct {
	DX int  `json:"dx"`
	DY int  `json:"dy"`
	X  *int `json:"x"`
	Y  *int `json:"y"`
}

// Move сдвигает элемент на (dx, dy) или ставит в (x, y), если заданы обе координаты.
func (h *DocumentHandler) Move(c fiber.Ctx) error {
	var req moveRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	return h.editElement(c, nil, func(_ service.Session, e element.Element) error {
		if req.X != nil && req.Y != nil {
			element.MoveTo(e, *req.X, *req.Y)
			return nil
		}
		e.Translate(req.DX, req.DY)
		return nil
	})
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resize задаёт размер не меньше element.MinSize по каждой оси.
func (h *DocumentHandler) Resize(c fiber.Ctx) error {
	var req resizeRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	return h.editElement(c, nil, func(_ service.Session, e element.Element) error {
		e.ResizeTo(element.ClampSize(req.Width, req.Height))
		return nil
	})
}

func requireGroup(e element.Element) error {
	if _, ok := e.(*element.Group); !ok {
		return fmt.Errorf("%w: %s", document.ErrNotGroup, e.Kind())
	}
	return nil
}

func (h *DocumentHandler) Ungroup(c fiber.Ctx) error {
	return h.editElement(c, requireGroup, func(s service.Session, e element.Element) error {
		_, err := s.Doc.Ungroup(e)
		return err
	})
}

func (h *DocumentHandler) ReleaseMask(c fiber.Ctx) error {
	return h.editElement(c, requireGroup, func(_ service.Session, e element.Element) error {
		e.(*element.Group).ReleaseClippingMask()
		return nil
	})
}

type orderRequest struct {
	To json.RawMessage `json:"to"`
}

// Order переставляет элемент: "front", "back" или позиция снизу вверх.
func (h *DocumentHandler) Order(c fiber.Ctx) error {
	var req orderRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	var where string
	var to int
	if err := json.Unmarshal(req.To, &where); err != nil {
		if err := json.Unmarshal(req.To, &to); err != nil {
			return fail(c, fmt.Errorf("%w: to must be \"front\", \"back\" or an index", errBadRequest))
		}
	} else if where != "front" && where != "back" {
		return fail(c, fmt.Errorf("%w: unknown position %q", errBadRequest, where))
	}

	return h.editElement(c, nil, func(s service.Session, e element.Element) error {
		switch where {
		case "front":
			return s.Doc.BringToFront(e)
		case "back":
			return s.Doc.SendToBack(e)
		}
		return s.Doc.Move(e, to)
	})
}

// ============================================================
// Groups & clipboard
// ============================================================

type indicesRequest struct {
	Indices []int `json:"indices"`
}

// withElements снимает снимок (если snapshot) и применяет fn к элементам по индексам.
func (h *DocumentHandler) withElements(c fiber.Ctx, snapshot bool, fn func(s service.Session, elems []element.Element) error) error {
	var req indicesRequest
	if err := decodeBody(c, &req); err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(s service.Session) error {
		elems, err := elementsAt(s.Doc, req.Indices)
		if err != nil {
			return err
		}
		if snapshot {
			if err := s.History.Snapshot(); err != nil {
				return err
			}
		}
		return fn(s, elems)
	})
}

func (h *DocumentHandler) Group(c fiber.Ctx) error {
	return h.withElements(c, true, func(s service.Session, elems []element.Element) error {
		_, err := s.Doc.Group(elems)
		return err
	})
}

func (h *DocumentHandler) Copy(c fiber.Ctx) error {
	return h.withElements(c, false, func(s service.Session, elems []element.Element) error {
		return s.Clipboard.Copy(elems)
	})
}

// Cut сам снимает снимок истории.
func (h *DocumentHandler) Cut(c fiber.Ctx) error {
	return h.withElements(c, false, func(s service.Session, elems []element.Element) error {
		return s.Clipboard.Cut(s.Doc, s.History, elems)
	})
}

func (h *DocumentHandler) Paste(c fiber.Ctx) error {
	return h.mutate(c, func(s service.Session) error {
		if s.Clipboard.Empty() {
			return fmt.Errorf("%w: clipboard is empty", errBadRequest)
		}
		_, err := s.Clipboard.Paste(s.Doc, s.History)
		return err
	})
}

// ============================================================
// History
// ============================================================

func (h *DocumentHandler) Undo(c fiber.Ctx) error {
	return h.mutate(c, func(s service.Session) error {
		_, err := s.History.Undo()
		return err
	})
}

func (h *DocumentHandler) Redo(c fiber.Ctx) error {
	return h.mutate(c, func(s service.Session) error {
		_, err := s.History.Redo()
		return err
	})
}
