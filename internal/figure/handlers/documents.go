package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/render"
	"figuremaker/internal/figure/service"
	"figuremaker/internal/figure/svgimport"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Document Handler
// ============================================================

type DocumentHandler struct {
	workspaces   *service.Manager
	files        *service.FileStorage
	canvasWidth  int
	canvasHeight int
}

func NewDocumentHandler(workspaces *service.Manager, files *service.FileStorage, canvasWidth, canvasHeight int) *DocumentHandler {
	return &DocumentHandler{
		workspaces:   workspaces,
		files:        files,
		canvasWidth:  canvasWidth,
		canvasHeight: canvasHeight,
	}
}

func (h *DocumentHandler) workspace(c fiber.Ctx) (*service.Workspace, error) {
	return h.workspaces.Get(c.Params("id"))
}

// mutate выполняет fn над рабочей областью и отвечает её сводкой.
func (h *DocumentHandler) mutate(c fiber.Ctx, fn func(s service.Session) error) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	if err := w.Edit(fn); err != nil {
		return fail(c, err)
	}
	return c.JSON(w.Summary())
}

// Create открывает рабочую область; непустое тело разбирается как файл документа.
func (h *DocumentHandler) Create(c fiber.Ctx) error {
	var elems []element.Element
	if len(c.Body()) > 0 {
		var err error
		elems, err = codec.Unmarshal(c.Body())
		if err != nil {
			return fail(c, err)
		}
	}
	w := h.workspaces.Create(elems...)
	log.Infof("[HTTP] workspace %s opened with %d elements", w.ID, len(elems))
	return c.Status(http.StatusCreated).JSON(w.Summary())
}

// Get отдаёт документ в формате файла.
func (h *DocumentHandler) Get(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	var file codec.File
	err = w.Edit(func(s service.Session) error {
		file, err = codec.EncodeAll(s.Doc.Elements())
		return err
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(file)
}

func (h *DocumentHandler) Info(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(w.Summary())
}

// Replace заменяет документ целиком; при ошибке разбора документ не меняется.
func (h *DocumentHandler) Replace(c fiber.Ctx) error {
	elems, err := codec.Unmarshal(c.Body())
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(s service.Session) error {
		if err := s.History.Snapshot(); err != nil {
			return err
		}
		s.Doc.SetElements(elems)
		return nil
	})
}

func (h *DocumentHandler) Delete(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.workspaces.Close(id); err != nil {
		return fail(c, err)
	}
	if err := h.files.RemoveWorkspace(id); err != nil {
		log.Warnf("[HTTP] workspace %s closed, files left behind: %v", id, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Import
// ============================================================

// readUpload берёт файл из multipart-поля "file" или всё тело запроса.
func readUpload(c fiber.Ctx) ([]byte, string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, "", fmt.Errorf("open upload: %w", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, "", fmt.Errorf("read upload: %w", err)
		}
		return data, file.Filename, nil
	}
	if len(c.Body()) == 0 {
		return nil, "", fmt.Errorf("%w: file required in multipart/form-data or body", errBadRequest)
	}
	return c.Body(), "", nil
}

// Import разбирает SVG и добавляет элементы поверх документа одним шагом истории.
// Импорт без элементов историю не трогает.
func (h *DocumentHandler) Import(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	data, _, err := readUpload(c)
	if err != nil {
		return fail(c, err)
	}

	im := svgimport.NewImporter()
	elems, err := im.Parse(bytes.NewReader(data))
	if err != nil {
		return fail(c, err)
	}
	err = w.Edit(func(s service.Session) error {
		if len(elems) == 0 {
			return nil
		}
		if err := s.History.Snapshot(); err != nil {
			return err
		}
		for _, e := range elems {
			s.Doc.Add(e)
		}
		return nil
	})
	if err != nil {
		return fail(c, err)
	}

	warnings := im.Warnings()
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(fiber.Map{
		"added":     len(elems),
		"warnings":  warnings,
		"workspace": w.Summary(),
	})
}

// AddImage сохраняет загруженный растр и добавляет его элементом в точку (x, y).
func (h *DocumentHandler) AddImage(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	data, name, err := readUpload(c)
	if err != nil {
		return fail(c, err)
	}
	if name == "" {
		name = "image"
	}
	x, err := queryInt(c, "x")
	if err != nil {
		return fail(c, err)
	}
	y, err := queryInt(c, "y")
	if err != nil {
		return fail(c, err)
	}

	path, err := h.files.SaveUpload(w.ID, name, data)
	if err != nil {
		return fail(c, err)
	}
	img, err := element.LoadImage(path, x, y)
	if err != nil {
		return fail(c, err)
	}
	return h.mutate(c, func(s service.Session) error {
		if err := s.History.Snapshot(); err != nil {
			return err
		}
		s.Doc.Add(img)
		return nil
	})
}

// ============================================================
// Export
// ============================================================

func (h *DocumentHandler) ExportSVG(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	opts := render.SVGOptions{
		Width:  h.canvasWidth,
		Height: h.canvasHeight,
		Minify: c.Query("minify") == "1" || c.Query("minify") == "true",
	}
	var out string
	err = w.Edit(func(s service.Session) error {
		out, err = render.ExportSVG(s.Doc.Elements(), opts)
		return err
	})
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(out)
}

func (h *DocumentHandler) ExportPNG(c fiber.Ctx) error {
	w, err := h.workspace(c)
	if err != nil {
		return fail(c, err)
	}
	opts := render.RasterOptions{Width: h.canvasWidth, Height: h.canvasHeight}
	var out []byte
	err = w.Edit(func(s service.Session) error {
		out, err = render.RasterPNG(s.Doc.Elements(), opts)
		return err
	})
	if err != nil {
		return fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(out)
}

// ============================================================
// Stored documents
// ============================================================

type storeRequest struct {
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}

// Store сохраняет документ рабочей области в базе.
func (h *DocumentHandler) Store(c fiber.Ctx) error {
	var req storeRequest
	if len(c.Body()) > 0 {
		if err := decodeBody(c, &req); err != nil {
			return fail(c, err)
		}
	}
	stored, err := h.workspaces.Store(context.Background(), c.Params("id"), req.StoreID, req.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(stored)
}

// Open открывает новую рабочую область из сохранённого документа.
func (h *DocumentHandler) Open(c fiber.Ctx) error {
	w, err := h.workspaces.Open(context.Background(), c.Params("storeId"))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(http.StatusCreated).JSON(w.Summary())
}

// DeleteStored удаляет документ из базы.
func (h *DocumentHandler) DeleteStored(c fiber.Ctx) error {
	if err := h.workspaces.Discard(context.Background(), c.Params("storeId")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *DocumentHandler) ListStored(c fiber.Ctx) error {
	docs, err := h.workspaces.Stored(context.Background())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(docs)
}
