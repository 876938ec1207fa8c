package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/document"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/repository"
	"figuremaker/internal/figure/service"
	"figuremaker/internal/figure/svgimport"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

var (
	errBadRequest = errors.New("bad request")
	errNoElement  = errors.New("no element at index")
)

// ============================================================
// Error mapping
// ============================================================

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNoWorkspace),
		errors.Is(err, repository.ErrNotFound),
		errors.Is(err, document.ErrNotFound),
		errors.Is(err, errNoElement):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, codec.ErrMalformed),
		errors.Is(err, codec.ErrUnknownType),
		errors.Is(err, codec.ErrImageDecode),
		errors.Is(err, svgimport.ErrNoRoot),
		errors.Is(err, document.ErrNotGroup),
		errors.Is(err, document.ErrEmpty),
		errors.Is(err, element.ErrNotImage):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail отвечает {"error": ...} со статусом по виду ошибки.
func fail(c fiber.Ctx, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Errorf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	} else {
		log.Debugf("[HTTP] %s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// ============================================================
// Request helpers
// ============================================================

func decodeBody(c fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return fmt.Errorf("%w: empty body", errBadRequest)
	}
	if err := json.Unmarshal(c.Body(), v); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return nil
}

func indexParam(c fiber.Ctx) (int, error) {
	raw := c.Params("index")
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", errBadRequest, raw)
	}
	return i, nil
}

// queryInt целый параметр запроса; отсутствующий даёт 0.
func queryInt(c fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadRequest, key, raw)
	}
	return v, nil
}

// elementAt элемент по позиции снизу вверх.
func elementAt(doc *document.Document, i int) (element.Element, error) {
	e, ok := doc.At(i)
	if !ok {
		return nil, fmt.Errorf("%w: %d", errNoElement, i)
	}
	return e, nil
}

func elementsAt(doc *document.Document, indices []int) ([]element.Element, error) {
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: indices required", errBadRequest)
	}
	elems := make([]element.Element, 0, len(indices))
	for _, i := range indices {
		e, err := elementAt(doc, i)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return elems, nil
}
