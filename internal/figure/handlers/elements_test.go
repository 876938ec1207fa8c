package handlers

import (
	"net/http"
	"testing"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/models"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addRect(t *testing.T, app *fiber.App, id string, x, y int) {
	t.Helper()
	rec := codec.Record{Type: "rect", X: x, Y: y, Width: 30, Height: 30, FillColor: "#ff0000"}
	resp := do(t, app, http.MethodPost, "/documents/"+id+"/elements", rec)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func getElement(t *testing.T, app *fiber.App, id, index string) codec.Record {
	t.Helper()
	resp := do(t, app, http.MethodGet, "/documents/"+id+"/elements/"+index, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[codec.Record](t, resp)
}

func TestAddElementDefaults(t *testing.T) {
	app := newApp(t)
	id := createWorkspace(t, app)

	resp := do(t, app, http.MethodPost, "/documents/"+id+"/elements", codec.Record{Type: "text", X: 5, Y: 6})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 0, decode[map[string]any](t, resp)["index"])

	rec := getElement(t, app, id, "0")
	assert.Equal(t, "Enter text here", rec.Text)
	assert.Equal(t, [4]int{5, 6, 200, 100}, [4]int{rec.X, rec.Y, rec.Width, rec.Height})

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements", codec.Record{Type: "hexagon"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMoveResizeDelete(t *testing.T) {
	app := newApp(t)
	id := createWorkspace(t, app)
	addRect(t, app, id, 10, 10)

	resp := do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/move", map[string]int{"dx": 5, "dy": -3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec := getElement(t, app, id, "0")
	assert.Equal(t, 15, rec.X)
	assert.Equal(t, 7, rec.Y)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/move", map[string]int{"x": 100, "y": 50})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec = getElement(t, app, id, "0")
	assert.Equal(t, 100, rec.X)
	assert.Equal(t, 50, rec.Y)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/resize", map[string]int{"width": 5, "height": 80})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rec = getElement(t, app, id, "0")
	assert.Equal(t, 20, rec.Width)
	assert.Equal(t, 80, rec.Height)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/3/move", map[string]int{"dx": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/x/move", map[string]int{"dx": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodDelete, "/documents/"+id+"/elements/0", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ws := decode[models.Workspace](t, resp)
	assert.Equal(t, 0, ws.Elements)

	ws = decode[models.Workspace](t, do(t, app, http.MethodPost, "/documents/"+id+"/undo", nil))
	assert.Equal(t, 1, ws.Elements)
}

func TestOrder(t *testing.T) {
	app := newApp(t)
	id := createWorkspace(t, app)
	for i := 0; i < 3; i++ {
		addRect(t, app, id, i*10, 0)
	}

	tests := []struct {
		name  string
		index string
		to    any
		wantX []int
	}{
		{"front", "0", "front", []int{10, 20, 0}},
		{"back", "2", "back", []int{0, 10, 20}},
		{"index", "0", 1, []int{10, 0, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, app, http.MethodPost, "/documents/"+id+"/elements/"+tt.index+"/order", map[string]any{"to": tt.to})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			file := decode[codec.File](t, do(t, app, http.MethodGet, "/documents/"+id, nil))
			var xs []int
			for _, rec := range file.Elements {
				xs = append(xs, rec.X)
			}
			assert.Equal(t, tt.wantX, xs)
		})
	}

	resp := do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/order", map[string]any{"to": "middle"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGroupUngroupReleaseMask(t *testing.T) {
	app := newApp(t)
	id := createWorkspace(t, app)
	addRect(t, app, id, 0, 0)
	addRect(t, app, id, 50, 50)
	addRect(t, app, id, 100, 0)

	resp := do(t, app, http.MethodPost, "/documents/"+id+"/group", map[string][]int{"indices": {0, 1}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[models.Workspace](t, resp).Elements)

	group := getElement(t, app, id, "0")
	assert.Equal(t, "group", group.Type)
	assert.Len(t, group.Children, 2)
	assert.Equal(t, [4]int{0, 0, 80, 80}, [4]int{group.X, group.Y, group.Width, group.Height})

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/1/release-mask", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/1/ungroup", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/release-mask", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/elements/0/ungroup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3, decode[models.Workspace](t, resp).Elements)
	assert.Equal(t, 50, getElement(t, app, id, "1").X)

	resp = do(t, app, http.MethodPost, "/documents/"+id+"/group", map[string][]int{"indices": {}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestClipboard(t *testing.T) {
	app := newApp(t)
	id := createWorkspace(t, app)
	addRect(t, app, id, 10, 10)

	resp := do(t, app, http.MethodPost, "/documents/"+id+"/paste", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ws := decode[models.Workspace](t, do(t, app, http.MethodPost, "/documents/"+id+"/copy", map[string][]int{"indices": {0}}))
	assert.Equal(t, 1, ws.Clipboard)

	ws = decode[models.Workspace](t, do(t, app, http.MethodPost, "/documents/"+id+"/paste", nil))
	assert.Equal(t, 2, ws.Elements)
	pasted := getElement(t, app, id, "1")
	assert.Equal(t, 30, pasted.X)
	assert.Equal(t, 30, pasted.Y)

	ws = decode[models.Workspace](t, do(t, app, http.MethodPost, "/documents/"+id+"/cut", map[string][]int{"indices": {0}}))
	assert.Equal(t, 1, ws.Elements)
	assert.Equal(t, 30, getElement(t, app, id, "0").X)

	ws = decode[models.Workspace](t, do(t, app, http.MethodPost, "/documents/"+id+"/undo", nil))
	assert.Equal(t, 2, ws.Elements)
}
