package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DaveyUS/gridkit/pkg/grid"
	"github.com/DaveyUS/gridkit/pkg/layout"
)

func newTestServer(t *testing.T) (*layoutServer, http.Handler) {
	t.Helper()
	l := &layout.Layout{
		Cols:      4,
		CellW:     100,
		CellH:     100,
		Gap:       10,
		Collision: "push",
		Items: []layout.Item{
			{ID: "a", X: 0, Y: 0, W: 2, H: 1, Label: "Chart"},
			{ID: "b", X: 2, Y: 0, W: 2, H: 1},
		},
	}
	srv, err := newLayoutServer(l)
	if err != nil {
		t.Fatalf("newLayoutServer: %v", err)
	}
	return srv, srv.routes()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServeGetLayout(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/layout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var l layout.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(l.Items) != 2 || l.Cols != 4 {
		t.Errorf("layout = %+v", l)
	}
	if l.Items[0].Label != "Chart" {
		t.Errorf("label lost: %+v", l.Items[0])
	}
}

func TestServeGetSVG(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodGet, "/layout.svg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Error("body is not SVG")
	}
}

func TestServeMoveDisplacesCollider(t *testing.T) {
	srv, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/items/a/move", moveRequest{X: 1, Y: 0})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var moved grid.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &moved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if moved.X != 1 {
		t.Errorf("a.X = %d, want 1", moved.X)
	}
	if b, _ := srv.ctrl.Item("b"); b.Pos() != (grid.Position{X: 0, Y: 1}) {
		t.Errorf("b = %+v, want displaced to {0 1}", b.Pos())
	}
}

func TestServeMoveUnknownItem(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/items/ghost/move", moveRequest{X: 0, Y: 0})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != "ITEM_NOT_FOUND" {
		t.Errorf("code = %q, want ITEM_NOT_FOUND", resp.Code)
	}
}

func TestServeResize(t *testing.T) {
	srv, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodPost, "/items/b/resize", resizeRequest{W: 1, H: 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if b, _ := srv.ctrl.Item("b"); b.Size() != (grid.Size{W: 1, H: 2}) {
		t.Errorf("b = %+v, want {1 2}", b.Size())
	}
}

func TestServeAddItem(t *testing.T) {
	srv, h := newTestServer(t)

	// Row 0 is fully occupied: the new item lands in the next free slot.
	rec := doJSON(t, h, http.MethodPost, "/items", layout.Item{ID: "c", W: 2, H: 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var created grid.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Y != 1 {
		t.Errorf("c = %+v, want placed on row 1", created)
	}
	if srv.ctrl.Len() != 3 {
		t.Errorf("Len = %d, want 3", srv.ctrl.Len())
	}
}

func TestServeAddItemGeneratesID(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/items", layout.Item{W: 1, H: 1})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var created grid.Item
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestServeAddDuplicate(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/items", layout.Item{ID: "a", X: 0, Y: 2, W: 1, H: 1})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", rec.Code, rec.Body.String())
	}
}

func TestServeAddInvalidID(t *testing.T) {
	_, h := newTestServer(t)
	rec := doJSON(t, h, http.MethodPost, "/items", layout.Item{ID: "a b", W: 1, H: 1})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestServeDeleteItem(t *testing.T) {
	srv, h := newTestServer(t)

	rec := doJSON(t, h, http.MethodDelete, "/items/a", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if srv.ctrl.Len() != 1 {
		t.Errorf("Len = %d, want 1", srv.ctrl.Len())
	}

	rec = doJSON(t, h, http.MethodDelete, "/items/a", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", rec.Code)
	}
}

func TestServeCompact(t *testing.T) {
	l := &layout.Layout{
		CellW:     100,
		CellH:     100,
		Collision: "compress",
		Items: []layout.Item{
			{ID: "a", X: 0, Y: 3, W: 1, H: 1},
			{ID: "b", X: 1, Y: 5, W: 1, H: 2},
		},
	}
	srv, err := newLayoutServer(l)
	if err != nil {
		t.Fatalf("newLayoutServer: %v", err)
	}
	h := srv.routes()

	rec := doJSON(t, h, http.MethodPost, "/compact", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var out layout.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, it := range out.Items {
		if it.Y != 0 {
			t.Errorf("item %s at y=%d, want 0", it.ID, it.Y)
		}
	}
}
