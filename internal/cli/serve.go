package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperrors "github.com/DaveyUS/gridkit/pkg/errors"
	"github.com/DaveyUS/gridkit/pkg/grid"
	"github.com/DaveyUS/gridkit/pkg/layout"
	"github.com/DaveyUS/gridkit/pkg/observability"
	"github.com/DaveyUS/gridkit/pkg/render/svg"
)

// serveCommand creates the serve command, which exposes a layout document
// over HTTP for remote editing. All mutations run through the collision
// resolver, so clients always read a consistent grid.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a layout over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), args[0], addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, path, addr string) error {
	l, err := layout.ImportFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "load layout %s", path)
	}
	c.Config.Grid.applyGridDefaults(l)
	if err := layout.Validate(l); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidLayout, err, "layout %s", path)
	}

	srv, err := newLayoutServer(l)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      srv.routes(),
		ReadTimeout:  time.Duration(c.Config.Server.ReadTimeout),
		WriteTimeout: time.Duration(c.Config.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving layout", "addr", addr, "file", path)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(c.Config.Server.ShutdownTimeout))
	defer cancel()
	c.Logger.Info("shutting down")
	return httpSrv.Shutdown(shutdownCtx)
}

// layoutServer owns one live controller behind a mutex. The engine itself is
// single-threaded by contract; the mutex serializes HTTP handlers onto it.
type layoutServer struct {
	mu   sync.Mutex
	ctrl *grid.Controller
	doc  *layout.Layout // original document, for labels and header fields
}

func newLayoutServer(l *layout.Layout) (*layoutServer, error) {
	ctrl, err := l.Controller()
	if err != nil {
		return nil, err
	}
	return &layoutServer{ctrl: ctrl, doc: l}, nil
}

func (s *layoutServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/layout", s.handleGetLayout)
	r.Get("/layout.svg", s.handleGetSVG)
	r.Post("/items", s.handleAddItem)
	r.Delete("/items/{id}", s.handleDeleteItem)
	r.Post("/items/{id}/move", s.handleMoveItem)
	r.Post("/items/{id}/resize", s.handleResizeItem)
	r.Post("/compact", s.handleCompact)

	return r
}

// hooksMiddleware reports request and response events to the registered
// observability hooks.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func (s *layoutServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *layoutServer) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := layout.FromController(s.ctrl, s.doc)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

func (s *layoutServer) handleGetSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := layout.FromController(s.ctrl, s.doc)
	s.mu.Unlock()

	opts := []svg.Option{}
	if r.URL.Query().Get("cell_lines") == "true" {
		opts = append(opts, svg.WithCellLines())
	}
	data, err := svg.RenderSVG(doc, opts...)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "render failed"))
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *layoutServer) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var in layout.Item
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode item"))
		return
	}
	if in.ID != "" {
		if err := apperrors.ValidateItemID(in.ID); err != nil {
			writeError(w, err)
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	it := grid.Item{
		ID: in.ID, X: in.X, Y: in.Y, W: in.W, H: in.H,
		Min:       grid.Size{W: in.MinW, H: in.MinH},
		Movable:   in.Movable == nil || *in.Movable,
		Resizable: in.Resizable == nil || *in.Resizable,
	}
	if in.MaxW > 0 || in.MaxH > 0 {
		it.Max = &grid.Size{W: in.MaxW, H: in.MaxH}
	}

	// A zero-size request takes the smallest valid slot.
	if it.W == 0 {
		it.W = 1
	}
	if it.H == 0 {
		it.H = 1
	}

	// Requested positions that collide fall back to the first free slot.
	p := s.ctrl.Params()
	if p.Collision != grid.CollisionNone && grid.HasCollisions(it, s.ctrl.Items()) {
		pos, ok := grid.FindFreePosition(it, s.ctrl.Items(), p.MaxCols, p.MaxRows)
		if !ok {
			writeError(w, apperrors.New(apperrors.ErrCodeConflict, "no free slot for a %dx%d item", it.W, it.H))
			return
		}
		it.X, it.Y = pos.X, pos.Y
	}

	stored, err := s.ctrl.Register(it)
	if err != nil {
		writeError(w, mapGridError(err))
		return
	}
	if in.Label != "" {
		s.doc.Items = append(s.doc.Items, layout.Item{ID: stored.ID, Label: in.Label})
	}
	writeJSON(w, http.StatusCreated, stored)
}

func (s *layoutServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.Unregister(id); err != nil {
		writeError(w, mapGridError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// moveRequest is the body for POST /items/{id}/move.
type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *layoutServer) handleMoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode move"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.UpdatePosition(id, req.X, req.Y); err != nil {
		writeError(w, mapGridError(err))
		return
	}
	it, _ := s.ctrl.Item(id)
	writeJSON(w, http.StatusOK, it)
}

// resizeRequest is the body for POST /items/{id}/resize.
type resizeRequest struct {
	W int `json:"w"`
	H int `json:"h"`
}

func (s *layoutServer) handleResizeItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode resize"))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.UpdateSize(id, req.W, req.H); err != nil {
		writeError(w, mapGridError(err))
		return
	}
	it, _ := s.ctrl.Item(id)
	writeJSON(w, http.StatusOK, it)
}

func (s *layoutServer) handleCompact(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.ctrl.Compact()
	doc := layout.FromController(s.ctrl, s.doc)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, doc)
}

// mapGridError translates engine sentinels into coded errors so the HTTP
// status mapping stays in one place.
func mapGridError(err error) error {
	switch {
	case errors.Is(err, grid.ErrUnknownItem):
		return apperrors.Wrap(apperrors.ErrCodeItemNotFound, err, "unknown item")
	case errors.Is(err, grid.ErrDuplicateItemID):
		return apperrors.Wrap(apperrors.ErrCodeConflict, err, "duplicate item id")
	case errors.Is(err, grid.ErrInvalidItemID), errors.Is(err, grid.ErrInvalidGeometry):
		return apperrors.Wrap(apperrors.ErrCodeInvalidItem, err, "invalid item")
	case errors.Is(err, grid.ErrNotReady):
		return apperrors.Wrap(apperrors.ErrCodeNotReady, err, "grid not configured")
	default:
		return apperrors.Wrap(apperrors.ErrCodeInternal, err, "layout operation failed")
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidItem,
		apperrors.ErrCodeInvalidLayout, apperrors.ErrCodeInvalidMode,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeItemNotFound,
		apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeNotReady:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
