package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/goliatone/go-loginform/internal/logging"
	"github.com/goliatone/go-loginform/pkg/page"
)

// Server hosts the login page, the landing page and their static files.
type Server struct {
	opts   Options
	log    *clog.Logger
	router *mux.Router
}

func New(fns ...OptionFn) (*Server, error) {
	opts := NewOptions(fns...)
	if opts.Renderer == nil {
		return nil, ErrMissingRenderer
	}
	if opts.WasmDir != "" {
		info, err := os.Stat(opts.WasmDir)
		if err != nil {
			return nil, fmt.Errorf("server: wasm dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("server: wasm dir %s is not a directory", opts.WasmDir)
		}
	}

	s := &Server{opts: opts, log: opts.Logger}
	if s.log == nil {
		s.log = logging.For("server")
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestID, s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/", s.handleLogin).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/index.html", s.handleLogin).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc(s.opts.SuccessPath, s.handleHome).Methods(http.MethodGet, http.MethodHead)

	r.PathPrefix("/assets/").Handler(
		http.StripPrefix("/assets/", http.FileServerFS(s.opts.Assets)),
	).Methods(http.MethodGet, http.MethodHead)

	if s.opts.WasmDir != "" {
		r.PathPrefix("/wasm/").Handler(
			http.StripPrefix("/wasm/", http.FileServer(http.Dir(s.opts.WasmDir))),
		).Methods(http.MethodGet, http.MethodHead)
	} else {
		r.PathPrefix("/wasm/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.fail(w, r, StatusError{Code: http.StatusNotFound, Err: ErrWasmDisabled})
		})
	}
	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := s.opts.Renderer.RenderLogin(r.Context(), page.LoginData{
		Email: r.URL.Query().Get("email"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, r, body)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	body, err := s.opts.Renderer.RenderHome(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writePage(w, r, body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"mode":   s.opts.Renderer.Mode().String(),
	})
}

func (s *Server) writePage(w http.ResponseWriter, r *http.Request, body []byte) {
	w.Header().Set("Content-Type", s.opts.Renderer.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(body); err != nil {
		s.log.Debug("write response", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := writeError(w, err)
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", "err", err, "path", r.URL.Path, "request_id", RequestIDFrom(r.Context()))
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.opts.Addr, "mode", s.opts.Renderer.Mode().String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
