// Package app wires the sheet HTTP API and its lifecycle.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/louisbranch/sheetwright/internal/platform/errors"
	"github.com/louisbranch/sheetwright/internal/render"
	"github.com/louisbranch/sheetwright/internal/systems/dnd5e"
)

// maxRequestBytes bounds a compute request body.
const maxRequestBytes = 4 << 20

var tracer = otel.Tracer("sheetwright/services/sheet")

// ComputeRequest is the POST /v1/compute request body.
type ComputeRequest struct {
	Snapshot dnd5e.CharacterSnapshot `json:"snapshot"`
	Options  dnd5e.Options           `json:"options"`
}

// ComputeResponse is the POST /v1/compute response body.
type ComputeResponse struct {
	Model    *dnd5e.CharacterComputedModel `json:"model"`
	Markdown string                        `json:"markdown,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// Server hosts the sheet HTTP API.
type Server struct {
	listener   net.Listener
	httpServer *http.Server
}

// New creates a configured sheet server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured sheet server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	return &Server{
		listener: listener,
		httpServer: &http.Server{
			Handler:           Router(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Router builds the sheet API routes.
func Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth)
	r.Post("/v1/compute", handleCompute)

	return r
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a sheet server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the HTTP server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("sheet server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown sheet server: %w", err)
		}
		err := <-serveErr
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve sheet server: %w", err)
	}
}

// Close releases the listener.
func (s *Server) Close() error {
	if s == nil || s.listener == nil {
		return nil
	}
	err := s.listener.Close()
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func handleCompute(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "sheet.compute")
	defer span.End()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "", "read request body")
		return
	}

	var req ComputeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "", fmt.Sprintf("parse request: %v", err))
		return
	}

	model, err := dnd5e.Compute(req.Snapshot, req.Options)
	if err != nil {
		code := apperrors.CodeOf(err)
		status := http.StatusInternalServerError
		if code.IsStructural() || code.IsConfiguration() {
			status = http.StatusBadRequest
		}
		if code == apperrors.CodeUnknown {
			code = ""
		}
		writeError(w, status, string(code), err.Error())
		return
	}

	span.SetAttributes(
		attribute.String("character.rule_version", string(model.RuleVersion)),
		attribute.Int("character.level", model.Level),
	)

	writeJSON(w, http.StatusOK, ComputeResponse{
		Model:    model,
		Markdown: render.Markdown(model),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
