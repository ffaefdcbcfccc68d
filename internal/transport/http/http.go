// Package http implements the HTTP transport for squeezeyard.
//
// This transport exposes a small REST API for command dispatch. It suits
// phone shortcuts, home automation hubs and scripts that prefer plain HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nadzzz/squeezeyard/docs" // registers the OpenAPI document
	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/transport"
)

// maxBody caps request bodies; commands are a sentence long.
const maxBody = 64 << 10

// SourceHeader names the sender of a plain-text command.
const SourceHeader = "X-Squeezeyard-Source"

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port   int
	server *http.Server
}

// New creates a new HTTP transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Routes returns the HTTP handler serving the API.
func (t *Transport) Routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	// POST /command accepts a JSON request or a plain-text sentence.
	mux.HandleFunc("POST /command", func(w http.ResponseWriter, r *http.Request) {
		t.handleCommand(w, r, handler)
	})

	// GET /command?text=... serves clients that can only issue GET requests.
	mux.HandleFunc("GET /command", func(w http.ResponseWriter, r *http.Request) {
		t.handleQuery(w, r, handler)
	})

	// Swagger UI serving the registered OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return mux
}

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.Routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// handleCommand processes a POST /command request.
//
// @Summary     Run a command
// @Description Accepts a JSON request or the bare sentence as text/plain. The sentence is matched
// @Description against the command grammar, executed on the media server and answered with a short
// @Description confirmation. Server faults are reported in the reply, not as HTTP errors.
// @Tags        commands
// @Accept      json
// @Accept      plain
// @Produce     json
// @Param       request  body      message.Request  true   "Command request. For text/plain, POST the sentence itself."
// @Param       X-Squeezeyard-Source  header  string  false  "Sender identifier (used with text/plain bodies)"
// @Success     200  {object}  message.Reply  "Command outcome"
// @Failure     400  {string}  string  "Invalid request body"
// @Failure     413  {string}  string  "Request body too large"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /command [post]
func (t *Transport) handleCommand(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var req message.Request

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	body := http.MaxBytesReader(w, r.Body, maxBody)
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			bodyError(w, "invalid json", err)
			return
		}
	default:
		text, err := io.ReadAll(body)
		if err != nil {
			bodyError(w, "reading body", err)
			return
		}
		req.Text = strings.TrimSpace(string(text))
		req.Source = r.Header.Get(SourceHeader)
	}

	t.dispatch(w, r, handler, &req)
}

// bodyError rejects an unusable request body. Oversized bodies get 413 so a
// truncated sentence is never run.
func bodyError(w http.ResponseWriter, what string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, what+": "+err.Error(), http.StatusBadRequest)
}

// handleQuery processes a GET /command request.
//
// @Summary     Run a command given in the query string
// @Tags        commands
// @Produce     json
// @Param       text    query     string  true   "The command sentence"
// @Param       source  query     string  false  "Sender identifier"
// @Success     200  {object}  message.Reply  "Command outcome"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /command [get]
func (t *Transport) handleQuery(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	q := r.URL.Query()
	t.dispatch(w, r, handler, &message.Request{Text: q.Get("text"), Source: q.Get("source")})
}

func (t *Transport) dispatch(w http.ResponseWriter, r *http.Request, handler transport.Handler, req *message.Request) {
	transport.Stamp(req, "http")

	reply, err := handler(r.Context(), req)
	if err != nil {
		slog.Error("dispatch failed", "request_id", req.ID, "error", err)
		http.Error(w, "dispatch error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(reply)
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}
