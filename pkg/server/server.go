package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/gurinder1988/footyfeed/pkg/refresh"
)

const opmlTitle = "footyfeed sources"

type controller interface {
	Status() refresh.Status
	Refresh() *refresh.Session
	SetPreference(ctx context.Context, entity string) (*refresh.Session, error)
}

type registry interface {
	Entities() []string
	OPML(title string) (string, error)
}

type Server struct {
	http.Server
}

func New(cfg Config, ctrl controller, sources registry) *Server {
	port := cfg.Port
	if port == 0 {
		port = 8080
	}

	bindAddress := cfg.BindAddress
	if bindAddress == "*" {
		bindAddress = ""
	}

	srv := Server{}

	srv.Addr = fmt.Sprintf("%s:%d", bindAddress, port)
	srv.Handler = NewRouter(ctrl, sources)
	srv.ReadHeaderTimeout = 10 * time.Second

	log.Debugf("using address: %s", srv.Addr)

	return &srv
}

type handler struct {
	ctrl    controller
	sources registry
}

// NewRouter returns the HTTP API.
func NewRouter(ctrl controller, sources registry) http.Handler {
	h := &handler{ctrl: ctrl, sources: sources}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.healthz)
	r.Get("/opml", h.opml)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/feed", h.feed)
		r.Post("/refresh", h.refresh)
		r.Get("/entities", h.entities)
		r.Get("/preference", h.preference)
		r.Put("/preference", h.setPreference)
		r.Delete("/preference", h.clearPreference)
	})

	return r
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) feed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.Status())
}

func (h *handler) refresh(w http.ResponseWriter, _ *http.Request) {
	h.ctrl.Refresh()
	writeJSON(w, http.StatusAccepted, map[string]refresh.State{"state": refresh.StateLoading})
}

func (h *handler) entities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sources.Entities())
}

type preferenceBody struct {
	Entity string `json:"entity"`
}

func (h *handler) preference(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, preferenceBody{Entity: h.ctrl.Status().Preference})
}

func (h *handler) setPreference(w http.ResponseWriter, r *http.Request) {
	var body preferenceBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "invalid request body"))
		return
	}

	h.updatePreference(w, r, body.Entity)
}

func (h *handler) clearPreference(w http.ResponseWriter, r *http.Request) {
	h.updatePreference(w, r, "")
}

func (h *handler) updatePreference(w http.ResponseWriter, r *http.Request, entity string) {
	if _, err := h.ctrl.SetPreference(r.Context(), entity); err != nil {
		if errors.Is(err, refresh.ErrUnknownEntity) {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		log.WithError(err).Error("failed to update preference")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusAccepted, preferenceBody{Entity: entity})
}

func (h *handler) opml(w http.ResponseWriter, _ *http.Request) {
	doc, err := h.sources.OPML(opmlTitle)
	if err != nil {
		log.WithError(err).Error("failed to build opml")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "text/x-opml; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		next.ServeHTTP(ww, r)

		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(started),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("handled request")
	})
}
