package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes bounds request bodies; requests are a few short fields
const maxBodyBytes = 64 << 10

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Routes registers every endpoint on r
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/profiles", h.Profiles).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", h.Snapshot).Methods(http.MethodPost)
	api.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Profiles lists selectable profiles
func (h *Handler) Profiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.svc.Profiles(r.Context())
	if err != nil {
		h.writeInternalError(w, err)
		return
	}
	if profiles == nil {
		profiles = []models.ProfileInfo{}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"profiles": profiles})
}

type snapshotResponse struct {
	Snapshot *models.Snapshot `json:"snapshot"`
	Summary  models.Summary   `json:"summary"`
}

// Snapshot returns the snapshot and summary for the requested profile and period
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, summary, err := h.svc.Snapshot(r.Context(), req)
	if errors.Is(err, service.ErrUnknownPeriod) {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.writeInternalError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snapshotResponse{Snapshot: snap, Summary: summary})
}

// Simulate answers a scenario question. Every failure, including a panic
// below the handler, keeps the result shape.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}
		h.log.WithField("panic", fmt.Sprint(rec)).Error("Simulation panicked")
		h.writeJSON(w, http.StatusInternalServerError, errorResult(fmt.Sprint(rec)))
	}()

	req, err := decodeRequest(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, errorResult(err.Error()))
		return
	}

	result, err := h.svc.Simulate(r.Context(), req)
	if errors.Is(err, service.ErrUnknownPeriod) {
		h.writeJSON(w, http.StatusBadRequest, errorResult(err.Error()))
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Simulation failed")
		h.writeJSON(w, http.StatusInternalServerError, errorResult(err.Error()))
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// decodeRequest reads the optional JSON body; an empty body means all defaults
func decodeRequest(r *http.Request) (service.SnapshotRequest, error) {
	var req service.SnapshotRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return service.SnapshotRequest{}, errors.New("invalid JSON body")
	}
	return req, nil
}

func errorResult(msg string) models.SimulationResult {
	return models.SimulationResult{Heading: "Error", Lines: []string{msg}, Enabled: false}
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 JSON error rather than an empty 200
func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		h.log.WithError(err).Error("Failed to encode response")
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{
			"error":   "Internal server error",
			"details": "failed to encode response",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handler) writeInternalError(w http.ResponseWriter, err error) {
	h.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "Internal server error",
		"details": err.Error(),
	})
}
