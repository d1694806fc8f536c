package api

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/eugenenazirov/settings-overlay/internal/overlay"
	"github.com/eugenenazirov/settings-overlay/internal/property"
	"github.com/eugenenazirov/settings-overlay/internal/setting"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the setting registry, the property store and the resulting
// overlay over HTTP.
type Handler struct {
	registry *setting.Registry
	overlay  *overlay.Overlay
	store    property.Store
	base     map[string]string

	clock func() time.Time

	mu                  sync.RWMutex
	propertiesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler. The overlay must read from store so that
// property updates made through the API are reflected. base is copied.
func NewHandler(registry *setting.Registry, ov *overlay.Overlay, store property.Store, base map[string]string, opts ...HandlerOption) *Handler {
	h := &Handler{
		registry: registry,
		overlay:  ov,
		store:    store,
		base:     maps.Clone(base),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	if h.base == nil {
		h.base = map[string]string{}
	}
	for _, opt := range opts {
		opt(h)
	}
	h.propertiesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListSettings(w http.ResponseWriter, r *http.Request) {
	_ = r
	settings := h.registry.All()
	resp := settingsResponse{Settings: make([]settingView, 0, len(settings))}
	for _, s := range settings {
		resp.Settings = append(resp.Settings, settingView{
			Name:        s.Name,
			Description: s.Description,
			Default:     s.Default,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	ov := h.overlay.Apply(h.base)
	effective, err := overlay.Merge(h.base, ov)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := configResponse{
		Base:      h.base,
		Overlay:   ov,
		Effective: effective,
		UpdatedAt: h.currentPropertiesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleApplyOverlay(w http.ResponseWriter, r *http.Request) {
	var req overlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Base == nil {
		req.Base = map[string]string{}
	}

	ov := h.overlay.Apply(req.Base)
	effective, err := overlay.Merge(req.Base, ov)
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := configResponse{
		Base:      req.Base,
		Overlay:   ov,
		Effective: effective,
		UpdatedAt: h.currentPropertiesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	_ = r
	evals := h.overlay.Evaluate()
	resp := propertiesResponse{
		Properties: make([]propertyView, 0, len(evals)),
		UpdatedAt:  h.currentPropertiesUpdatedAt(),
	}
	for _, ev := range evals {
		resp.Properties = append(resp.Properties, newPropertyView(ev))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutProperty(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req propertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "value is required")
		return
	}

	if err := h.store.Set(name, *req.Value); err != nil {
		if errors.Is(err, property.ErrEmptyKey) {
			writeError(w, http.StatusBadRequest, "Invalid property", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markPropertiesUpdated()

	view := propertyView{Name: name, Value: *req.Value, Present: true}
	if _, known := h.registry.Lookup(name); known {
		view.Known = true
		if err := h.registry.Validate(name, *req.Value); err != nil {
			view.Reason = err.Error()
		} else {
			view.Accepted = true
		}
	}

	resp := propertyResponse{
		Property:  view,
		UpdatedAt: h.currentPropertiesUpdatedAt(),
		Message:   "Property updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	h.store.Unset(chi.URLParam(r, "name"))
	h.markPropertiesUpdated()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentPropertiesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.propertiesUpdatedAt
}

func (h *Handler) markPropertiesUpdated() {
	h.mu.Lock()
	h.propertiesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

func newPropertyView(ev overlay.Evaluation) propertyView {
	view := propertyView{
		Name:     ev.Name,
		Value:    ev.Value,
		Present:  ev.Present,
		Accepted: ev.Accepted,
		Known:    true,
	}
	if ev.Err != nil {
		view.Reason = ev.Err.Error()
	}
	return view
}

type overlayRequest struct {
	Base map[string]string `json:"base"`
}

type propertyRequest struct {
	Value *string `json:"value"`
}

type settingView struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
}

type settingsResponse struct {
	Settings []settingView `json:"settings"`
}

type configResponse struct {
	Base      map[string]string `json:"base"`
	Overlay   map[string]string `json:"overlay"`
	Effective map[string]string `json:"effective"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type propertyView struct {
	Name     string `json:"name"`
	Value    string `json:"value,omitempty"`
	Present  bool   `json:"present"`
	Accepted bool   `json:"accepted"`
	Known    bool   `json:"known"`
	Reason   string `json:"reason,omitempty"`
}

type propertiesResponse struct {
	Properties []propertyView `json:"properties"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

type propertyResponse struct {
	Property  propertyView `json:"property"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Message   string       `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
