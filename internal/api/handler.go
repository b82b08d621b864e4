package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/eugenenazirov/configa/pkg/configa"

	"github.com/eugenenazirov/configa/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler exposes the parsed configuration held in storage over HTTP.
type Handler struct {
	storage storage.Storage

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
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

func (h *Handler) handleListSections(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	resp := sectionsResponse{
		File:     h.storage.Path(),
		Sections: snap.Config.Sections(),
		ParsedAt: snap.ParsedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetSection(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	opts, err := dictOptionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	dict, err := snap.Config.ParseDict(section, opts)
	if err != nil {
		writeAccessorError(w, err)
		return
	}

	resp := sectionResponse{
		Section: section,
		Values:  configa.StringMap(dict),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOption(w http.ResponseWriter, r *http.Request) {
	section := r.PathValue("section")
	option := r.PathValue("option")
	opts, err := scalarOptionsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
		return
	}

	snap, ok := h.snapshot(w)
	if !ok {
		return
	}

	value, found, err := snap.Config.ParseScalar(section, option, opts)
	if err != nil {
		writeAccessorError(w, err)
		return
	}

	resp := optionResponse{
		Section: section,
		Option:  option,
		Found:   found,
	}
	if found {
		resp.Value = &value
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleReload(w http.ResponseWriter, r *http.Request) {
	_ = r
	snap, err := h.storage.Reload()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Reload failed", err.Error(),
			"the previous configuration is still being served")
		return
	}

	resp := reloadResponse{
		Sections: snap.Config.Sections(),
		ParsedAt: snap.ParsedAt,
		Message:  "Configuration reloaded successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) snapshot(w http.ResponseWriter) (storage.Snapshot, bool) {
	snap, err := h.storage.Current()
	if err != nil {
		if errors.Is(err, storage.ErrNotLoaded) {
			writeError(w, http.StatusServiceUnavailable, "Not ready", err.Error())
			return storage.Snapshot{}, false
		}
		writeInternalError(w, err)
		return storage.Snapshot{}, false
	}
	return snap, true
}

func writeAccessorError(w http.ResponseWriter, err error) {
	var castErr *configa.CastError
	switch {
	case errors.Is(err, configa.ErrRequired):
		writeError(w, http.StatusNotFound, "Required configuration missing", err.Error())
	case errors.As(err, &castErr):
		writeError(w, http.StatusUnprocessableEntity, "Invalid value", err.Error(),
			fmt.Sprintf("drop the %s cast or fix the value in the file", castErr.Cast))
	default:
		writeInternalError(w, err)
	}
}

func scalarOptionsFromQuery(q url.Values) (configa.ScalarOptions, error) {
	var opts configa.ScalarOptions
	var err error
	if opts.Required, err = queryBool(q, "required"); err != nil {
		return opts, err
	}
	if opts.List, err = queryBool(q, "list"); err != nil {
		return opts, err
	}
	asInt, err := queryBool(q, "int")
	if err != nil {
		return opts, err
	}
	if asInt {
		opts.Cast = configa.CastInt
	}
	return opts, nil
}

func dictOptionsFromQuery(q url.Values) (configa.DictOptions, error) {
	scalar, err := scalarOptionsFromQuery(q)
	if err != nil {
		return configa.DictOptions{}, err
	}
	opts := configa.DictOptions{
		Required: scalar.Required,
		Cast:     scalar.Cast,
		List:     scalar.List,
	}

	keyInt, err := queryBool(q, "key_int")
	if err != nil {
		return opts, err
	}
	if keyInt {
		opts.KeyCast = configa.CastInt
	}
	if opts.KeyCase, err = configa.ParseKeyCase(q.Get("key_case")); err != nil {
		return opts, err
	}
	return opts, nil
}

// queryBool treats a bare flag (?list) as true.
func queryBool(q url.Values, name string) (bool, error) {
	if !q.Has(name) {
		return false, nil
	}
	raw := q.Get(name)
	if raw == "" {
		return true, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("query parameter %s: %w", name, err)
	}
	return v, nil
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type sectionsResponse struct {
	File     string    `json:"file"`
	Sections []string  `json:"sections"`
	ParsedAt time.Time `json:"parsedAt"`
}

type sectionResponse struct {
	Section string                   `json:"section"`
	Values  map[string]configa.Value `json:"values"`
}

type optionResponse struct {
	Section string         `json:"section"`
	Option  string         `json:"option"`
	Found   bool           `json:"found"`
	Value   *configa.Value `json:"value"`
}

type reloadResponse struct {
	Sections []string  `json:"sections"`
	ParsedAt time.Time `json:"parsedAt"`
	Message  string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
