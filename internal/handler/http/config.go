package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-apm-agent-config/internal/agentconfig"
	"github.com/MKhiriev/go-apm-agent-config/internal/logger"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}

// getConfig renders the currently resolved value of every setting. Each
// request resolves afresh, so edits to the settings file or the environment
// show up immediately.
func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.config.Snapshot())
}

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, agentconfig.Definitions())
}

// getSetting looks a definition up by name, ignoring case.
func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	for _, def := range agentconfig.Definitions() {
		if strings.EqualFold(def.Name, name) {
			writeJSON(w, r, http.StatusOK, def)
			return
		}
	}

	http.Error(w, "unknown setting", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error encoding response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
