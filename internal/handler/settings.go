package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/store"
	ws "github.com/rgoodwin/housetab/internal/websocket"
)

type SettingsHandler struct {
	store *store.Store
	hub   *ws.Hub
}

func NewSettingsHandler(s *store.Store, hub *ws.Hub) *SettingsHandler {
	return &SettingsHandler{store: s, hub: hub}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.DefaultReminderDays < 0 {
		writeError(w, http.StatusBadRequest, "reminder days must not be negative")
		return
	}

	h.store.UpdateSettings(req)
	h.hub.Broadcast(ws.NewMessage("settings", "updated", "", nil))
	writeJSON(w, http.StatusOK, h.store.Settings())
}

func (h *SettingsHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Categories())
}

func (h *SettingsHandler) UpdateCategories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var cleaned []string
	for _, c := range req.Categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	if len(cleaned) == 0 {
		writeError(w, http.StatusBadRequest, "at least one category is required")
		return
	}

	h.store.UpdateCategories(cleaned)
	h.hub.Broadcast(ws.NewMessage("categories", "updated", "", nil))
	writeJSON(w, http.StatusOK, h.store.Categories())
}
