package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/store"
	ws "github.com/rgoodwin/housetab/internal/websocket"
)

type MemberHandler struct {
	store  *store.Store
	hub    *ws.Hub
	logger *slog.Logger
}

func NewMemberHandler(s *store.Store, hub *ws.Hub, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{store: s, hub: hub, logger: logger}
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members := h.store.Members()
	if members == nil {
		members = []model.Member{}
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	member := h.store.SaveMember(model.Member{Name: req.Name, Phone: strings.TrimSpace(req.Phone)})
	h.logger.Info("member created", "id", member.ID)
	h.hub.Broadcast(ws.NewMessage("member", "created", member.ID, nil))
	writeJSON(w, http.StatusCreated, member)
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing := h.store.GetMember(id)
	if existing == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	member := h.store.SaveMember(model.Member{ID: id, Name: req.Name, Phone: strings.TrimSpace(req.Phone)})
	h.hub.Broadcast(ws.NewMessage("member", "updated", member.ID, nil))
	writeJSON(w, http.StatusOK, member)
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.DeleteMember(id) {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	h.logger.Info("member deleted", "id", id)
	h.hub.Broadcast(ws.NewMessage("member", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
