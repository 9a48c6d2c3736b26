package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rgoodwin/housetab/internal/store"
	ws "github.com/rgoodwin/housetab/internal/websocket"
)

type SnapshotHandler struct {
	store  *store.Store
	hub    *ws.Hub
	logger *slog.Logger
}

func NewSnapshotHandler(s *store.Store, hub *ws.Hub, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{store: s, hub: hub, logger: logger}
}

// Export downloads the full snapshot as a JSON file named with the current
// date, e.g. bills-2024-06-16.json.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("bills-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(h.store.Export())
}

// Import applies an uploaded snapshot document. Partial documents are
// accepted: only keys present in the file overwrite state. A parse failure
// leaves state untouched.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	var doc store.ImportDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid file")
		return
	}

	h.store.Import(doc)
	h.logger.Info("snapshot imported",
		"members", len(doc.Members),
		"bills", len(doc.Bills),
	)
	h.hub.Broadcast(ws.NewMessage("snapshot", "imported", "", nil))
	writeJSON(w, http.StatusOK, map[string]string{"status": "imported"})
}
