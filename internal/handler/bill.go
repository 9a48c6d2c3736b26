package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/rgoodwin/housetab/internal/dates"
	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/report"
	"github.com/rgoodwin/housetab/internal/store"
	ws "github.com/rgoodwin/housetab/internal/websocket"
)

type BillHandler struct {
	store  *store.Store
	hub    *ws.Hub
	logger *slog.Logger
}

func NewBillHandler(s *store.Store, hub *ws.Hub, logger *slog.Logger) *BillHandler {
	return &BillHandler{store: s, hub: hub, logger: logger}
}

// List returns all bills, optionally filtered by the q search parameter.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	bills := report.Search(h.store.Bills(), r.URL.Query().Get("q"))
	if bills == nil {
		bills = []model.Bill{}
	}
	writeJSON(w, http.StatusOK, bills)
}

// Defaults returns an unsaved bill pre-filled from the household settings,
// for the "new bill" form. The date parameter selects the due day (e.g. a
// clicked calendar cell); it defaults to today.
func (h *BillHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	due := time.Now()
	if d := r.URL.Query().Get("date"); d != "" {
		parsed, err := dates.ParseDay(d)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		due = parsed
	}

	actor := r.URL.Query().Get("memberId")
	if actor == "" {
		if members := h.store.Members(); len(members) > 0 {
			actor = members[0].ID
		}
	}

	writeJSON(w, http.StatusOK, h.store.NewBill(actor, due))
}

// Save upserts a bill. Create and save-after-edit share this path, keyed by
// id. This is the validation boundary: a rejected bill leaves the
// collection unchanged.
func (h *BillHandler) Save(w http.ResponseWriter, r *http.Request) {
	var b model.Bill
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" {
		writeError(w, http.StatusBadRequest, "please enter a title")
		return
	}
	if math.IsNaN(b.Amount) || math.IsInf(b.Amount, 0) || b.Amount < 0 {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}
	if _, err := dates.ParseDay(b.DueISO); err != nil {
		writeError(w, http.StatusBadRequest, "invalid due date")
		return
	}

	created := h.store.GetBill(b.ID) == nil
	saved := h.store.SaveBill(b)

	action := "updated"
	status := http.StatusOK
	if created {
		action = "created"
		status = http.StatusCreated
	}
	h.logger.Info("bill saved", "id", saved.ID, "action", action)
	h.hub.Broadcast(ws.NewMessage("bill", action, saved.ID, nil))
	writeJSON(w, status, saved)
}

// TogglePaid flips a bill's paid flag. The acting member is passed
// explicitly; if omitted, the first household member is assumed.
func (h *BillHandler) TogglePaid(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req struct {
		MemberID string `json:"memberId"`
	}
	if r.Body != nil {
		// An empty body is fine; the actor falls back below.
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.MemberID == "" {
		if members := h.store.Members(); len(members) > 0 {
			req.MemberID = members[0].ID
		}
	}

	bill := h.store.TogglePaid(id, req.MemberID)
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	h.hub.Broadcast(ws.NewMessage("bill", "paid", bill.ID, map[string]any{"paid": bill.Paid}))
	writeJSON(w, http.StatusOK, bill)
}

// Delete removes a bill. The confirmation prompt is the UI's concern.
func (h *BillHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.store.DeleteBill(id) {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	h.logger.Info("bill deleted", "id", id)
	h.hub.Broadcast(ws.NewMessage("bill", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
