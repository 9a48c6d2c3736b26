package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rgoodwin/housetab/internal/reminder"
	"github.com/rgoodwin/housetab/internal/store"
)

type SMSHandler struct {
	store      *store.Store
	dispatcher *reminder.Dispatcher
	logger     *slog.Logger
}

func NewSMSHandler(s *store.Store, d *reminder.Dispatcher, logger *slog.Logger) *SMSHandler {
	return &SMSHandler{store: s, dispatcher: d, logger: logger}
}

// sendRequest accepts `to` as either a single string or a list.
type sendRequest struct {
	To   json.RawMessage `json:"to"`
	Body string          `json:"body"`
}

func (req *sendRequest) phones() ([]string, bool) {
	var one string
	if err := json.Unmarshal(req.To, &one); err == nil {
		return []string{one}, true
	}
	var many []string
	if err := json.Unmarshal(req.To, &many); err == nil {
		return many, true
	}
	return nil, false
}

// Send is the raw messaging endpoint: POST {to, body}. Each recipient is
// attempted in order; a provider failure aborts the batch and the error
// response carries the provider's message.
func (h *SMSHandler) Send(w http.ResponseWriter, r *http.Request) {
	if !h.dispatcher.Configured() {
		writeError(w, http.StatusInternalServerError, "missing Twilio configuration")
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.To) == 0 || req.Body == "" {
		writeError(w, http.StatusBadRequest, "provide { to, body }")
		return
	}
	phones, ok := req.phones()
	if !ok {
		writeError(w, http.StatusBadRequest, "to must be a phone number or a list of phone numbers")
		return
	}

	res, err := h.dispatcher.Dispatch(phones, req.Body)
	if err != nil {
		if errors.Is(err, reminder.ErrNoRecipients) {
			writeError(w, http.StatusBadRequest, "no recipient phone numbers")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"sent":    res.Sent,
		"results": res.Results,
	})
}

// RemindBill sends the reminder text for one bill to its resolved
// recipients.
func (h *SMSHandler) RemindBill(w http.ResponseWriter, r *http.Request) {
	if !h.dispatcher.Configured() {
		writeError(w, http.StatusInternalServerError, "missing Twilio configuration")
		return
	}

	bill := h.store.GetBill(r.PathValue("id"))
	if bill == nil {
		writeError(w, http.StatusNotFound, "bill not found")
		return
	}

	res, err := h.dispatcher.RemindBill(*bill, h.store.Members(), h.store.Settings().DefaultRecipients)
	if err != nil {
		if errors.Is(err, reminder.ErrNoRecipients) {
			writeError(w, http.StatusBadRequest, "no recipient phones set")
			return
		}
		h.logger.Warn("reminder failed", "bill_id", bill.ID, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"sent":    res.Sent,
		"results": res.Results,
	})
}
