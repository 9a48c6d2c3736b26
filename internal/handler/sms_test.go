package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/reminder"
	"github.com/rgoodwin/housetab/internal/sms"
	"github.com/rgoodwin/housetab/internal/store"
)

type fakeSender struct {
	sent       []string
	failAlways bool
	offline    bool
}

func (f *fakeSender) Configured() bool { return !f.offline }

func (f *fakeSender) Send(to, body string) (*sms.Message, error) {
	if f.failAlways {
		return nil, errors.New("provider rejected")
	}
	f.sent = append(f.sent, to)
	return &sms.Message{To: to, Sid: "SM1", Status: "queued"}, nil
}

func newSMSHandler(t *testing.T, sender reminder.Sender) (*SMSHandler, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	d := reminder.NewDispatcher(sender, testLogger())
	return NewSMSHandler(st, d, testLogger()), st
}

func TestSMSSendSingleRecipient(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newSMSHandler(t, sender)

	body := `{"to":"+15551234567","body":"test"}`
	req := httptest.NewRequest("POST", "/api/sms", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		OK      bool          `json:"ok"`
		Sent    int           `json:"sent"`
		Results []sms.Message `json:"results"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.OK || resp.Sent != 1 || len(resp.Results) != 1 {
		t.Errorf("response = %+v", resp)
	}
}

func TestSMSSendRecipientList(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newSMSHandler(t, sender)

	body := `{"to":["+15551234567","+15557654321"],"body":"test"}`
	req := httptest.NewRequest("POST", "/api/sms", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(sender.sent) != 2 {
		t.Errorf("provider called %d times, want 2", len(sender.sent))
	}
}

func TestSMSSendMissingConfig(t *testing.T) {
	h, _ := newSMSHandler(t, &fakeSender{offline: true})

	body := `{"to":"+15551234567","body":"test"}`
	req := httptest.NewRequest("POST", "/api/sms", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for missing configuration", rec.Code)
	}
}

func TestSMSSendMissingFields(t *testing.T) {
	sender := &fakeSender{}
	h, _ := newSMSHandler(t, sender)

	for _, body := range []string{`{"body":"test"}`, `{"to":"+15551234567"}`, `{}`} {
		req := httptest.NewRequest("POST", "/api/sms", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Send(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
	if len(sender.sent) != 0 {
		t.Errorf("provider called %d times, want 0", len(sender.sent))
	}
}

func TestSMSSendProviderFailure(t *testing.T) {
	h, _ := newSMSHandler(t, &fakeSender{failAlways: true})

	body := `{"to":"+15551234567","body":"test"}`
	req := httptest.NewRequest("POST", "/api/sms", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Send(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp map[string]string
	json.NewDecoder(rec.Body).Decode(&resp)
	if !strings.Contains(resp["error"], "provider rejected") {
		t.Errorf("error = %q, want provider message", resp["error"])
	}
}

func TestRemindBill(t *testing.T) {
	sender := &fakeSender{}
	h, st := newSMSHandler(t, sender)
	st.SaveMember(model.Member{ID: "u1", Name: "You", Phone: "+15551234567"})
	st.SaveBill(model.Bill{ID: "b1", Title: "Internet", Amount: 60, DueISO: "2024-06-16", Recipients: []string{"u1"}})

	req := httptest.NewRequest("POST", "/api/bills/b1/remind", nil)
	req.SetPathValue("id", "b1")
	rec := httptest.NewRecorder()
	h.RemindBill(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if len(sender.sent) != 1 || sender.sent[0] != "+15551234567" {
		t.Errorf("sent = %v", sender.sent)
	}
}

func TestRemindBillNoPhones(t *testing.T) {
	sender := &fakeSender{}
	h, st := newSMSHandler(t, sender)
	// u3 has no phone number.
	st.SaveMember(model.Member{ID: "u3", Name: "Kid"})
	st.SaveBill(model.Bill{ID: "b1", Title: "Internet", Recipients: []string{"u3"}})

	req := httptest.NewRequest("POST", "/api/bills/b1/remind", nil)
	req.SetPathValue("id", "b1")
	rec := httptest.NewRecorder()
	h.RemindBill(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for zero recipients", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Errorf("provider called %d times, want 0", len(sender.sent))
	}
}

func TestRemindBillNotFound(t *testing.T) {
	h, _ := newSMSHandler(t, &fakeSender{})

	req := httptest.NewRequest("POST", "/api/bills/nope/remind", nil)
	req.SetPathValue("id", "nope")
	rec := httptest.NewRecorder()
	h.RemindBill(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
