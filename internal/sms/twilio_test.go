package sms

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSend(t *testing.T) {
	var gotPath, gotUser, gotTo, gotFrom, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotTo = r.PostFormValue("To")
		gotFrom = r.PostFormValue("From")
		gotBody = r.PostFormValue("Body")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid": "SM123", "status": "queued"}`))
	}))
	defer server.Close()

	client := NewClient("AC42", "secret", "+15550009999", WithBaseURL(server.URL))
	msg, err := client.Send("+15551234567", "Reminder: Internet due 6/16/2024")
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if gotPath != "/2010-04-01/Accounts/AC42/Messages.json" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUser != "AC42" {
		t.Errorf("basic auth user = %q, want AC42", gotUser)
	}
	if gotTo != "+15551234567" || gotFrom != "+15550009999" {
		t.Errorf("to = %q, from = %q", gotTo, gotFrom)
	}
	if gotBody != "Reminder: Internet due 6/16/2024" {
		t.Errorf("body = %q", gotBody)
	}
	if msg.Sid != "SM123" || msg.Status != "queued" || msg.To != "+15551234567" {
		t.Errorf("message = %+v", msg)
	}
}

func TestSendNotConfigured(t *testing.T) {
	client := NewClient("", "", "")
	if _, err := client.Send("+15551234567", "hi"); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}

func TestSendAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message": "The 'To' number is not a valid phone number.", "code": 21211}`))
	}))
	defer server.Close()

	client := NewClient("AC42", "secret", "+15550009999", WithBaseURL(server.URL))
	_, err := client.Send("bogus", "hi")
	if err == nil {
		t.Fatal("expected error for API failure")
	}
	if got := err.Error(); !strings.Contains(got, "not a valid phone number") {
		t.Errorf("error should carry the provider message, got %q", got)
	}
}

func TestConfigured(t *testing.T) {
	if !NewClient("AC42", "secret", "+15550009999").Configured() {
		t.Error("expected Configured() = true")
	}
	if NewClient("AC42", "", "+15550009999").Configured() {
		t.Error("expected Configured() = false without auth token")
	}
	if NewClient("AC42", "secret", "").Configured() {
		t.Error("expected Configured() = false without sender number")
	}
}
