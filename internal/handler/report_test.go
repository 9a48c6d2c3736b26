package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/store"
)

func newReportHandler(t *testing.T) (*ReportHandler, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	h := NewReportHandler(st)
	h.now = func() time.Time { return time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC) }
	return h, st
}

func TestSummaryMonthParam(t *testing.T) {
	h, st := newReportHandler(t)
	st.SaveBill(model.Bill{ID: "b1", Title: "Internet", Amount: 60, DueISO: "2024-06-16", Category: "Internet"})
	st.SaveBill(model.Bill{ID: "b2", Title: "Rent", Amount: 1200, DueISO: "2024-07-01", Category: "Home"})

	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest("GET", "/api/report/summary?month=2024-06", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Month  string `json:"month"`
		Totals struct {
			Total  float64 `json:"total"`
			Paid   float64 `json:"paid"`
			Unpaid float64 `json:"unpaid"`
		} `json:"totals"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Month != "2024-06" {
		t.Errorf("month = %q, want 2024-06", resp.Month)
	}
	if resp.Totals.Total != 60 || resp.Totals.Unpaid != 60 {
		t.Errorf("totals = %+v, want the June bill only", resp.Totals)
	}
}

func TestSummaryInvalidMonth(t *testing.T) {
	h, _ := newReportHandler(t)
	rec := httptest.NewRecorder()
	h.Summary(rec, httptest.NewRequest("GET", "/api/report/summary?month=June", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCalendarGrid(t *testing.T) {
	h, st := newReportHandler(t)
	st.SaveBill(model.Bill{ID: "b1", Title: "Internet", Amount: 60, DueISO: "2024-06-16", Category: "Internet"})

	rec := httptest.NewRecorder()
	h.Calendar(rec, httptest.NewRequest("GET", "/api/report/calendar?month=2024-06", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Cells []struct {
			Date    string       `json:"date"`
			InMonth bool         `json:"inMonth"`
			Today   bool         `json:"today"`
			Bills   []model.Bill `json:"bills"`
		} `json:"cells"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Cells) != 42 {
		t.Fatalf("cells = %d, want 42", len(resp.Cells))
	}
	// June 2024 starts on a Saturday, so the grid leads with the last week
	// of May.
	if resp.Cells[0].Date != "2024-05-26" || resp.Cells[0].InMonth {
		t.Errorf("cell 0 = %s inMonth=%v, want 2024-05-26 out of month", resp.Cells[0].Date, resp.Cells[0].InMonth)
	}

	var sawBill, sawToday bool
	for _, c := range resp.Cells {
		if c.Date == "2024-06-16" {
			sawToday = c.Today
			sawBill = len(c.Bills) == 1 && c.Bills[0].ID == "b1"
		} else if len(c.Bills) != 0 {
			t.Errorf("cell %s has bills %v", c.Date, c.Bills)
		}
	}
	if !sawBill {
		t.Error("bill not placed on its due date cell")
	}
	if !sawToday {
		t.Error("today flag not set on the reference date")
	}
}

func TestScheduleSplitsOverdueAndUpcoming(t *testing.T) {
	h, st := newReportHandler(t)
	st.SaveBill(model.Bill{ID: "late", Title: "Water", Amount: 30, DueISO: "2024-06-10"})
	st.SaveBill(model.Bill{ID: "today", Title: "Internet", Amount: 60, DueISO: "2024-06-16"})
	st.SaveBill(model.Bill{ID: "soon", Title: "Rent", Amount: 1200, DueISO: "2024-06-20"})
	st.SaveBill(model.Bill{ID: "done", Title: "Power", Amount: 80, DueISO: "2024-06-01", Paid: true})

	rec := httptest.NewRecorder()
	h.Schedule(rec, httptest.NewRequest("GET", "/api/report/schedule", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Overdue  []model.Bill `json:"overdue"`
		Upcoming []model.Bill `json:"upcoming"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Overdue) != 1 || resp.Overdue[0].ID != "late" {
		t.Errorf("overdue = %v, want [late]", resp.Overdue)
	}
	// Due today counts as upcoming, paid bills are excluded entirely.
	if len(resp.Upcoming) != 2 || resp.Upcoming[0].ID != "today" || resp.Upcoming[1].ID != "soon" {
		t.Errorf("upcoming = %v, want [today soon]", resp.Upcoming)
	}
}
