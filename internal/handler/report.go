package handler

import (
	"net/http"
	"time"

	"github.com/rgoodwin/housetab/internal/dates"
	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/report"
	"github.com/rgoodwin/housetab/internal/store"
)

type ReportHandler struct {
	store *store.Store
	now   func() time.Time
}

func NewReportHandler(s *store.Store) *ReportHandler {
	return &ReportHandler{store: s, now: time.Now}
}

// refMonth parses the month query parameter ("2006-01"), defaulting to the
// current month.
func (h *ReportHandler) refMonth(r *http.Request) (time.Time, bool) {
	m := r.URL.Query().Get("month")
	if m == "" {
		now := h.now()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	parsed, err := time.Parse("2006-01", m)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Summary returns the reference month's totals.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	month, ok := h.refMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month":  dates.MonthKey(month),
		"label":  dates.FormatMonth(month),
		"totals": report.MonthTotals(h.store.Bills(), month),
	})
}

// Categories returns the reference month's category breakdown.
func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	month, ok := h.refMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	slices := report.CategoryBreakdown(h.store.Bills(), month)
	if slices == nil {
		slices = []report.CategorySlice{}
	}
	writeJSON(w, http.StatusOK, slices)
}

// Schedule returns the overdue/upcoming partition of unpaid bills as of
// today, with the upcoming list truncated to the dashboard preview size.
func (h *ReportHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	bills := report.Search(h.store.Bills(), r.URL.Query().Get("q"))
	overdue, upcoming := report.Partition(bills, h.now())
	if overdue == nil {
		overdue = []model.Bill{}
	}

	preview := report.UpcomingPreview(upcoming)
	if preview == nil {
		preview = []model.Bill{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"overdue":  overdue,
		"upcoming": preview,
	})
}

type calendarCell struct {
	Date    string       `json:"date"`
	InMonth bool         `json:"inMonth"`
	Today   bool         `json:"today"`
	Bills   []model.Bill `json:"bills"`
}

// Calendar returns the 42-cell month grid with the bills due on each day.
func (h *ReportHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	month, ok := h.refMonth(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}

	bills := report.Search(h.store.Bills(), r.URL.Query().Get("q"))
	todayISO := dates.ISO(h.now())

	cells := make([]calendarCell, 0, 42)
	for _, c := range dates.MonthGrid(month) {
		due := report.DueOn(bills, c.Date)
		if due == nil {
			due = []model.Bill{}
		}
		cells = append(cells, calendarCell{
			Date:    dates.ISO(c.Date),
			InMonth: c.InMonth,
			Today:   dates.ISO(c.Date) == todayISO,
			Bills:   due,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"month": dates.MonthKey(month),
		"label": dates.FormatMonth(month),
		"cells": cells,
	})
}
