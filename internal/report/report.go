package report

import (
	"sort"
	"strings"
	"time"

	"github.com/rgoodwin/housetab/internal/dates"
	"github.com/rgoodwin/housetab/internal/model"
)

// UpcomingPreviewCount bounds the upcoming-bills list shown on the dashboard.
const UpcomingPreviewCount = 6

// palette provides the display colors assigned to category slices, cycled
// by rank.
var palette = []string{
	"#6366F1", "#22C55E", "#F59E0B", "#EF4444", "#06B6D4",
	"#A855F7", "#84CC16", "#F97316", "#0EA5E9", "#14B8A6",
}

// Totals summarizes one reference month.
type Totals struct {
	Total  float64 `json:"total"`
	Paid   float64 `json:"paid"`
	Unpaid float64 `json:"unpaid"`
}

// CategorySlice is one entry of a category breakdown.
type CategorySlice struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Color  string  `json:"color"`
}

// MonthBills returns the bills whose due date falls in the reference month.
// Membership is a string-prefix match on the "YYYY-MM" portion of dueISO,
// which sidesteps timezone drift from full date parsing.
func MonthBills(bills []model.Bill, refMonth time.Time) []model.Bill {
	key := dates.MonthKey(refMonth)
	var out []model.Bill
	for _, b := range bills {
		if strings.HasPrefix(b.DueISO, key) {
			out = append(out, b)
		}
	}
	return out
}

// MonthTotals computes total, paid, and unpaid sums for the reference month.
// Unpaid is clamped at zero so inconsistent inputs never yield a negative.
func MonthTotals(bills []model.Bill, refMonth time.Time) Totals {
	var total, paid float64
	for _, b := range MonthBills(bills, refMonth) {
		total += b.Amount
		if b.Paid {
			paid += b.Amount
		}
	}
	unpaid := total - paid
	if unpaid < 0 {
		unpaid = 0
	}
	return Totals{Total: total, Paid: paid, Unpaid: unpaid}
}

// CategoryBreakdown groups the reference month's bills by category and sums
// amounts per group, sorted by sum descending. Ties keep first-seen order.
func CategoryBreakdown(bills []model.Bill, refMonth time.Time) []CategorySlice {
	sums := make(map[string]float64)
	var order []string
	for _, b := range MonthBills(bills, refMonth) {
		if _, seen := sums[b.Category]; !seen {
			order = append(order, b.Category)
		}
		sums[b.Category] += b.Amount
	}

	slices := make([]CategorySlice, 0, len(order))
	for _, name := range order {
		slices = append(slices, CategorySlice{Name: name, Amount: sums[name]})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount > slices[j].Amount
	})
	for i := range slices {
		slices[i].Color = palette[i%len(palette)]
	}
	return slices
}

// Partition splits unpaid bills into overdue (due strictly before today) and
// upcoming (due today or later). Upcoming is sorted ascending by due date
// for display; overdue keeps input order.
func Partition(bills []model.Bill, today time.Time) (overdue, upcoming []model.Bill) {
	day := dates.StartOfDay(today)
	for _, b := range bills {
		if b.Paid {
			continue
		}
		due, err := dates.ParseDay(b.DueISO)
		if err != nil {
			continue
		}
		if due.Before(day) {
			overdue = append(overdue, b)
		} else {
			upcoming = append(upcoming, b)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueISO < upcoming[j].DueISO
	})
	return overdue, upcoming
}

// UpcomingPreview truncates an upcoming list to the dashboard preview size.
func UpcomingPreview(upcoming []model.Bill) []model.Bill {
	if len(upcoming) > UpcomingPreviewCount {
		return upcoming[:UpcomingPreviewCount]
	}
	return upcoming
}

// Search filters bills by a case-insensitive substring match against the
// concatenated title, category, and notes. An empty query returns the input
// unchanged.
func Search(bills []model.Bill, query string) []model.Bill {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return bills
	}
	var out []model.Bill
	for _, b := range bills {
		haystack := strings.ToLower(b.Title + " " + b.Category + " " + b.Notes)
		if strings.Contains(haystack, q) {
			out = append(out, b)
		}
	}
	return out
}

// DueOn returns the bills due on the given grid day.
func DueOn(bills []model.Bill, day time.Time) []model.Bill {
	iso := dates.ISO(day)
	var out []model.Bill
	for _, b := range bills {
		if dates.SameCalendarDay(b.DueISO, iso) {
			out = append(out, b)
		}
	}
	return out
}
