package model

// Bill is a payment obligation. DueISO is a calendar date ("2006-01-02");
// time-of-day is irrelevant. Field names match the export document format.
type Bill struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	DueISO       string   `json:"dueISO"`
	Category     string   `json:"category"`
	Notes        string   `json:"notes,omitempty"`
	Paid         bool     `json:"paid"`
	CreatedBy    string   `json:"createdBy"`
	PaidBy       string   `json:"paidBy,omitempty"`
	ReminderDays int      `json:"reminderDays,omitempty"`
	Recipients   []string `json:"recipients,omitempty"`
}
