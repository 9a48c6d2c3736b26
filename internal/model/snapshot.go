package model

// Snapshot is the complete application state, serialized as one JSON
// document. It is also the export/import file format, so the shape must
// stay stable.
type Snapshot struct {
	Members             []Member `json:"members"`
	Categories          []string `json:"categories"`
	DefaultReminderDays int      `json:"defaultReminderDays"`
	DefaultRecipients   []string `json:"defaultRecipients"`
	Bills               []Bill   `json:"bills"`
}

// DefaultSnapshot returns the seed state for a fresh install.
func DefaultSnapshot() *Snapshot {
	return &Snapshot{
		Members: []Member{
			{ID: "u1", Name: "You"},
			{ID: "u2", Name: "Partner"},
		},
		Categories: []string{
			"Home", "Car", "Utilities", "Internet", "Phone", "Insurance",
			"Credit Card", "Loan", "Investment", "Medical", "Subscription",
			"Groceries", "Misc",
		},
		DefaultReminderDays: 1,
		DefaultRecipients:   []string{"u1"},
		Bills:               []Bill{},
	}
}

// Clone returns a deep copy so callers can hand out snapshots without
// aliasing the store's internal state.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Members:             make([]Member, len(s.Members)),
		Categories:          make([]string, len(s.Categories)),
		DefaultReminderDays: s.DefaultReminderDays,
		DefaultRecipients:   make([]string, len(s.DefaultRecipients)),
		Bills:               make([]Bill, len(s.Bills)),
	}
	copy(out.Members, s.Members)
	copy(out.Categories, s.Categories)
	copy(out.DefaultRecipients, s.DefaultRecipients)
	for i, b := range s.Bills {
		if b.Recipients != nil {
			r := make([]string, len(b.Recipients))
			copy(r, b.Recipients)
			b.Recipients = r
		}
		out.Bills[i] = b
	}
	return out
}
