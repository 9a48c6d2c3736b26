package model

// Settings holds the defaults applied when a new bill is created.
type Settings struct {
	DefaultReminderDays int      `json:"defaultReminderDays"`
	DefaultRecipients   []string `json:"defaultRecipients"`
}
