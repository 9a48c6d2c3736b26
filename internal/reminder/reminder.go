// Package reminder composes bill reminder texts and fans them out to
// recipient phone numbers through the SMS boundary.
package reminder

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/rgoodwin/housetab/internal/dates"
	"github.com/rgoodwin/housetab/internal/model"
	"github.com/rgoodwin/housetab/internal/sms"
)

// ErrNoRecipients is returned when a dispatch resolves to zero phone
// numbers. It is a local validation failure; no network call is attempted.
var ErrNoRecipients = errors.New("no recipient phone numbers")

// Sender is the provider boundary; implemented by *sms.Client.
type Sender interface {
	Configured() bool
	Send(to, body string) (*sms.Message, error)
}

// Result reports a dispatch batch. On a partial failure Results holds the
// sends that completed before the batch aborted.
type Result struct {
	Sent    int           `json:"sent"`
	Results []sms.Message `json:"results"`
}

// Dispatcher sends reminder batches.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, logger: logger}
}

// Configured reports whether the underlying provider has credentials.
func (d *Dispatcher) Configured() bool {
	return d.sender.Configured()
}

// ResolveRecipients maps a bill's recipient member ids to phone numbers.
// A bill without its own recipient list falls back to the household's
// default recipients. Members without a phone are skipped. Ids that match
// no member are ignored (relaxed consistency with hand-edited imports).
func ResolveRecipients(bill model.Bill, members []model.Member, defaultRecipients []string) []string {
	ids := bill.Recipients
	if ids == nil {
		ids = defaultRecipients
	}

	var phones []string
	for _, id := range ids {
		for _, m := range members {
			if m.ID == id && m.Phone != "" {
				phones = append(phones, m.Phone)
				break
			}
		}
	}
	return phones
}

// ComposeText renders the deterministic reminder template, e.g.
// "Reminder: Internet due 6/16/2024 – $60.00 (HouseTab)".
func ComposeText(bill model.Bill) string {
	amount := humanize.FormatFloat("#,###.##", bill.Amount)
	return fmt.Sprintf("Reminder: %s due %s – $%s (HouseTab)", bill.Title, dates.FormatNumeric(bill.DueISO), amount)
}

// Dispatch sends one message per phone number, sequentially. The batch
// aborts on the first provider failure and returns the partial results
// gathered so far alongside the error; earlier sends cannot be undone.
func (d *Dispatcher) Dispatch(phones []string, text string) (Result, error) {
	if len(phones) == 0 {
		return Result{}, ErrNoRecipients
	}

	var res Result
	for _, phone := range phones {
		msg, err := d.sender.Send(phone, text)
		if err != nil {
			d.logger.Warn("reminder send failed", "to", phone, "sent_so_far", res.Sent, "error", err)
			return res, fmt.Errorf("send to %s: %w", phone, err)
		}
		res.Results = append(res.Results, *msg)
		res.Sent++
	}
	d.logger.Info("reminder batch sent", "count", res.Sent)
	return res, nil
}

// RemindBill resolves recipients, composes the text, and dispatches.
func (d *Dispatcher) RemindBill(bill model.Bill, members []model.Member, defaultRecipients []string) (Result, error) {
	phones := ResolveRecipients(bill, members, defaultRecipients)
	return d.Dispatch(phones, ComposeText(bill))
}
