// Package store holds the in-memory application state and synchronizes it
// to a persistence backend after every mutation.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rgoodwin/housetab/internal/dates"
	"github.com/rgoodwin/housetab/internal/model"
)

// Persister is the persistence port behind the state store. Load returns
// (nil, nil) when nothing has been saved yet.
type Persister interface {
	Load() (*model.Snapshot, error)
	Save(*model.Snapshot) error
}

// Store owns the snapshot. All reads hand out copies; all mutations go
// through its methods and trigger a best-effort save. A failed save is
// logged and never blocks the caller.
type Store struct {
	mu      sync.RWMutex
	state   *model.Snapshot
	persist Persister
	logger  *slog.Logger
}

// New loads state through the persister once. A load failure or an empty
// backend falls back to the default seed snapshot.
func New(p Persister, logger *slog.Logger) *Store {
	s := &Store{persist: p, logger: logger}

	snap, err := p.Load()
	if err != nil {
		logger.Warn("load snapshot failed, using defaults", "error", err)
	}
	if snap == nil {
		snap = model.DefaultSnapshot()
	}
	s.state = snap
	return s
}

func (s *Store) save() {
	if err := s.persist.Save(s.state.Clone()); err != nil {
		s.logger.Warn("save snapshot failed", "error", err)
	}
}

// Bills returns a copy of the bill collection.
func (s *Store) Bills() []model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Bill, len(s.state.Bills))
	copy(out, s.state.Bills)
	return out
}

// GetBill returns the bill with the given id, or nil.
func (s *Store) GetBill(id string) *model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.state.Bills {
		if b.ID == id {
			out := b
			return &out
		}
	}
	return nil
}

// NewBill returns an unsaved bill pre-filled with the household defaults:
// the given due date, the first category, and the settings' reminder days
// and recipients.
func (s *Store) NewBill(actorID string, due time.Time) model.Bill {
	s.mu.RLock()
	defer s.mu.RUnlock()

	category := "Misc"
	if len(s.state.Categories) > 0 {
		category = s.state.Categories[0]
	}
	recipients := make([]string, len(s.state.DefaultRecipients))
	copy(recipients, s.state.DefaultRecipients)

	return model.Bill{
		ID:           uuid.New().String(),
		DueISO:       dates.ISO(due),
		Category:     category,
		CreatedBy:    actorID,
		ReminderDays: s.state.DefaultReminderDays,
		Recipients:   recipients,
	}
}

// SaveBill upserts by id: it replaces an existing bill or appends a new one.
// Create and save-after-edit share this path. An empty id gets a fresh uuid.
// Validation is the caller's concern; the store applies mutations as given.
func (s *Store) SaveBill(b model.Bill) model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	replaced := false
	for i, existing := range s.state.Bills {
		if existing.ID == b.ID {
			s.state.Bills[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.Bills = append(s.state.Bills, b)
	}
	s.save()
	return b
}

// TogglePaid flips the paid flag. Transitioning to paid stamps PaidBy with
// the acting member; transitioning back clears it. Returns nil if the bill
// does not exist.
func (s *Store) TogglePaid(id, actorID string) *model.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Bills {
		if s.state.Bills[i].ID != id {
			continue
		}
		b := &s.state.Bills[i]
		b.Paid = !b.Paid
		if b.Paid {
			b.PaidBy = actorID
		} else {
			b.PaidBy = ""
		}
		out := *b
		s.save()
		return &out
	}
	return nil
}

// DeleteBill removes by id and reports whether anything was removed.
// Confirmation is the UI's concern; deletion here is unconditional.
func (s *Store) DeleteBill(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, b := range s.state.Bills {
		if b.ID == id {
			s.state.Bills = append(s.state.Bills[:i], s.state.Bills[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// Members returns a copy of the member list.
func (s *Store) Members() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Member, len(s.state.Members))
	copy(out, s.state.Members)
	return out
}

// GetMember returns the member with the given id, or nil.
func (s *Store) GetMember(id string) *model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.state.Members {
		if m.ID == id {
			out := m
			return &out
		}
	}
	return nil
}

// SaveMember upserts by id; an empty id gets a fresh uuid.
func (s *Store) SaveMember(m model.Member) model.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	replaced := false
	for i, existing := range s.state.Members {
		if existing.ID == m.ID {
			s.state.Members[i] = m
			replaced = true
			break
		}
	}
	if !replaced {
		s.state.Members = append(s.state.Members, m)
	}
	s.save()
	return m
}

// DeleteMember removes by id and reports whether anything was removed.
// Bills referencing the member are left alone (relaxed consistency).
func (s *Store) DeleteMember(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.state.Members {
		if m.ID == id {
			s.state.Members = append(s.state.Members[:i], s.state.Members[i+1:]...)
			s.save()
			return true
		}
	}
	return false
}

// Categories returns a copy of the category suggestion list.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.state.Categories))
	copy(out, s.state.Categories)
	return out
}

// UpdateCategories replaces the category list.
func (s *Store) UpdateCategories(categories []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Categories = append([]string(nil), categories...)
	s.save()
}

// Settings returns the new-bill defaults.
func (s *Store) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recipients := make([]string, len(s.state.DefaultRecipients))
	copy(recipients, s.state.DefaultRecipients)
	return model.Settings{
		DefaultReminderDays: s.state.DefaultReminderDays,
		DefaultRecipients:   recipients,
	}
}

// UpdateSettings replaces the new-bill defaults.
func (s *Store) UpdateSettings(settings model.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.DefaultReminderDays = settings.DefaultReminderDays
	s.state.DefaultRecipients = append([]string(nil), settings.DefaultRecipients...)
	s.save()
}

// Export returns a deep copy of the full snapshot.
func (s *Store) Export() *model.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ImportDoc is a partial snapshot document. Pointer and slice fields
// distinguish "absent" from "present but zero": only present keys
// overwrite the current state.
type ImportDoc struct {
	Members             []model.Member `json:"members"`
	Categories          []string       `json:"categories"`
	DefaultReminderDays *int           `json:"defaultReminderDays"`
	DefaultRecipients   []string       `json:"defaultRecipients"`
	Bills               []model.Bill   `json:"bills"`
}

// Import applies the present keys of a partial document over the current
// state. Absent keys leave their collections untouched.
func (s *Store) Import(doc ImportDoc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if doc.Members != nil {
		s.state.Members = doc.Members
	}
	if doc.Categories != nil {
		s.state.Categories = doc.Categories
	}
	if doc.DefaultReminderDays != nil {
		s.state.DefaultReminderDays = *doc.DefaultReminderDays
	}
	if doc.DefaultRecipients != nil {
		s.state.DefaultRecipients = doc.DefaultRecipients
	}
	if doc.Bills != nil {
		s.state.Bills = doc.Bills
	}
	s.save()
}
