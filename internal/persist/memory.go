// Package persist provides backends for the store's persistence port.
package persist

import (
	"sync"

	"github.com/rgoodwin/housetab/internal/model"
)

// Memory keeps the snapshot in process memory. Used by tests and for
// ephemeral runs.
type Memory struct {
	mu   sync.Mutex
	snap *model.Snapshot
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load() (*model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return nil, nil
	}
	return m.snap.Clone(), nil
}

func (m *Memory) Save(snap *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap.Clone()
	return nil
}
