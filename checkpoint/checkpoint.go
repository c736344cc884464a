// Package checkpoint persists the ingestion cursor: the last fully
// recorded (username, timestamp) pair, so an interrupted migration can
// resume near where it stopped.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
)

type Checkpoint struct {
	LastUser      string `json:"last_user"`
	LastTimestamp int64  `json:"last_timestamp"`
}

func New(filename string) *Manager {
	return &Manager{filename: filename}
}

type Manager struct {
	filename string
}

// Load returns the zero checkpoint when the file is missing or
// unparsable: a corrupt cursor means "start over", never "fail". The
// play table's uniqueness constraint makes the replayed overlap a
// no-op.
func (m *Manager) Load() Checkpoint {
	bs, err := os.ReadFile(m.filename)
	if err != nil {
		return Checkpoint{}
	}
	var cp Checkpoint
	if err := json.Unmarshal(bs, &cp); err != nil {
		return Checkpoint{}
	}
	return cp
}

// Save overwrites the checkpoint unconditionally. Last write wins; no
// history is kept.
func (m *Manager) Save(username string, timestamp int64) error {
	bs, err := json.Marshal(Checkpoint{LastUser: username, LastTimestamp: timestamp})
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.filename, bs, 0666); err != nil {
		return fmt.Errorf("error writing checkpoint '%s': %w", m.filename, err)
	}
	return nil
}
