package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/networth"
)

// Storage keeps the last good rate table.
type Storage interface {
	Load() (networth.ExchangeRates, time.Time, error)
	Save(rates networth.ExchangeRates, at time.Time) error
}

// FileStorage stores the table as JSON in a single file.
type FileStorage struct {
	Path string
}

type storedRates struct {
	SavedAt time.Time              `json:"saved_at"`
	Rates   networth.ExchangeRates `json:"rates"`
}

// Load returns the stored table. A missing file is not an error and returns a nil table.
func (s *FileStorage) Load() (networth.ExchangeRates, time.Time, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read rates %s: %w", s.Path, err)
	}
	var st storedRates
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to parse rates %s: %w", s.Path, err)
	}
	return st.Rates, st.SavedAt, nil
}

// Save replaces the stored table.
func (s *FileStorage) Save(rates networth.ExchangeRates, at time.Time) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("failed to create rates dir: %w", err)
	}
	data, err := json.MarshalIndent(storedRates{SavedAt: at.UTC(), Rates: rates}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rates: %w", err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write rates %s: %w", s.Path, err)
	}
	return os.Rename(tmp, s.Path)
}
