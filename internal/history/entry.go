package history

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/skinsel/internal/selection"
)

// Entry is one applied selection.
type Entry struct {
	ID         string `json:"id"`
	Theme      string `json:"theme"`
	Background string `json:"background,omitempty"`
	ConfigPath string `json:"config_path"`
	AppliedAt  int64  `json:"applied_at"`
}

// Validation errors.
var (
	ErrEmptyID    = errors.New("id cannot be empty")
	ErrEmptyTheme = errors.New("theme cannot be empty")
)

// NewEntry creates an Entry with a generated ULID, stamped now.
func NewEntry(sel selection.Selection, configPath string) (Entry, error) {
	now := time.Now()
	id, err := ulid.New(ulid.Timestamp(now), rand.Reader)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to generate ULID: %w", err)
	}

	return Entry{
		ID:         id.String(),
		Theme:      sel.Theme,
		Background: sel.Background,
		ConfigPath: configPath,
		AppliedAt:  now.Unix(),
	}, nil
}

// Validate checks that the entry has all required fields.
func (e Entry) Validate() error {
	if e.ID == "" {
		return ErrEmptyID
	}
	if e.Theme == "" {
		return ErrEmptyTheme
	}
	return nil
}

// Selection returns the applied selection.
func (e Entry) Selection() selection.Selection {
	return selection.Selection{Theme: e.Theme, Background: e.Background}
}

// Time returns AppliedAt as a time.Time.
func (e Entry) Time() time.Time {
	return time.Unix(e.AppliedAt, 0)
}

// RelativeTime returns a human-readable relative time string.
func (e Entry) RelativeTime() string {
	return humanize.Time(e.Time())
}
