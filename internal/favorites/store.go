package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// StorageKey is the slot the favorites list is persisted under
const StorageKey = "spacex-favorites"

var (
	ErrStorageRead  = errors.New("favorites: storage read failed")
	ErrStorageParse = errors.New("favorites: storage content malformed")
	ErrStorageWrite = errors.New("favorites: storage write failed")
)

// Slot is a local persistent key-value store. *db.DB satisfies it.
type Slot interface {
	GetValue(key string) (string, bool, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// timestampedSlot is a Slot that records when a key was last written
type timestampedSlot interface {
	ValueUpdatedAt(key string) (time.Time, error)
}

// Store holds the in-memory favorites list and mirrors every mutation to a Slot.
// Memory is authoritative once loaded; a failed write is logged, never rolled back.
// A Store is owned by a single goroutine.
type Store struct {
	slot   Slot
	key    string
	logger *log.Logger
	ids    []string
}

// New creates a store and loads the persisted list once
func New(slot Slot, logger *log.Logger) *Store {
	s := &Store{
		slot:   slot,
		key:    StorageKey,
		logger: logger,
	}
	s.ids = s.Load()
	return s
}

// Load reads the persisted list. Missing, unreadable or malformed content
// yields an empty list; the cause is logged, never returned.
func (s *Store) Load() []string {
	ids, err := s.read()
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Error loading favorites from storage", "key", s.key, "error", err)
		}
		return []string{}
	}
	return ids
}

func (s *Store) read() ([]string, error) {
	if s.slot == nil {
		return []string{}, nil
	}
	raw, ok, err := s.slot.GetValue(s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageRead, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageParse, err)
	}
	return dedupe(ids), nil
}

// Save writes the whole list to the slot
func (s *Store) Save(ids []string) error {
	if s.slot == nil {
		return nil
	}
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	if err := s.slot.SetValue(s.key, string(data)); err != nil {
		if s.logger != nil {
			s.logger.Error("Error saving favorites to storage", "key", s.key, "count", len(ids), "error", err)
		}
		return fmt.Errorf("%w: %v", ErrStorageWrite, err)
	}
	return nil
}

// Toggle flips id in the in-memory list and persists the result.
// Returns true when id is now a favorite. A failed write leaves memory updated.
func (s *Store) Toggle(id string) bool {
	s.ids = Toggle(s.ids, id)
	_ = s.Save(s.ids)
	return s.Contains(id)
}

// Clear empties the in-memory list and the persisted slot
func (s *Store) Clear() {
	s.ids = []string{}
	if s.slot == nil {
		return
	}
	if err := s.slot.DeleteValue(s.key); err != nil && s.logger != nil {
		s.logger.Error("Error clearing favorites in storage", "key", s.key, "error", err)
	}
}

// IDs returns a copy of the favorites in insertion order
func (s *Store) IDs() []string {
	return slices.Clone(s.ids)
}

// Contains reports whether id is a favorite
func (s *Store) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// SavedAt returns when the list was last persisted. ok is false when the slot
// keeps no timestamps, nothing was saved yet, or the lookup failed.
func (s *Store) SavedAt() (t time.Time, ok bool) {
	ts, isTimestamped := s.slot.(timestampedSlot)
	if !isTimestamped {
		return time.Time{}, false
	}
	t, err := ts.ValueUpdatedAt(s.key)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("Error reading favorites timestamp", "key", s.key, "error", err)
		}
		return time.Time{}, false
	}
	return t, !t.IsZero()
}

// Len returns the number of favorites
func (s *Store) Len() int {
	return len(s.ids)
}

// Toggle returns a new list with id removed if present, otherwise appended.
// The input slice is not modified.
func Toggle(ids []string, id string) []string {
	idx := slices.Index(ids, id)
	if idx == -1 {
		out := make([]string, len(ids), len(ids)+1)
		copy(out, ids)
		return append(out, id)
	}
	out := make([]string, 0, len(ids)-1)
	out = append(out, ids[:idx]...)
	return append(out, ids[idx+1:]...)
}

// dedupe keeps the first occurrence of every id
func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
