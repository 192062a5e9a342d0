package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Repository loads and stores the per-section settings rows. Load returns
// the sections exactly as stored plus the set of section keys that had a
// row; callers apply MergeWithDefaults with that set.
type Repository interface {
	Load(ctx context.Context) (SiteSettings, map[string]bool, error)
	Save(ctx context.Context, s SiteSettings) error
}

// InMemoryRepository keeps the section rows in memory for tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]json.RawMessage
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]json.RawMessage)}
}

// SeedSection stores one raw section row, as a partially populated
// database would hold it.
func (r *InMemoryRepository) SeedSection(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[key] = data
	return nil
}

// Load assembles stored rows into the nested structure and reports which
// section keys had a row. Missing sections stay zero-valued.
func (r *InMemoryRepository) Load(ctx context.Context) (SiteSettings, map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s SiteSettings
	present := make(map[string]bool)
	for key, raw := range r.rows {
		known, err := decodeSection(&s, key, raw)
		if err != nil {
			return SiteSettings{}, nil, err
		}
		if known {
			present[key] = true
		}
	}
	return s, present, nil
}

// Save stores one row per section.
func (r *InMemoryRepository) Save(ctx context.Context, s SiteSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range SectionKeys {
		data, err := json.Marshal(sectionValue(&s, key))
		if err != nil {
			return fmt.Errorf("settings: marshal %s: %w", key, err)
		}
		r.rows[key] = data
	}
	return nil
}

// decodeSection unmarshals one stored row into its place in s and reports
// whether the key is a known section. Unknown keys are ignored so stale
// rows cannot break loading.
func decodeSection(s *SiteSettings, key string, raw json.RawMessage) (bool, error) {
	var dst any
	switch key {
	case "general":
		dst = &s.General
	case "contact":
		dst = &s.Contact
	case "hours":
		dst = &s.Hours
	case "social":
		dst = &s.Social
	case "hero":
		dst = &s.Hero
	case "about":
		dst = &s.About
	default:
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("settings: decode %s: %w", key, err)
	}
	return true, nil
}

func sectionValue(s *SiteSettings, key string) any {
	switch key {
	case "general":
		return s.General
	case "contact":
		return s.Contact
	case "hours":
		return s.Hours
	case "social":
		return s.Social
	case "hero":
		return s.Hero
	case "about":
		return s.About
	}
	return nil
}
