// Package prefs holds the user's matching criteria and persists them.
package prefs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/store"
)

// DefaultMinScore is the matches-only threshold when none is configured.
const DefaultMinScore = 40

// List is a set of free-text criteria. In JSON it may be an array of strings
// or a single comma-separated string; both decode to the same value.
type List []string

// ParseList splits comma-separated text into a List.
func ParseList(s string) List {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return List{s}
}

func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = ParseList(s)
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*l = items
	return nil
}

// Normalized returns the entries split on commas, trimmed, lower-cased, with
// empty entries dropped. A blank list yields no entries, never a wildcard.
func (l List) Normalized() []string {
	var out []string
	for _, item := range l {
		for _, part := range strings.Split(item, ",") {
			if n := Normalize(part); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// String joins the normalized-for-display entries with ", ".
func (l List) String() string {
	var parts []string
	for _, item := range l {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				parts = append(parts, p)
			}
		}
	}
	return strings.Join(parts, ", ")
}

// Normalize lower-cases and trims s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Preferences are the user's declared matching criteria.
type Preferences struct {
	RoleKeywords       List   `json:"roleKeywords"`
	PreferredLocations List   `json:"preferredLocations"`
	PreferredModes     List   `json:"preferredMode"`
	ExperienceLevel    string `json:"experienceLevel"`
	Skills             List   `json:"skills"`
	MinMatchScore      *int   `json:"minMatchScore,omitempty"`
}

// Threshold returns the matches-only cutoff, clamped to [0,100].
func (p *Preferences) Threshold() int {
	if p == nil || p.MinMatchScore == nil {
		return DefaultMinScore
	}
	return min(max(*p.MinMatchScore, 0), 100)
}

// WithMinScore returns a copy of p with the threshold set.
func (p Preferences) WithMinScore(n int) Preferences {
	n = min(max(n, 0), 100)
	p.MinMatchScore = &n
	return p
}

// Store persists preferences in the key/value store.
type Store struct {
	kv store.KV
}

func NewStore(kv store.KV) *Store {
	return &Store{kv: kv}
}

// Load returns the saved preferences, or nil when none are saved or the
// persisted value is malformed.
func (s *Store) Load() *Preferences {
	var p Preferences
	if !store.LoadJSON(s.kv, store.KeyPreferences, &p) {
		return nil
	}
	if p.MinMatchScore != nil {
		p = p.WithMinScore(*p.MinMatchScore)
	}
	return &p
}

// Save overwrites the stored preferences wholesale.
func (s *Store) Save(p Preferences) error {
	if p.MinMatchScore != nil {
		p = p.WithMinScore(*p.MinMatchScore)
	}
	if err := store.SaveJSON(s.kv, store.KeyPreferences, p); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

// Clear removes the stored preferences.
func (s *Store) Clear() error {
	return s.kv.Delete(store.KeyPreferences)
}
