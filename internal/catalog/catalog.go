// Package catalog holds the immutable job postings the workspace ranks.
package catalog

import (
	"fmt"
	"strings"
)

// Mode is the work arrangement of a posting.
type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnSite  Mode = "On-site"
	ModeHybrid  Mode = "Hybrid"
	ModeRemote  Mode = "Remote"
)

// AllModes returns the known modes in display order.
func AllModes() []Mode {
	return []Mode{ModeOnSite, ModeHybrid, ModeRemote}
}

// ParseMode maps a free-form spelling ("Onsite", "on-site", "ON SITE",
// "remote") onto a Mode. Unrecognised input yields ModeUnknown.
func ParseMode(s string) Mode {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", " ", "", "_", "").Replace(key)
	switch key {
	case "onsite", "office", "inoffice":
		return ModeOnSite
	case "hybrid":
		return ModeHybrid
	case "remote", "wfh":
		return ModeRemote
	}
	return ModeUnknown
}

// Posting is one job listing. Postings are never mutated after generation.
type Posting struct {
	ID          int
	Title       string
	Company     string
	Location    string
	Mode        Mode
	Experience  string
	Skills      []string
	Source      string
	SalaryRange string
	PostedAge   int // days since posting
	Description string
	ApplyURL    string
}

// Catalog is the read-only source of postings for a session.
type Catalog interface {
	All() []Posting
}

// Static is an in-memory catalog with a fixed order.
type Static struct {
	postings []Posting
	byID     map[int]int
}

// NewStatic builds a catalog over postings. Duplicate ids are rejected.
func NewStatic(postings []Posting) (*Static, error) {
	s := &Static{
		postings: postings,
		byID:     make(map[int]int, len(postings)),
	}
	for i, p := range postings {
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate posting id %d", p.ID)
		}
		s.byID[p.ID] = i
	}
	return s, nil
}

// All returns the postings in catalog order. The slice is a copy; the
// postings themselves share skill slices and must be treated as read-only.
func (s *Static) All() []Posting {
	out := make([]Posting, len(s.postings))
	copy(out, s.postings)
	return out
}

// ByID looks a posting up by id.
func (s *Static) ByID(id int) (Posting, bool) {
	i, ok := s.byID[id]
	if !ok {
		return Posting{}, false
	}
	return s.postings[i], true
}

// Len returns the number of postings.
func (s *Static) Len() int {
	return len(s.postings)
}
