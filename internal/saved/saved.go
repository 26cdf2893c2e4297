// Package saved keeps the user's bookmarked postings.
package saved

import (
	"fmt"
	"slices"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Set is the ordered list of saved posting ids. It is not safe for concurrent
// use.
type Set struct {
	kv       store.KV
	ids      []int
	notifier notify.Notifier
}

// New loads the saved ids. A malformed value starts an empty set.
func New(kv store.KV, n notify.Notifier) *Set {
	if n == nil {
		n = notify.Discard{}
	}
	s := &Set{kv: kv, notifier: n}
	var ids []int
	if store.LoadJSON(kv, store.KeySavedIDs, &ids) {
		for _, id := range ids {
			if !slices.Contains(s.ids, id) {
				s.ids = append(s.ids, id)
			}
		}
	}
	return s
}

func (s *Set) Has(id int) bool {
	return slices.Contains(s.ids, id)
}

// IDs returns the saved ids in the order they were saved.
func (s *Set) IDs() []int {
	return slices.Clone(s.ids)
}

func (s *Set) Len() int {
	return len(s.ids)
}

// Toggle saves an unsaved posting or removes a saved one, and reports whether
// the posting is saved afterwards.
func (s *Set) Toggle(id int) (bool, error) {
	next := slices.Clone(s.ids)
	nowSaved := true
	if i := slices.Index(next, id); i >= 0 {
		next = slices.Delete(next, i, i+1)
		nowSaved = false
	} else {
		next = append(next, id)
	}
	if next == nil {
		next = []int{}
	}
	if err := store.SaveJSON(s.kv, store.KeySavedIDs, next); err != nil {
		return !nowSaved, fmt.Errorf("persisting saved jobs: %w", err)
	}
	s.ids = next
	if nowSaved {
		s.notifier.Notify("Job saved")
	} else {
		s.notifier.Notify("Removed from saved")
	}
	return nowSaved, nil
}

// Postings resolves the saved ids against postings, keeping the order of
// postings. Ids that no longer resolve are skipped.
func (s *Set) Postings(postings []catalog.Posting) []catalog.Posting {
	var out []catalog.Posting
	for _, p := range postings {
		if s.Has(p.ID) {
			out = append(out, p)
		}
	}
	return out
}
