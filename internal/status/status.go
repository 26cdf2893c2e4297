// Package status tracks the application progress the user assigns to each
// posting.
//
// Not Applied is the default and is never stored: a posting without an entry
// is Not Applied, and reverting to Not Applied deletes the entry.
package status

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Status is a user-assigned application label.
type Status string

const (
	NotApplied Status = "Not Applied"
	Applied    Status = "Applied"
	Selected   Status = "Selected"
	Rejected   Status = "Rejected"
)

// ErrUnknownStatus is returned by Parse for unrecognised labels.
var ErrUnknownStatus = errors.New("unknown status")

// All returns every status in display order.
func All() []Status {
	return []Status{NotApplied, Applied, Selected, Rejected}
}

// Parse converts a label to a Status, ignoring case and accepting
// "not-applied" / "not_applied".
func Parse(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", " ", "_", " ").Replace(key)
	for _, st := range All() {
		if strings.ToLower(string(st)) == key {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w %q (valid: not applied, applied, selected, rejected)", ErrUnknownStatus, s)
}

// Next cycles through the statuses in display order.
func (s Status) Next() Status {
	all := All()
	for i, st := range all {
		if st == s {
			return all[(i+1)%len(all)]
		}
	}
	return NotApplied
}

// Entry is the stored assignment for one posting.
type Entry struct {
	Status    Status    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Map is the persisted shape: posting id to entry.
type Map map[int]Entry

// Get returns the status for id, NotApplied when absent.
func (m Map) Get(id int) Status {
	if e, ok := m[id]; ok {
		return e.Status
	}
	return NotApplied
}

// Counts tallies postings per status across ids. Ids without an entry count
// as Not Applied.
func (m Map) Counts(ids []int) map[Status]int {
	out := make(map[Status]int, 4)
	for _, id := range ids {
		out[m.Get(id)]++
	}
	return out
}

// PostingLookup resolves posting ids for notification text.
type PostingLookup interface {
	ByID(id int) (catalog.Posting, bool)
}

// Tracker owns the status map and persists every change. It is not safe for
// concurrent use.
type Tracker struct {
	kv       store.KV
	entries  Map
	notifier notify.Notifier
	postings PostingLookup
	now      func() time.Time
}

// NewTracker loads the persisted map. Malformed or unknown entries are
// dropped. postings may be nil.
func NewTracker(kv store.KV, n notify.Notifier, postings PostingLookup) *Tracker {
	if n == nil {
		n = notify.Discard{}
	}
	t := &Tracker{
		kv:       kv,
		entries:  Map{},
		notifier: n,
		postings: postings,
		now:      time.Now,
	}
	var raw Map
	if store.LoadJSON(kv, store.KeyStatusMap, &raw) {
		for id, e := range raw {
			if st, err := Parse(string(e.Status)); err == nil && st != NotApplied {
				t.entries[id] = Entry{Status: st, Timestamp: e.Timestamp}
			}
		}
	}
	return t
}

// Get returns the status of a posting.
func (t *Tracker) Get(id int) Status {
	return t.entries.Get(id)
}

// Entry returns the stored entry for id, if any.
func (t *Tracker) Entry(id int) (Entry, bool) {
	e, ok := t.entries[id]
	return e, ok
}

// Snapshot returns a copy of the current map.
func (t *Tracker) Snapshot() Map {
	out := make(Map, len(t.entries))
	for id, e := range t.entries {
		out[id] = e
	}
	return out
}

// Set assigns st to the posting, persists the map and notifies.
func (t *Tracker) Set(id int, st Status) error {
	next := t.Snapshot()
	if st == NotApplied {
		delete(next, id)
	} else {
		next[id] = Entry{Status: st, Timestamp: t.now().UTC()}
	}
	if err := store.SaveJSON(t.kv, store.KeyStatusMap, next); err != nil {
		return fmt.Errorf("persisting status: %w", err)
	}
	t.entries = next
	t.notifier.Notify(t.message(id, st))
	return nil
}

func (t *Tracker) message(id int, st Status) string {
	msg := "Status updated: " + string(st)
	if t.postings != nil {
		if p, ok := t.postings.ByID(id); ok && p.Company != "" {
			msg += " · " + p.Company
		}
	}
	return msg
}
