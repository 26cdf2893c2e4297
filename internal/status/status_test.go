package status

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

func newTracker(t *testing.T) (*Tracker, store.Memory, *notify.Queue) {
	t.Helper()
	kv := store.Memory{}
	q := &notify.Queue{}
	tr := NewTracker(kv, q, catalog.Default(10))
	tr.now = func() time.Time { return time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC) }
	return tr, kv, q
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Status
	}{
		{"Applied", Applied},
		{"applied", Applied},
		{"SELECTED", Selected},
		{"Rejected", Rejected},
		{"Not Applied", NotApplied},
		{"not-applied", NotApplied},
		{"not_applied", NotApplied},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}

	if _, err := Parse("Interview"); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestNextCycles(t *testing.T) {
	if NotApplied.Next() != Applied || Applied.Next() != Selected ||
		Selected.Next() != Rejected || Rejected.Next() != NotApplied {
		t.Error("Next should cycle Not Applied → Applied → Selected → Rejected → Not Applied")
	}
}

func TestGetDefaultsToNotApplied(t *testing.T) {
	tr, _, _ := newTracker(t)
	if got := tr.Get(999); got != NotApplied {
		t.Errorf("expected Not Applied for unknown id, got %q", got)
	}
}

func TestSetPersistsAndNotifies(t *testing.T) {
	tr, kv, q := newTracker(t)

	if err := tr.Set(1, Applied); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if tr.Get(1) != Applied {
		t.Errorf("expected Applied, got %q", tr.Get(1))
	}

	var persisted Map
	if err := json.Unmarshal([]byte(kv[store.KeyStatusMap]), &persisted); err != nil {
		t.Fatalf("decoding persisted map: %v", err)
	}
	e, ok := persisted[1]
	if !ok || e.Status != Applied {
		t.Errorf("expected persisted Applied entry, got %+v", persisted)
	}
	if !e.Timestamp.Equal(time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected timestamp %v", e.Timestamp)
	}

	got := q.Drain()
	if len(got) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(got))
	}
	if got[0].Message != "Status updated: Applied · Infosys" {
		t.Errorf("unexpected message %q", got[0].Message)
	}
}

func TestSetNotAppliedDeletesEntry(t *testing.T) {
	tr, kv, q := newTracker(t)

	tr.Set(2, Selected)
	if err := tr.Set(2, NotApplied); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok := tr.Entry(2); ok {
		t.Error("expected entry deleted on Not Applied")
	}
	if kv[store.KeyStatusMap] != "{}" {
		t.Errorf("expected empty persisted map, got %s", kv[store.KeyStatusMap])
	}
	msgs := q.Drain()
	if msgs[len(msgs)-1].Message != "Status updated: Not Applied · Wipro" {
		t.Errorf("unexpected message %q", msgs[len(msgs)-1].Message)
	}
}

func TestMessageWithoutCompany(t *testing.T) {
	kv := store.Memory{}
	q := &notify.Queue{}
	tr := NewTracker(kv, q, nil)
	tr.Set(5, Rejected)
	if got := q.Drain()[0].Message; got != "Status updated: Rejected" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestReloadFromStore(t *testing.T) {
	tr, kv, _ := newTracker(t)
	tr.Set(3, Applied)
	tr.Set(4, Rejected)

	reloaded := NewTracker(kv, nil, nil)
	if reloaded.Get(3) != Applied || reloaded.Get(4) != Rejected {
		t.Errorf("statuses lost on reload: %+v", reloaded.Snapshot())
	}
}

func TestCorruptMapFallsBackToEmpty(t *testing.T) {
	kv := store.Memory{store.KeyStatusMap: "[not a map"}
	tr := NewTracker(kv, nil, nil)
	if len(tr.Snapshot()) != 0 {
		t.Errorf("expected empty map, got %+v", tr.Snapshot())
	}
}

func TestLoadDropsUnknownAndDefaultEntries(t *testing.T) {
	kv := store.Memory{store.KeyStatusMap: `{"1":{"status":"Applied"},"2":{"status":"Ghosted"},"3":{"status":"Not Applied"}}`}
	tr := NewTracker(kv, nil, nil)
	snap := tr.Snapshot()
	if len(snap) != 1 || snap.Get(1) != Applied {
		t.Errorf("expected only entry 1, got %+v", snap)
	}
}

func TestCounts(t *testing.T) {
	m := Map{1: {Status: Applied}, 2: {Status: Applied}, 3: {Status: Rejected}}
	c := m.Counts([]int{1, 2, 3, 4, 5})
	if c[Applied] != 2 || c[Rejected] != 1 || c[NotApplied] != 2 || c[Selected] != 0 {
		t.Errorf("unexpected counts %v", c)
	}
}

// brokenKV reads from an underlying map but fails every write.
type brokenKV struct {
	store.Memory
}

func (brokenKV) Set(string, string) error { return errors.New("disk full") }
func (brokenKV) Delete(string) error      { return errors.New("disk full") }

func TestSetKeepsStateWhenPersistFails(t *testing.T) {
	kv := brokenKV{Memory: store.Memory{
		store.KeyStatusMap: `{"3":{"status":"Applied","timestamp":"2026-10-01T09:00:00Z"}}`,
	}}
	q := &notify.Queue{}
	tr := NewTracker(kv, q, catalog.Default(10))

	if err := tr.Set(7, Applied); err == nil {
		t.Fatal("expected error from failing store")
	}
	if got := tr.Get(7); got != NotApplied {
		t.Errorf("Get(7) = %q after failed set, want Not Applied", got)
	}
	if err := tr.Set(3, NotApplied); err == nil {
		t.Fatal("expected error reverting with failing store")
	}
	if got := tr.Get(3); got != Applied {
		t.Errorf("Get(3) = %q after failed revert, want Applied", got)
	}
	if n := len(q.Drain()); n != 0 {
		t.Errorf("expected no notifications for failed writes, got %d", n)
	}

	reloaded := NewTracker(kv, nil, nil)
	if reloaded.Get(7) != tr.Get(7) || reloaded.Get(3) != tr.Get(3) {
		t.Error("in-memory state diverged from the persisted map")
	}
}
