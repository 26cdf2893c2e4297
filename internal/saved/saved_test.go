package saved

import (
	"testing"

	"github.com/matheuskafuri/jobtrack/internal/catalog"
	"github.com/matheuskafuri/jobtrack/internal/notify"
	"github.com/matheuskafuri/jobtrack/internal/store"
)

func TestToggle(t *testing.T) {
	kv := store.Memory{}
	q := &notify.Queue{}
	s := New(kv, q)

	on, err := s.Toggle(7)
	if err != nil || !on {
		t.Fatalf("Toggle(7) = %v, %v; want saved", on, err)
	}
	s.Toggle(3)
	if kv[store.KeySavedIDs] != "[7,3]" {
		t.Errorf("unexpected persisted value %s", kv[store.KeySavedIDs])
	}

	on, err = s.Toggle(7)
	if err != nil || on {
		t.Fatalf("second Toggle(7) = %v, %v; want removed", on, err)
	}
	if s.Has(7) || !s.Has(3) || s.Len() != 1 {
		t.Errorf("unexpected ids %v", s.IDs())
	}

	msgs := q.Drain()
	if len(msgs) != 3 || msgs[0].Message != "Job saved" || msgs[2].Message != "Removed from saved" {
		t.Errorf("unexpected notifications %+v", msgs)
	}
}

func TestEmptyPersistsAsArray(t *testing.T) {
	kv := store.Memory{}
	s := New(kv, nil)
	s.Toggle(1)
	s.Toggle(1)
	if kv[store.KeySavedIDs] != "[]" {
		t.Errorf("expected [], got %s", kv[store.KeySavedIDs])
	}
}

func TestReload(t *testing.T) {
	kv := store.Memory{store.KeySavedIDs: "[4,2,4,9]"}
	s := New(kv, nil)
	got := s.IDs()
	if len(got) != 3 || got[0] != 4 || got[1] != 2 || got[2] != 9 {
		t.Errorf("IDs = %v, want [4 2 9]", got)
	}
}

func TestMalformedStartsEmpty(t *testing.T) {
	s := New(store.Memory{store.KeySavedIDs: `"oops"`}, nil)
	if s.Len() != 0 {
		t.Errorf("expected empty set, got %v", s.IDs())
	}
}

func TestPostingsFollowCatalogOrder(t *testing.T) {
	postings := catalog.Generate(20)
	s := New(store.Memory{}, nil)
	s.Toggle(postings[5].ID)
	s.Toggle(postings[1].ID)
	s.Toggle(9999)

	got := s.Postings(postings)
	if len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
	if got[0].ID != postings[1].ID || got[1].ID != postings[5].ID {
		t.Errorf("expected catalog order, got %d then %d", got[0].ID, got[1].ID)
	}
}
