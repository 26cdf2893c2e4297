// Package notes stores a free-text note per posting.
package notes

import (
	"fmt"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/store"
)

// Book maps posting ids to notes. It is not safe for concurrent use.
type Book struct {
	kv    store.KV
	notes map[int]string
}

func New(kv store.KV) *Book {
	b := &Book{kv: kv, notes: map[int]string{}}
	var raw map[int]string
	if store.LoadJSON(kv, store.KeyNotes, &raw) {
		for id, text := range raw {
			if text = strings.TrimSpace(text); text != "" {
				b.notes[id] = text
			}
		}
	}
	return b
}

// Get returns the note for id, if any.
func (b *Book) Get(id int) (string, bool) {
	text, ok := b.notes[id]
	return text, ok
}

// Set replaces the note for id. Blank text deletes it.
func (b *Book) Set(id int, text string) error {
	text = strings.TrimSpace(text)
	prev, had := b.notes[id]
	if text == "" {
		delete(b.notes, id)
	} else {
		b.notes[id] = text
	}
	if err := store.SaveJSON(b.kv, store.KeyNotes, b.notes); err != nil {
		if had {
			b.notes[id] = prev
		} else {
			delete(b.notes, id)
		}
		return fmt.Errorf("persisting notes: %w", err)
	}
	return nil
}

func (b *Book) Len() int {
	return len(b.notes)
}
