package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
)

// LoadJSON decodes the value under key into v, which must be a non-nil
// pointer. It reports false, leaving v untouched, when the key is missing,
// unreadable or holds malformed JSON. Malformed state is never an error for
// callers: they fall back to defaults.
func LoadJSON(kv KV, key string, v any) bool {
	raw, ok, err := kv.Get(key)
	if err != nil {
		slog.Warn("store read failed, using default", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	// Decode into a scratch value so a failed decode cannot half-fill v.
	target := reflect.ValueOf(v).Elem()
	scratch := reflect.New(target.Type())
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		slog.Warn("malformed persisted value, using default", "key", key, "err", err)
		return false
	}
	target.Set(scratch.Elem())
	return true
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Set(key, string(data))
}

// Memory is an in-process KV used where no database file is wanted.
type Memory map[string]string

func (m Memory) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m Memory) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m Memory) Delete(key string) error {
	delete(m, key)
	return nil
}
