package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// JSONFileStore keeps every key in a single human-readable JSON object.
// Writes go to a temp file and are renamed into place.
type JSONFileStore struct {
	mu   sync.Mutex
	path string
}

func NewJSONFileStore(path string) (*JSONFileStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: empty json store path")
	}
	return &JSONFileStore{path: trimmed}, nil
}

func (s *JSONFileStore) Path() string { return s.path }

func (s *JSONFileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	raw, ok := docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(raw), nil
}

func (s *JSONFileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !json.Valid(value) {
		return fmt.Errorf("storage: value for %s is not valid json", key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.readAll()
	if err != nil {
		return err
	}
	docs[key] = json.RawMessage(append([]byte(nil), value...))
	return s.writeAll(docs)
}

func (s *JSONFileStore) Close() error { return nil }

func (s *JSONFileStore) readAll() (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return out, nil
}

func (s *JSONFileStore) writeAll(docs map[string]json.RawMessage) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (s *JSONFileStore) Keys(ctx context.Context, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := s.readAll()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(docs))
	for k := range docs {
		out = append(out, k)
	}
	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
