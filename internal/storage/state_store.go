package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sandeepkv93/prchecklist/internal/model"
)

// StateStore persists checklist state per page on top of a Store.
type StateStore struct {
	store Store
}

func NewStateStore(store Store) (*StateStore, error) {
	if store == nil {
		return nil, errors.New("storage: nil store")
	}
	return &StateStore{store: store}, nil
}

// Load returns the saved state for pageURL. ok is false when the page has
// never been saved.
func (s *StateStore) Load(ctx context.Context, pageURL string) (state model.ChecklistState, ok bool, err error) {
	key := StateKey(pageURL)
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.ChecklistState{}, false, nil
		}
		return model.ChecklistState{}, false, &PersistenceError{Op: "get", Key: key, Err: err}
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.ChecklistState{}, false, &PersistenceError{Op: "decode", Key: key, Err: err}
	}
	if state.Excluded == nil {
		state.Excluded = make(map[int]bool)
	}
	return state, true, nil
}

func (s *StateStore) Save(ctx context.Context, pageURL string, state model.ChecklistState) error {
	key := StateKey(pageURL)
	if err := state.Validate(); err != nil {
		return &PersistenceError{Op: "validate", Key: key, Err: err}
	}
	payload, err := json.Marshal(state)
	if err != nil {
		return &PersistenceError{Op: "encode", Key: key, Err: fmt.Errorf("json marshal: %w", err)}
	}
	if err := s.store.Set(ctx, key, payload); err != nil {
		return &PersistenceError{Op: "set", Key: key, Err: err}
	}
	return nil
}
