package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation    = errors.New("model: validation failed")
	ErrInvalidStatus = errors.New("model: invalid chore status")
	ErrDuplicateItem = errors.New("model: duplicate chore index")
)

// Status is the partition an item belongs to. Only Pending and Done are ever
// stored on an item; NotApplicable is derived from the exclusion set.
type Status string

const (
	StatusPending       Status = "Pending"
	StatusDone          Status = "Done"
	StatusNotApplicable Status = "NotApplicable"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusDone, StatusNotApplicable:
		return true
	default:
		return false
	}
}

// Storable reports whether s may be carried on a ChoreItem.
func (s Status) Storable() bool {
	return s == StatusPending || s == StatusDone
}

// StatusFromDone maps a checkbox value to a stored status.
func StatusFromDone(done bool) Status {
	if done {
		return StatusDone
	}
	return StatusPending
}

// wire literals used by the persisted state
const (
	wireDone    = "Yes"
	wirePending = "No"
)

func (s Status) MarshalJSON() ([]byte, error) {
	switch s {
	case StatusDone:
		return json.Marshal(wireDone)
	case StatusPending, "":
		return json.Marshal(wirePending)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch raw {
	case wireDone:
		*s = StatusDone
	case wirePending, "":
		*s = StatusPending
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return nil
}

// CatalogEntry is one canonical chore definition.
type CatalogEntry struct {
	Index int    `json:"index"`
	Title string `json:"title"`
}

type ChoreItem struct {
	Index  int    `json:"index"`
	Title  string `json:"title"`
	Status Status `json:"status"`
	// Custom marks items added by the user rather than loaded from the catalog.
	Custom bool `json:"custom,omitempty"`
}

func (c ChoreItem) Done() bool {
	return c.Status == StatusDone
}

func (c ChoreItem) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("%w: chore %d title is required", ErrValidation, c.Index)
	}
	if !c.Status.Storable() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, c.Status)
	}
	return nil
}

// ChecklistState is the unit persisted per page.
type ChecklistState struct {
	Items    []ChoreItem
	Excluded map[int]bool
}

// NewChecklistState builds a fresh state from catalog entries, all pending.
func NewChecklistState(entries []CatalogEntry) ChecklistState {
	items := make([]ChoreItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, ChoreItem{Index: e.Index, Title: e.Title, Status: StatusPending})
	}
	return ChecklistState{Items: items, Excluded: make(map[int]bool)}
}

// Clone returns a deep copy.
func (s ChecklistState) Clone() ChecklistState {
	out := ChecklistState{
		Items:    append([]ChoreItem(nil), s.Items...),
		Excluded: make(map[int]bool, len(s.Excluded)),
	}
	for idx, on := range s.Excluded {
		if on {
			out.Excluded[idx] = true
		}
	}
	return out
}

// ExcludedIndices returns the exclusion set sorted ascending.
func (s ChecklistState) ExcludedIndices() []int {
	out := make([]int, 0, len(s.Excluded))
	for idx, on := range s.Excluded {
		if on {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// NextIndex is max(existing indices) + 1, or 1 for an empty list.
func (s ChecklistState) NextIndex() int {
	highest := 0
	for _, item := range s.Items {
		if item.Index > highest {
			highest = item.Index
		}
	}
	return highest + 1
}

// Partition reports which view item belongs to. Exclusion wins over status.
func (s ChecklistState) Partition(item ChoreItem) Status {
	if s.Excluded[item.Index] {
		return StatusNotApplicable
	}
	if item.Status == StatusDone {
		return StatusDone
	}
	return StatusPending
}

func (s ChecklistState) Validate() error {
	seen := make(map[int]bool, len(s.Items))
	for _, item := range s.Items {
		if seen[item.Index] {
			return fmt.Errorf("%w: %d", ErrDuplicateItem, item.Index)
		}
		seen[item.Index] = true
		if !item.Status.Storable() {
			return fmt.Errorf("%w: %q", ErrInvalidStatus, item.Status)
		}
	}
	for idx, on := range s.Excluded {
		if on && !seen[idx] {
			return fmt.Errorf("%w: excluded index %d has no item", ErrValidation, idx)
		}
	}
	return nil
}

type stateJSON struct {
	Chores   []ChoreItem `json:"chores"`
	Excluded []int       `json:"excludedReviewItems"`
}

func (s ChecklistState) MarshalJSON() ([]byte, error) {
	chores := s.Items
	if chores == nil {
		chores = []ChoreItem{}
	}
	return json.Marshal(stateJSON{Chores: chores, Excluded: s.ExcludedIndices()})
}

func (s *ChecklistState) UnmarshalJSON(b []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	s.Items = raw.Chores
	s.Excluded = make(map[int]bool, len(raw.Excluded))
	for _, idx := range raw.Excluded {
		s.Excluded[idx] = true
	}
	return nil
}
