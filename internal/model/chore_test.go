package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestChecklistStateJSONWireFormat(t *testing.T) {
	state := ChecklistState{
		Items: []ChoreItem{
			{Index: 1, Title: "Wash dishes", Status: StatusDone},
			{Index: 2, Title: "Take out trash", Status: StatusPending},
			{Index: 3, Title: "Review tests", Status: StatusPending, Custom: true},
		},
		Excluded: map[int]bool{3: true, 2: true},
	}
	raw, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"chores":[{"index":1,"title":"Wash dishes","status":"Yes"},{"index":2,"title":"Take out trash","status":"No"},{"index":3,"title":"Review tests","status":"No","custom":true}],"excludedReviewItems":[2,3]}`
	if string(raw) != want {
		t.Fatalf("unexpected wire format:\n got %s\nwant %s", raw, want)
	}

	var decoded ChecklistState
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Items) != 3 || !decoded.Items[0].Done() || !decoded.Items[2].Custom {
		t.Fatalf("unexpected decoded items: %#v", decoded.Items)
	}
	if !decoded.Excluded[2] || !decoded.Excluded[3] || decoded.Excluded[1] {
		t.Fatalf("unexpected decoded exclusions: %#v", decoded.Excluded)
	}
}

func TestEmptyStateMarshalsEmptyArrays(t *testing.T) {
	raw, err := json.Marshal(ChecklistState{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `{"chores":[],"excludedReviewItems":[]}` {
		t.Fatalf("unexpected empty state: %s", raw)
	}
}

func TestStatusUnmarshalRejectsUnknownLiteral(t *testing.T) {
	var s Status
	err := json.Unmarshal([]byte(`"NA"`), &s)
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestNotApplicableIsNeverStored(t *testing.T) {
	item := ChoreItem{Index: 1, Title: "x", Status: StatusNotApplicable}
	if err := item.Validate(); err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
	if _, err := json.Marshal(item); err == nil {
		t.Fatal("expected marshal error for NotApplicable status")
	}
}

func TestNextIndex(t *testing.T) {
	if got := (ChecklistState{}).NextIndex(); got != 1 {
		t.Fatalf("empty NextIndex = %d, want 1", got)
	}
	s := ChecklistState{Items: []ChoreItem{{Index: 4}, {Index: 9}, {Index: 2}}}
	if got := s.NextIndex(); got != 10 {
		t.Fatalf("NextIndex = %d, want 10", got)
	}
}

func TestPartitionExclusionWins(t *testing.T) {
	s := ChecklistState{
		Items:    []ChoreItem{{Index: 1, Title: "a", Status: StatusDone}},
		Excluded: map[int]bool{1: true},
	}
	if got := s.Partition(s.Items[0]); got != StatusNotApplicable {
		t.Fatalf("partition = %s, want NotApplicable", got)
	}
	delete(s.Excluded, 1)
	if got := s.Partition(s.Items[0]); got != StatusDone {
		t.Fatalf("partition = %s, want Done", got)
	}
}

func TestChecklistStateValidate(t *testing.T) {
	dup := ChecklistState{Items: []ChoreItem{{Index: 1, Title: "a", Status: StatusPending}, {Index: 1, Title: "b", Status: StatusPending}}}
	if err := dup.Validate(); !errors.Is(err, ErrDuplicateItem) {
		t.Fatalf("expected ErrDuplicateItem, got: %v", err)
	}
	orphan := ChecklistState{
		Items:    []ChoreItem{{Index: 1, Title: "a", Status: StatusPending}},
		Excluded: map[int]bool{7: true},
	}
	if err := orphan.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	orig := ChecklistState{
		Items:    []ChoreItem{{Index: 1, Title: "a", Status: StatusPending}},
		Excluded: map[int]bool{1: true},
	}
	cp := orig.Clone()
	cp.Items[0].Status = StatusDone
	delete(cp.Excluded, 1)
	if orig.Items[0].Status != StatusPending || !orig.Excluded[1] {
		t.Fatalf("clone mutated original: %#v", orig)
	}
}
