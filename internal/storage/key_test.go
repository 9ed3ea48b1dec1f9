package storage

import "testing"

func TestStateKeyMatchesEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"https://example.com/a b?x=1&y=2": "checklistState_https%3A%2F%2Fexample.com%2Fa%20b%3Fx%3D1%26y%3D2",
		"plain-page_1.html":               "checklistState_plain-page_1.html",
		"it's (fine)!*~":                  "checklistState_it's%20(fine)!*~",
		"é":                               "checklistState_%C3%A9",
		"":                                "checklistState_",
	}
	for in, want := range cases {
		if got := StateKey(in); got != want {
			t.Fatalf("StateKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageFromKeyReversesStateKey(t *testing.T) {
	page := "https://github.com/org/repo/pull/7?tab=files"
	got, ok := PageFromKey(StateKey(page))
	if !ok || got != page {
		t.Fatalf("PageFromKey = %q, %v; want %q", got, ok, page)
	}
	if _, ok := PageFromKey("other_key"); ok {
		t.Fatal("expected foreign key to be rejected")
	}
}
