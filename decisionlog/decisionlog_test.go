package decisionlog

import "testing"

func TestAppendAndRecent(t *testing.T) {
	l := New(4)

	l.Append(Entry{Subject: "7", Rule: "permission=view_user", Allowed: true})
	l.Append(Entry{Subject: "7", Rule: "module=units action=delete", Allowed: false})

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}

	recent := l.Recent(0)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	// Newest first.
	if recent[0].Rule != "module=units action=delete" {
		t.Fatalf("expected newest entry first, got %q", recent[0].Rule)
	}
	if recent[0].ID.IsNil() {
		t.Fatal("expected assigned entry ID")
	}
	if recent[0].CreatedAt.IsZero() {
		t.Fatal("expected assigned timestamp")
	}
}

func TestRingOverwrite(t *testing.T) {
	l := New(3)
	for i := 0; i < 5; i++ {
		l.Append(Entry{Rule: string(rune('a' + i))})
	}

	if l.Len() != 3 {
		t.Fatalf("expected capacity-bounded length 3, got %d", l.Len())
	}

	recent := l.Recent(0)
	want := []string{"e", "d", "c"}
	for i, rule := range want {
		if recent[i].Rule != rule {
			t.Errorf("recent[%d]: expected %q, got %q", i, rule, recent[i].Rule)
		}
	}
}

func TestRecentLimit(t *testing.T) {
	l := New(8)
	for i := 0; i < 5; i++ {
		l.Append(Entry{Rule: string(rune('a' + i))})
	}

	recent := l.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].Rule != "e" || recent[1].Rule != "d" {
		t.Fatalf("unexpected order: %q, %q", recent[0].Rule, recent[1].Rule)
	}
}
