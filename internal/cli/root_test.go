package cli

import (
	"testing"
	"time"
)

func TestResolveDate(t *testing.T) {
	got, err := resolveDate("2026-03-01")
	if err != nil {
		t.Fatalf("resolveDate failed: %v", err)
	}
	if got != "2026-03-01" {
		t.Errorf("resolveDate = %q, want passthrough", got)
	}

	today, err := resolveDate("today")
	if err != nil {
		t.Fatalf("resolveDate(today) failed: %v", err)
	}
	if today != time.Now().Format("2006-01-02") {
		t.Errorf("resolveDate(today) = %q, want local date", today)
	}

	if _, err := resolveDate("03/01/2026"); err == nil {
		t.Error("expected error for slash-separated date")
	}
	if _, err := resolveDate("2026-13-40"); err == nil {
		t.Error("expected error for out-of-range date")
	}
}

func TestParseMissionType(t *testing.T) {
	for _, valid := range []string{"main", "secondary", "bonus"} {
		if _, err := parseMissionType(valid); err != nil {
			t.Errorf("parseMissionType(%q) failed: %v", valid, err)
		}
	}
	if _, err := parseMissionType("side-quest"); err == nil {
		t.Error("expected error for unknown mission type")
	}
}

func TestParseHabitType(t *testing.T) {
	for _, valid := range []string{"positive", "negative"} {
		if _, err := parseHabitType(valid); err != nil {
			t.Errorf("parseHabitType(%q) failed: %v", valid, err)
		}
	}
	if _, err := parseHabitType("neutral"); err == nil {
		t.Error("expected error for unknown habit type")
	}
}

func TestFormatLevel(t *testing.T) {
	if got := formatLevel(0); got != "Level 1 (0/100 XP)" {
		t.Errorf("formatLevel(0) = %q", got)
	}
	if got := formatLevel(150); got != "Level 2 (50/200 XP)" {
		t.Errorf("formatLevel(150) = %q", got)
	}
}
