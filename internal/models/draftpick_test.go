package models

import (
	"errors"
	"strings"
	"testing"
)

func TestNewDraftPickRoundValidation(t *testing.T) {
	for _, round := range []int{1, 2} {
		if _, err := NewDraftPick(2027, round, "Team A", "", nil); err != nil {
			t.Errorf("NewDraftPick(round=%d) error = %v, want nil", round, err)
		}
	}
	for _, round := range []int{0, 3, -1} {
		_, err := NewDraftPick(2027, round, "Team A", "", nil)
		if !errors.Is(err, ErrInvalidRound) {
			t.Errorf("NewDraftPick(round=%d) error = %v, want %v", round, err, ErrInvalidRound)
		}
	}
}

func TestNewDraftPickOriginDefaults(t *testing.T) {
	pick, err := NewDraftPick(2026, 1, "Team A", "", nil)
	if err != nil {
		t.Fatalf("NewDraftPick() error = %v", err)
	}
	if pick.OriginTeam != "Team A" {
		t.Fatalf("OriginTeam = %q, want %q", pick.OriginTeam, "Team A")
	}
	if pick.Traded() {
		t.Fatal("fresh pick reports Traded()")
	}
}

func TestDraftPickReassignKeepsOrigin(t *testing.T) {
	pick, err := NewDraftPick(2026, 1, "Team A", "", nil)
	if err != nil {
		t.Fatalf("NewDraftPick() error = %v", err)
	}

	pick.Reassign("Team B")

	if pick.CurrentTeam != "Team B" {
		t.Errorf("CurrentTeam = %q, want %q", pick.CurrentTeam, "Team B")
	}
	if pick.OriginTeam != "Team A" {
		t.Errorf("OriginTeam = %q, want %q", pick.OriginTeam, "Team A")
	}
	if !pick.Traded() {
		t.Error("reassigned pick does not report Traded()")
	}
}

func TestDraftPickDescribe(t *testing.T) {
	pick, err := NewDraftPick(2027, 2, "Team A", "", map[string]int{"top": 10})
	if err != nil {
		t.Fatalf("NewDraftPick() error = %v", err)
	}

	desc := pick.Describe()
	if strings.Contains(desc, "Traded from") {
		t.Errorf("untraded pick mentions origin: %q", desc)
	}
	if !strings.Contains(desc, "top 10") {
		t.Errorf("Describe() = %q, want protection mention", desc)
	}

	pick.Reassign("Team B")
	desc = pick.Describe()
	if !strings.Contains(desc, "Traded from Team A") {
		t.Errorf("Describe() = %q, want traded-from marker", desc)
	}

	pick.SetProtections(nil)
	if !strings.Contains(pick.Describe(), "No protections") {
		t.Errorf("Describe() = %q, want no-protections marker", pick.Describe())
	}
}
