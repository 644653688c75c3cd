package store

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	return Open(path, zap.NewNop().Sugar()), path
}

func TestOpenMissingFile(t *testing.T) {
	s, _ := openTestStore(t)
	if got := len(s.IDs()); got != 0 {
		t.Errorf("expected empty store, got %d users", got)
	}
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte("42: [unclosed\n\t???"), 0644); err != nil {
		t.Fatalf("writing corrupt file: %v", err)
	}
	s := Open(path, zap.NewNop().Sugar())
	if got := len(s.IDs()); got != 0 {
		t.Errorf("corrupt file should yield empty store, got %d users", got)
	}
}

func TestEnsureDefaults(t *testing.T) {
	s, _ := openTestStore(t)
	u := s.Ensure("42")

	if u.Day != 1 {
		t.Errorf("day: got %d, want 1", u.Day)
	}
	if !u.NudgesEnabled {
		t.Error("nudges should default to enabled")
	}
	if u.Awaiting != AwaitingNone {
		t.Errorf("awaiting: got %q, want none", u.Awaiting)
	}
	if len(u.Progress) != len(AllFocuses) {
		t.Fatalf("progress keys: got %d, want %d", len(u.Progress), len(AllFocuses))
	}
	for _, f := range AllFocuses {
		if u.Progress[f] != 0 {
			t.Errorf("progress[%s]: got %d, want 0", f, u.Progress[f])
		}
	}
}

func TestUpdatePersistsAcrossReopen(t *testing.T) {
	s, path := openTestStore(t)
	s.Update("42", func(u *UserRecord) {
		u.Focus = FocusSleep
		u.StreakCount = 4
		u.Profile[ProfileSleep] = "Сложно заснуть"
	})

	reopened := Open(path, zap.NewNop().Sugar())
	u, ok := reopened.Get("42")
	if !ok {
		t.Fatal("record missing after reopen")
	}
	if u.Focus != FocusSleep {
		t.Errorf("focus: got %q, want %q", u.Focus, FocusSleep)
	}
	if u.StreakCount != 4 {
		t.Errorf("streak: got %d, want 4", u.StreakCount)
	}
	if u.Profile[ProfileSleep] != "Сложно заснуть" {
		t.Errorf("profile.sleep: got %q", u.Profile[ProfileSleep])
	}
}

func TestOpenBackfillsPartialRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	doc := "\"42\":\n  focus: sleep\n  day: 2\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing partial doc: %v", err)
	}

	s := Open(path, zap.NewNop().Sugar())
	u, ok := s.Get("42")
	if !ok {
		t.Fatal("hand-edited record not loaded")
	}
	if u.Focus != FocusSleep || u.Day != 2 {
		t.Errorf("kept fields: got focus=%q day=%d", u.Focus, u.Day)
	}
	if u.Profile == nil || u.Progress == nil {
		t.Error("missing maps should be backfilled")
	}
	if u.Progress[FocusSleep] != 0 {
		t.Errorf("progress.sleep: got %d, want 0", u.Progress[FocusSleep])
	}
}

func TestOpenClampsOutOfRangeValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	doc := "\"42\":\n  focus: sleep\n  day: 9\n  progress:\n    sleep: 99\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("writing doc: %v", err)
	}

	s := Open(path, zap.NewNop().Sugar())
	u, _ := s.Get("42")
	if u.Day != MaxDay {
		t.Errorf("day: got %d, want %d", u.Day, MaxDay)
	}
	if u.Progress[FocusSleep] != MaxProgress {
		t.Errorf("progress.sleep: got %d, want %d", u.Progress[FocusSleep], MaxProgress)
	}
}

func TestOpenToleratesNullRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte("\"42\":\n"), 0644); err != nil {
		t.Fatalf("writing doc: %v", err)
	}
	s := Open(path, zap.NewNop().Sugar())
	u, ok := s.Get("42")
	if !ok {
		t.Fatal("null record should be reinitialized, not dropped")
	}
	if u.Day != 1 || !u.NudgesEnabled {
		t.Errorf("null record not at defaults: %+v", u)
	}
}

func TestResetReinitializes(t *testing.T) {
	s, _ := openTestStore(t)
	s.Update("42", func(u *UserRecord) {
		u.Gender = GenderFemale
		u.Focus = FocusEnergy
		u.StreakCount = 7
	})

	u := s.Reset("42")
	if u.Gender != GenderUnset || u.Focus != FocusNone || u.StreakCount != 0 {
		t.Errorf("reset record not at defaults: %+v", u)
	}
	if u.Day != 1 || !u.NudgesEnabled {
		t.Errorf("reset defaults: day=%d nudges=%v", u.Day, u.NudgesEnabled)
	}
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	s, _ := openTestStore(t)
	s.Ensure("42")

	u, _ := s.Get("42")
	u.Progress[FocusSleep] = 9
	u.Profile["sleep"] = "mutated"

	fresh, _ := s.Get("42")
	if fresh.Progress[FocusSleep] != 0 {
		t.Error("mutating a returned copy must not affect the stored record")
	}
	if _, ok := fresh.Profile["sleep"]; ok {
		t.Error("mutating a returned profile must not affect the stored record")
	}
}
