package chores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/chorecast/chorecast/internal/ledger"
	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/storage/sqlite"
)

func setupService(t *testing.T, now time.Time) (*Service, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "chores.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, id := range []string{"alice", "bob"} {
		member := &models.Member{ID: id, Name: id, Email: id + "@example.com"}
		if err := store.CreateMember(ctx, member); err != nil {
			t.Fatalf("failed to create member: %v", err)
		}
	}

	svc := NewService(store)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestCreateComputesNextDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		frequency models.Frequency
		wantDays  int
	}{
		{frequency: models.FrequencyDaily, wantDays: 1},
		{frequency: models.FrequencyWeekly, wantDays: 7},
		{frequency: models.FrequencyMonthly, wantDays: 30},
		{frequency: models.FrequencyCustom, wantDays: 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.frequency), func(t *testing.T) {
			svc, _ := setupService(t, now)
			chore, err := svc.Create(context.Background(), CreateInput{
				Name:       "Dishes",
				Frequency:  tt.frequency,
				AssignedTo: "alice",
			})
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}

			want := now.AddDate(0, 0, tt.wantDays).Unix()
			if chore.NextDue != want {
				t.Errorf("NextDue = %d, want %d", chore.NextDue, want)
			}
			if chore.LastDone != now.Unix() {
				t.Errorf("LastDone = %d, want %d", chore.LastDone, now.Unix())
			}
			if chore.Completed {
				t.Error("new chore should not be completed")
			}
		})
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupService(t, time.Now())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Frequency: models.FrequencyDaily, AssignedTo: "alice"})
	if !errors.Is(err, ErrInvalidChore) {
		t.Errorf("missing name: error = %v, want ErrInvalidChore", err)
	}

	_, err = svc.Create(ctx, CreateInput{Name: "Dishes", Frequency: "HOURLY", AssignedTo: "alice"})
	if !errors.Is(err, ErrInvalidChore) {
		t.Errorf("bad frequency: error = %v, want ErrInvalidChore", err)
	}

	_, err = svc.Create(ctx, CreateInput{Name: "Dishes", Frequency: models.FrequencyDaily, AssignedTo: "mallory"})
	if !errors.Is(err, ledger.ErrUnknownMember) {
		t.Errorf("unknown assignee: error = %v, want ErrUnknownMember", err)
	}
}

func TestCompleteRollsCycle(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := setupService(t, now)
	ctx := context.Background()

	chore, err := svc.Create(ctx, CreateInput{
		Name:       "Vacuum",
		Frequency:  models.FrequencyWeekly,
		AssignedTo: "bob",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	later := now.AddDate(0, 0, 10)
	svc.now = func() time.Time { return later }

	done, err := svc.Complete(ctx, chore.ID)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if !done.Completed {
		t.Error("chore should be completed")
	}
	if done.LastDone != later.Unix() {
		t.Errorf("LastDone = %d, want %d", done.LastDone, later.Unix())
	}
	if want := later.AddDate(0, 0, 7).Unix(); done.NextDue != want {
		t.Errorf("NextDue = %d, want %d", done.NextDue, want)
	}

	if _, err := svc.Complete(ctx, "nope"); !errors.Is(err, ErrChoreNotFound) {
		t.Errorf("Complete(nope): error = %v, want ErrChoreNotFound", err)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := setupService(t, now)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateInput{Name: "Dishes", Frequency: models.FrequencyDaily, AssignedTo: "alice"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Nothing due yet.
	overdue, err := svc.Overdue(ctx)
	if err != nil {
		t.Fatalf("Overdue failed: %v", err)
	}
	if len(overdue) != 0 {
		t.Errorf("expected no overdue chores, got %d", len(overdue))
	}

	// Two days later the daily chore is overdue.
	svc.now = func() time.Time { return now.AddDate(0, 0, 2) }
	overdue, err = svc.Overdue(ctx)
	if err != nil {
		t.Fatalf("Overdue failed: %v", err)
	}
	if len(overdue) != 1 {
		t.Errorf("expected 1 overdue chore, got %d", len(overdue))
	}
}

func TestResetRecurring(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := setupService(t, now)
	ctx := context.Background()

	chore, err := svc.Create(ctx, CreateInput{Name: "Laundry", Frequency: models.FrequencyWeekly, AssignedTo: "alice"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Complete(ctx, chore.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	// Before the next cycle is due, nothing resets.
	reset, err := svc.ResetRecurring(ctx)
	if err != nil {
		t.Fatalf("ResetRecurring failed: %v", err)
	}
	if reset != 0 {
		t.Errorf("reset = %d, want 0", reset)
	}

	// After the due date passes, the chore reopens.
	svc.now = func() time.Time { return now.AddDate(0, 0, 8) }
	reset, err = svc.ResetRecurring(ctx)
	if err != nil {
		t.Fatalf("ResetRecurring failed: %v", err)
	}
	if reset != 1 {
		t.Errorf("reset = %d, want 1", reset)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].Completed {
		t.Errorf("chore should be reopened, got %+v", list)
	}
}
