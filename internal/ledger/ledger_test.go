package ledger

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
	"github.com/chorecast/chorecast/internal/storage/sqlite"
)

// setupLedger creates a ledger over a temp sqlite database with the given
// members registered.
func setupLedger(t *testing.T, memberIDs ...string) (*Ledger, *sqlite.Store) {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "ledger-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := context.Background()
	for _, id := range memberIDs {
		member := &models.Member{ID: id, Name: id, Email: id + "@example.com"}
		if err := store.CreateMember(ctx, member); err != nil {
			t.Fatalf("failed to create member %s: %v", id, err)
		}
	}

	l, err := New(ctx, store)
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return l, store
}

func record(t *testing.T, l *Ledger, amount, payer string, participants ...string) *models.Expense {
	t.Helper()
	e, _, err := l.RecordExpense(context.Background(), ExpenseInput{
		Description:  "test expense",
		Amount:       mustParse(t, amount),
		PayerID:      payer,
		Participants: participants,
	})
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}
	return e
}

func TestRecordExpenseUpdatesDebts(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob", "carol")

	_, debts, err := l.RecordExpense(context.Background(), ExpenseInput{
		Description:  "groceries",
		Amount:       mustParse(t, "30.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	})
	if err != nil {
		t.Fatalf("RecordExpense failed: %v", err)
	}

	want := []models.Debt{
		{FromID: "bob", ToID: "alice", Amount: 1000},
		{FromID: "carol", ToID: "alice", Amount: 1000},
	}
	if len(debts) != len(want) {
		t.Fatalf("debts = %+v, want %+v", debts, want)
	}
	for i := range debts {
		if debts[i] != want[i] {
			t.Errorf("debt[%d] = %+v, want %+v", i, debts[i], want[i])
		}
	}

	// The query surface must agree with the mutation's returned set.
	if got := l.Debts(); len(got) != 2 {
		t.Errorf("Debts() returned %d entries, want 2", len(got))
	}
}

func TestRecordExpenseValidation(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob")

	tests := []struct {
		name    string
		input   ExpenseInput
		wantErr error
	}{
		{
			name: "zero amount",
			input: ExpenseInput{
				Amount: 0, PayerID: "alice", Participants: []string{"alice", "bob"},
			},
			wantErr: money.ErrInvalidAmount,
		},
		{
			name: "no participants",
			input: ExpenseInput{
				Amount: 1000, PayerID: "alice",
			},
			wantErr: ErrEmptyParticipants,
		},
		{
			name: "unknown participant",
			input: ExpenseInput{
				Amount: 1000, PayerID: "alice", Participants: []string{"alice", "mallory"},
			},
			wantErr: ErrUnknownMember,
		},
		{
			name: "unknown payer",
			input: ExpenseInput{
				Amount: 1000, PayerID: "mallory", Participants: []string{"alice", "bob"},
			},
			wantErr: ErrUnknownMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := l.RecordExpense(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordExpense error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// Failed records must leave no trace.
	expenses, err := l.ListExpenses(context.Background())
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("expected no expenses after failed records, got %d", len(expenses))
	}
}

func TestSettleClearsPair(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob")
	ctx := context.Background()

	// E1: bob owes alice 10.00. E2: alice owes bob 3.00. Net: bob -> alice 7.00.
	e1 := record(t, l, "20.00", "alice", "alice", "bob")
	e2 := record(t, l, "6.00", "bob", "alice", "bob")

	debts := l.Debts()
	if len(debts) != 1 || debts[0].FromID != "bob" || debts[0].Amount != 700 {
		t.Fatalf("pre-settlement debts = %+v, want bob -> alice 7.00", debts)
	}

	settlement, after, err := l.Settle(ctx, "bob", "alice", "venmo")
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}

	if settlement.Amount != 700 {
		t.Errorf("settlement amount = %s, want 7.00", settlement.Amount)
	}
	if len(settlement.ExpenseIDs) != 2 {
		t.Errorf("settlement cleared %d expenses, want 2", len(settlement.ExpenseIDs))
	}
	if len(after) != 0 {
		t.Errorf("debts after settlement = %+v, want none", after)
	}
	if got := l.DebtsInvolving("bob"); len(got) != 0 {
		t.Errorf("DebtsInvolving(bob) = %+v, want none", got)
	}

	// Both expenses must now be settled.
	expenses, err := l.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	for _, e := range expenses {
		if (e.ID == e1.ID || e.ID == e2.ID) && !e.Settled {
			t.Errorf("expense %s not settled", e.ID)
		}
	}

	// A new expense between the pair starts a fresh debt.
	record(t, l, "8.00", "alice", "alice", "bob")
	debts = l.Debts()
	if len(debts) != 1 || debts[0].Amount != 400 {
		t.Errorf("debts after new expense = %+v, want bob -> alice 4.00", debts)
	}
}

func TestSettleNoOutstandingDebt(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob")
	ctx := context.Background()

	// Nothing recorded at all.
	if _, _, err := l.Settle(ctx, "bob", "alice", ""); !errors.Is(err, ErrNoOutstandingDebt) {
		t.Errorf("Settle on empty ledger: error = %v, want ErrNoOutstandingDebt", err)
	}

	// Debt exists but in the opposite direction.
	record(t, l, "20.00", "alice", "alice", "bob")
	if _, _, err := l.Settle(ctx, "alice", "bob", ""); !errors.Is(err, ErrNoOutstandingDebt) {
		t.Errorf("Settle against direction: error = %v, want ErrNoOutstandingDebt", err)
	}

	// The failed settle must not have touched any settled flag.
	expenses, err := l.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 1 || expenses[0].Settled {
		t.Fatalf("expense state changed by failed settle: %+v", expenses)
	}

	// Settle the real direction, then settling again is an error.
	if _, _, err := l.Settle(ctx, "bob", "alice", ""); err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if _, _, err := l.Settle(ctx, "bob", "alice", ""); !errors.Is(err, ErrNoOutstandingDebt) {
		t.Errorf("second Settle: error = %v, want ErrNoOutstandingDebt", err)
	}
}

func TestSettleUnknownMember(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob")

	if _, _, err := l.Settle(context.Background(), "mallory", "alice", ""); !errors.Is(err, ErrUnknownMember) {
		t.Errorf("Settle error = %v, want ErrUnknownMember", err)
	}
}

func TestSettleSweepsMultiPartyExpense(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob", "carol")
	ctx := context.Background()

	// One three-way expense. Settling the bob/alice pair settles the
	// whole expense, which also clears carol's share.
	record(t, l, "30.00", "alice", "alice", "bob", "carol")

	settlement, after, err := l.Settle(ctx, "bob", "alice", "")
	if err != nil {
		t.Fatalf("Settle failed: %v", err)
	}
	if settlement.Amount != 1000 {
		t.Errorf("settlement amount = %s, want 10.00", settlement.Amount)
	}
	if len(after) != 0 {
		t.Errorf("debts after settlement = %+v, want none (expense settles whole)", after)
	}
}

func TestSplitPreviewDoesNotPersist(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob", "carol")
	ctx := context.Background()

	obligations, err := l.SplitPreview(ctx, ExpenseInput{
		Amount:       mustParse(t, "30.00"),
		PayerID:      "alice",
		Participants: []string{"alice", "bob", "carol"},
	})
	if err != nil {
		t.Fatalf("SplitPreview failed: %v", err)
	}
	if len(obligations) != 2 {
		t.Fatalf("SplitPreview returned %d obligations, want 2", len(obligations))
	}

	if got := l.Debts(); len(got) != 0 {
		t.Errorf("SplitPreview must not create debts, got %+v", got)
	}
	expenses, err := l.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("SplitPreview must not persist expenses, got %d", len(expenses))
	}
}

// Readers and writers may run concurrently; every reader must observe a
// consistent (antisymmetric) snapshot.
func TestConcurrentReadersAndWriters(t *testing.T) {
	l, _ := setupLedger(t, "alice", "bob", "carol")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _, err := l.RecordExpense(ctx, ExpenseInput{
					Description:  "concurrent",
					Amount:       1000,
					PayerID:      "alice",
					Participants: []string{"alice", "bob", "carol"},
				})
				if err != nil {
					t.Errorf("RecordExpense failed: %v", err)
					return
				}
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				seen := make(map[string]bool)
				for _, d := range l.Debts() {
					pair := d.FromID + "|" + d.ToID
					reverse := d.ToID + "|" + d.FromID
					if seen[reverse] {
						t.Errorf("both directions present for pair %s", pair)
						return
					}
					seen[pair] = true
				}
			}
		}()
	}
	wg.Wait()

	// 40 expenses of 10.00 split three ways: alice retains the 3.34
	// share (first in id order), bob and carol owe 3.33 each.
	debts := l.Debts()
	var total money.Money
	for _, d := range debts {
		if d.ToID != "alice" {
			t.Errorf("unexpected creditor in %+v", d)
		}
		total = total.Add(d.Amount)
	}
	if want := money.Money(40 * 666); total != want {
		t.Errorf("total owed = %s, want %s", total, want)
	}
}
