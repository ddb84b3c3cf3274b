// Package ledger implements the expense-splitting and debt-netting core:
// recording expenses, deriving per-participant obligations, folding them
// into net pairwise debts, and settling a pair's debt at most once.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
	"github.com/chorecast/chorecast/internal/storage"
)

// Ledger is the single shared mutable resource of the core. All mutations
// (RecordExpense, Settle) run under an exclusive lock: validate, persist,
// recompute the debt snapshot, return. Readers share a read lock, so a
// query never observes a partially written expense set.
type Ledger struct {
	mu    sync.RWMutex
	store storage.Store

	// debts is the snapshot recomputed after every completed mutation.
	debts []models.Debt
}

// ExpenseInput carries the caller-supplied fields of a new expense.
type ExpenseInput struct {
	Description  string
	Amount       money.Money
	PayerID      string
	Participants []string
}

// New creates a Ledger over the given store and computes the initial debt
// snapshot from the persisted unsettled expenses.
func New(ctx context.Context, store storage.Store) (*Ledger, error) {
	l := &Ledger{store: store}
	if err := l.recomputeLocked(ctx); err != nil {
		return nil, fmt.Errorf("failed to compute initial debts: %w", err)
	}
	return l, nil
}

// RecordExpense validates and persists a new expense, then recomputes all
// debts. The returned debt set reflects the new expense, so callers never
// need a separate re-fetch. On any error the ledger is untouched.
func (l *Ledger) RecordExpense(ctx context.Context, input ExpenseInput) (*models.Expense, []models.Debt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	participants, err := l.validateExpense(ctx, input)
	if err != nil {
		return nil, nil, err
	}

	expense := &models.Expense{
		Description:  input.Description,
		Amount:       input.Amount,
		PayerID:      input.PayerID,
		Participants: participants,
	}
	if err := l.store.CreateExpense(ctx, expense); err != nil {
		return nil, nil, fmt.Errorf("failed to persist expense: %w", err)
	}

	if err := l.recomputeLocked(ctx); err != nil {
		return nil, nil, err
	}

	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"payer_id", expense.PayerID,
		"amount", expense.Amount,
		"participants", len(expense.Participants),
	)
	return expense, slices.Clone(l.debts), nil
}

// SplitPreview computes the obligations an expense would create without
// persisting anything. The same validation as RecordExpense applies.
func (l *Ledger) SplitPreview(ctx context.Context, input ExpenseInput) ([]models.Obligation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	participants, err := l.validateExpense(ctx, input)
	if err != nil {
		return nil, err
	}
	return Split(&models.Expense{
		Amount:       input.Amount,
		PayerID:      input.PayerID,
		Participants: participants,
	})
}

// Settle clears the net debt from debtor to creditor. Every unsettled
// expense in which one of the two is payer and the other a participant is
// marked settled in a single transaction, together with a settlement audit
// record; expenses settle whole, so a multi-party expense swept up here
// also clears its other participants' shares. Afterwards the pair's net
// debt is exactly zero.
//
// Fails with ErrNoOutstandingDebt when the debtor owes the creditor
// nothing; no settled flag is touched on any failure.
func (l *Ledger) Settle(ctx context.Context, debtorID, creditorID string, note string) (*models.Settlement, []models.Debt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireMembers(ctx, []string{debtorID, creditorID}); err != nil {
		return nil, nil, err
	}

	var outstanding money.Money
	for _, d := range l.debts {
		if d.FromID == debtorID && d.ToID == creditorID {
			outstanding = d.Amount
			break
		}
	}
	if outstanding.IsZero() {
		return nil, nil, fmt.Errorf("%w: %s does not owe %s", ErrNoOutstandingDebt, debtorID, creditorID)
	}

	unsettled, err := l.store.ListUnsettledExpenses(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load unsettled expenses: %w", err)
	}

	var expenseIDs []string
	for _, expense := range unsettled {
		if expenseInvolvesPair(expense, debtorID, creditorID) {
			expenseIDs = append(expenseIDs, expense.ID)
		}
	}

	settlement := &models.Settlement{
		FromID: debtorID,
		ToID:   creditorID,
		Amount: outstanding,
		Note:   note,
	}
	if err := l.store.ApplySettlement(ctx, settlement, expenseIDs); err != nil {
		return nil, nil, fmt.Errorf("failed to apply settlement: %w", err)
	}

	if err := l.recomputeLocked(ctx); err != nil {
		return nil, nil, err
	}

	slog.Info("Debt settled",
		"settlement_id", settlement.ID,
		"from_id", debtorID,
		"to_id", creditorID,
		"amount", outstanding,
		"expenses_cleared", len(expenseIDs),
	)
	return settlement, slices.Clone(l.debts), nil
}

// Debts returns the current debt set, one directed entry per member pair
// with a nonzero net, reflecting the most recent completed mutation.
func (l *Ledger) Debts() []models.Debt {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.debts)
}

// DebtsInvolving returns the debts in which the member appears as debtor
// or creditor.
func (l *Ledger) DebtsInvolving(memberID string) []models.Debt {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var debts []models.Debt
	for _, d := range l.debts {
		if d.FromID == memberID || d.ToID == memberID {
			debts = append(debts, d)
		}
	}
	return debts
}

// ListExpenses returns all recorded expenses, newest first.
func (l *Ledger) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListExpenses(ctx)
}

// ListSettlements returns all settlement audit records, newest first.
func (l *Ledger) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.ListSettlements(ctx)
}

// validateExpense checks the input before any mutation and returns the
// normalized (sorted, de-duplicated) participant set.
func (l *Ledger) validateExpense(ctx context.Context, input ExpenseInput) ([]string, error) {
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: expense amount must be positive, got %s", money.ErrInvalidAmount, input.Amount)
	}

	participants := slices.Clone(input.Participants)
	slices.Sort(participants)
	participants = slices.Compact(participants)
	if len(participants) == 0 {
		return nil, ErrEmptyParticipants
	}

	ids := append(slices.Clone(participants), input.PayerID)
	if err := l.requireMembers(ctx, ids); err != nil {
		return nil, err
	}
	return participants, nil
}

// requireMembers fails with ErrUnknownMember unless every id names a
// registered member.
func (l *Ledger) requireMembers(ctx context.Context, ids []string) error {
	members, err := l.store.MembersByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to look up members: %w", err)
	}
	for _, id := range ids {
		if _, ok := members[id]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMember, id)
		}
	}
	return nil
}

// recomputeLocked rebuilds the debt snapshot from the store. Callers must
// hold the write lock (or be the only reference, as in New).
func (l *Ledger) recomputeLocked(ctx context.Context) error {
	unsettled, err := l.store.ListUnsettledExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load unsettled expenses: %w", err)
	}
	debts, err := ComputeDebts(unsettled)
	if err != nil {
		return fmt.Errorf("failed to compute debts: %w", err)
	}
	l.debts = debts
	return nil
}

// expenseInvolvesPair reports whether one of the two members paid the
// expense and the other participates in it.
func expenseInvolvesPair(expense *models.Expense, a, b string) bool {
	switch expense.PayerID {
	case a:
		return slices.Contains(expense.Participants, b)
	case b:
		return slices.Contains(expense.Participants, a)
	}
	return false
}
