package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
)

// CreateExpense persists a new expense and its participant set.
func (s *Store) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO expenses (id, description, amount, payer_id, created_at, settled) VALUES (?, ?, ?, ?, ?, 0)",
		expense.ID, expense.Description, expense.Amount.MinorUnits(), expense.PayerID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, memberID := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, member_id) VALUES (?, ?)",
			expense.ID, memberID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *Store) GetExpense(ctx context.Context, id string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount int64
	var settled int
	err := s.db.QueryRowContext(ctx,
		"SELECT id, description, amount, payer_id, created_at, settled FROM expenses WHERE id = ?",
		id,
	).Scan(&expense.ID, &expense.Description, &amount, &expense.PayerID, &expense.CreatedAt, &settled)
	if err == sql.ErrNoRows {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.Amount = money.Money(amount)
	expense.Settled = settled != 0

	if err := s.loadParticipants(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses returns all expenses, newest first.
func (s *Store) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT id, description, amount, payer_id, created_at, settled FROM expenses ORDER BY created_at DESC, id")
}

// ListUnsettledExpenses returns expenses that have not been settled,
// oldest first.
func (s *Store) ListUnsettledExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		"SELECT id, description, amount, payer_id, created_at, settled FROM expenses WHERE settled = 0 ORDER BY created_at, id")
}

func (s *Store) listExpenses(ctx context.Context, query string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var amount int64
		var settled int
		if err := rows.Scan(&expense.ID, &expense.Description, &amount, &expense.PayerID, &expense.CreatedAt, &settled); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount = money.Money(amount)
		expense.Settled = settled != 0
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range expenses {
		if err := s.loadParticipants(ctx, expense); err != nil {
			return nil, err
		}
	}
	return expenses, nil
}

func (s *Store) loadParticipants(ctx context.Context, expense *models.Expense) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id FROM expense_participants WHERE expense_id = ? ORDER BY member_id",
		expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var memberID string
		if err := rows.Scan(&memberID); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		expense.Participants = append(expense.Participants, memberID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}
