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

// ApplySettlement marks the given expenses settled and records the
// settlement in a single transaction. The settled flag only ever moves
// from 0 to 1.
func (s *Store) ApplySettlement(ctx context.Context, settlement *models.Settlement, expenseIDs []string) error {
	if settlement.ID == "" {
		settlement.ID = uuid.New().String()
	}
	if settlement.CreatedAt == 0 {
		settlement.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, expenseID := range expenseIDs {
		_, err := tx.ExecContext(ctx,
			"UPDATE expenses SET settled = 1 WHERE id = ? AND settled = 0",
			expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to settle expense %s: %w", expenseID, err)
		}
	}

	var note interface{} = nil
	if settlement.Note != "" {
		note = settlement.Note
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO settlements (id, from_member_id, to_member_id, amount, created_at, note)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		settlement.ID, settlement.FromID, settlement.ToID,
		settlement.Amount.MinorUnits(), settlement.CreatedAt, note,
	)
	if err != nil {
		return fmt.Errorf("failed to insert settlement: %w", err)
	}

	for _, expenseID := range expenseIDs {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO settlement_expenses (settlement_id, expense_id) VALUES (?, ?)",
			settlement.ID, expenseID,
		)
		if err != nil {
			return fmt.Errorf("failed to link settlement expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	settlement.ExpenseIDs = append([]string(nil), expenseIDs...)
	return nil
}

// ListSettlements retrieves all settlements, newest first.
func (s *Store) ListSettlements(ctx context.Context) ([]*models.Settlement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, from_member_id, to_member_id, amount, created_at, note
		 FROM settlements ORDER BY created_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []*models.Settlement
	for rows.Next() {
		settlement := &models.Settlement{}
		var amount int64
		var note sql.NullString

		if err := rows.Scan(&settlement.ID, &settlement.FromID, &settlement.ToID,
			&amount, &settlement.CreatedAt, &note); err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlement.Amount = money.Money(amount)
		if note.Valid {
			settlement.Note = note.String
		}
		settlements = append(settlements, settlement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}

	for _, settlement := range settlements {
		if err := s.loadSettlementExpenses(ctx, settlement); err != nil {
			return nil, err
		}
	}
	return settlements, nil
}

func (s *Store) loadSettlementExpenses(ctx context.Context, settlement *models.Settlement) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_id FROM settlement_expenses WHERE settlement_id = ? ORDER BY expense_id",
		settlement.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get settlement expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var expenseID string
		if err := rows.Scan(&expenseID); err != nil {
			return fmt.Errorf("failed to scan settlement expense: %w", err)
		}
		settlement.ExpenseIDs = append(settlement.ExpenseIDs, expenseID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate settlement expenses: %w", err)
	}
	return nil
}
