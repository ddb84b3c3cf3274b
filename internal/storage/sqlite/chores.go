package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chorecast/chorecast/internal/models"
)

// CreateChore persists a new chore to the database.
func (s *Store) CreateChore(ctx context.Context, chore *models.Chore) error {
	if chore.ID == "" {
		chore.ID = uuid.New().String()
	}
	if chore.CreatedAt == 0 {
		chore.CreatedAt = time.Now().Unix()
	}

	var description interface{} = nil
	if chore.Description != "" {
		description = chore.Description
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chores (id, name, description, frequency, assigned_to, last_done, next_due, completed, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		chore.ID, chore.Name, description, string(chore.Frequency), chore.AssignedTo,
		chore.LastDone, chore.NextDue, boolToInt(chore.Completed), chore.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chore: %w", err)
	}
	return nil
}

// GetChore retrieves a chore by ID.
func (s *Store) GetChore(ctx context.Context, id string) (*models.Chore, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, description, frequency, assigned_to, last_done, next_due, completed, created_at
		 FROM chores WHERE id = ?`,
		id,
	)
	chore, err := scanChore(row)
	if err == sql.ErrNoRows {
		return nil, nil // Chore not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chore: %w", err)
	}
	return chore, nil
}

// ListChores returns all chores ordered by next due time.
func (s *Store) ListChores(ctx context.Context) ([]*models.Chore, error) {
	return s.listChores(ctx,
		`SELECT id, name, description, frequency, assigned_to, last_done, next_due, completed, created_at
		 FROM chores ORDER BY next_due, id`)
}

// ListOverdueChores returns incomplete chores due strictly before the
// given Unix timestamp.
func (s *Store) ListOverdueChores(ctx context.Context, before int64) ([]*models.Chore, error) {
	return s.listChores(ctx,
		`SELECT id, name, description, frequency, assigned_to, last_done, next_due, completed, created_at
		 FROM chores WHERE next_due < ? AND completed = 0 ORDER BY next_due, id`, before)
}

// UpdateChore updates an existing chore.
func (s *Store) UpdateChore(ctx context.Context, chore *models.Chore) error {
	var description interface{} = nil
	if chore.Description != "" {
		description = chore.Description
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE chores SET name = ?, description = ?, frequency = ?, assigned_to = ?,
		 last_done = ?, next_due = ?, completed = ? WHERE id = ?`,
		chore.Name, description, string(chore.Frequency), chore.AssignedTo,
		chore.LastDone, chore.NextDue, boolToInt(chore.Completed), chore.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chore: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check chore update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("chore not found: %s", chore.ID)
	}
	return nil
}

func (s *Store) listChores(ctx context.Context, query string, args ...interface{}) ([]*models.Chore, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chores: %w", err)
	}
	defer rows.Close()

	var chores []*models.Chore
	for rows.Next() {
		chore, err := scanChore(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan chore: %w", err)
		}
		chores = append(chores, chore)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chores: %w", err)
	}
	return chores, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanChore(row scanner) (*models.Chore, error) {
	chore := &models.Chore{}
	var description sql.NullString
	var lastDone sql.NullInt64
	var frequency string
	var completed int

	err := row.Scan(&chore.ID, &chore.Name, &description, &frequency, &chore.AssignedTo,
		&lastDone, &chore.NextDue, &completed, &chore.CreatedAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		chore.Description = description.String
	}
	if lastDone.Valid {
		chore.LastDone = lastDone.Int64
	}
	chore.Frequency = models.Frequency(frequency)
	chore.Completed = completed != 0
	return chore, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
