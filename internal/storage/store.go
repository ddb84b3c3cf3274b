// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/chorecast/chorecast/internal/models"
)

// Store defines the interface for ledger persistence. The abstraction
// allows swapping storage backends (SQLite, PostgreSQL, etc.) without
// changing the ledger or service layers. Implementations must be safe for
// concurrent use; mutation ordering is enforced above this layer by the
// ledger's writer lock.
type Store interface {
	// CreateMember persists a new member, assigning ID and CreatedAt
	// when unset.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID. Returns (nil, nil) when the
	// member does not exist.
	GetMember(ctx context.Context, id string) (*models.Member, error)

	// MembersByIDs retrieves multiple members keyed by ID. Members that
	// do not exist are omitted from the result.
	MembersByIDs(ctx context.Context, ids []string) (map[string]*models.Member, error)

	// ListMembers returns all members ordered by name.
	ListMembers(ctx context.Context) ([]*models.Member, error)

	// CreateExpense persists a new expense and its participant set,
	// assigning ID and CreatedAt when unset.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID. Returns (nil, nil) when the
	// expense does not exist.
	GetExpense(ctx context.Context, id string) (*models.Expense, error)

	// ListExpenses returns all expenses, newest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListUnsettledExpenses returns expenses with settled = false,
	// oldest first.
	ListUnsettledExpenses(ctx context.Context) ([]*models.Expense, error)

	// ApplySettlement atomically marks the given expenses settled and
	// records the settlement. Either everything is applied or nothing is.
	ApplySettlement(ctx context.Context, settlement *models.Settlement, expenseIDs []string) error

	// ListSettlements returns all settlements, newest first.
	ListSettlements(ctx context.Context) ([]*models.Settlement, error)

	// CreateChore persists a new chore, assigning ID and CreatedAt when
	// unset.
	CreateChore(ctx context.Context, chore *models.Chore) error

	// GetChore retrieves a chore by ID. Returns (nil, nil) when the
	// chore does not exist.
	GetChore(ctx context.Context, id string) (*models.Chore, error)

	// ListChores returns all chores ordered by next due time.
	ListChores(ctx context.Context) ([]*models.Chore, error)

	// ListOverdueChores returns incomplete chores due strictly before
	// the given Unix timestamp.
	ListOverdueChores(ctx context.Context, before int64) ([]*models.Chore, error)

	// UpdateChore updates an existing chore.
	UpdateChore(ctx context.Context, chore *models.Chore) error

	// Close releases any resources held by the store.
	Close() error
}
