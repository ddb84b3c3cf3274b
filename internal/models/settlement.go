package models

import "github.com/chorecast/chorecast/internal/money"

// Settlement records a pair-level clearing of debt: every unsettled
// expense between the two members was marked settled in one atomic step.
// Settlements are the durable audit trail of clearings; the Debt view
// itself is recomputed, not stored.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string `json:"id"`

	// FromID is the debtor who settled up.
	FromID string `json:"from_id"`

	// ToID is the creditor who was paid.
	ToID string `json:"to_id"`

	// Amount is the net debt that was outstanding from FromID to ToID
	// at the moment of settlement.
	Amount money.Money `json:"amount"`

	// ExpenseIDs are the expenses marked settled by this settlement.
	ExpenseIDs []string `json:"expense_ids"`

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64 `json:"created_at"`

	// Note is an optional description, e.g. "paid via bank transfer".
	Note string `json:"note,omitempty"`
}
