package models

import "github.com/chorecast/chorecast/internal/money"

// Expense represents a payment made by one member on behalf of a set of
// participants. Once settled, an expense is immutable; it is never deleted.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is a human-readable label, e.g. "Groceries".
	Description string `json:"description"`

	// Amount is the total paid. Always strictly positive.
	Amount money.Money `json:"amount"`

	// Participants are the members splitting this expense. Never empty.
	// The payer does not have to be listed; when they are, their own
	// share is simply retained rather than owed.
	Participants []string `json:"participants"`

	// PayerID is the member who paid.
	PayerID string `json:"payer_id"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"created_at"`

	// Settled reports whether this expense has been cleared by a
	// settlement. Transitions false -> true exactly once, never back.
	Settled bool `json:"settled"`
}

// Obligation is one participant's computed share of an expense, owed to
// the payer. Obligations are derived from an Expense on demand and never
// stored.
type Obligation struct {
	// ParticipantID is the member who owes this share.
	ParticipantID string `json:"participant_id"`

	// Amount is the share owed to the payer.
	Amount money.Money `json:"amount"`
}

// Debt is the net directed amount one member owes another after folding
// all unsettled expenses between them. For any unordered member pair at
// most one direction carries a nonzero amount. Debts are a pure view:
// recomputed whenever the unsettled expense set changes, never mutated
// independently.
type Debt struct {
	// FromID is the member who owes.
	FromID string `json:"from_id"`

	// ToID is the member who is owed.
	ToID string `json:"to_id"`

	// Amount is the net amount owed. Always positive; a zero net pair
	// produces no Debt at all.
	Amount money.Money `json:"amount"`
}
