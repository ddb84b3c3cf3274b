package ledger

import "errors"

// Validation errors returned by ledger operations. All are detected before
// any mutation, so ledger state is untouched whenever one is returned.
// Callers inspect them with errors.Is.
var (
	// ErrEmptyParticipants is returned for an expense with no participants.
	ErrEmptyParticipants = errors.New("expense has no participants")

	// ErrUnknownMember is returned when a payer, participant, debtor or
	// creditor id does not name a registered member.
	ErrUnknownMember = errors.New("unknown member")

	// ErrNoOutstandingDebt is returned by Settle when the debtor owes the
	// creditor nothing. Settling twice is an error, not a silent success;
	// callers that want idempotency treat it as benign.
	ErrNoOutstandingDebt = errors.New("no outstanding debt between members")
)
