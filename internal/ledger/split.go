package ledger

import (
	"slices"

	"github.com/chorecast/chorecast/internal/models"
)

// Split computes the per-participant obligations for one expense: the
// amount divided evenly across all participants, with remainder cents
// going to the first shares in participant-id order. The payer's own
// share, when the payer is a participant, is retained rather than owed,
// so it produces no obligation.
//
// The sum of the returned obligations plus the payer's retained share
// always equals the expense amount exactly.
func Split(expense *models.Expense) ([]models.Obligation, error) {
	if len(expense.Participants) == 0 {
		return nil, ErrEmptyParticipants
	}

	participants := slices.Clone(expense.Participants)
	slices.Sort(participants)

	shares := expense.Amount.SplitEven(len(participants))

	obligations := make([]models.Obligation, 0, len(participants))
	for i, id := range participants {
		if id == expense.PayerID {
			continue
		}
		obligations = append(obligations, models.Obligation{
			ParticipantID: id,
			Amount:        shares[i],
		})
	}
	return obligations, nil
}
