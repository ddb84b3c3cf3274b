package ledger

import (
	"sort"

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
)

// pairKey identifies an unordered member pair. low < high lexically.
type pairKey struct {
	low, high string
}

// ComputeDebts folds the obligations of every unsettled expense into one
// directed debt per member pair. Opposing obligations between a pair
// cancel, so at most one direction carries a nonzero amount; pairs that
// net to zero are omitted entirely.
//
// The computation always runs over the full unsettled set rather than
// incrementally. At household scale the O(total obligations) cost is
// negligible and full recomputation cannot drift.
func ComputeDebts(expenses []*models.Expense) ([]models.Debt, error) {
	// net[k] > 0 means k.low owes k.high.
	net := make(map[pairKey]money.Money)

	for _, expense := range expenses {
		if expense.Settled {
			continue
		}
		obligations, err := Split(expense)
		if err != nil {
			return nil, err
		}
		for _, ob := range obligations {
			if ob.ParticipantID < expense.PayerID {
				k := pairKey{low: ob.ParticipantID, high: expense.PayerID}
				net[k] = net[k].Add(ob.Amount)
			} else {
				k := pairKey{low: expense.PayerID, high: ob.ParticipantID}
				net[k] = net[k].Sub(ob.Amount)
			}
		}
	}

	debts := make([]models.Debt, 0, len(net))
	for k, amount := range net {
		switch {
		case amount.IsPositive():
			debts = append(debts, models.Debt{FromID: k.low, ToID: k.high, Amount: amount})
		case amount < 0:
			debts = append(debts, models.Debt{FromID: k.high, ToID: k.low, Amount: amount.Neg()})
		}
	}

	sort.Slice(debts, func(i, j int) bool {
		if debts[i].FromID != debts[j].FromID {
			return debts[i].FromID < debts[j].FromID
		}
		return debts[i].ToID < debts[j].ToID
	})
	return debts, nil
}
