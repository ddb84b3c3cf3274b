package ledger

import (
	"testing"

	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
)

func mustParse(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return m
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		payerID      string
		participants []string
		want         []models.Obligation
		wantErr      error
	}{
		{
			// 30.00 across A, B, C: B and C owe 10.00 each, A retains 10.00.
			name:         "payer participates",
			amount:       "30.00",
			payerID:      "alice",
			participants: []string{"alice", "bob", "carol"},
			want: []models.Obligation{
				{ParticipantID: "bob", Amount: 1000},
				{ParticipantID: "carol", Amount: 1000},
			},
		},
		{
			name:         "payer not a participant",
			amount:       "20.00",
			payerID:      "dave",
			participants: []string{"alice", "bob"},
			want: []models.Obligation{
				{ParticipantID: "alice", Amount: 1000},
				{ParticipantID: "bob", Amount: 1000},
			},
		},
		{
			name:         "remainder cents go to first participants in id order",
			amount:       "10.00",
			payerID:      "zoe",
			participants: []string{"carol", "bob", "alice"},
			want: []models.Obligation{
				{ParticipantID: "alice", Amount: 334},
				{ParticipantID: "bob", Amount: 333},
				{ParticipantID: "carol", Amount: 333},
			},
		},
		{
			name:         "single participant owes everything",
			amount:       "7.50",
			payerID:      "alice",
			participants: []string{"bob"},
			want: []models.Obligation{
				{ParticipantID: "bob", Amount: 750},
			},
		},
		{
			name:         "sole participant is the payer",
			amount:       "7.50",
			payerID:      "alice",
			participants: []string{"alice"},
			want:         []models.Obligation{},
		},
		{
			name:         "empty participants",
			amount:       "10.00",
			payerID:      "alice",
			participants: nil,
			wantErr:      ErrEmptyParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expense := &models.Expense{
				Amount:       mustParse(t, tt.amount),
				PayerID:      tt.payerID,
				Participants: tt.participants,
			}
			got, err := Split(expense)
			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Split() succeeded, want error %v", tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Split() failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Split() returned %d obligations, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("obligation[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// The obligations plus the payer's retained share must reconstruct the
// expense amount exactly, whatever the amount and participant count.
func TestSplitConservation(t *testing.T) {
	amounts := []string{"0.01", "0.99", "10.00", "33.33", "100.01", "999.97"}
	groups := [][]string{
		{"alice"},
		{"alice", "bob"},
		{"alice", "bob", "carol"},
		{"alice", "bob", "carol", "dave", "erin", "frank", "grace"},
	}

	for _, amount := range amounts {
		for _, participants := range groups {
			expense := &models.Expense{
				Amount:       mustParse(t, amount),
				PayerID:      "alice",
				Participants: participants,
			}
			obligations, err := Split(expense)
			if err != nil {
				t.Fatalf("Split() failed: %v", err)
			}

			var owed money.Money
			for _, ob := range obligations {
				owed = owed.Add(ob.Amount)
			}
			retained := expense.Amount.Sub(owed)

			// alice is always a participant, so her retained share is one
			// of the even splits: within a cent of amount/n.
			shares := expense.Amount.SplitEven(len(participants))
			if retained < shares[len(shares)-1] || retained > shares[0] {
				t.Errorf("amount %s, %d participants: retained %s outside share range [%s, %s]",
					amount, len(participants), retained, shares[len(shares)-1], shares[0])
			}
			if owed.Add(retained) != expense.Amount {
				t.Errorf("amount %s, %d participants: owed %s + retained %s != %s",
					amount, len(participants), owed, retained, expense.Amount)
			}
		}
	}
}
