package service

import (
	"net/http"

	"github.com/chorecast/chorecast/internal/ledger"
	"github.com/chorecast/chorecast/internal/models"
	"github.com/chorecast/chorecast/internal/money"
)

// LedgerService exposes the four core operations: recordExpense,
// splitPreview, listDebts and settle, plus the expense and settlement
// projections.
type LedgerService struct {
	ledger *ledger.Ledger
}

// NewLedgerService creates a LedgerService over the given ledger core.
func NewLedgerService(l *ledger.Ledger) *LedgerService {
	return &LedgerService{ledger: l}
}

// Register installs the ledger routes on the mux.
func (s *LedgerService) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/expenses", s.handleRecordExpense)
	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses/split", s.handleSplitPreview)
	mux.HandleFunc("GET /api/balances", s.handleListDebts)
	mux.HandleFunc("GET /api/balances/{memberId}", s.handleDebtsInvolving)
	mux.HandleFunc("POST /api/settlements", s.handleSettle)
	mux.HandleFunc("GET /api/settlements", s.handleListSettlements)
}

type expenseRequest struct {
	Description  string      `json:"description"`
	Amount       money.Money `json:"amount"`
	PayerID      string      `json:"payer_id"`
	Participants []string    `json:"participants"`
}

type recordExpenseResponse struct {
	Expense *models.Expense `json:"expense"`
	Debts   []models.Debt   `json:"debts"`
}

func (s *LedgerService) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	expense, debts, err := s.ledger.RecordExpense(r.Context(), ledger.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recordExpenseResponse{Expense: expense, Debts: debts})
}

func (s *LedgerService) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.ledger.ListExpenses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if expenses == nil {
		expenses = []*models.Expense{}
	}
	writeJSON(w, http.StatusOK, expenses)
}

type splitPreviewResponse struct {
	Obligations []models.Obligation `json:"obligations"`
	PayerShare  money.Money         `json:"payer_share"`
}

func (s *LedgerService) handleSplitPreview(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	obligations, err := s.ledger.SplitPreview(r.Context(), ledger.ExpenseInput{
		Description:  req.Description,
		Amount:       req.Amount,
		PayerID:      req.PayerID,
		Participants: req.Participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	var owed money.Money
	for _, ob := range obligations {
		owed = owed.Add(ob.Amount)
	}
	writeJSON(w, http.StatusOK, splitPreviewResponse{
		Obligations: obligations,
		PayerShare:  req.Amount.Sub(owed),
	})
}

func (s *LedgerService) handleListDebts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Debts())
}

func (s *LedgerService) handleDebtsInvolving(w http.ResponseWriter, r *http.Request) {
	debts := s.ledger.DebtsInvolving(r.PathValue("memberId"))
	if debts == nil {
		debts = []models.Debt{}
	}
	writeJSON(w, http.StatusOK, debts)
}

type settleRequest struct {
	DebtorID   string `json:"debtor_id"`
	CreditorID string `json:"creditor_id"`
	Note       string `json:"note"`
}

type settleResponse struct {
	Settlement *models.Settlement `json:"settlement"`
	Debts      []models.Debt      `json:"debts"`
}

func (s *LedgerService) handleSettle(w http.ResponseWriter, r *http.Request) {
	var req settleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	settlement, debts, err := s.ledger.Settle(r.Context(), req.DebtorID, req.CreditorID, req.Note)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settleResponse{Settlement: settlement, Debts: debts})
}

func (s *LedgerService) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := s.ledger.ListSettlements(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if settlements == nil {
		settlements = []*models.Settlement{}
	}
	writeJSON(w, http.StatusOK, settlements)
}
