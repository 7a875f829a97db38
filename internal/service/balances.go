package service

import (
	"slices"

	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
)

// SettlementObserver is told how many settlements each summary suggested.
type SettlementObserver interface {
	ObserveSettlements(n int)
}

// Summarize runs the balance engine over a ledger snapshot.
//
// User balances are ordered by balance descending; equal balances keep
// membership order. Settlements come out in the order the planner made them.
func Summarize(ledger *storage.Ledger) *models.GroupBalanceSummary {
	names := make(map[string]string, len(ledger.Members))
	members := make([]calculator.Member, len(ledger.Members))
	for i, m := range ledger.Members {
		members[i] = calculator.Member{ID: m.UserID, Name: m.DisplayName}
		names[m.UserID] = m.DisplayName
	}

	records := make([]calculator.ExpenseRecord, len(ledger.Expenses))
	for i, e := range ledger.Expenses {
		shares := make([]calculator.ParticipantShare, len(e.Participants))
		for j, p := range e.Participants {
			shares[j] = calculator.ParticipantShare{UserID: p.UserID, AmountOwed: p.AmountOwed}
		}
		records[i] = calculator.ExpenseRecord{PayerID: e.PayerID, TotalAmount: e.TotalAmount, Shares: shares}
	}

	balances := calculator.ComputeBalances(members, records)
	settlements := calculator.PlanSettlements(balances)

	summary := &models.GroupBalanceSummary{
		GroupID:              ledger.Group.ID,
		GroupName:            ledger.Group.Name,
		UserBalances:         make([]models.UserBalance, len(balances)),
		SuggestedSettlements: make([]models.SuggestedSettlement, len(settlements)),
	}
	for i, b := range balances {
		summary.UserBalances[i] = models.UserBalance{
			UserID:   b.MemberID,
			UserName: names[b.MemberID],
			Balance:  b.Amount,
		}
	}
	slices.SortStableFunc(summary.UserBalances, func(a, b models.UserBalance) int {
		return b.Balance.Cmp(a.Balance)
	})

	for i, s := range settlements {
		summary.SuggestedSettlements[i] = models.SuggestedSettlement{
			FromUserID:   s.FromUserID,
			FromUserName: names[s.FromUserID],
			ToUserID:     s.ToUserID,
			ToUserName:   names[s.ToUserID],
			Amount:       s.Amount,
		}
	}
	return summary
}
