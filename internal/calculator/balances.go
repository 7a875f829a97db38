// Package calculator is the ledger engine: it folds a group's expenses into
// per-member balances and plans the transfers that settle them.
//
// Every function here is pure. Callers hand in a consistent snapshot of a
// group (membership plus expenses, read in one transaction) and get fresh
// values back; nothing is cached or shared between calls.
//
// The engine ASSUMES that each ExpenseRecord's shares sum to its total within
// one cent (money.WithinTolerance). That invariant is established when an
// expense is created (see EqualSplit and CustomSplit) and is never re-checked
// here. Records that violate it produce balances that do not sum to zero, and
// the settlement plan built from them leaves a residue.
package calculator

import (
	"github.com/shopspring/decimal"
)

// Member is a group member as seen by the engine.
type Member struct {
	ID   string
	Name string
}

// ParticipantShare is the amount one participant owes for an expense.
type ParticipantShare struct {
	UserID     string
	AmountOwed decimal.Decimal
}

// ExpenseRecord is a materialized expense: who paid, how much, and who owes
// what.
type ExpenseRecord struct {
	PayerID     string
	TotalAmount decimal.Decimal
	Shares      []ParticipantShare
}

// MemberBalance is the signed net position of one member.
// Positive = is owed money, Negative = owes money.
type MemberBalance struct {
	MemberID string
	Amount   decimal.Decimal
}

// Balances holds one balance per group member in membership order.
type Balances []MemberBalance

// Get returns the balance of the given member.
func (b Balances) Get(memberID string) (decimal.Decimal, bool) {
	for _, mb := range b {
		if mb.MemberID == memberID {
			return mb.Amount, true
		}
	}
	return decimal.Zero, false
}

// Total returns the sum of all balances. It is zero whenever every expense
// satisfies the share invariant.
func (b Balances) Total() decimal.Decimal {
	total := decimal.Zero
	for _, mb := range b {
		total = total.Add(mb.Amount)
	}
	return total
}

// ComputeBalances folds expenses into one balance per member.
//
// Algorithm:
//   - Every member starts at zero, so members without activity are present.
//   - The payer of an expense is credited the full total.
//   - Each participant is debited their share.
//
// Payers and participants that are not in members are skipped silently.
// Expenses may arrive in any order; accumulation is exact, so the result does
// not depend on it.
func ComputeBalances(members []Member, expenses []ExpenseRecord) Balances {
	balances := make(Balances, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if _, dup := index[m.ID]; dup {
			continue
		}
		index[m.ID] = len(balances)
		balances = append(balances, MemberBalance{MemberID: m.ID, Amount: decimal.Zero})
	}

	for _, e := range expenses {
		if i, ok := index[e.PayerID]; ok {
			balances[i].Amount = balances[i].Amount.Add(e.TotalAmount)
		}
		for _, share := range e.Shares {
			if i, ok := index[share.UserID]; ok {
				balances[i].Amount = balances[i].Amount.Sub(share.AmountOwed)
			}
		}
	}

	return balances
}
