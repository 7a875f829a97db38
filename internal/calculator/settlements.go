package calculator

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairly/internal/money"
)

// Settlement is a suggested transfer from a debtor to a creditor.
type Settlement struct {
	FromUserID string // Person who owes
	ToUserID   string // Person who is owed
	Amount     decimal.Decimal
}

// party is one side of the matching with its remaining magnitude.
type party struct {
	id        string
	remaining decimal.Decimal
}

// PlanSettlements turns balances into a greedy sequence of transfers. When
// every balance is a whole number of cents and they sum to zero, applying the
// plan leaves every balance inside the dead-zone. Sub-cent balances can leave
// a residual larger than that, since transfers are rounded to cents.
//
// Creditors are matched largest first against debtors largest first. Equal
// balances keep their order in the input, which is membership order when the
// input comes from ComputeBalances. Each step settles the smaller side of the
// pair completely, so at most len(creditors)+len(debtors)-1 transfers are
// produced. The plan is not globally minimal.
func PlanSettlements(balances Balances) []Settlement {
	tolerance := money.Tolerance()
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.Amount.GreaterThan(tolerance):
			creditors = append(creditors, party{id: b.MemberID, remaining: b.Amount})
		case b.Amount.LessThan(tolerance.Neg()):
			debtors = append(debtors, party{id: b.MemberID, remaining: b.Amount.Neg()})
		}
	}

	byRemainingDesc := func(a, b party) int { return b.remaining.Cmp(a.remaining) }
	slices.SortStableFunc(creditors, byRemainingDesc)
	slices.SortStableFunc(debtors, byRemainingDesc)

	var settlements []Settlement
	c, d := 0, 0
	for c < len(creditors) && d < len(debtors) {
		creditor := &creditors[c]
		debtor := &debtors[d]

		amount := money.Round(decimal.Min(creditor.remaining, debtor.remaining))
		settlements = append(settlements, Settlement{
			FromUserID: debtor.id,
			ToUserID:   creditor.id,
			Amount:     amount,
		})

		creditor.remaining = creditor.remaining.Sub(amount)
		debtor.remaining = debtor.remaining.Sub(amount)

		// Rounding moves a side by at most half a cent, so the smaller side
		// always lands inside the dead-zone here.
		if creditor.remaining.LessThan(tolerance) {
			c++
		}
		if debtor.remaining.Abs().LessThan(tolerance) {
			d++
		}
	}

	return settlements
}

// ApplySettlements returns the balances left after every settlement is paid:
// the payer's balance rises and the receiver's falls by the amount.
func ApplySettlements(balances Balances, settlements []Settlement) Balances {
	out := slices.Clone(balances)
	index := make(map[string]int, len(out))
	for i, b := range out {
		index[b.MemberID] = i
	}
	for _, s := range settlements {
		if i, ok := index[s.FromUserID]; ok {
			out[i].Amount = out[i].Amount.Add(s.Amount)
		}
		if i, ok := index[s.ToUserID]; ok {
			out[i].Amount = out[i].Amount.Sub(s.Amount)
		}
	}
	return out
}
