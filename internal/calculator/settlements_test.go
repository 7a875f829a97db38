package calculator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairly/internal/money"
)

func balancesOf(pairs ...string) Balances {
	var b Balances
	for i := 0; i+1 < len(pairs); i += 2 {
		b = append(b, MemberBalance{MemberID: pairs[i], Amount: dec(pairs[i+1])})
	}
	return b
}

type transfer struct {
	from, to, amount string
}

func TestPlanSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []transfer
	}{
		{
			name:     "one creditor two debtors",
			balances: balancesOf("a", "20", "b", "-10", "c", "-10"),
			want: []transfer{
				{"b", "a", "10.00"},
				{"c", "a", "10.00"},
			},
		},
		{
			name:     "single pair",
			balances: balancesOf("a", "15.50", "b", "-15.50"),
			want:     []transfer{{"b", "a", "15.50"}},
		},
		{
			name:     "everyone settled",
			balances: balancesOf("a", "0", "b", "0.01", "c", "-0.01"),
			want:     nil,
		},
		{
			name:     "empty group",
			balances: nil,
			want:     nil,
		},
		{
			name:     "largest creditor meets largest debtor first",
			balances: balancesOf("a", "5", "b", "-30", "c", "25", "d", "-10", "e", "10"),
			want: []transfer{
				{"b", "c", "25.00"},
				{"b", "e", "5.00"},
				{"d", "e", "5.00"},
				{"d", "a", "5.00"},
			},
		},
		{
			name:     "exact match advances both cursors",
			balances: balancesOf("a", "10", "b", "5", "c", "-10", "d", "-5"),
			want: []transfer{
				{"c", "a", "10.00"},
				{"d", "b", "5.00"},
			},
		},
		{
			name:     "ties keep input order",
			balances: balancesOf("d1", "-7", "c1", "7", "d2", "-7", "c2", "7"),
			want: []transfer{
				{"d1", "c1", "7.00"},
				{"d2", "c2", "7.00"},
			},
		},
		{
			name:     "dead-zone members are skipped",
			balances: balancesOf("a", "10.01", "b", "-10", "c", "-0.01"),
			want:     []transfer{{"b", "a", "10.00"}},
		},
		{
			name:     "sub-cent balances are rounded when emitted",
			balances: balancesOf("a", "3.336", "b", "-3.336"),
			want:     []transfer{{"b", "a", "3.34"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSettlements(tt.balances)
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, w.from, got[i].FromUserID, "settlement %d from", i)
				assert.Equal(t, w.to, got[i].ToUserID, "settlement %d to", i)
				assert.Equal(t, w.amount, money.Fixed(got[i].Amount), "settlement %d amount", i)
				assertAmount(t, w.amount, got[i].Amount)
			}
		})
	}
}

func TestPlanSettlements_DoesNotMutateInput(t *testing.T) {
	balances := balancesOf("a", "20", "b", "-10", "c", "-10")
	PlanSettlements(balances)
	assertAmount(t, "20", balances[0].Amount)
	assertAmount(t, "-10", balances[1].Amount)
	assertAmount(t, "-10", balances[2].Amount)
}

func TestPlanSettlements_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 99))
	for i := 0; i < 300; i++ {
		members, expenses := randomLedger(t, r)
		balances := ComputeBalances(members, expenses)
		settlements := PlanSettlements(balances)

		var creditors, debtors int
		for _, b := range balances {
			if b.Amount.GreaterThan(money.Tolerance()) {
				creditors++
			} else if b.Amount.LessThan(money.Tolerance().Neg()) {
				debtors++
			}
		}

		if creditors == 0 || debtors == 0 {
			assert.Empty(t, settlements)
		} else {
			assert.LessOrEqual(t, len(settlements), creditors+debtors-1)
		}

		for _, s := range settlements {
			assert.True(t, s.Amount.IsPositive(), "non-positive settlement %+v", s)
			assert.True(t, s.Amount.Equal(money.Round(s.Amount)), "unrounded settlement %+v", s)
			assert.NotEqual(t, s.FromUserID, s.ToUserID)
		}

		for _, b := range ApplySettlements(balances, settlements) {
			assert.Truef(t, money.IsSettled(b.Amount), "member %s left at %s", b.MemberID, b.Amount)
		}
	}
}

func TestEngine_ThreeWayDinner(t *testing.T) {
	expenses := []ExpenseRecord{equalExpense(t, "a", "30", "a", "b", "c")}
	balances := ComputeBalances(abc, expenses)
	settlements := PlanSettlements(balances)

	require.Len(t, settlements, 2)
	got := map[string]string{}
	for _, s := range settlements {
		assert.Equal(t, "a", s.ToUserID)
		got[s.FromUserID] = money.Fixed(s.Amount)
	}
	assert.Equal(t, map[string]string{"b": "10.00", "c": "10.00"}, got)
}

func TestApplySettlements(t *testing.T) {
	balances := balancesOf("a", "20", "b", "-10", "c", "-10")
	after := ApplySettlements(balances, []Settlement{
		{FromUserID: "b", ToUserID: "a", Amount: dec("10")},
		{FromUserID: "ghost", ToUserID: "a", Amount: dec("1")},
	})

	assertAmount(t, "9", after[0].Amount)
	assertAmount(t, "0", after[1].Amount)
	assertAmount(t, "-10", after[2].Amount)
	assertAmount(t, "20", balances[0].Amount)
}
