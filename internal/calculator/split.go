package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairly/internal/money"
)

var (
	ErrNonPositiveTotal     = errors.New("total amount must be greater than 0")
	ErrNoParticipants       = errors.New("must have at least one participant")
	ErrNonPositiveShare     = errors.New("every share must be greater than 0")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrSharesMismatch       = errors.New("shares do not add up to the total")
	ErrSubCentAmount        = errors.New("amounts may have at most two decimal places")
	ErrTotalTooSmall        = errors.New("total is too small to split between participants")
)

// EqualSplit divides total among participants in their given order.
// Every participant owes total/n rounded to cents; the last participant absorbs
// the rounding difference so the shares add up to total exactly.
// 10.00 over three people gives 3.33, 3.33, 3.34. A total so small that the
// last share would go negative (0.05 over ten people) is rejected.
func EqualSplit(total decimal.Decimal, participants []string) ([]ParticipantShare, error) {
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return nil, ErrNoParticipants
	}
	if err := checkDistinct(participants); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(participants)))
	perPerson := money.Round(total.Div(n))
	difference := total.Sub(perPerson.Mul(n))
	if perPerson.Add(difference).IsNegative() {
		return nil, fmt.Errorf("%w: %s over %d", ErrTotalTooSmall, money.Fixed(total), len(participants))
	}

	shares := make([]ParticipantShare, len(participants))
	for i, p := range participants {
		amount := perPerson
		if i == len(participants)-1 {
			amount = amount.Add(difference)
		}
		shares[i] = ParticipantShare{UserID: p, AmountOwed: amount}
	}
	return shares, nil
}

// CustomSplit validates caller-provided shares against total. Shares must be
// positive, name each participant once, and add up to total within
// one cent.
func CustomSplit(total decimal.Decimal, shares []ParticipantShare) ([]ParticipantShare, error) {
	if err := checkTotal(total); err != nil {
		return nil, err
	}
	if len(shares) == 0 {
		return nil, ErrNoParticipants
	}

	ids := make([]string, len(shares))
	sum := decimal.Zero
	for i, s := range shares {
		if !s.AmountOwed.IsPositive() {
			return nil, fmt.Errorf("%w: %s owes %s", ErrNonPositiveShare, s.UserID, s.AmountOwed)
		}
		if !money.IsCents(s.AmountOwed) {
			return nil, fmt.Errorf("%w: %s owes %s", ErrSubCentAmount, s.UserID, s.AmountOwed)
		}
		ids[i] = s.UserID
		sum = sum.Add(s.AmountOwed)
	}
	if err := checkDistinct(ids); err != nil {
		return nil, err
	}
	if !money.WithinTolerance(sum, total) {
		return nil, fmt.Errorf("%w: sum %s, total %s", ErrSharesMismatch, money.Fixed(sum), money.Fixed(total))
	}

	out := make([]ParticipantShare, len(shares))
	copy(out, shares)
	return out, nil
}

func checkTotal(total decimal.Decimal) error {
	if !total.IsPositive() {
		return ErrNonPositiveTotal
	}
	if !money.IsCents(total) {
		return fmt.Errorf("%w: total %s", ErrSubCentAmount, total)
	}
	return nil
}

func checkDistinct(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
		}
		seen[id] = true
	}
	return nil
}
