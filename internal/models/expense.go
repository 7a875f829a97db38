package models

import "github.com/shopspring/decimal"

// DateLayout is the layout of Expense.ExpenseDate.
const DateLayout = "2006-01-02"

// Expense is a payment made by one group member on behalf of participants.
//
// The participants' AmountOwed values add up to TotalAmount within 0.01.
// The split collaborators enforce this when the expense is created; the
// balance engine relies on it without checking.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// PayerID is the member who paid.
	PayerID string

	// TotalAmount is what the payer paid, with two decimal places.
	TotalAmount decimal.Decimal

	// Description is a free-form label (e.g., "Dinner").
	Description string

	// ExpenseDate is the day the expense happened, formatted with DateLayout.
	ExpenseDate string

	// Participants lists who owes what, in the order they were given.
	Participants []ExpenseParticipant

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseParticipant is one participant's share of an expense.
type ExpenseParticipant struct {
	UserID     string
	AmountOwed decimal.Decimal
}
