package models

import "github.com/shopspring/decimal"

// UserBalance is one member's net position in a group.
type UserBalance struct {
	UserID   string
	UserName string
	Balance  decimal.Decimal // Positive = is owed money, Negative = owes money
}

// SuggestedSettlement is a transfer that helps clear the group's debts.
type SuggestedSettlement struct {
	FromUserID   string // Person who owes
	FromUserName string
	ToUserID     string // Person who is owed
	ToUserName   string
	Amount       decimal.Decimal
}

// GroupBalanceSummary is the computed view of a group's ledger.
// It is built per request and never persisted.
type GroupBalanceSummary struct {
	GroupID              string
	GroupName            string
	UserBalances         []UserBalance
	SuggestedSettlements []SuggestedSettlement
}
