// Package models defines the core domain models for Fairly.
//
// # Models
//
//   - User: a registered account; users are the members of groups.
//   - Group: a set of users sharing expenses.
//   - Expense: one payment made by a member on behalf of participants.
//   - ExpenseParticipant: what one participant owes for an expense.
//   - GroupBalanceSummary: balances and suggested settlements for a group.
//
// # Design Principles
//
// 1. **Exact money**: every amount is a decimal.Decimal with two fractional digits
// 2. **Avoid circular references**: use ID strings instead of pointers for relationships
// 3. **Transient summaries**: balances and settlements are computed per request, never stored
package models
