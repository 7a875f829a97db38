package service

import (
	"errors"
	"fmt"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummarize(t *testing.T) {
	ledger := &storage.Ledger{
		Group: models.Group{ID: "g1", Name: "Trip"},
		Members: []models.Member{
			{UserID: "a", DisplayName: "Alice"},
			{UserID: "b", DisplayName: "Bob"},
			{UserID: "c", DisplayName: "Charlie"},
			{UserID: "d", DisplayName: "Dana"},
		},
		Expenses: []models.Expense{
			{
				PayerID:     "c",
				TotalAmount: dec("40"),
				Participants: []models.ExpenseParticipant{
					{UserID: "a", AmountOwed: dec("20")},
					{UserID: "b", AmountOwed: dec("20")},
				},
			},
			{
				// Paid by someone who has since left the group.
				PayerID:     "gone",
				TotalAmount: dec("10"),
				Participants: []models.ExpenseParticipant{
					{UserID: "d", AmountOwed: dec("5")},
					{UserID: "gone", AmountOwed: dec("5")},
				},
			},
		},
	}

	summary := Summarize(ledger)

	assert.Equal(t, "g1", summary.GroupID)
	assert.Equal(t, "Trip", summary.GroupName)

	var got []string
	for _, b := range summary.UserBalances {
		got = append(got, fmt.Sprintf("%s=%s", b.UserName, b.Balance.StringFixed(2)))
	}
	assert.Equal(t, []string{"Charlie=40.00", "Dana=-5.00", "Alice=-20.00", "Bob=-20.00"}, got)

	// Dana's debt came from a departed payer; nobody left is owed it.
	require.Len(t, summary.SuggestedSettlements, 2)
	first := summary.SuggestedSettlements[0]
	assert.Equal(t, "a", first.FromUserID)
	assert.Equal(t, "Alice", first.FromUserName)
	assert.Equal(t, "c", first.ToUserID)
	assert.Equal(t, "Charlie", first.ToUserName)
	assert.True(t, first.Amount.Equal(dec("20")))
	assert.Equal(t, "b", summary.SuggestedSettlements[1].FromUserID)
	assert.Equal(t, "c", summary.SuggestedSettlements[1].ToUserID)
}

func TestSummarize_EmptyLedger(t *testing.T) {
	summary := Summarize(&storage.Ledger{Group: models.Group{ID: "g1"}})
	assert.Empty(t, summary.UserBalances)
	assert.Empty(t, summary.SuggestedSettlements)
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want connect.Code
	}{
		{fmt.Errorf("group x: %w", storage.ErrNotFound), connect.CodeNotFound},
		{storage.ErrAlreadyExists, connect.CodeAlreadyExists},
		{auth.ErrEmailExists, connect.CodeAlreadyExists},
		{ErrNotMember, connect.CodePermissionDenied},
		{ErrNotCreator, connect.CodePermissionDenied},
		{auth.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{fmt.Errorf("%w: total 1.001", calculator.ErrSubCentAmount), connect.CodeInvalidArgument},
		{calculator.ErrSharesMismatch, connect.CodeInvalidArgument},
		{calculator.ErrTotalTooSmall, connect.CodeInvalidArgument},
		{ErrPayerNotMember, connect.CodeInvalidArgument},
		{connect.NewError(connect.CodeUnavailable, errors.New("down")), connect.CodeUnavailable},
		{errors.New("disk on fire"), connect.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestToConnectError_HidesInternalDetail(t *testing.T) {
	err := toConnectError(errors.New("near \"SELEC\": syntax error"))
	assert.Equal(t, connect.CodeInternal, connect.CodeOf(err))
	assert.NotContains(t, err.Error(), "SELEC")
}
