package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
	"github.com/mmynk/fairly/pkg/api"
	"github.com/mmynk/fairly/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService records and manages group expenses.
type ExpenseService struct {
	store  storage.Store
	logger *slog.Logger
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store, logger *slog.Logger) *ExpenseService {
	return &ExpenseService{store: store, logger: logger}
}

// CreateEqualSplit records an expense divided equally between participants.
// An empty PayerID means the caller paid.
func (s *ExpenseService) CreateEqualSplit(ctx context.Context, req *connect.Request[api.CreateEqualSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	s.logger.Info("CreateEqualSplit request received",
		"group_id", msg.GroupID,
		"total", msg.TotalAmount.String(),
		"participants_count", len(msg.ParticipantIDs),
	)

	shares, err := calculator.EqualSplit(msg.TotalAmount.Decimal(), msg.ParticipantIDs)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense, err := s.record(ctx, msg.GroupID, msg.PayerID, msg.TotalAmount.Decimal(), msg.Description, msg.ExpenseDate, shares)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// CreateCustomSplit records an expense with explicit shares.
// An empty PayerID means the caller paid.
func (s *ExpenseService) CreateCustomSplit(ctx context.Context, req *connect.Request[api.CreateCustomSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	msg := req.Msg
	s.logger.Info("CreateCustomSplit request received",
		"group_id", msg.GroupID,
		"total", msg.TotalAmount.String(),
		"participants_count", len(msg.Participants),
	)

	requested := make([]calculator.ParticipantShare, 0, len(msg.Participants))
	for _, p := range msg.Participants {
		if p == nil {
			continue
		}
		requested = append(requested, calculator.ParticipantShare{UserID: p.UserID, AmountOwed: p.AmountOwed.Decimal()})
	}
	shares, err := calculator.CustomSplit(msg.TotalAmount.Decimal(), requested)
	if err != nil {
		return nil, toConnectError(err)
	}
	expense, err := s.record(ctx, msg.GroupID, msg.PayerID, msg.TotalAmount.Decimal(), msg.Description, msg.ExpenseDate, shares)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.CreateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// record checks membership of the caller, the payer and every participant,
// then stores the expense.
func (s *ExpenseService) record(ctx context.Context, groupID, payerID string, total decimal.Decimal, description, date string, shares []calculator.ParticipantShare) (*models.Expense, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, s.store, groupID, userID); err != nil {
		return nil, err
	}
	if payerID == "" {
		payerID = userID
	}

	members, err := s.store.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	isMember := make(map[string]bool, len(members))
	for _, m := range members {
		isMember[m.UserID] = true
	}
	if !isMember[payerID] {
		return nil, ErrPayerNotMember
	}
	participants := make([]models.ExpenseParticipant, len(shares))
	for i, sh := range shares {
		if !isMember[sh.UserID] {
			return nil, fmt.Errorf("%w: %s", ErrParticipantNotMember, sh.UserID)
		}
		participants[i] = models.ExpenseParticipant{UserID: sh.UserID, AmountOwed: sh.AmountOwed}
	}

	expense := &models.Expense{
		GroupID:      groupID,
		PayerID:      payerID,
		TotalAmount:  total,
		Description:  strings.TrimSpace(description),
		ExpenseDate:  date,
		Participants: participants,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		s.logger.Error("CreateExpense failed", "group_id", groupID, "error", err)
		return nil, err
	}

	s.logger.Info("Expense created", "expense_id", expense.ID, "group_id", groupID, "payer_id", payerID)
	return expense, nil
}

// GetExpense returns one expense of a group the caller belongs to.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	expense, err := s.loadForMember(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// ListGroupExpenses returns a group's expenses, newest expense date first.
func (s *ExpenseService) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := requireMember(ctx, s.store, req.Msg.GroupID, userID); err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, req.Msg.GroupID)
	if err != nil {
		s.logger.Error("ListGroupExpenses failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return connect.NewResponse(&api.ListGroupExpensesResponse{Expenses: out}), nil
}

// UpdateExpense changes an expense's description and, when given, its date.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	if err := validateDate(req.Msg.ExpenseDate); err != nil {
		return nil, toConnectError(err)
	}
	expense, err := s.loadForMember(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}

	expense.Description = strings.TrimSpace(req.Msg.Description)
	if req.Msg.ExpenseDate != "" {
		expense.ExpenseDate = req.Msg.ExpenseDate
	}
	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		s.logger.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense updated", "expense_id", expense.ID)
	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: toAPIExpense(expense)}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	expense, err := s.loadForMember(ctx, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.DeleteExpense(ctx, expense.ID); err != nil {
		s.logger.Error("DeleteExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Expense deleted", "expense_id", expense.ID, "group_id", expense.GroupID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// loadForMember fetches an expense and checks that the caller belongs to
// its group.
func (s *ExpenseService) loadForMember(ctx context.Context, expenseID string) (*models.Expense, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if expenseID == "" {
		return nil, fmt.Errorf("expense %w", ErrMissingID)
	}
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("expense %s: %w", expenseID, err)
	}
	if _, err := requireMember(ctx, s.store, expense.GroupID, userID); err != nil {
		return nil, err
	}
	return expense, nil
}
