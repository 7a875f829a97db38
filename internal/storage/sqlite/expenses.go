package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
)

const expenseColumns = `id, group_id, payer_id, total_amount, description, expense_date, created_at`

// CreateExpense persists a new expense and its participants.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate IDs if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}
	if expense.ExpenseDate == "" {
		expense.ExpenseDate = time.Unix(expense.CreatedAt, 0).UTC().Format(models.DateLayout)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.PayerID, expense.TotalAmount,
		expense.Description, expense.ExpenseDate, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, p := range expense.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id, amount_owed, position) VALUES (?, ?, ?, ?)",
			expense.ID, p.UserID, p.AmountOwed, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := scanExpense(s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, expenseID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, amount_owed FROM expense_participants
		 WHERE expense_id = ? ORDER BY position`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.ExpenseParticipant
		if err := rows.Scan(&p.UserID, &p.AmountOwed); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		expense.Participants = append(expense.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses for a group, newest expense date first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	expenses, err := listGroupExpenses(ctx, s.db, groupID, "expense_date DESC, created_at DESC, id")
	if err != nil {
		return nil, err
	}
	out := make([]*models.Expense, len(expenses))
	for i := range expenses {
		out[i] = &expenses[i]
	}
	return out, nil
}

// listGroupExpenses loads a group's expenses and attaches participants with a
// second query instead of one query per expense.
func listGroupExpenses(ctx context.Context, q queryer, groupID, orderBy string) ([]models.Expense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE group_id = ? ORDER BY `+orderBy,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[expense.ID] = len(expenses)
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	partRows, err := q.QueryContext(ctx,
		`SELECT ep.expense_id, ep.user_id, ep.amount_owed
		 FROM expense_participants ep
		 JOIN expenses e ON e.id = ep.expense_id
		 WHERE e.group_id = ?
		 ORDER BY ep.expense_id, ep.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID string
		var p models.ExpenseParticipant
		if err := partRows.Scan(&expenseID, &p.UserID, &p.AmountOwed); err != nil {
			return nil, fmt.Errorf("failed to scan expense participant: %w", err)
		}
		if i, ok := index[expenseID]; ok {
			expenses[i].Participants = append(expenses[i].Participants, p)
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense participants: %w", err)
	}

	return expenses, nil
}

// UpdateExpense updates the description and date of an existing expense.
// Amounts and participants are immutable once recorded.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET description = ?, expense_date = ? WHERE id = ?",
		expense.Description, expense.ExpenseDate, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return expectAffected(res, "expense", expense.ID)
}

// DeleteExpense removes an expense and its participants.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return expectAffected(res, "expense", expenseID)
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	err := row.Scan(
		&expense.ID,
		&expense.GroupID,
		&expense.PayerID,
		&expense.TotalAmount,
		&expense.Description,
		&expense.ExpenseDate,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return expense, nil
}
