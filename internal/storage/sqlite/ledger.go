package sqlite

import (
	"context"
	"fmt"

	"github.com/mmynk/fairly/internal/storage"
)

// GroupLedger reads the group, its members and its expenses inside one
// transaction so the balance computation sees a consistent snapshot.
func (s *SQLiteStore) GroupLedger(ctx context.Context, groupID string) (*storage.Ledger, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Read-only; nothing to commit.
	defer tx.Rollback()

	group, err := getGroup(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	members, err := listGroupMembers(ctx, tx, groupID)
	if err != nil {
		return nil, err
	}

	expenses, err := listGroupExpenses(ctx, tx, groupID, "expense_date, created_at, id")
	if err != nil {
		return nil, err
	}

	return &storage.Ledger{
		Group:    *group,
		Members:  members,
		Expenses: expenses,
	}, nil
}
