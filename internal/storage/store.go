// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/fairly/internal/models"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique record would be duplicated.
	ErrAlreadyExists = errors.New("already exists")
)

// Ledger is a consistent snapshot of one group: its membership and every
// expense recorded against it, read in a single transaction.
type Ledger struct {
	Group    models.Group
	Members  []models.Member // membership order
	Expenses []models.Expense
}

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore
	GroupStore
	ExpenseStore

	// GroupLedger reads a group's membership and expenses as one snapshot.
	// Returns ErrNotFound if the group does not exist.
	GroupLedger(ctx context.Context, groupID string) (*Ledger, error)

	// Close releases any resources held by the store.
	Close() error
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// UpdateUser saves the user's email and display name and sets UpdatedAt.
	// Returns ErrNotFound for an unknown user and ErrAlreadyExists when the
	// email belongs to another account.
	UpdateUser(ctx context.Context, user *models.User) error
}

// GroupStore persists groups and their membership.
type GroupStore interface {
	// CreateGroup persists a new group and adds its creator as the first member.
	// The group.ID and group.CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)
	UpdateGroup(ctx context.Context, group *models.Group) error
	DeleteGroup(ctx context.Context, groupID string) error

	// AddGroupMember returns ErrAlreadyExists if the user is already a member.
	AddGroupMember(ctx context.Context, groupID, userID string) error
	// RemoveGroupMember returns ErrNotFound if the user is not a member.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)
	IsGroupMember(ctx context.Context, groupID, userID string) (bool, error)
}

// ExpenseStore persists expenses with their participants.
type ExpenseStore interface {
	// CreateExpense persists an expense and its participants atomically.
	// The expense.ID and expense.CreatedAt fields are populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	// ListExpensesByGroup returns the group's expenses, newest expense date first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)
	// UpdateExpense changes the description and date of an expense.
	UpdateExpense(ctx context.Context, expense *models.Expense) error
	DeleteExpense(ctx context.Context, expenseID string) error
}
