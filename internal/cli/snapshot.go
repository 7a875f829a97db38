// Package cli implements fairlyctl, which runs the balance engine over a
// group snapshot stored as JSON, with no server or database involved.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fairly/internal/calculator"
	"github.com/mmynk/fairly/internal/money"
)

// Snapshot is a group's membership and expenses.
//
//	{
//	  "members": [{"id": "a", "name": "Alice"}],
//	  "expenses": [{"payerId": "a", "totalAmount": 30,
//	                "participants": [{"userId": "a", "amountOwed": 30}]}]
//	}
type Snapshot struct {
	Members  []SnapshotMember  `json:"members"`
	Expenses []SnapshotExpense `json:"expenses"`
}

type SnapshotMember struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SnapshotExpense struct {
	PayerID      string                `json:"payerId"`
	TotalAmount  decimal.Decimal       `json:"totalAmount"`
	Participants []SnapshotParticipant `json:"participants"`
}

type SnapshotParticipant struct {
	UserID     string          `json:"userId"`
	AmountOwed decimal.Decimal `json:"amountOwed"`
}

// ReadSnapshot decodes a snapshot from path, or from stdin when path is "-".
func ReadSnapshot(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("no snapshot file given (use -f)")
	}
	if path == "-" {
		return DecodeSnapshot(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap, err := DecodeSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// DecodeSnapshot reads and checks one snapshot. Member IDs must be present
// and unique, and amounts may have at most two decimal places. Expenses may
// reference unknown members, which the engine ignores.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var snap Snapshot
	if err := dec.Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	seen := make(map[string]bool, len(snap.Members))
	for i, m := range snap.Members {
		if m.ID == "" {
			return nil, fmt.Errorf("member %d has no id", i)
		}
		if seen[m.ID] {
			return nil, fmt.Errorf("member %q listed twice", m.ID)
		}
		seen[m.ID] = true
	}

	for i, e := range snap.Expenses {
		if !money.IsCents(e.TotalAmount) {
			return nil, fmt.Errorf("expense %d: %w: total %s", i, calculator.ErrSubCentAmount, e.TotalAmount)
		}
		for _, p := range e.Participants {
			if !money.IsCents(p.AmountOwed) {
				return nil, fmt.Errorf("expense %d: %w: %s owes %s", i, calculator.ErrSubCentAmount, p.UserID, p.AmountOwed)
			}
		}
	}
	return &snap, nil
}

// Inputs converts the snapshot into engine inputs.
func (s *Snapshot) Inputs() ([]calculator.Member, []calculator.ExpenseRecord) {
	members := make([]calculator.Member, len(s.Members))
	for i, m := range s.Members {
		members[i] = calculator.Member{ID: m.ID, Name: m.Name}
	}

	expenses := make([]calculator.ExpenseRecord, len(s.Expenses))
	for i, e := range s.Expenses {
		shares := make([]calculator.ParticipantShare, len(e.Participants))
		for j, p := range e.Participants {
			shares[j] = calculator.ParticipantShare{UserID: p.UserID, AmountOwed: p.AmountOwed}
		}
		expenses[i] = calculator.ExpenseRecord{PayerID: e.PayerID, TotalAmount: e.TotalAmount, Shares: shares}
	}
	return members, expenses
}

// names maps member IDs to display names, falling back to the ID.
func (s *Snapshot) names() map[string]string {
	out := make(map[string]string, len(s.Members))
	for _, m := range s.Members {
		name := m.Name
		if name == "" {
			name = m.ID
		}
		out[m.ID] = name
	}
	return out
}
