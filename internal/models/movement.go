package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind is the direction of a ledger movement.
type MovementKind string

const (
	MovementIncome  MovementKind = "income"
	MovementExpense MovementKind = "expense"
	// MovementTransfer moves money between two guests through the admin. It does not
	// count towards anyone's personal balance.
	MovementTransfer MovementKind = "transfer"
)

// Movement is a single dated record in a user's ledger.
type Movement struct {
	ID         string          `json:"id"`
	OwnerID    string          `json:"owner_id"`
	Amount     decimal.Decimal `json:"amount"`
	Kind       MovementKind    `json:"kind"`
	CategoryID string          `json:"category_id,omitempty"`
	Date       time.Time       `json:"date"`
	Notes      string          `json:"notes"`

	// GroupID is set when the movement backs a shared expense.
	GroupID string `json:"group_id,omitempty"`

	// Participants is the participant list of the shared expense, kept as
	// metadata. The movement is never split per participant.
	Participants []MemberID `json:"participants,omitempty"`

	// Locked movements cannot be edited or deleted by anyone.
	Locked bool `json:"locked"`

	CreatedAt int64 `json:"created_at"`
}

// Signed returns the movement's effect on its owner's personal balance.
func (m *Movement) Signed() decimal.Decimal {
	switch m.Kind {
	case MovementIncome:
		return m.Amount
	case MovementExpense:
		return m.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Category is a budgeted movement category. Categories are managed outside
// this service; the core only checks that referenced ones exist.
type Category struct {
	ID      string          `json:"id"`
	OwnerID string          `json:"owner_id"`
	Name    string          `json:"name"`
	Budget  decimal.Decimal `json:"budget"`
}
