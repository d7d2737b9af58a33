package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseKind distinguishes ordinary shared expenses from settlement payments.
type ExpenseKind string

const (
	// KindExpense is a cost split equally among the participants.
	KindExpense ExpenseKind = "expense"
	// KindSettlement records a debtor paying a creditor: the debtor is the
	// payer and the creditor the only participant.
	KindSettlement ExpenseKind = "settlement"
)

// SharedExpense is one shared financial event within a group.
type SharedExpense struct {
	ID          string          `json:"id"`
	GroupID     string          `json:"group_id"`
	Kind        ExpenseKind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`

	Payer        MemberID   `json:"payer"`
	Participants []MemberID `json:"participants"`

	// MovementID links the ledger movement backing this expense.
	MovementID string `json:"movement_id"`

	// CreatedBy is the user ID that recorded the expense.
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

// Involves reports whether id is the payer or a participant.
func (e *SharedExpense) Involves(id MemberID) bool {
	if e.Payer == id {
		return true
	}
	for _, p := range e.Participants {
		if p == id {
			return true
		}
	}
	return false
}
