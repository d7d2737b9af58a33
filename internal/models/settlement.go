package models

import "github.com/shopspring/decimal"

// Transfer is a derived instruction: From pays To the given amount.
type Transfer struct {
	From   MemberID        `json:"from"`
	To     MemberID        `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementRequest marks a debtor/creditor pair as REQUESTED.
// A pair without a request is in the NONE state.
type SettlementRequest struct {
	GroupID  string          `json:"group_id"`
	Debtor   MemberID        `json:"debtor"`
	Creditor MemberID        `json:"creditor"`
	Amount   decimal.Decimal `json:"amount"`

	// ExpenseID and MovementID point at the payment recorded when the
	// request was made. The payment counts towards balances only once the
	// request is confirmed.
	ExpenseID  string `json:"expense_id"`
	MovementID string `json:"movement_id"`

	// RequestedBy is the user ID that declared the payment.
	RequestedBy string `json:"requested_by"`
	CreatedAt   int64  `json:"created_at"`
}
