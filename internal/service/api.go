package service

import (
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/shopspring/decimal"
)

// Messages of the splitledger.v1 API. Amounts travel as decimal strings,
// dates as YYYY-MM-DD.

type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	CreatedAt   int64  `json:"created_at"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type CreateGroupRequest struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}

type CreateGroupResponse struct {
	Group *models.Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *models.Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*models.Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

// AddMemberRequest adds either the account registered under Email or a new
// external member named ExternalName. Exactly one must be set.
type AddMemberRequest struct {
	GroupID      string `json:"group_id"`
	Email        string `json:"email,omitempty"`
	ExternalName string `json:"external_name,omitempty"`
}

type AddMemberResponse struct {
	Member *models.Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupID string          `json:"group_id"`
	Member  models.MemberID `json:"member"`
}

type RemoveMemberResponse struct{}

type ListMembersRequest struct {
	GroupID string `json:"group_id"`
}

type ListMembersResponse struct {
	Members []models.Member `json:"members"`
}

type AddSharedExpenseRequest struct {
	GroupID      string            `json:"group_id"`
	Payer        models.MemberID   `json:"payer"`
	Amount       decimal.Decimal   `json:"amount"`
	Description  string            `json:"description"`
	Date         string            `json:"date,omitempty"`
	Participants []models.MemberID `json:"participants"`
	CategoryID   string            `json:"category_id,omitempty"`
}

type AddSharedExpenseResponse struct {
	Expense  *models.SharedExpense `json:"expense"`
	Movement *models.Movement      `json:"movement"`
}

type DeleteSharedExpenseRequest struct {
	GroupID   string `json:"group_id"`
	ExpenseID string `json:"expense_id"`
}

type DeleteSharedExpenseResponse struct{}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*models.SharedExpense `json:"expenses"`
}

type GetBalancesRequest struct {
	GroupID string `json:"group_id"`
}

// GetBalancesResponse carries every member's balance, the transfers that
// settle them and the payments waiting for confirmation.
type GetBalancesResponse struct {
	Balances  []calculator.MemberBalance  `json:"balances"`
	Transfers []models.Transfer           `json:"transfers"`
	Requests  []*models.SettlementRequest `json:"requests"`
}

type RequestSettlementRequest struct {
	GroupID  string          `json:"group_id"`
	Debtor   models.MemberID `json:"debtor"`
	Creditor models.MemberID `json:"creditor"`
}

type RequestSettlementResponse struct {
	Request *models.SettlementRequest `json:"request"`
}

type ConfirmSettlementRequest struct {
	GroupID  string          `json:"group_id"`
	Creditor models.MemberID `json:"creditor"`
	Debtor   models.MemberID `json:"debtor"`
}

type ConfirmSettlementResponse struct {
	Request *models.SettlementRequest `json:"request"`
}

// SettleRequest is the input of both admin direct settlements.
type SettleRequest struct {
	GroupID  string          `json:"group_id"`
	Debtor   models.MemberID `json:"debtor"`
	Creditor models.MemberID `json:"creditor"`
}

type SettleResponse struct {
	Payment *models.SharedExpense `json:"payment"`
}

type ListSettlementRequestsRequest struct {
	GroupID string `json:"group_id"`
}

type ListSettlementRequestsResponse struct {
	Requests []*models.SettlementRequest `json:"requests"`
}

type ListMovementsRequest struct{}

type ListMovementsResponse struct {
	Movements []*models.Movement `json:"movements"`
	Balance   decimal.Decimal    `json:"balance"`
}

type AddMovementRequest struct {
	Amount     decimal.Decimal     `json:"amount"`
	Kind       models.MovementKind `json:"kind"`
	CategoryID string              `json:"category_id,omitempty"`
	Date       string              `json:"date,omitempty"`
	Notes      string              `json:"notes"`
}

type AddMovementResponse struct {
	Movement *models.Movement `json:"movement"`
}

type DeleteMovementRequest struct {
	MovementID string `json:"movement_id"`
}

type DeleteMovementResponse struct{}

type GetLockedMovementsRequest struct{}

type GetLockedMovementsResponse struct {
	MovementIDs []string `json:"movement_ids"`
}
