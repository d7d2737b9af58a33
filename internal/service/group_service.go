package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/models"
)

const dateLayout = "2006-01-02"

var errMemberTarget = errors.New("exactly one of email or external_name is required")

// GroupService implements the GroupService RPC interface on top of a
// groups.Manager. Every call acts as the authenticated user.
type GroupService struct {
	groups *groups.Manager
	logger *slog.Logger
}

// NewGroupService creates a GroupService.
func NewGroupService(manager *groups.Manager, logger *slog.Logger) *GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupService{groups: manager, logger: logger}
}

// CreateGroup creates a group administered by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", user)

	group, err := s.groups.CreateGroup(ctx, user, req.Msg.Name, req.Msg.Emoji)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&CreateGroupResponse{Group: group}), nil
}

// GetGroup returns a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.groups.GetGroup(ctx, user, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&GetGroupResponse{Group: group}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.groups.ListGroups(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	if list == nil {
		list = []*models.Group{}
	}
	return connect.NewResponse(&ListGroupsResponse{Groups: list}), nil
}

func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteGroup request received", "group_id", req.Msg.GroupID, "user_id", user)

	if err := s.groups.DeleteGroup(ctx, user, req.Msg.GroupID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteGroupResponse{}), nil
}

// AddMember adds a registered user by email, or creates an external member.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(req.Msg.Email)
	name := strings.TrimSpace(req.Msg.ExternalName)
	if (email == "") == (name == "") {
		return nil, connect.NewError(connect.CodeInvalidArgument, errMemberTarget)
	}
	s.logger.Info("AddMember request received", "group_id", req.Msg.GroupID, "external", name != "")

	var member *models.Member
	if email != "" {
		member, err = s.groups.AddInternalMember(ctx, user, req.Msg.GroupID, email)
	} else {
		member, err = s.groups.AddExternalMember(ctx, user, req.Msg.GroupID, name)
	}
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&AddMemberResponse{Member: member}), nil
}

func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member", req.Msg.Member)

	if err := s.groups.RemoveMember(ctx, user, req.Msg.GroupID, req.Msg.Member); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&RemoveMemberResponse{}), nil
}

func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	members, err := s.groups.GroupMembers(ctx, user, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ListMembersResponse{Members: members}), nil
}

// AddSharedExpense records an expense paid by one member and split equally
// among the participants.
func (s *GroupService) AddSharedExpense(ctx context.Context, req *connect.Request[AddSharedExpenseRequest]) (*connect.Response[AddSharedExpenseResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AddSharedExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount.String(),
		"participants", len(req.Msg.Participants),
	)

	in := groups.NewExpense{
		Payer:        req.Msg.Payer,
		Amount:       req.Msg.Amount,
		Description:  req.Msg.Description,
		Participants: req.Msg.Participants,
		CategoryID:   req.Msg.CategoryID,
	}
	if req.Msg.Date != "" {
		date, err := time.Parse(dateLayout, req.Msg.Date)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		in.Date = date
	}

	expense, movement, err := s.groups.AddSharedExpense(ctx, user, req.Msg.GroupID, in)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&AddSharedExpenseResponse{Expense: expense, Movement: movement}), nil
}

func (s *GroupService) DeleteSharedExpense(ctx context.Context, req *connect.Request[DeleteSharedExpenseRequest]) (*connect.Response[DeleteSharedExpenseResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteSharedExpense request received", "group_id", req.Msg.GroupID, "expense_id", req.Msg.ExpenseID)

	if err := s.groups.DeleteGroupExpense(ctx, user, req.Msg.GroupID, req.Msg.ExpenseID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteSharedExpenseResponse{}), nil
}

func (s *GroupService) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	expenses, err := s.groups.GroupExpenses(ctx, user, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	if expenses == nil {
		expenses = []*models.SharedExpense{}
	}
	return connect.NewResponse(&ListExpensesResponse{Expenses: expenses}), nil
}

// GetBalances returns the group's balances, the settlement plan and the
// pending requests.
func (s *GroupService) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	overview, err := s.groups.Overview(ctx, user, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&GetBalancesResponse{
		Balances:  overview.Balances,
		Transfers: overview.Transfers,
		Requests:  overview.Requests,
	}), nil
}

// RequestSettlement records the caller's payment of their planned transfer.
// It stays pending until the creditor confirms it.
func (s *GroupService) RequestSettlement(ctx context.Context, req *connect.Request[RequestSettlementRequest]) (*connect.Response[RequestSettlementResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RequestSettlement request received",
		"group_id", req.Msg.GroupID,
		"debtor", req.Msg.Debtor,
		"creditor", req.Msg.Creditor,
	)

	request, err := s.groups.RequestSettlement(ctx, user, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&RequestSettlementResponse{Request: request}), nil
}

func (s *GroupService) ConfirmSettlement(ctx context.Context, req *connect.Request[ConfirmSettlementRequest]) (*connect.Response[ConfirmSettlementResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("ConfirmSettlement request received",
		"group_id", req.Msg.GroupID,
		"creditor", req.Msg.Creditor,
		"debtor", req.Msg.Debtor,
	)

	request, err := s.groups.ConfirmSettlement(ctx, user, req.Msg.GroupID, req.Msg.Creditor, req.Msg.Debtor)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&ConfirmSettlementResponse{Request: request}), nil
}

// SettleExternalDebt lets the admin record an external member's payment.
func (s *GroupService) SettleExternalDebt(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SettleExternalDebt request received", "group_id", req.Msg.GroupID, "debtor", req.Msg.Debtor)

	payment, err := s.groups.SettleExternalDebtAdmin(ctx, user, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&SettleResponse{Payment: payment}), nil
}

// SettleDebtToExternal lets the admin record a payment to an external member.
func (s *GroupService) SettleDebtToExternal(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("SettleDebtToExternal request received", "group_id", req.Msg.GroupID, "creditor", req.Msg.Creditor)

	payment, err := s.groups.SettleDebtToExternal(ctx, user, req.Msg.GroupID, req.Msg.Debtor, req.Msg.Creditor)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&SettleResponse{Payment: payment}), nil
}

func (s *GroupService) ListSettlementRequests(ctx context.Context, req *connect.Request[ListSettlementRequestsRequest]) (*connect.Response[ListSettlementRequestsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := s.groups.SettlementRequests(ctx, user, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}
	if requests == nil {
		requests = []*models.SettlementRequest{}
	}
	return connect.NewResponse(&ListSettlementRequestsResponse{Requests: requests}), nil
}
