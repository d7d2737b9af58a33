package service

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, strings.TrimRight(baseURL, "/")+procedure, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithJSON()}, opts...)
}

// AuthServiceClient is a client for the splitledger.v1.AuthService service.
type AuthServiceClient struct {
	register       *connect.Client[RegisterRequest, RegisterResponse]
	login          *connect.Client[LoginRequest, LoginResponse]
	getCurrentUser *connect.Client[GetCurrentUserRequest, GetCurrentUserResponse]
}

// NewAuthServiceClient constructs a client for the AuthService. baseURL is
// the server's scheme and host, e.g. http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	opts = clientOptions(opts)
	return &AuthServiceClient{
		register:       newClient[RegisterRequest, RegisterResponse](httpClient, baseURL, AuthServiceRegisterProcedure, opts),
		login:          newClient[LoginRequest, LoginResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		getCurrentUser: newClient[GetCurrentUserRequest, GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[GetCurrentUserRequest]) (*connect.Response[GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

// GroupServiceClient is a client for the splitledger.v1.GroupService service.
type GroupServiceClient struct {
	createGroup            *connect.Client[CreateGroupRequest, CreateGroupResponse]
	getGroup               *connect.Client[GetGroupRequest, GetGroupResponse]
	listGroups             *connect.Client[ListGroupsRequest, ListGroupsResponse]
	deleteGroup            *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	addMember              *connect.Client[AddMemberRequest, AddMemberResponse]
	removeMember           *connect.Client[RemoveMemberRequest, RemoveMemberResponse]
	listMembers            *connect.Client[ListMembersRequest, ListMembersResponse]
	addSharedExpense       *connect.Client[AddSharedExpenseRequest, AddSharedExpenseResponse]
	deleteSharedExpense    *connect.Client[DeleteSharedExpenseRequest, DeleteSharedExpenseResponse]
	listExpenses           *connect.Client[ListExpensesRequest, ListExpensesResponse]
	getBalances            *connect.Client[GetBalancesRequest, GetBalancesResponse]
	requestSettlement      *connect.Client[RequestSettlementRequest, RequestSettlementResponse]
	confirmSettlement      *connect.Client[ConfirmSettlementRequest, ConfirmSettlementResponse]
	settleExternalDebt     *connect.Client[SettleRequest, SettleResponse]
	settleDebtToExternal   *connect.Client[SettleRequest, SettleResponse]
	listSettlementRequests *connect.Client[ListSettlementRequestsRequest, ListSettlementRequestsResponse]
}

// NewGroupServiceClient constructs a client for the GroupService.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:            newClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:               newClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		listGroups:             newClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL, GroupServiceListGroupsProcedure, opts),
		deleteGroup:            newClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL, GroupServiceDeleteGroupProcedure, opts),
		addMember:              newClient[AddMemberRequest, AddMemberResponse](httpClient, baseURL, GroupServiceAddMemberProcedure, opts),
		removeMember:           newClient[RemoveMemberRequest, RemoveMemberResponse](httpClient, baseURL, GroupServiceRemoveMemberProcedure, opts),
		listMembers:            newClient[ListMembersRequest, ListMembersResponse](httpClient, baseURL, GroupServiceListMembersProcedure, opts),
		addSharedExpense:       newClient[AddSharedExpenseRequest, AddSharedExpenseResponse](httpClient, baseURL, GroupServiceAddSharedExpenseProcedure, opts),
		deleteSharedExpense:    newClient[DeleteSharedExpenseRequest, DeleteSharedExpenseResponse](httpClient, baseURL, GroupServiceDeleteSharedExpenseProcedure, opts),
		listExpenses:           newClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL, GroupServiceListExpensesProcedure, opts),
		getBalances:            newClient[GetBalancesRequest, GetBalancesResponse](httpClient, baseURL, GroupServiceGetBalancesProcedure, opts),
		requestSettlement:      newClient[RequestSettlementRequest, RequestSettlementResponse](httpClient, baseURL, GroupServiceRequestSettlementProcedure, opts),
		confirmSettlement:      newClient[ConfirmSettlementRequest, ConfirmSettlementResponse](httpClient, baseURL, GroupServiceConfirmSettlementProcedure, opts),
		settleExternalDebt:     newClient[SettleRequest, SettleResponse](httpClient, baseURL, GroupServiceSettleExternalDebtProcedure, opts),
		settleDebtToExternal:   newClient[SettleRequest, SettleResponse](httpClient, baseURL, GroupServiceSettleDebtToExternalProcedure, opts),
		listSettlementRequests: newClient[ListSettlementRequestsRequest, ListSettlementRequestsResponse](httpClient, baseURL, GroupServiceListSettlementRequestsProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[RemoveMemberRequest]) (*connect.Response[RemoveMemberResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListMembers(ctx context.Context, req *connect.Request[ListMembersRequest]) (*connect.Response[ListMembersResponse], error) {
	return c.listMembers.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddSharedExpense(ctx context.Context, req *connect.Request[AddSharedExpenseRequest]) (*connect.Response[AddSharedExpenseResponse], error) {
	return c.addSharedExpense.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteSharedExpense(ctx context.Context, req *connect.Request[DeleteSharedExpenseRequest]) (*connect.Response[DeleteSharedExpenseResponse], error) {
	return c.deleteSharedExpense.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetBalances(ctx context.Context, req *connect.Request[GetBalancesRequest]) (*connect.Response[GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RequestSettlement(ctx context.Context, req *connect.Request[RequestSettlementRequest]) (*connect.Response[RequestSettlementResponse], error) {
	return c.requestSettlement.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ConfirmSettlement(ctx context.Context, req *connect.Request[ConfirmSettlementRequest]) (*connect.Response[ConfirmSettlementResponse], error) {
	return c.confirmSettlement.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SettleExternalDebt(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settleExternalDebt.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SettleDebtToExternal(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settleDebtToExternal.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListSettlementRequests(ctx context.Context, req *connect.Request[ListSettlementRequestsRequest]) (*connect.Response[ListSettlementRequestsResponse], error) {
	return c.listSettlementRequests.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for the splitledger.v1.LedgerService service.
type LedgerServiceClient struct {
	addMovement        *connect.Client[AddMovementRequest, AddMovementResponse]
	deleteMovement     *connect.Client[DeleteMovementRequest, DeleteMovementResponse]
	listMovements      *connect.Client[ListMovementsRequest, ListMovementsResponse]
	getLockedMovements *connect.Client[GetLockedMovementsRequest, GetLockedMovementsResponse]
}

// NewLedgerServiceClient constructs a client for the LedgerService.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = clientOptions(opts)
	return &LedgerServiceClient{
		addMovement:        newClient[AddMovementRequest, AddMovementResponse](httpClient, baseURL, LedgerServiceAddMovementProcedure, opts),
		deleteMovement:     newClient[DeleteMovementRequest, DeleteMovementResponse](httpClient, baseURL, LedgerServiceDeleteMovementProcedure, opts),
		listMovements:      newClient[ListMovementsRequest, ListMovementsResponse](httpClient, baseURL, LedgerServiceListMovementsProcedure, opts),
		getLockedMovements: newClient[GetLockedMovementsRequest, GetLockedMovementsResponse](httpClient, baseURL, LedgerServiceGetLockedMovementsProcedure, opts),
	}
}

func (c *LedgerServiceClient) AddMovement(ctx context.Context, req *connect.Request[AddMovementRequest]) (*connect.Response[AddMovementResponse], error) {
	return c.addMovement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteMovement(ctx context.Context, req *connect.Request[DeleteMovementRequest]) (*connect.Response[DeleteMovementResponse], error) {
	return c.deleteMovement.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListMovements(ctx context.Context, req *connect.Request[ListMovementsRequest]) (*connect.Response[ListMovementsResponse], error) {
	return c.listMovements.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetLockedMovements(ctx context.Context, req *connect.Request[GetLockedMovementsRequest]) (*connect.Response[GetLockedMovementsResponse], error) {
	return c.getLockedMovements.CallUnary(ctx, req)
}
