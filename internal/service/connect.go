package service

import (
	"net/http"

	"connectrpc.com/connect"
)

const (
	AuthServiceName   = "splitledger.v1.AuthService"
	GroupServiceName  = "splitledger.v1.GroupService"
	LedgerServiceName = "splitledger.v1.LedgerService"
)

// Fully-qualified procedure names, used as HTTP paths.
const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"

	GroupServiceCreateGroupProcedure            = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure               = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure             = "/" + GroupServiceName + "/ListGroups"
	GroupServiceDeleteGroupProcedure            = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceAddMemberProcedure              = "/" + GroupServiceName + "/AddMember"
	GroupServiceRemoveMemberProcedure           = "/" + GroupServiceName + "/RemoveMember"
	GroupServiceListMembersProcedure            = "/" + GroupServiceName + "/ListMembers"
	GroupServiceAddSharedExpenseProcedure       = "/" + GroupServiceName + "/AddSharedExpense"
	GroupServiceDeleteSharedExpenseProcedure    = "/" + GroupServiceName + "/DeleteSharedExpense"
	GroupServiceListExpensesProcedure           = "/" + GroupServiceName + "/ListExpenses"
	GroupServiceGetBalancesProcedure            = "/" + GroupServiceName + "/GetBalances"
	GroupServiceRequestSettlementProcedure      = "/" + GroupServiceName + "/RequestSettlement"
	GroupServiceConfirmSettlementProcedure      = "/" + GroupServiceName + "/ConfirmSettlement"
	GroupServiceSettleExternalDebtProcedure     = "/" + GroupServiceName + "/SettleExternalDebt"
	GroupServiceSettleDebtToExternalProcedure   = "/" + GroupServiceName + "/SettleDebtToExternal"
	GroupServiceListSettlementRequestsProcedure = "/" + GroupServiceName + "/ListSettlementRequests"

	LedgerServiceAddMovementProcedure        = "/" + LedgerServiceName + "/AddMovement"
	LedgerServiceDeleteMovementProcedure     = "/" + LedgerServiceName + "/DeleteMovement"
	LedgerServiceListMovementsProcedure      = "/" + LedgerServiceName + "/ListMovements"
	LedgerServiceGetLockedMovementsProcedure = "/" + LedgerServiceName + "/GetLockedMovements"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
}

// NewAuthServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(AuthServiceRegisterProcedure, connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...))
	mux.Handle(AuthServiceLoginProcedure, connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...))
	mux.Handle(AuthServiceGetCurrentUserProcedure, connect.NewUnaryHandler(AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser, opts...))
	return "/" + AuthServiceName + "/", mux
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc *GroupService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(GroupServiceCreateGroupProcedure, connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...))
	mux.Handle(GroupServiceGetGroupProcedure, connect.NewUnaryHandler(GroupServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(GroupServiceListGroupsProcedure, connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(GroupServiceDeleteGroupProcedure, connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	mux.Handle(GroupServiceAddMemberProcedure, connect.NewUnaryHandler(GroupServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(GroupServiceRemoveMemberProcedure, connect.NewUnaryHandler(GroupServiceRemoveMemberProcedure, svc.RemoveMember, opts...))
	mux.Handle(GroupServiceListMembersProcedure, connect.NewUnaryHandler(GroupServiceListMembersProcedure, svc.ListMembers, opts...))
	mux.Handle(GroupServiceAddSharedExpenseProcedure, connect.NewUnaryHandler(GroupServiceAddSharedExpenseProcedure, svc.AddSharedExpense, opts...))
	mux.Handle(GroupServiceDeleteSharedExpenseProcedure, connect.NewUnaryHandler(GroupServiceDeleteSharedExpenseProcedure, svc.DeleteSharedExpense, opts...))
	mux.Handle(GroupServiceListExpensesProcedure, connect.NewUnaryHandler(GroupServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(GroupServiceGetBalancesProcedure, connect.NewUnaryHandler(GroupServiceGetBalancesProcedure, svc.GetBalances, opts...))
	mux.Handle(GroupServiceRequestSettlementProcedure, connect.NewUnaryHandler(GroupServiceRequestSettlementProcedure, svc.RequestSettlement, opts...))
	mux.Handle(GroupServiceConfirmSettlementProcedure, connect.NewUnaryHandler(GroupServiceConfirmSettlementProcedure, svc.ConfirmSettlement, opts...))
	mux.Handle(GroupServiceSettleExternalDebtProcedure, connect.NewUnaryHandler(GroupServiceSettleExternalDebtProcedure, svc.SettleExternalDebt, opts...))
	mux.Handle(GroupServiceSettleDebtToExternalProcedure, connect.NewUnaryHandler(GroupServiceSettleDebtToExternalProcedure, svc.SettleDebtToExternal, opts...))
	mux.Handle(GroupServiceListSettlementRequestsProcedure, connect.NewUnaryHandler(GroupServiceListSettlementRequestsProcedure, svc.ListSettlementRequests, opts...))
	return "/" + GroupServiceName + "/", mux
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(LedgerServiceAddMovementProcedure, connect.NewUnaryHandler(LedgerServiceAddMovementProcedure, svc.AddMovement, opts...))
	mux.Handle(LedgerServiceDeleteMovementProcedure, connect.NewUnaryHandler(LedgerServiceDeleteMovementProcedure, svc.DeleteMovement, opts...))
	mux.Handle(LedgerServiceListMovementsProcedure, connect.NewUnaryHandler(LedgerServiceListMovementsProcedure, svc.ListMovements, opts...))
	mux.Handle(LedgerServiceGetLockedMovementsProcedure, connect.NewUnaryHandler(LedgerServiceGetLockedMovementsProcedure, svc.GetLockedMovements, opts...))
	return "/" + LedgerServiceName + "/", mux
}
