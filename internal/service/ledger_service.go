package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/models"
)

// LedgerService exposes the caller's personal movements.
type LedgerService struct {
	groups *groups.Manager
	logger *slog.Logger
}

func NewLedgerService(manager *groups.Manager, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LedgerService{groups: manager, logger: logger}
}

// AddMovement records a personal income or expense.
func (s *LedgerService) AddMovement(ctx context.Context, req *connect.Request[AddMovementRequest]) (*connect.Response[AddMovementResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("AddMovement request received", "kind", req.Msg.Kind, "amount", req.Msg.Amount.String())

	in := groups.NewMovement{
		Amount:     req.Msg.Amount,
		Kind:       req.Msg.Kind,
		CategoryID: req.Msg.CategoryID,
		Notes:      req.Msg.Notes,
	}
	if req.Msg.Date != "" {
		date, err := time.Parse(dateLayout, req.Msg.Date)
		if err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		in.Date = date
	}

	mv, err := s.groups.AddMovement(ctx, user, in)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&AddMovementResponse{Movement: mv}), nil
}

func (s *LedgerService) DeleteMovement(ctx context.Context, req *connect.Request[DeleteMovementRequest]) (*connect.Response[DeleteMovementResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteMovement request received", "movement_id", req.Msg.MovementID)

	if err := s.groups.DeleteMovement(ctx, user, req.Msg.MovementID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&DeleteMovementResponse{}), nil
}

// ListMovements returns the caller's movements and their signed total.
func (s *LedgerService) ListMovements(ctx context.Context, req *connect.Request[ListMovementsRequest]) (*connect.Response[ListMovementsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := s.groups.Movements(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	balance, err := s.groups.PersonalBalance(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	if movements == nil {
		movements = []*models.Movement{}
	}
	return connect.NewResponse(&ListMovementsResponse{Movements: movements, Balance: balance}), nil
}

// GetLockedMovements lists the caller's movements that cannot be edited or
// deleted because a settlement created them.
func (s *LedgerService) GetLockedMovements(ctx context.Context, req *connect.Request[GetLockedMovementsRequest]) (*connect.Response[GetLockedMovementsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	ids, err := s.groups.LockedMovements(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return connect.NewResponse(&GetLockedMovementsResponse{MovementIDs: ids}), nil
}
