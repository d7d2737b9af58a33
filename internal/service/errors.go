package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/groups"
	"github.com/mmynk/splitledger/internal/middleware"
)

// connectError maps group errors onto Connect codes.
func connectError(err error) error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	// Before ErrStateConflict, which it wraps.
	case errors.Is(err, groups.ErrAlreadyPending):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, groups.ErrValidation):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, groups.ErrStateConflict):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, groups.ErrUnauthorized):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, groups.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// actor is the acting user, set by the auth interceptor.
func actor(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}
