package groups

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// NewMovement is the input of AddMovement.
type NewMovement struct {
	Amount     decimal.Decimal
	Kind       models.MovementKind // income or expense
	CategoryID string
	Date       time.Time // zero means today
	Notes      string
}

// AddMovement records a personal income or expense outside any group.
func (m *Manager) AddMovement(ctx context.Context, actor string, in NewMovement) (*models.Movement, error) {
	if !in.Amount.IsPositive() {
		return nil, validationError("amount must be positive, got %s", in.Amount)
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, validationError("amount %s has more than two decimals", in.Amount)
	}
	if in.Kind != models.MovementIncome && in.Kind != models.MovementExpense {
		return nil, validationError("movement kind must be income or expense, got %q", in.Kind)
	}
	if err := m.checkCategory(ctx, in.CategoryID, actor); err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = m.today()
	}
	mv := &models.Movement{
		OwnerID:    actor,
		Amount:     in.Amount,
		Kind:       in.Kind,
		CategoryID: in.CategoryID,
		Date:       date,
		Notes:      in.Notes,
	}
	if err := m.store.InsertMovement(ctx, mv); err != nil {
		return nil, storageError(err)
	}

	m.logger.Info("Movement added", "movement_id", mv.ID, "kind", mv.Kind, "owner_id", actor)
	return mv, nil
}

// DeleteMovement deletes one of the actor's personal movements. Movements
// backing a shared expense are deleted through the group.
func (m *Manager) DeleteMovement(ctx context.Context, actor, movementID string) error {
	movements, err := m.Movements(ctx, actor)
	if err != nil {
		return err
	}
	var mv *models.Movement
	for _, candidate := range movements {
		if candidate.ID == movementID {
			mv = candidate
			break
		}
	}
	switch {
	case mv == nil:
		return notFound("movement %s", movementID)
	case mv.Locked:
		return conflict("movement %s is locked", movementID)
	case mv.GroupID != "":
		return validationError("movement %s backs a shared expense of group %s", movementID, mv.GroupID)
	}

	if err := m.store.DeleteMovement(ctx, mv.ID); err != nil {
		if errors.Is(err, storage.ErrLocked) {
			return conflict("movement %s is locked", movementID)
		}
		return storageError(err)
	}

	m.logger.Info("Movement deleted", "movement_id", mv.ID, "owner_id", actor)
	return nil
}

// Movements lists the actor's personal ledger, newest first.
func (m *Manager) Movements(ctx context.Context, actor string) ([]*models.Movement, error) {
	movements, err := m.store.ListMovementsForUser(ctx, actor)
	if err != nil {
		return nil, storageError(err)
	}
	return movements, nil
}

// PersonalBalance is income minus expenses over the actor's movements.
// Transfers between guests are ignored.
func (m *Manager) PersonalBalance(ctx context.Context, actor string) (decimal.Decimal, error) {
	movements, err := m.Movements(ctx, actor)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, mv := range movements {
		total = total.Add(mv.Signed())
	}
	return total, nil
}

// LockedMovements returns the IDs of the actor's movements that cannot be
// edited or deleted.
func (m *Manager) LockedMovements(ctx context.Context, actor string) ([]string, error) {
	ids, err := m.store.LockedMovements(ctx, actor)
	if err != nil {
		return nil, storageError(err)
	}
	return ids, nil
}
