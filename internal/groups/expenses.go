package groups

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// NewExpense is the input of AddSharedExpense.
type NewExpense struct {
	Payer        models.MemberID
	Amount       decimal.Decimal
	Description  string
	Date         time.Time // zero means today
	Participants []models.MemberID
	CategoryID   string // optional, must belong to the movement owner
}

// AddSharedExpense admits a shared expense. It writes one movement owned by
// the payer, tagged with the group and carrying the participant list, and the
// expense record itself, in one transaction. When the payer is external the
// movement belongs to the actor.
func (m *Manager) AddSharedExpense(ctx context.Context, actor, groupID string, in NewExpense) (*models.SharedExpense, *models.Movement, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, nil, err
	}

	if !in.Amount.IsPositive() {
		return nil, nil, validationError("amount must be positive, got %s", in.Amount)
	}
	if !in.Amount.Equal(in.Amount.Round(2)) {
		return nil, nil, validationError("amount %s has more than two decimals", in.Amount)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, nil, validationError("description is required")
	}

	participants, err := memberList(group, in.Participants)
	if err != nil {
		return nil, nil, err
	}

	if err := in.Payer.Validate(); err != nil {
		return nil, nil, validationError("payer: %v", err)
	}
	if !group.HasMember(in.Payer) {
		return nil, nil, validationError("payer %s is not a member of the group", in.Payer)
	}

	// A guest's payment is kept in the ledger of whoever records it, as a
	// transfer that leaves their own balance untouched.
	owner, kind := in.Payer.Ref, models.MovementExpense
	if in.Payer.IsExternal() {
		owner, kind = actor, models.MovementTransfer
	}

	if err := m.checkCategory(ctx, in.CategoryID, owner); err != nil {
		return nil, nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = m.today()
	}

	mv := &models.Movement{
		OwnerID:      owner,
		Amount:       in.Amount,
		Kind:         kind,
		CategoryID:   in.CategoryID,
		Date:         date,
		Notes:        description,
		GroupID:      group.ID,
		Participants: participants,
	}
	exp := &models.SharedExpense{
		GroupID:      group.ID,
		Kind:         models.KindExpense,
		Amount:       in.Amount,
		Description:  description,
		Date:         date,
		Payer:        in.Payer,
		Participants: participants,
		CreatedBy:    actor,
	}

	if err := m.store.CreateSharedExpense(ctx, exp, mv); err != nil {
		m.logger.Error("AddSharedExpense failed", "group_id", group.ID, "error", err)
		return nil, nil, storageError(err)
	}

	m.metrics.ExpenseAdded()
	m.logger.Info("Shared expense added",
		"group_id", group.ID,
		"expense_id", exp.ID,
		"amount", exp.Amount.StringFixed(2),
		"participants", len(participants),
	)
	m.publish(ctx, events.ExpenseAdded, group.ID, actor, exp)

	return exp, mv, nil
}

// DeleteGroupExpense deletes a shared expense and its movement. The creator,
// the payer and the admin may delete; locked expenses cannot be deleted by
// anyone.
func (m *Manager) DeleteGroupExpense(ctx context.Context, actor, groupID, expenseID string) error {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return err
	}

	exp, err := m.store.GetSharedExpense(ctx, group.ID, expenseID)
	if err != nil {
		return storageError(err)
	}

	if exp.CreatedBy != actor && exp.Payer != models.InternalMember(actor) && !group.IsAdmin(actor) {
		return unauthorized("only the creator, the payer or the admin can delete this expense")
	}

	if err := m.store.DeleteSharedExpense(ctx, group.ID, exp.ID); err != nil {
		if errors.Is(err, storage.ErrLocked) {
			m.metrics.Conflict("DeleteSharedExpense")
			return conflict("expense %s is locked", exp.ID)
		}
		return storageError(err)
	}

	m.metrics.ExpenseDeleted()
	m.logger.Info("Shared expense deleted", "group_id", group.ID, "expense_id", exp.ID)
	m.publish(ctx, events.ExpenseDeleted, group.ID, actor, map[string]string{"expense_id": exp.ID})
	return nil
}

// checkCategory accepts an empty ID, or a category owned by owner.
func (m *Manager) checkCategory(ctx context.Context, categoryID, owner string) error {
	if categoryID == "" {
		return nil
	}
	category, err := m.store.GetCategory(ctx, categoryID)
	if errors.Is(err, storage.ErrNotFound) {
		return validationError("unknown category %s", categoryID)
	}
	if err != nil {
		return storageError(err)
	}
	if category.OwnerID != owner {
		return validationError("category %s does not belong to %s", categoryID, owner)
	}
	return nil
}

// memberList de-duplicates ids, keeping first-seen order, and checks every
// one belongs to the group.
func memberList(group *models.Group, ids []models.MemberID) ([]models.MemberID, error) {
	seen := make(map[models.MemberID]bool, len(ids))
	var out []models.MemberID
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if err := id.Validate(); err != nil {
			return nil, validationError("participant: %v", err)
		}
		if !group.HasMember(id) {
			return nil, validationError("participant %s is not a member of the group", id)
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil, validationError("at least one participant is required")
	}
	return out, nil
}
