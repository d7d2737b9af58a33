package groups

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/shopspring/decimal"
)

// Notes written on settlement movements.
const (
	paymentNote  = "Gasto"
	incomeNote   = "Ingreso"
	transferNote = "Transferencia"
)

// RequestSettlement records that debtor paid creditor the amount planned for
// the pair and moves the pair to REQUESTED. The payment counts towards
// balances only once ConfirmSettlement is called. Only the debtor can
// request, and only for an internal debtor.
//
// A second request on a pending pair fails with ErrAlreadyPending and writes
// nothing. The amount is recomputed inside the write transaction; a pair
// settled in the meantime fails with ErrStateConflict.
func (m *Manager) RequestSettlement(ctx context.Context, actor, groupID string, debtor, creditor models.MemberID) (*models.SettlementRequest, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if err := checkPair(group, debtor, creditor); err != nil {
		return nil, err
	}
	if debtor.IsExternal() {
		return nil, validationError("external debts are settled by the admin")
	}
	if debtor.Ref != actor {
		return nil, unauthorized("only %s can declare this payment", debtor)
	}

	amount, err := m.plannedAmount(ctx, group.ID, debtor, creditor)
	if err != nil {
		return nil, err
	}

	req := &models.SettlementRequest{
		GroupID:     group.ID,
		Debtor:      debtor,
		Creditor:    creditor,
		Amount:      amount,
		RequestedBy: actor,
	}
	exp, mv := m.settlementRecords(group.ID, actor, debtor, creditor, amount,
		debtor.Ref, models.MovementExpense, paymentNote)

	if err := m.store.CreateSettlementRequest(ctx, req, exp, mv, settleAmount(debtor, creditor)); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			m.metrics.Conflict("RequestSettlement")
			m.logger.Info("Settlement already pending", "group_id", group.ID, "debtor", debtor, "creditor", creditor)
			return nil, ErrAlreadyPending
		case errors.Is(err, ErrStateConflict):
			m.metrics.Conflict("RequestSettlement")
			m.logger.Info("Settlement plan changed", "group_id", group.ID, "debtor", debtor, "creditor", creditor)
			return nil, err
		case errors.Is(err, ErrPersistence):
			m.logger.Error("RequestSettlement failed", "group_id", group.ID, "error", err)
			return nil, err
		}
		m.logger.Error("RequestSettlement failed", "group_id", group.ID, "error", err)
		return nil, storageError(err)
	}

	m.metrics.Settlement("requested")
	m.logger.Info("Settlement requested",
		"group_id", group.ID,
		"debtor", debtor,
		"creditor", creditor,
		"amount", req.Amount.StringFixed(2),
	)
	m.publish(ctx, events.SettlementRequested, group.ID, actor, req)
	return req, nil
}

// ConfirmSettlement moves a REQUESTED pair back to NONE, making the recorded
// payment count. Between two account holders only the creditor confirms; as
// soon as a guest is involved only the admin does.
func (m *Manager) ConfirmSettlement(ctx context.Context, actor, groupID string, creditor, debtor models.MemberID) (*models.SettlementRequest, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if err := checkPair(group, debtor, creditor); err != nil {
		return nil, err
	}

	if debtor.IsInternal() && creditor.IsInternal() {
		if creditor.Ref != actor {
			return nil, unauthorized("only %s can confirm this payment", creditor)
		}
	} else if !group.IsAdmin(actor) {
		return nil, unauthorized("payments involving external members are confirmed by the admin")
	}

	req, err := m.store.ClearSettlementRequest(ctx, group.ID, debtor, creditor)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			m.metrics.Conflict("ConfirmSettlement")
			return nil, conflict("no pending settlement from %s to %s", debtor, creditor)
		}
		return nil, storageError(err)
	}

	m.metrics.Settlement("confirmed")
	m.logger.Info("Settlement confirmed",
		"group_id", group.ID,
		"debtor", debtor,
		"creditor", creditor,
		"amount", req.Amount.StringFixed(2),
	)
	m.publish(ctx, events.SettlementConfirmed, group.ID, actor, req)
	return req, nil
}

// SettleExternalDebtAdmin records, in one admin action, that an external
// debtor paid creditor the planned amount. The movement goes to the creditor
// as income, or to the admin as a transfer when the creditor is external too.
func (m *Manager) SettleExternalDebtAdmin(ctx context.Context, actor, groupID string, debtor, creditor models.MemberID) (*models.SharedExpense, error) {
	group, err := m.loadGroupAsAdmin(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if err := checkPair(group, debtor, creditor); err != nil {
		return nil, err
	}
	if !debtor.IsExternal() {
		return nil, validationError("%s is not an external member", debtor)
	}

	owner, kind, note := creditor.Ref, models.MovementIncome, incomeNote
	if creditor.IsExternal() {
		owner, kind, note = group.AdminID, models.MovementTransfer, transferNote
	}
	return m.recordSettlement(ctx, group, actor, debtor, creditor, owner, kind, note)
}

// SettleDebtToExternal records, in one admin action, that an account holder
// paid an external creditor the planned amount.
func (m *Manager) SettleDebtToExternal(ctx context.Context, actor, groupID string, debtor, creditor models.MemberID) (*models.SharedExpense, error) {
	group, err := m.loadGroupAsAdmin(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if err := checkPair(group, debtor, creditor); err != nil {
		return nil, err
	}
	if !creditor.IsExternal() {
		return nil, validationError("%s is not an external member", creditor)
	}
	if !debtor.IsInternal() {
		return nil, validationError("use SettleExternalDebtAdmin for external debtors")
	}

	return m.recordSettlement(ctx, group, actor, debtor, creditor, debtor.Ref, models.MovementExpense, paymentNote)
}

func (m *Manager) recordSettlement(ctx context.Context, group *models.Group, actor string, debtor, creditor models.MemberID, owner string, kind models.MovementKind, note string) (*models.SharedExpense, error) {
	amount, err := m.plannedAmount(ctx, group.ID, debtor, creditor)
	if err != nil {
		return nil, err
	}

	exp, mv := m.settlementRecords(group.ID, actor, debtor, creditor, amount, owner, kind, note)
	if err := m.store.RecordSettlement(ctx, exp, mv, settleAmount(debtor, creditor)); err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			m.metrics.Conflict("RecordSettlement")
			return nil, ErrAlreadyPending
		case errors.Is(err, ErrStateConflict):
			m.metrics.Conflict("RecordSettlement")
			m.logger.Info("Settlement plan changed", "group_id", group.ID, "debtor", debtor, "creditor", creditor)
			return nil, err
		case errors.Is(err, ErrPersistence):
			m.logger.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
			return nil, err
		}
		m.logger.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, storageError(err)
	}

	m.metrics.Settlement("recorded")
	m.logger.Info("Settlement recorded",
		"group_id", group.ID,
		"debtor", debtor,
		"creditor", creditor,
		"amount", exp.Amount.StringFixed(2),
	)
	m.publish(ctx, events.SettlementRecorded, group.ID, actor, exp)
	return exp, nil
}

// settlementRecords builds a locked payment: the debtor pays, the creditor is
// the only participant.
func (m *Manager) settlementRecords(groupID, actor string, debtor, creditor models.MemberID, amount decimal.Decimal, owner string, kind models.MovementKind, note string) (*models.SharedExpense, *models.Movement) {
	date := m.today()
	participants := []models.MemberID{creditor}

	mv := &models.Movement{
		OwnerID:      owner,
		Amount:       amount,
		Kind:         kind,
		Date:         date,
		Notes:        note,
		GroupID:      groupID,
		Participants: participants,
		Locked:       true,
	}
	exp := &models.SharedExpense{
		GroupID:      groupID,
		Kind:         models.KindSettlement,
		Amount:       amount,
		Description:  note,
		Date:         date,
		Payer:        debtor,
		Participants: participants,
		CreatedBy:    actor,
	}
	return exp, mv
}

// checkPair validates a debtor/creditor pair of group members.
func checkPair(group *models.Group, debtor, creditor models.MemberID) error {
	if err := debtor.Validate(); err != nil {
		return validationError("debtor: %v", err)
	}
	if err := creditor.Validate(); err != nil {
		return validationError("creditor: %v", err)
	}
	if debtor == creditor {
		return validationError("debtor and creditor must differ")
	}
	if !group.HasMember(debtor) {
		return validationError("%s is not a member of the group", debtor)
	}
	if !group.HasMember(creditor) {
		return validationError("%s is not a member of the group", creditor)
	}
	return nil
}
