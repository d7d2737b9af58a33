package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateSettlementRequest moves a debtor/creditor pair to REQUESTED and
// records the payment, all in one transaction. The amount is computed inside
// the transaction, then the request row is inserted with ON CONFLICT DO
// NOTHING: if a request is already pending no row is written and the whole
// transaction is rolled back.
func (s *SQLiteStore) CreateSettlementRequest(ctx context.Context, req *models.SettlementRequest, exp *models.SharedExpense, mv *models.Movement, amount storage.SettlementAmount) error {
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		if amount != nil {
			if err := settleAmount(ctx, tx, exp, mv, amount); err != nil {
				return err
			}
			req.Amount = exp.Amount
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO settlement_requests
			     (group_id, debtor_kind, debtor_ref, creditor_kind, creditor_ref,
			      amount, expense_id, movement_id, requested_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, '', '', ?, ?)
			 ON CONFLICT DO NOTHING`,
			req.GroupID, string(req.Debtor.Kind), req.Debtor.Ref,
			string(req.Creditor.Kind), req.Creditor.Ref,
			req.Amount, req.RequestedBy, req.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert settlement request: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("settlement %s -> %s already pending: %w", req.Debtor, req.Creditor, storage.ErrConflict)
		}

		if err := insertExpenseWithMovement(ctx, tx, exp, mv); err != nil {
			return err
		}
		req.ExpenseID = exp.ID
		req.MovementID = mv.ID

		_, err = tx.ExecContext(ctx,
			`UPDATE settlement_requests SET expense_id = ?, movement_id = ?
			 WHERE group_id = ? AND debtor_kind = ? AND debtor_ref = ?
			   AND creditor_kind = ? AND creditor_ref = ?`,
			req.ExpenseID, req.MovementID, req.GroupID,
			string(req.Debtor.Kind), req.Debtor.Ref, string(req.Creditor.Kind), req.Creditor.Ref,
		)
		if err != nil {
			return fmt.Errorf("failed to link settlement payment: %w", err)
		}
		return nil
	})
}

// ClearSettlementRequest moves a pair from REQUESTED back to NONE with a
// single DELETE, returning the cleared request.
func (s *SQLiteStore) ClearSettlementRequest(ctx context.Context, groupID string, debtor, creditor models.MemberID) (*models.SettlementRequest, error) {
	req := &models.SettlementRequest{GroupID: groupID, Debtor: debtor, Creditor: creditor}
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM settlement_requests
		 WHERE group_id = ? AND debtor_kind = ? AND debtor_ref = ?
		   AND creditor_kind = ? AND creditor_ref = ?
		 RETURNING amount, expense_id, movement_id, requested_by, created_at`,
		groupID, string(debtor.Kind), debtor.Ref, string(creditor.Kind), creditor.Ref,
	).Scan(&req.Amount, &req.ExpenseID, &req.MovementID, &req.RequestedBy, &req.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("settlement %s -> %s: %w", debtor, creditor, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to clear settlement request: %w", err)
	}
	return req, nil
}

// ListSettlementRequests retrieves the pending requests of a group.
func (s *SQLiteStore) ListSettlementRequests(ctx context.Context, groupID string) ([]*models.SettlementRequest, error) {
	return listSettlementRequests(ctx, s.db, groupID)
}

func listSettlementRequests(ctx context.Context, q queryer, groupID string) ([]*models.SettlementRequest, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT debtor_kind, debtor_ref, creditor_kind, creditor_ref,
		        amount, expense_id, movement_id, requested_by, created_at
		 FROM settlement_requests WHERE group_id = ? ORDER BY created_at, debtor_ref, creditor_ref`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlement requests: %w", err)
	}
	defer rows.Close()

	var requests []*models.SettlementRequest
	for rows.Next() {
		req := &models.SettlementRequest{GroupID: groupID}
		var debtorKind, creditorKind string
		if err := rows.Scan(&debtorKind, &req.Debtor.Ref, &creditorKind, &req.Creditor.Ref,
			&req.Amount, &req.ExpenseID, &req.MovementID, &req.RequestedBy, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan settlement request: %w", err)
		}
		req.Debtor.Kind = models.MemberKind(debtorKind)
		req.Creditor.Kind = models.MemberKind(creditorKind)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlement requests: %w", err)
	}
	return requests, nil
}

// RecordSettlement writes an already-confirmed settlement payment. The
// payment's payer is the debtor and its only participant the creditor.
func (s *SQLiteStore) RecordSettlement(ctx context.Context, exp *models.SharedExpense, mv *models.Movement, amount storage.SettlementAmount) error {
	if len(exp.Participants) != 1 {
		return fmt.Errorf("settlement payment needs exactly one creditor, got %d", len(exp.Participants))
	}
	debtor, creditor := exp.Payer, exp.Participants[0]

	return s.inTx(ctx, func(tx *sql.Tx) error {
		var pending bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (
			     SELECT 1 FROM settlement_requests
			     WHERE group_id = ? AND debtor_kind = ? AND debtor_ref = ?
			       AND creditor_kind = ? AND creditor_ref = ?
			 )`,
			exp.GroupID, string(debtor.Kind), debtor.Ref, string(creditor.Kind), creditor.Ref,
		).Scan(&pending)
		if err != nil {
			return fmt.Errorf("failed to check pending settlement: %w", err)
		}
		if pending {
			return fmt.Errorf("settlement %s -> %s already pending: %w", debtor, creditor, storage.ErrConflict)
		}

		if err := settleAmount(ctx, tx, exp, mv, amount); err != nil {
			return err
		}
		return insertExpenseWithMovement(ctx, tx, exp, mv)
	})
}

// settleAmount reads the group's records on tx and stamps the amount computed
// from them on the payment. A nil amount keeps the payment as given.
func settleAmount(ctx context.Context, tx *sql.Tx, exp *models.SharedExpense, mv *models.Movement, amount storage.SettlementAmount) error {
	if amount == nil {
		return nil
	}
	expenses, err := listSharedExpenses(ctx, tx, exp.GroupID)
	if err != nil {
		return err
	}
	requests, err := listSettlementRequests(ctx, tx, exp.GroupID)
	if err != nil {
		return err
	}
	value, err := amount(expenses, requests)
	if err != nil {
		return err
	}
	exp.Amount = value
	mv.Amount = value
	return nil
}
