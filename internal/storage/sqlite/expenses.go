package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const expenseColumns = `id, group_id, kind, amount, description, date, payer_kind, payer_ref, movement_id, created_by, created_at`

// CreateSharedExpense persists a shared expense together with its backing
// movement in one transaction.
func (s *SQLiteStore) CreateSharedExpense(ctx context.Context, exp *models.SharedExpense, mv *models.Movement) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return insertExpenseWithMovement(ctx, tx, exp, mv)
	})
}

func insertExpenseWithMovement(ctx context.Context, tx *sql.Tx, exp *models.SharedExpense, mv *models.Movement) error {
	if err := insertMovement(ctx, tx, mv); err != nil {
		return err
	}
	exp.MovementID = mv.ID

	// Generate ID if not set
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	if exp.CreatedAt == 0 {
		exp.CreatedAt = time.Now().Unix()
	}

	_, err := tx.ExecContext(ctx,
		`INSERT INTO group_expenses (`+expenseColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exp.ID, exp.GroupID, string(exp.Kind), exp.Amount, exp.Description,
		exp.Date.Format(dateLayout), string(exp.Payer.Kind), exp.Payer.Ref,
		exp.MovementID, exp.CreatedBy, exp.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert shared expense: %w", err)
	}

	for i, p := range exp.Participants {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, kind, ref, position) VALUES (?, ?, ?, ?)",
			exp.ID, string(p.Kind), p.Ref, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	return nil
}

// GetSharedExpense retrieves a single shared expense of a group.
func (s *SQLiteStore) GetSharedExpense(ctx context.Context, groupID, expenseID string) (*models.SharedExpense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM group_expenses WHERE id = ? AND group_id = ?`,
		expenseID, groupID,
	)
	exp, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, ref FROM expense_participants WHERE expense_id = ? ORDER BY position",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, ref string
		if err := rows.Scan(&kind, &ref); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		exp.Participants = append(exp.Participants, models.MemberID{Kind: models.MemberKind(kind), Ref: ref})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return exp, nil
}

// ListSharedExpenses retrieves every shared-expense record of a group,
// settlement payments included, oldest first.
func (s *SQLiteStore) ListSharedExpenses(ctx context.Context, groupID string) ([]*models.SharedExpense, error) {
	return listSharedExpenses(ctx, s.db, groupID)
}

func listSharedExpenses(ctx context.Context, q queryer, groupID string) ([]*models.SharedExpense, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM group_expenses WHERE group_id = ? ORDER BY date, created_at, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shared expenses: %w", err)
	}

	var expenses []*models.SharedExpense
	byID := make(map[string]*models.SharedExpense)
	for rows.Next() {
		exp, err := scanExpense(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		expenses = append(expenses, exp)
		byID[exp.ID] = exp
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shared expenses: %w", err)
	}

	partRows, err := q.QueryContext(ctx,
		`SELECT p.expense_id, p.kind, p.ref
		 FROM expense_participants p
		 JOIN group_expenses e ON e.id = p.expense_id
		 WHERE e.group_id = ?
		 ORDER BY p.expense_id, p.position`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer partRows.Close()

	for partRows.Next() {
		var expenseID, kind, ref string
		if err := partRows.Scan(&expenseID, &kind, &ref); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if exp, ok := byID[expenseID]; ok {
			exp.Participants = append(exp.Participants, models.MemberID{Kind: models.MemberKind(kind), Ref: ref})
		}
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return expenses, nil
}

// DeleteSharedExpense removes a shared expense by deleting its backing
// movement; the expense row and its participants cascade.
func (s *SQLiteStore) DeleteSharedExpense(ctx context.Context, groupID, expenseID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var movementID string
		err := tx.QueryRowContext(ctx,
			"SELECT movement_id FROM group_expenses WHERE id = ? AND group_id = ?",
			expenseID, groupID,
		).Scan(&movementID)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to get shared expense: %w", err)
		}

		return deleteUnlockedMovement(ctx, tx, movementID)
	})
}

func scanExpense(row interface{ Scan(...any) error }) (*models.SharedExpense, error) {
	exp := &models.SharedExpense{}
	var kind, date, payerKind string
	err := row.Scan(&exp.ID, &exp.GroupID, &kind, &exp.Amount, &exp.Description, &date,
		&payerKind, &exp.Payer.Ref, &exp.MovementID, &exp.CreatedBy, &exp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan shared expense: %w", err)
	}

	if exp.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	exp.Kind = models.ExpenseKind(kind)
	exp.Payer.Kind = models.MemberKind(payerKind)
	return exp, nil
}
