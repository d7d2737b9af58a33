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

const movementColumns = `id, owner_id, amount, kind, category_id, date, notes, group_id, participants, locked, created_at`

// InsertMovement persists a new movement.
func (s *SQLiteStore) InsertMovement(ctx context.Context, mv *models.Movement) error {
	return insertMovement(ctx, s.db, mv)
}

func insertMovement(ctx context.Context, ex execer, mv *models.Movement) error {
	// Generate ID if not set
	if mv.ID == "" {
		mv.ID = uuid.New().String()
	}
	if mv.CreatedAt == 0 {
		mv.CreatedAt = time.Now().Unix()
	}

	participants, err := encodeParticipants(mv.Participants)
	if err != nil {
		return err
	}

	_, err = ex.ExecContext(ctx,
		`INSERT INTO movements (`+movementColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		mv.ID, mv.OwnerID, mv.Amount, string(mv.Kind), nullString(mv.CategoryID),
		mv.Date.Format(dateLayout), mv.Notes, nullString(mv.GroupID), participants,
		boolToInt(mv.Locked), mv.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement: %w", err)
	}
	return nil
}

// DeleteMovement removes an unlocked movement. A shared expense backed by the
// movement goes with it (ON DELETE CASCADE).
func (s *SQLiteStore) DeleteMovement(ctx context.Context, id string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		return deleteUnlockedMovement(ctx, tx, id)
	})
}

func deleteUnlockedMovement(ctx context.Context, tx *sql.Tx, id string) error {
	res, err := tx.ExecContext(ctx, "DELETE FROM movements WHERE id = ? AND locked = 0", id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if n == 1 {
		return nil
	}

	// Nothing deleted: tell missing and locked apart.
	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM movements WHERE id = ?", id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("movement %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check movement existence: %w", err)
	}
	return fmt.Errorf("movement %s: %w", id, storage.ErrLocked)
}

// ListMovementsForUser retrieves the user's movements, newest first.
func (s *SQLiteStore) ListMovementsForUser(ctx context.Context, userID string) ([]*models.Movement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE owner_id = ? ORDER BY date DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []*models.Movement
	for rows.Next() {
		mv, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		movements = append(movements, mv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

// LockedMovements returns the IDs of the user's locked movements.
func (s *SQLiteStore) LockedMovements(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM movements WHERE owner_id = ? AND locked = 1 ORDER BY created_at",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list locked movements: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movement id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locked movements: %w", err)
	}
	return ids, nil
}

func scanMovement(row interface{ Scan(...any) error }) (*models.Movement, error) {
	mv := &models.Movement{}
	var (
		kind, date              string
		category, group, people sql.NullString
		locked                  int
	)
	if err := row.Scan(&mv.ID, &mv.OwnerID, &mv.Amount, &kind, &category, &date,
		&mv.Notes, &group, &people, &locked, &mv.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan movement: %w", err)
	}

	var err error
	if mv.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if mv.Participants, err = decodeParticipants(people); err != nil {
		return nil, err
	}
	mv.Kind = models.MovementKind(kind)
	mv.CategoryID = category.String
	mv.GroupID = group.String
	mv.Locked = locked == 1
	return mv, nil
}

// CreateCategory persists a category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, c *models.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, owner_id, name, budget) VALUES (?, ?, ?, ?)",
		c.ID, c.OwnerID, c.Name, c.Budget,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

// GetCategory retrieves a category by ID.
func (s *SQLiteStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, owner_id, name, budget FROM categories WHERE id = ?", id,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &c.Budget)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}
