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

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// CreateGroup persists a new group with its admin as the first member.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_groups (id, name, emoji, admin_id, created_at) VALUES (?, ?, ?, ?, ?)",
			group.ID, group.Name, group.Emoji, group.AdminID, group.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}

		admin := models.Member{
			ID:       models.InternalMember(group.AdminID),
			GroupID:  group.ID,
			JoinedAt: group.CreatedAt,
		}
		if err := insertMember(ctx, tx, &admin); err != nil {
			return err
		}

		members, err := listMembers(ctx, tx, group.ID)
		if err != nil {
			return err
		}
		group.Members = members
		return nil
	})
}

// GetGroup retrieves a group by ID, including its members.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, emoji, admin_id, created_at FROM expense_groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.Emoji, &group.AdminID, &group.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := listMembers(ctx, s.db, groupID)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// ListGroupsForUser retrieves every group the user is an internal member of.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.emoji, g.admin_id, g.created_at
		 FROM expense_groups g
		 JOIN group_members m ON m.group_id = g.id
		 WHERE m.kind = 'internal' AND m.ref = ?
		 ORDER BY g.created_at DESC, g.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.Emoji, &group.AdminID, &group.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	// Members are loaded after the rows are closed: the store has a single
	// connection.
	for _, group := range groups {
		members, err := listMembers(ctx, s.db, group.ID)
		if err != nil {
			return nil, err
		}
		group.Members = members
	}

	return groups, nil
}

// DeleteGroup removes a group. Members, shared-expense records and
// settlement requests cascade; movements are unlinked (group_id SET NULL).
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"UPDATE movements SET participants = NULL WHERE group_id = ?", groupID,
		); err != nil {
			return fmt.Errorf("failed to unlink movements: %w", err)
		}

		res, err := tx.ExecContext(ctx, "DELETE FROM expense_groups WHERE id = ?", groupID)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
		}
		return nil
	})
}

// AddMember adds a member to a group.
func (s *SQLiteStore) AddMember(ctx context.Context, member *models.Member) error {
	if member.JoinedAt == 0 {
		member.JoinedAt = time.Now().Unix()
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM expense_groups WHERE id = ?", member.GroupID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("group %s: %w", member.GroupID, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}
		return insertMember(ctx, tx, member)
	})
}

func insertMember(ctx context.Context, tx *sql.Tx, member *models.Member) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO group_members (group_id, kind, ref, display_name, joined_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (group_id, kind, ref) DO NOTHING`,
		member.GroupID, string(member.ID.Kind), member.ID.Ref, member.DisplayName, member.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("member %s: %w", member.ID, storage.ErrConflict)
	}
	return nil
}

// RemoveMember removes a member that no shared expense references.
func (s *SQLiteStore) RemoveMember(ctx context.Context, groupID string, id models.MemberID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		var referenced bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (
			     SELECT 1 FROM group_expenses
			     WHERE group_id = ? AND payer_kind = ? AND payer_ref = ?
			 ) OR EXISTS (
			     SELECT 1 FROM expense_participants p
			     JOIN group_expenses e ON e.id = p.expense_id
			     WHERE e.group_id = ? AND p.kind = ? AND p.ref = ?
			 )`,
			groupID, string(id.Kind), id.Ref, groupID, string(id.Kind), id.Ref,
		).Scan(&referenced)
		if err != nil {
			return fmt.Errorf("failed to check member references: %w", err)
		}
		if referenced {
			return fmt.Errorf("member %s has expenses: %w", id, storage.ErrConflict)
		}

		res, err := tx.ExecContext(ctx,
			"DELETE FROM group_members WHERE group_id = ? AND kind = ? AND ref = ?",
			groupID, string(id.Kind), id.Ref,
		)
		if err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
		}
		return nil
	})
}

// listMembers returns a group's members in join order. Internal members take
// their display name from the user profile.
func listMembers(ctx context.Context, q queryer, groupID string) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT m.kind, m.ref,
		        CASE WHEN m.kind = 'internal' THEN COALESCE(u.display_name, m.display_name)
		             ELSE m.display_name END,
		        m.joined_at
		 FROM group_members m
		 LEFT JOIN users u ON m.kind = 'internal' AND u.id = m.ref
		 WHERE m.group_id = ?
		 ORDER BY m.joined_at, m.kind, m.ref`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var kind string
		m := models.Member{GroupID: groupID}
		if err := rows.Scan(&kind, &m.ID.Ref, &m.DisplayName, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.ID.Kind = models.MemberKind(kind)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
