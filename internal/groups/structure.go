package groups

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup creates a group administered by actor.
func (m *Manager) CreateGroup(ctx context.Context, actor, name, emoji string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("group name is required")
	}

	user, err := m.store.GetUserByID(ctx, actor)
	if err != nil {
		return nil, storageError(err)
	}
	if user == nil {
		return nil, unauthorized("unknown user %s", actor)
	}

	group := &models.Group{Name: name, Emoji: emoji, AdminID: actor}
	if err := m.store.CreateGroup(ctx, group); err != nil {
		m.logger.Error("CreateGroup failed", "error", err)
		return nil, storageError(err)
	}

	m.logger.Info("Group created", "group_id", group.ID, "admin_id", actor)
	return group, nil
}

// GetGroup returns a group the actor belongs to.
func (m *Manager) GetGroup(ctx context.Context, actor, groupID string) (*models.Group, error) {
	return m.loadGroup(ctx, actor, groupID)
}

// ListGroups returns every group the actor belongs to.
func (m *Manager) ListGroups(ctx context.Context, actor string) ([]*models.Group, error) {
	groups, err := m.store.ListGroupsForUser(ctx, actor)
	if err != nil {
		return nil, storageError(err)
	}
	return groups, nil
}

// AddInternalMember adds the account registered under email. Any member may
// add members.
func (m *Manager) AddInternalMember(ctx context.Context, actor, groupID, email string) (*models.Member, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, validationError("email is required")
	}
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, storageError(err)
	}
	if user == nil {
		return nil, validationError("no account registered for %s", email)
	}

	member := &models.Member{
		ID:          models.InternalMember(user.ID),
		GroupID:     group.ID,
		DisplayName: user.DisplayName,
	}
	if err := m.store.AddMember(ctx, member); err != nil {
		return nil, storageError(err)
	}

	m.logger.Info("Member added", "group_id", group.ID, "member", member.ID)
	return member, nil
}

// AddExternalMember adds a guest without an account.
func (m *Manager) AddExternalMember(ctx context.Context, actor, groupID, displayName string) (*models.Member, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, validationError("external member name is required")
	}

	member := &models.Member{
		ID:          models.ExternalMember(uuid.New().String()),
		GroupID:     group.ID,
		DisplayName: displayName,
	}
	if err := m.store.AddMember(ctx, member); err != nil {
		return nil, storageError(err)
	}

	m.logger.Info("External member added", "group_id", group.ID, "member", member.ID)
	return member, nil
}

// RemoveMember removes a member no expense references. Admin only; the admin
// cannot be removed.
func (m *Manager) RemoveMember(ctx context.Context, actor, groupID string, id models.MemberID) error {
	group, err := m.loadGroupAsAdmin(ctx, actor, groupID)
	if err != nil {
		return err
	}
	if err := id.Validate(); err != nil {
		return validationError("%v", err)
	}
	if id == models.InternalMember(group.AdminID) {
		return validationError("the admin cannot be removed")
	}
	if !group.HasMember(id) {
		return validationError("%s is not a member of the group", id)
	}

	if err := m.store.RemoveMember(ctx, group.ID, id); err != nil {
		return storageError(err)
	}

	m.logger.Info("Member removed", "group_id", group.ID, "member", id)
	return nil
}

// DeleteGroup removes the group with its shared-expense records and pending
// requests. Members keep their movements, unlinked from the group. Admin only.
func (m *Manager) DeleteGroup(ctx context.Context, actor, groupID string) error {
	group, err := m.loadGroupAsAdmin(ctx, actor, groupID)
	if err != nil {
		return err
	}

	if err := m.store.DeleteGroup(ctx, group.ID); err != nil {
		m.logger.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return storageError(err)
	}

	m.logger.Info("Group deleted", "group_id", group.ID)
	m.publish(ctx, events.GroupDeleted, group.ID, actor, map[string]string{"name": group.Name})
	return nil
}
