// Package groups implements group expense sharing: expense admission,
// balances, settlement plans and the settlement request workflow.
//
// Balances are never stored. Every read recomputes them from the group's
// shared-expense records, and every write is a single storage transaction.
// The acting user is an explicit parameter of every operation.
package groups

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Manager coordinates the group operations over a Store.
type Manager struct {
	store   storage.Store
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager creates a Manager. publisher, m and logger may be nil.
func NewManager(store storage.Store, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Manager {
	if publisher == nil {
		publisher = events.Noop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:   store,
		events:  publisher,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// today is the current calendar date in UTC.
func (m *Manager) today() time.Time {
	y, mo, d := m.now().UTC().Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

// loadGroup fetches a group and checks the actor is one of its internal members.
func (m *Manager) loadGroup(ctx context.Context, actor, groupID string) (*models.Group, error) {
	if groupID == "" {
		return nil, validationError("group id is required")
	}
	group, err := m.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, storageError(err)
	}
	if !group.HasMember(models.InternalMember(actor)) {
		return nil, unauthorized("user %s is not a member of group %s", actor, groupID)
	}
	return group, nil
}

// loadGroupAsAdmin is loadGroup restricted to the group's admin.
func (m *Manager) loadGroupAsAdmin(ctx context.Context, actor, groupID string) (*models.Group, error) {
	group, err := m.loadGroup(ctx, actor, groupID)
	if err != nil {
		return nil, err
	}
	if !group.IsAdmin(actor) {
		return nil, unauthorized("only the group admin can do this")
	}
	return group, nil
}

// publish emits an event for a committed change. Failures are logged, never
// returned.
func (m *Manager) publish(ctx context.Context, eventType, groupID, actor string, data any) {
	err := m.events.Publish(ctx, events.Event{
		Type:    eventType,
		GroupID: groupID,
		Actor:   actor,
		At:      m.now().UTC(),
		Data:    data,
	})
	if err != nil {
		m.metrics.EventFailed()
		m.logger.Warn("Event publish failed", "type", eventType, "group_id", groupID, "error", err)
	}
}
