// Package events publishes group activity to downstream consumers.
package events

import (
	"context"
	"sync"
	"time"
)

// Event types.
const (
	ExpenseAdded        = "expense.added"
	ExpenseDeleted      = "expense.deleted"
	SettlementRequested = "settlement.requested"
	SettlementConfirmed = "settlement.confirmed"
	SettlementRecorded  = "settlement.recorded"
	GroupDeleted        = "group.deleted"
)

// Event is one committed change to a group.
type Event struct {
	Type    string    `json:"type"`
	GroupID string    `json:"group_id"`
	Actor   string    `json:"actor"`
	At      time.Time `json:"at"`
	Data    any       `json:"data,omitempty"`
}

// Publisher delivers events. Callers publish only after the change is
// committed and treat failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Noop discards every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the type of every published event, in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]string, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}
