package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestEncode(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	msg, err := encode(Event{
		Type:    ExpenseAdded,
		GroupID: "g1",
		Actor:   "u1",
		At:      at,
		Data:    map[string]string{"expense_id": "e1"},
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if string(msg.Key) != "g1" {
		t.Errorf("Expected key g1, got %q", msg.Key)
	}
	if len(msg.Headers) != 1 || string(msg.Headers[0].Value) != ExpenseAdded {
		t.Errorf("Expected type header, got %+v", msg.Headers)
	}

	var body map[string]any
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	for _, key := range []string{"type", "group_id", "actor", "at", "data"} {
		if _, ok := body[key]; !ok {
			t.Errorf("Expected %q in body %s", key, msg.Value)
		}
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()
	r.Publish(ctx, Event{Type: SettlementRequested})
	r.Publish(ctx, Event{Type: SettlementConfirmed})

	types := r.Types()
	if len(types) != 2 || types[0] != SettlementRequested || types[1] != SettlementConfirmed {
		t.Errorf("Unexpected types: %v", types)
	}
	if len(r.Events()) != 2 {
		t.Errorf("Expected 2 events, got %d", len(r.Events()))
	}
}
