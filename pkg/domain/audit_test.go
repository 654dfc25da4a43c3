package domain

import (
	"testing"
	"time"
)

func TestEvent_CalculateHash_Deterministic(t *testing.T) {
	event := &Event{
		ID:        "evt-1",
		Timestamp: time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC),
		Action:    "task.created",
		Actor:     "human",
		Metadata:  map[string]interface{}{"task_id": "task-aaaa1111", "title": "Review"},
		PrevHash:  "abc",
	}

	first := event.CalculateHash()
	for i := 0; i < 10; i++ {
		if got := event.CalculateHash(); got != first {
			t.Fatalf("hash unstable across calls: %q vs %q", got, first)
		}
	}

	event.Actor = "agent"
	if event.CalculateHash() == first {
		t.Error("hash unchanged after actor edit")
	}
}

func TestMetadataDigest_SortsKeys(t *testing.T) {
	digest := metadataDigest(map[string]interface{}{"b": 2, "a": 1, "c": "x"})
	want := `{"a":1,"b":2,"c":"x"}`
	if digest != want {
		t.Errorf("digest = %q, want %q", digest, want)
	}

	if got := metadataDigest(nil); got != "" {
		t.Errorf("nil metadata digest = %q, want empty", got)
	}
}
