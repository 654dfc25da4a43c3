package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
)

func TestEventLog_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	log, err := NewEventLog(dir)
	if err != nil {
		t.Fatalf("NewEventLog: %v", err)
	}

	events := []domain.Event{
		{Action: "task.created", Actor: "human", Metadata: map[string]interface{}{"task_id": "task-aaaa1111"}},
		{Action: "task.completed", Actor: "agent", Metadata: map[string]interface{}{"task_id": "task-aaaa1111"}},
		{Action: "journal.synced", Actor: "human"},
	}
	for i := range events {
		if err := log.Append(&events[i]); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	loaded, err := log.Events()
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded = %d, want 3", len(loaded))
	}
	for i, e := range loaded {
		if e.ID == "" {
			t.Errorf("event %d has no id", i)
		}
		if e.Timestamp.IsZero() {
			t.Errorf("event %d has no timestamp", i)
		}
	}
	if loaded[0].Action != "task.created" || loaded[2].Actor != "human" {
		t.Errorf("append order not preserved: %+v", loaded)
	}
}

func TestEventLog_HashChain(t *testing.T) {
	dir := t.TempDir()
	log, err := NewEventLog(dir)
	if err != nil {
		t.Fatalf("NewEventLog: %v", err)
	}

	first := domain.Event{Action: "task.created", Actor: "human"}
	second := domain.Event{Action: "task.updated", Actor: "human"}
	if err := log.Append(&first); err != nil {
		t.Fatal(err)
	}
	if err := log.Append(&second); err != nil {
		t.Fatal(err)
	}

	if first.PrevHash != "" {
		t.Errorf("first event prev_hash = %q, want empty", first.PrevHash)
	}
	if second.PrevHash != first.Hash {
		t.Errorf("second event prev_hash = %q, want %q", second.PrevHash, first.Hash)
	}

	if err := log.Verify(); err != nil {
		t.Errorf("Verify on intact chain: %v", err)
	}
}

func TestEventLog_ChainSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	log, err := NewEventLog(dir)
	if err != nil {
		t.Fatal(err)
	}
	first := domain.Event{Action: "task.created", Actor: "human"}
	if err := log.Append(&first); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewEventLog(dir)
	if err != nil {
		t.Fatal(err)
	}
	second := domain.Event{Action: "task.deleted", Actor: "human"}
	if err := reopened.Append(&second); err != nil {
		t.Fatal(err)
	}

	if second.PrevHash != first.Hash {
		t.Errorf("chain broken across reopen: prev_hash = %q, want %q", second.PrevHash, first.Hash)
	}
	if err := reopened.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}
}

func TestEventLog_VerifyDetectsTampering(t *testing.T) {
	dir := t.TempDir()
	log, err := NewEventLog(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, action := range []string{"task.created", "task.updated"} {
		e := domain.Event{Action: action, Actor: "human"}
		if err := log.Append(&e); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(dir, EventsFile)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	tampered := strings.Replace(string(data), "task.created", "task.deleted", 1)
	if err := os.WriteFile(path, []byte(tampered), 0600); err != nil {
		t.Fatal(err)
	}

	if err := log.Verify(); err == nil {
		t.Error("Verify should report the altered record")
	}
}

func TestEventLog_EmptyLog(t *testing.T) {
	log, err := NewEventLog(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	events, err := log.Events()
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d, want 0", len(events))
	}
	if err := log.Verify(); err != nil {
		t.Errorf("Verify on empty log: %v", err)
	}
}
