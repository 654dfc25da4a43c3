package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/google/uuid"
)

// EventLog is an append-only, hash-chained audit log backed by a JSON
// Lines file. Each event carries the hash of its predecessor so
// after-the-fact tampering is detectable.
type EventLog struct {
	mu       sync.Mutex
	path     string
	dataDir  string
	lastHash string
}

// NewEventLog opens the log under dataDir. The file is created on
// first append, not at construction time.
func NewEventLog(dataDir string) (*EventLog, error) {
	log := &EventLog{
		path:    filepath.Join(dataDir, EventsFile),
		dataDir: dataDir,
	}

	last, err := log.LastEvent()
	if err != nil {
		return nil, err
	}
	if last != nil {
		log.lastHash = last.Hash
	}

	return log, nil
}

// Append chains and records one event. Missing id and timestamp are
// filled in.
func (l *EventLog) Append(event *domain.Event) (err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if err := os.MkdirAll(l.dataDir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	event.PrevHash = l.lastHash
	event.Hash = event.CalculateHash()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open events file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close events file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	l.lastHash = event.Hash
	return nil
}

// Events returns all recorded events in append order. Malformed lines
// are skipped.
func (l *EventLog) Events() ([]domain.Event, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open events file: %w", err)
	}
	defer f.Close()

	var events []domain.Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e domain.Event
		if err := json.Unmarshal(line, &e); err != nil {
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events file: %w", err)
	}

	return events, nil
}

// LastEvent returns the most recent event, or nil when the log is
// empty.
func (l *EventLog) LastEvent() (*domain.Event, error) {
	events, err := l.Events()
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[len(events)-1], nil
}

// Verify walks the hash chain and reports the first break, if any.
func (l *EventLog) Verify() error {
	events, err := l.Events()
	if err != nil {
		return err
	}

	prevHash := ""
	for i := range events {
		e := &events[i]
		if e.PrevHash != prevHash {
			return fmt.Errorf("event %s: chain break, prev_hash mismatch", e.ID)
		}
		if e.Hash != e.CalculateHash() {
			return fmt.Errorf("event %s: hash mismatch, record altered", e.ID)
		}
		prevHash = e.Hash
	}
	return nil
}
