package domain

import (
	"strings"
	"testing"
)

func TestTaskStatus_IsValid(t *testing.T) {
	tests := []struct {
		status TaskStatus
		valid  bool
	}{
		{StatusTodo, true},
		{StatusInProgress, true},
		{StatusWaiting, true},
		{StatusDone, true},
		{StatusBlocked, true},
		{TaskStatus("pending"), false},
		{TaskStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestParseTaskType(t *testing.T) {
	for _, typ := range AllTaskTypes() {
		got, err := ParseTaskType(string(typ))
		if err != nil {
			t.Errorf("ParseTaskType(%q) unexpected error: %v", typ, err)
		}
		if got != typ {
			t.Errorf("ParseTaskType(%q) = %v", typ, got)
		}
	}

	_, err := ParseTaskType("invalid_type")
	if err == nil {
		t.Fatal("expected error for invalid type")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid_type") {
		t.Errorf("error %q does not name the offending value", msg)
	}
	for _, typ := range AllTaskTypes() {
		if !strings.Contains(msg, string(typ)) {
			t.Errorf("error %q does not enumerate valid type %q", msg, typ)
		}
	}
}

func TestParseTaskPriority(t *testing.T) {
	if _, err := ParseTaskPriority("medium"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	_, err := ParseTaskPriority("super_high")
	if err == nil {
		t.Fatal("expected error for invalid priority")
	}
	msg := err.Error()
	if !strings.Contains(msg, "super_high") {
		t.Errorf("error %q does not name the offending value", msg)
	}
	for _, p := range []string{"high", "medium", "low"} {
		if !strings.Contains(msg, p) {
			t.Errorf("error %q does not enumerate priority %q", msg, p)
		}
	}
}

func TestParseCheckFrequency(t *testing.T) {
	if _, err := ParseCheckFrequency("biweekly"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseCheckFrequency("hourly"); err == nil {
		t.Error("expected error for invalid frequency")
	}
}

func TestCheckFrequency_IntervalDays(t *testing.T) {
	tests := []struct {
		frequency CheckFrequency
		days      int
		ok        bool
	}{
		{CheckDaily, 1, true},
		{CheckWeekly, 7, true},
		{CheckBiweekly, 14, true},
		{CheckMonthly, 30, true},
		{CheckCustom, 0, false},
	}

	for _, tt := range tests {
		days, ok := tt.frequency.IntervalDays()
		if days != tt.days || ok != tt.ok {
			t.Errorf("IntervalDays(%v) = (%d, %v), want (%d, %v)", tt.frequency, days, ok, tt.days, tt.ok)
		}
	}
}

func TestTaskPriority_Order(t *testing.T) {
	if !PriorityHigh.IsHigherThan(PriorityMedium) {
		t.Error("high should outrank medium")
	}
	if !PriorityMedium.IsHigherThan(PriorityLow) {
		t.Error("medium should outrank low")
	}
	if PriorityLow.IsHigherThan(PriorityHigh) {
		t.Error("low should not outrank high")
	}
}

func TestNote_RoundTrip(t *testing.T) {
	note := ParseNote("- 2026-01-05 09:30: Followed up with infra team")
	if note.Content != "Followed up with infra team" {
		t.Errorf("Content = %q", note.Content)
	}
	if got := note.String(); got != "- 2026-01-05 09:30: Followed up with infra team" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseNote_Fallback(t *testing.T) {
	note := ParseNote("- just some text")
	if note.Content != "just some text" {
		t.Errorf("Content = %q", note.Content)
	}
	if note.Timestamp.IsZero() {
		t.Error("fallback note should be stamped with the current time")
	}
}
