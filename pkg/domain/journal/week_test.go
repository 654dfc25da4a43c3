package journal

import (
	"testing"
	"time"
)

func TestWeekStart_AlwaysMonday(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for week := 1; week <= 52; week++ {
			start := WeekStart(year, week)
			if start.Weekday() != time.Monday {
				t.Errorf("WeekStart(%d, %d) = %v, not a Monday", year, week, start)
			}
			if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
				t.Errorf("WeekStart(%d, %d) = %v, not midnight", year, week, start)
			}
		}
	}
}

func TestWeekStart_SevenDayStride(t *testing.T) {
	for year := 2024; year <= 2027; year++ {
		for week := 1; week < 52; week++ {
			cur := WeekStart(year, week)
			next := WeekStart(year, week+1)
			if got := next.Sub(cur); got != 7*24*time.Hour {
				t.Errorf("WeekStart(%d, %d+1) - WeekStart(%d, %d) = %v, want 168h", year, week, year, week, got)
			}
		}
	}
}

func TestWeekStart_KnownAnchors(t *testing.T) {
	tests := []struct {
		year, week          int
		wantY, wantM, wantD int
	}{
		// Jan 1 2024 is a Monday and in ISO week 1.
		{2024, 1, 2024, 1, 1},
		// ISO week 1 of 2026 starts in the prior calendar year.
		{2026, 1, 2025, 12, 29},
		{2026, 2, 2026, 1, 5},
	}

	for _, tt := range tests {
		start := WeekStart(tt.year, tt.week)
		if start.Year() != tt.wantY || int(start.Month()) != tt.wantM || start.Day() != tt.wantD {
			t.Errorf("WeekStart(%d, %d) = %v, want %d-%02d-%02d", tt.year, tt.week, start, tt.wantY, tt.wantM, tt.wantD)
		}
	}
}

func TestWeekStart_AgreesWithISOWeek(t *testing.T) {
	for year := 2023; year <= 2027; year++ {
		for week := 1; week <= 52; week++ {
			start := WeekStart(year, week)
			gotYear, gotWeek := start.ISOWeek()
			if gotYear != year || gotWeek != week {
				t.Errorf("WeekStart(%d, %d).ISOWeek() = (%d, %d)", year, week, gotYear, gotWeek)
			}
		}
	}
}

func TestFileNames(t *testing.T) {
	if got := FileName(2026, 2); got != "2026-W02.md" {
		t.Errorf("FileName = %q", got)
	}
	if got := SummaryFileName(2026, 2); got != "2026-W02-summary.md" {
		t.Errorf("SummaryFileName = %q", got)
	}
	if got := WeekLabel(2026, 11); got != "2026-W11" {
		t.Errorf("WeekLabel = %q", got)
	}
}

func TestNew_WeekBounds(t *testing.T) {
	j := New(2026, 2)
	if j.WeekStart.Weekday() != time.Monday {
		t.Errorf("WeekStart = %v, not Monday", j.WeekStart)
	}
	if j.WeekEnd.Weekday() != time.Sunday {
		t.Errorf("WeekEnd = %v, not Sunday", j.WeekEnd)
	}
	if got := j.WeekEnd.Sub(j.WeekStart); got != 6*24*time.Hour {
		t.Errorf("week spans %v, want 144h", got)
	}
}

func TestForDate(t *testing.T) {
	// A Wednesday mid-week maps to the same journal as its Monday.
	wed := time.Date(2026, 1, 7, 15, 30, 0, 0, time.Local)
	j := ForDate(wed)
	if j.Year != 2026 || j.Week != 2 {
		t.Errorf("ForDate = (%d, W%d), want (2026, W2)", j.Year, j.Week)
	}
}
