package domain

import "fmt"

// CheckFrequency controls how often a task should resurface for a
// status check.
type CheckFrequency string

const (
	CheckDaily    CheckFrequency = "daily"
	CheckWeekly   CheckFrequency = "weekly"
	CheckBiweekly CheckFrequency = "biweekly"
	CheckMonthly  CheckFrequency = "monthly"
	CheckCustom   CheckFrequency = "custom"
)

// frequencyDays maps each frequency to its check interval in calendar
// days. CheckCustom carries no interval and is deliberately absent:
// custom-frequency tasks never auto-flag for a check.
var frequencyDays = map[CheckFrequency]int{
	CheckDaily:    1,
	CheckWeekly:   7,
	CheckBiweekly: 14,
	CheckMonthly:  30,
}

// AllCheckFrequencies returns all valid check frequencies.
func AllCheckFrequencies() []CheckFrequency {
	return []CheckFrequency{
		CheckDaily,
		CheckWeekly,
		CheckBiweekly,
		CheckMonthly,
		CheckCustom,
	}
}

// IsValid returns true if the frequency is a valid check frequency.
func (f CheckFrequency) IsValid() bool {
	switch f {
	case CheckDaily, CheckWeekly, CheckBiweekly, CheckMonthly, CheckCustom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the frequency.
func (f CheckFrequency) String() string {
	return string(f)
}

// IntervalDays returns the check interval in days, or false when the
// frequency has no fixed interval (custom).
func (f CheckFrequency) IntervalDays() (int, bool) {
	days, ok := frequencyDays[f]
	return days, ok
}

// ParseCheckFrequency validates a raw frequency value. The error names
// the offending value and the accepted set.
func ParseCheckFrequency(value string) (CheckFrequency, error) {
	f := CheckFrequency(value)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid check frequency %q. Valid frequencies: %s", value, joinValues(AllCheckFrequencies()))
	}
	return f, nil
}
