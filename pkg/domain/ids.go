package domain

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// IDPrefix is the fixed prefix of every task identifier.
const IDPrefix = "task-"

// IDToken is the task-id pattern usable inside larger expressions
// (checkbox scans, journal lines). Kept in sync with idPattern.
const IDToken = `task-[a-f0-9]+`

// idPattern matches the persisted task id format: the fixed prefix plus
// a lowercase hex suffix. The same pattern is the wire contract of the
// journal checkbox grammar.
var idPattern = regexp.MustCompile(`^` + IDToken + `$`)

// NewTaskID generates a fresh task identifier. IDs are assigned once at
// creation and never reassigned.
func NewTaskID() string {
	u := uuid.New()
	return fmt.Sprintf("%s%x", IDPrefix, u[:4])
}

// ValidTaskID reports whether value matches the task id format.
func ValidTaskID(value string) bool {
	return idPattern.MatchString(value)
}
