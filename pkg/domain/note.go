package domain

import (
	"fmt"
	"strings"
	"time"
)

const noteTimeLayout = "2006-01-02 15:04"

// Note is a timestamped annotation on a task. Notes render as markdown
// bullets inside the task file, so their YAML form is the rendered
// string rather than a nested mapping.
type Note struct {
	Timestamp time.Time
	Content   string
}

// String formats the note as a markdown bullet point.
func (n Note) String() string {
	return fmt.Sprintf("- %s: %s", n.Timestamp.Format(noteTimeLayout), n.Content)
}

// ParseNote parses a note from its markdown bullet form. Lines that do
// not carry a leading timestamp keep their full text and are stamped
// with the current time.
func ParseNote(raw string) Note {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "- ")

	if ts, content, ok := splitNote(s); ok {
		return Note{Timestamp: ts, Content: content}
	}
	return Note{Timestamp: time.Now(), Content: s}
}

func splitNote(s string) (time.Time, string, bool) {
	if len(s) <= len(noteTimeLayout) {
		return time.Time{}, "", false
	}
	ts, err := time.Parse(noteTimeLayout, s[:len(noteTimeLayout)])
	if err != nil {
		return time.Time{}, "", false
	}
	rest := s[len(noteTimeLayout):]
	rest = strings.TrimPrefix(rest, ":")
	return ts, strings.TrimSpace(rest), true
}

// MarshalYAML stores the note in its rendered bullet form.
func (n Note) MarshalYAML() (interface{}, error) {
	return n.String(), nil
}

// UnmarshalYAML restores a note from its rendered bullet form.
func (n *Note) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*n = ParseNote(raw)
	return nil
}
