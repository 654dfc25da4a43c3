package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"gopkg.in/yaml.v3"
)

// taskFrontmatter is the YAML frontmatter of a task file. Description
// and notes live in the markdown body instead, where they read and
// edit naturally.
type taskFrontmatter struct {
	ID             string                `yaml:"id"`
	Title          string                `yaml:"title"`
	Type           domain.TaskType       `yaml:"type"`
	Status         domain.TaskStatus     `yaml:"status"`
	Priority       domain.TaskPriority   `yaml:"priority"`
	CheckFrequency domain.CheckFrequency `yaml:"check_frequency"`
	CreatedAt      time.Time             `yaml:"created_at"`
	UpdatedAt      time.Time             `yaml:"updated_at"`
	ETA            *time.Time            `yaml:"eta,omitempty"`
	LastChecked    *time.Time            `yaml:"last_checked,omitempty"`
	NotifyAt       *time.Time            `yaml:"notify_at,omitempty"`
	Dependencies   []string              `yaml:"dependencies,omitempty"`
	Tags           []string              `yaml:"tags,omitempty"`
}

const frontmatterDelim = "---"

// marshalTask renders a task as markdown with YAML frontmatter:
//
//	---
//	id: task-a1b2c3d4
//	...
//	---
//
//	## Description
//	...
//
//	## Notes
//	- 2026-01-05 09:30: ...
func marshalTask(task *domain.Task) ([]byte, error) {
	fm := taskFrontmatter{
		ID:             task.ID,
		Title:          task.Title,
		Type:           task.Type,
		Status:         task.Status,
		Priority:       task.Priority,
		CheckFrequency: task.CheckFrequency,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
		ETA:            task.ETA,
		LastChecked:    task.LastChecked,
		NotifyAt:       task.NotifyAt,
		Dependencies:   task.Dependencies,
		Tags:           task.Tags,
	}

	meta, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelim + "\n")
	b.Write(meta)
	b.WriteString(frontmatterDelim + "\n")

	if task.Description != "" {
		b.WriteString("\n## Description\n")
		b.WriteString(task.Description + "\n")
	}
	if len(task.Notes) > 0 {
		b.WriteString("\n## Notes\n")
		for _, note := range task.Notes {
			b.WriteString(note.String() + "\n")
		}
	}

	return []byte(b.String()), nil
}

// unmarshalTask parses a task file. The body walk is tolerant: repeated
// "## Notes" headings (seen in hand-merged files) are all collected,
// and any bullet line under a notes heading counts as a note.
func unmarshalTask(data []byte) (*domain.Task, error) {
	meta, body, err := splitFrontmatter(string(data))
	if err != nil {
		return nil, err
	}

	var fm taskFrontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return nil, fmt.Errorf("failed to unmarshal frontmatter: %w", err)
	}
	if fm.ID == "" {
		return nil, fmt.Errorf("task file has no id")
	}

	task := &domain.Task{
		ID:             fm.ID,
		Title:          fm.Title,
		Type:           fm.Type,
		Status:         fm.Status,
		Priority:       fm.Priority,
		CheckFrequency: fm.CheckFrequency,
		CreatedAt:      fm.CreatedAt,
		UpdatedAt:      fm.UpdatedAt,
		ETA:            fm.ETA,
		LastChecked:    fm.LastChecked,
		NotifyAt:       fm.NotifyAt,
		Dependencies:   fm.Dependencies,
		Tags:           fm.Tags,
	}

	description, notes := parseTaskBody(body)
	task.Description = description
	task.Notes = notes

	return task, nil
}

// splitFrontmatter separates the YAML frontmatter block from the
// markdown body.
func splitFrontmatter(content string) (meta, body string, err error) {
	rest, ok := strings.CutPrefix(content, frontmatterDelim+"\n")
	if !ok {
		return "", "", fmt.Errorf("task file missing frontmatter")
	}
	meta, body, ok = strings.Cut(rest, "\n"+frontmatterDelim)
	if !ok {
		return "", "", fmt.Errorf("task file has unterminated frontmatter")
	}
	return meta, strings.TrimPrefix(body, "\n"), nil
}

// parseTaskBody extracts the description and note lines from the
// markdown body.
func parseTaskBody(body string) (string, []domain.Note) {
	var descLines []string
	var notes []domain.Note
	inNotes := false

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "## Notes"):
			inNotes = true
		case strings.HasPrefix(trimmed, "## Description"):
			inNotes = false
		case inNotes:
			if strings.HasPrefix(trimmed, "-") {
				notes = append(notes, domain.ParseNote(trimmed))
			}
		default:
			descLines = append(descLines, line)
		}
	}

	description := strings.TrimSpace(strings.Join(descLines, "\n"))
	return description, notes
}
