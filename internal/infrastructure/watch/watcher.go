package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fsnotify/fsnotify"
)

// JournalWatcher watches the journal directory and invokes the sync
// callback after edits settle.
type JournalWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onChange func(path string)
}

// NewJournalWatcher creates a watcher over journalDir. onChange
// receives the journal path whose edits settled.
func NewJournalWatcher(journalDir string, debounce time.Duration, onChange func(path string)) (*JournalWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := w.Add(journalDir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", journalDir, err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &JournalWatcher{
		watcher:  w,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *JournalWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var lastPath string
	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange(lastPath)
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if !isJournalFile(event.Name) {
				continue
			}
			lastPath = event.Name
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// journalNameRe matches weekly journal filenames, e.g. 2026-W02.md,
// and deliberately not summary files or editor temporaries.
var journalNameRe = regexp.MustCompile(`^\d{4}-W\d{2}\.md$`)

// isJournalFile reports whether the path is a weekly journal document.
func isJournalFile(path string) bool {
	return journalNameRe.MatchString(filepath.Base(path))
}
