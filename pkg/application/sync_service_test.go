package application

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/weekplan/pkg/backup"
	"github.com/felixgeelhaar/weekplan/pkg/domain"
	"github.com/felixgeelhaar/weekplan/pkg/storage"
)

type testEnv struct {
	store   *storage.FilesystemStore
	tasks   *TaskService
	backups *backup.Manager
	sync    *SyncService
	journal *JournalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := storage.NewFilesystemStore(t.TempDir())
	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	tasks := NewTaskService(store, nil, "human", Defaults{})
	backups := backup.NewManager(filepath.Join(store.DataDir(), storage.BackupsDir), 50, 90)
	sync := NewSyncService(store, tasks, backups, nil, "human")
	journal := NewJournalService(store, tasks, sync)

	return &testEnv{store: store, tasks: tasks, backups: backups, sync: sync, journal: journal}
}

func TestSyncWeek_MissingJournal(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if result.Changed() || len(result.Errors) != 0 || result.BackupPath != "" {
		t.Errorf("result = %+v, want empty reconciliation", result)
	}
}

func TestSyncWeek_CreatesTasksFromNewEntries(t *testing.T) {
	env := newTestEnv(t)

	content := strings.Join([]string{
		"# Week 2 - 2026 (Jan 05 - Jan 11, 2026)",
		"",
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] NEW: First thing (ticket, high)",
		"- [ ] NEW: Second thing (general, low)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("created = %v, want 2", result.Created)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v", result.Errors)
	}

	// Created ids are reported in document order.
	first, err := env.store.GetTask(result.Created[0])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if first.Title != "First thing" || first.Type != domain.TypeTicket || first.Priority != domain.PriorityHigh {
		t.Errorf("first created = %q (%s, %s)", first.Title, first.Type, first.Priority)
	}
	second, err := env.store.GetTask(result.Created[1])
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if second.Title != "Second thing" {
		t.Errorf("second created = %q", second.Title)
	}
	if first.Status != domain.StatusTodo || second.Status != domain.StatusTodo {
		t.Errorf("created statuses = %s, %s; want todo", first.Status, second.Status)
	}

	// The NEW declarations were replaced with canonical reference lines.
	rewritten, err := env.store.ReadJournal(2026, 2)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(rewritten, "NEW:") {
		t.Error("rewritten journal still contains NEW declarations")
	}
	if !strings.Contains(rewritten, "- [ ] "+first.ID+": First thing (ticket, high)") {
		t.Errorf("rewritten journal missing reference line for %s:\n%s", first.ID, rewritten)
	}
}

func TestSyncWeek_StatusSync(t *testing.T) {
	env := newTestEnv(t)

	open, err := env.tasks.CreateTask(CreateTaskParams{Title: "Now finished"})
	if err != nil {
		t.Fatal(err)
	}
	done, err := env.tasks.CreateTask(CreateTaskParams{Title: "Reopened", Status: domain.StatusDone})
	if err != nil {
		t.Fatal(err)
	}

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [x] " + open.ID + ": Now finished (general, medium)",
		"- [ ] " + done.ID + ": Reopened (general, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if len(result.Updated) != 2 {
		t.Fatalf("updated = %v, want both tasks", result.Updated)
	}

	got, _ := env.store.GetTask(open.ID)
	if got.Status != domain.StatusDone {
		t.Errorf("checked task status = %s, want done", got.Status)
	}
	got, _ = env.store.GetTask(done.ID)
	if got.Status != domain.StatusTodo {
		t.Errorf("unchecked done task status = %s, want todo", got.Status)
	}
}

func TestSyncWeek_DeletesUnreferencedTasks(t *testing.T) {
	env := newTestEnv(t)

	kept, err := env.tasks.CreateTask(CreateTaskParams{Title: "Still referenced"})
	if err != nil {
		t.Fatal(err)
	}
	dropped, err := env.tasks.CreateTask(CreateTaskParams{Title: "Removed from journal"})
	if err != nil {
		t.Fatal(err)
	}

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] " + kept.ID + ": Still referenced (general, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if len(result.Deleted) != 1 || result.Deleted[0] != dropped.ID {
		t.Errorf("deleted = %v, want [%s]", result.Deleted, dropped.ID)
	}
	if env.store.TaskExists(dropped.ID) {
		t.Error("unreferenced task still in store")
	}
	if !env.store.TaskExists(kept.ID) {
		t.Error("referenced task was deleted")
	}
}

func TestSyncWeek_NewTasksSurviveDeletionStep(t *testing.T) {
	env := newTestEnv(t)

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] NEW: Fresh out of the journal (project, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("created = %v", result.Created)
	}
	if len(result.Deleted) != 0 {
		t.Errorf("deleted = %v, freshly created tasks must survive the pass", result.Deleted)
	}
	if !env.store.TaskExists(result.Created[0]) {
		t.Error("created task missing after sync")
	}
}

func TestSyncWeek_AccumulatesErrorsWithoutAborting(t *testing.T) {
	env := newTestEnv(t)

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] NEW: Valid entry (ticket, high)",
		"- [ ] NEW: broken entry without metadata",
		"- [ ] NEW: Bad type (sprint, low)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if len(result.Created) != 1 {
		t.Errorf("created = %v, want the valid entry", result.Created)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %v, want 2", result.Errors)
	}
	if result.Errors[0].Line >= result.Errors[1].Line {
		t.Errorf("errors not in document order: %v", result.Errors)
	}
}

func TestSyncWeek_BacksUpPreviousContent(t *testing.T) {
	env := newTestEnv(t)

	task, err := env.tasks.CreateTask(CreateTaskParams{Title: "Tracked"})
	if err != nil {
		t.Fatal(err)
	}
	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [x] " + task.ID + ": Tracked (general, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	result, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}
	if result.BackupPath == "" {
		t.Fatal("expected a backup of the pre-sync journal")
	}

	backups, err := env.backups.ListBackups(2026, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 || backups[0].Trigger != "sync" {
		t.Errorf("backups = %+v, want one with trigger sync", backups)
	}
}

func TestSyncWeek_RerendersDaySections(t *testing.T) {
	env := newTestEnv(t)

	task, err := env.tasks.CreateTask(CreateTaskParams{Title: "Morning work", Type: domain.TypeTicket})
	if err != nil {
		t.Fatal(err)
	}

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [x] " + task.ID + ": Morning work (ticket, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	if _, err := env.sync.SyncWeek(2026, 2); err != nil {
		t.Fatalf("SyncWeek: %v", err)
	}

	rewritten, err := env.store.ReadJournal(2026, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rewritten, "# Week 2 - 2026") {
		t.Error("re-rendered journal missing canonical header")
	}
	if !strings.Contains(rewritten, "- [x] "+task.ID+": Morning work (ticket, medium)") {
		t.Errorf("re-rendered journal lost the completed checkbox:\n%s", rewritten)
	}
	if !strings.Contains(rewritten, "## Sunday, Jan 11") {
		t.Error("re-rendered journal should emit all seven day sections")
	}
}

func TestSyncWeek_SecondPassIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	content := strings.Join([]string{
		"## Monday, Jan 05",
		"",
		"### 📋 Planned",
		"- [ ] NEW: One shot (general, medium)",
		"",
	}, "\n")
	if err := env.store.WriteJournal(2026, 2, content); err != nil {
		t.Fatal(err)
	}

	first, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Created) != 1 {
		t.Fatalf("first pass created = %v", first.Created)
	}

	second, err := env.sync.SyncWeek(2026, 2)
	if err != nil {
		t.Fatal(err)
	}
	if second.Changed() {
		t.Errorf("second pass mutated state: %+v", second)
	}
	if !env.store.TaskExists(first.Created[0]) {
		t.Error("task vanished on the second pass")
	}
}
