package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("read stdout: %v", err)
	}
	return buf.String()
}

// withTestConfig points WEEKPLAN_CONFIG at a throwaway data dir and
// returns that dir.
func withTestConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	dataDir := filepath.Join(dir, "weekplan")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := fmt.Sprintf("data_dir: %s\neditor: true\n", dataDir)
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WEEKPLAN_CONFIG", cfgPath)
	resetFlags()
	return dataDir
}

// resetFlags clears package-level flag variables that survive between
// command executions.
func resetFlags() {
	addDescription, addType, addPriority, addStatus = "", "", "", ""
	addCheckFreq, addETA, addNotifyAt, addTags, addDeps = "", "", "", "", ""
	listStatus, listType, listPriority, listTags, listSearch = "", "", "", "", ""
	listShowDone, listJSON, statusJSON, deleteYes = false, false, false, false
	updateTitle, updateDescription, updateType, updatePriority = "", "", "", ""
	updateStatus, updateCheckFreq, updateETA, updateTags = "", "", "", ""
	journalDate, backupDate = "", ""
}

// runCommand executes the root command with args and returns stdout.
func runCommand(t *testing.T, args ...string) string {
	t.Helper()

	var err error
	out := captureStdout(t, func() {
		RootCmd.SetArgs(args)
		err = RootCmd.Execute()
	})
	if err != nil {
		t.Fatalf("command %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}
