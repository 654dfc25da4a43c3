package cli

import (
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var configPath string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "weekplan",
	Version: Version,
	Short:   "A journal-first personal task tracker",
	Long: `Weekplan tracks your work tasks through a weekly markdown journal.
Tasks live as hand-editable markdown files; the journal is the primary
editing surface. Check a box, add a NEW: line, or delete a reference in
the journal and 'weekplan journal sync' reconciles the task store.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: $WEEKPLAN_CONFIG, ~/.config/weekplan/config.yaml)")
}
