package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the audit timeline and verify its integrity",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		events, err := services.Audit.Timeline()
		if err != nil {
			return fmt.Errorf("failed to load timeline: %w", err)
		}

		fmt.Println(headerStyle.Render("Audit Timeline"))
		for i := len(events) - 1; i >= 0; i-- {
			e := events[i]
			fmt.Printf("[%s] %-14s | %-18s", e.Timestamp.Format(time.RFC822), e.Actor, e.Action)
			if len(e.Metadata) > 0 {
				fmt.Printf(" (%v)", e.Metadata)
			}
			fmt.Println()
		}
		if len(events) == 0 {
			fmt.Println("  (no events)")
		}

		if err := services.Audit.VerifyIntegrity(); err != nil {
			fmt.Println(dangerStyle.Render(fmt.Sprintf("\nIntegrity check FAILED: %v", err)))
			return err
		}
		fmt.Println(okStyle.Render("\nIntegrity check passed."))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(auditCmd)
}
