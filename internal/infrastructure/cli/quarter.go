package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var quarterCmd = &cobra.Command{
	Use:   "quarter <year> <quarter>",
	Short: "Show a quarterly summary aggregated from weekly journals",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}
		quarter, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quarter %q", args[1])
		}

		services, err := loadServices()
		if err != nil {
			return err
		}

		fmt.Printf("Generating Q%d %d summary...\n", quarter, year)
		summary, err := services.Journal.QuarterSummary(year, quarter)
		if err != nil {
			return fmt.Errorf("failed to generate quarterly summary: %w", err)
		}

		fmt.Println(headerStyle.Render(fmt.Sprintf("Q%d %d Summary", quarter, year)))
		fmt.Printf("Weeks tracked: %d\n", summary.WeeksTracked)
		fmt.Printf("%s %d tasks\n", okStyle.Render("Total completed:"), len(summary.CompletedTasks))
		fmt.Printf("%s %d tasks\n", workingStyle.Render("In progress:"), len(summary.InProgressTasks))
		if len(summary.Blockers) > 0 {
			fmt.Printf("%s %d\n", dangerStyle.Render("Blockers:"), len(summary.Blockers))
			for _, blocker := range summary.Blockers {
				fmt.Printf("  - %s\n", blocker)
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(quarterCmd)
}
