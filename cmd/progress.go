package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mastermind/internal/curriculum"
	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show syllabus coverage by domain",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		us := e.state.Settings()
		c := e.state.Curriculum()
		stats := curriculum.ComputeStats(c)
		breakdown := curriculum.DomainBreakdown(c)

		fmt.Printf("%s, %s on %s (%d days left)\n\n",
			us.Name, us.ExamType.Label(), us.ExamDate.Format("2 Jan 2006"), us.DaysRemaining(e.state.Now()))
		fmt.Printf("Overall: %d/%d items (%d%%)\n\n", stats.Completed, stats.Total, stats.Percent())

		fmt.Printf("%-36s  %7s  %5s\n", "Domain", "Topics", "Done")
		fmt.Println(strings.Repeat("─", 52))
		for _, d := range breakdown {
			fmt.Printf("%-36s  %3d/%-3d  %4d%%\n", truncate(d.Name, 36), d.Completed, d.Total, d.Percentage)
		}

		if w, ok := curriculum.WeakestDomain(breakdown); ok {
			fmt.Printf("\nFocus area: %s\n", w.Name)
		}
		return nil
	},
}
