package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect the saved study plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved study plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		p, ok := e.state.Plan()
		if !ok {
			fmt.Println("No study plan saved. Generate one from the Smart Planner.")
			return nil
		}
		fmt.Print(p.Text())
		fmt.Printf("\nGenerated %s.\n", humanize.Time(p.CreatedAt))
		return nil
	},
}

var planClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved study plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if _, ok := e.state.Plan(); !ok {
			fmt.Println("No study plan saved.")
			return nil
		}
		if err := e.state.ClearPlan(cmd.Context()); err != nil {
			return fmt.Errorf("clear plan: %w", err)
		}
		fmt.Println("Study plan removed.")
		return nil
	},
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planClearCmd)
}
