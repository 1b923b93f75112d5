package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/output"
)

var todayCmd = &cobra.Command{
	Use:               "today",
	Short:             "Show today's nutrition summary",
	GroupID:           "insights",
	PersistentPreRunE: guardRoute("dashboard"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.nutrition.FetchToday(cmd.Context()) {
			return errors.New(a.nutrition.Err())
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(a.nutrition.Daily())
		}
		fmt.Print(output.FormatDaily(a.nutrition.Daily()))
		return nil
	},
}

var dayCmd = &cobra.Command{
	Use:               "day <date>",
	Short:             "Show the nutrition summary for a date (YYYY-MM-DD)",
	GroupID:           "insights",
	Args:              cobra.ExactArgs(1),
	PersistentPreRunE: guardRoute("nutrition"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if _, err := time.Parse("2006-01-02", args[0]); err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
		}
		if !a.nutrition.FetchDaily(cmd.Context(), args[0]) {
			return errors.New(a.nutrition.Err())
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(a.nutrition.Daily())
		}
		fmt.Print(output.FormatDaily(a.nutrition.Daily()))
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:               "week [start-date]",
	Short:             "Show the weekly nutrition summary",
	GroupID:           "insights",
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: guardRoute("nutrition"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		start := startOfWeek(time.Now())
		if len(args) == 1 {
			parsed, err := time.Parse("2006-01-02", args[0])
			if err != nil {
				return fmt.Errorf("invalid date %q, want YYYY-MM-DD", args[0])
			}
			start = parsed
		}

		if !a.nutrition.FetchWeekly(cmd.Context(), start.Format("2006-01-02")) {
			return errors.New(a.nutrition.Err())
		}
		week := a.nutrition.Weekly()
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(week)
		}
		if len(week) == 0 {
			fmt.Println("No nutrition data for that week.")
			return nil
		}
		fmt.Print(output.FormatWeekly(week))
		return nil
	},
}

// startOfWeek returns the Monday of the week containing t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func init() {
	todayCmd.Flags().Bool("json", false, "Output as JSON")
	dayCmd.Flags().Bool("json", false, "Output as JSON")
	weekCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(dayCmd)
	rootCmd.AddCommand(weekCmd)
}
