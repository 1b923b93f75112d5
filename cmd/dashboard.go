package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/tui/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:               "dashboard",
	Aliases:           []string{"dash"},
	Short:             "Live nutrition dashboard",
	GroupID:           "insights",
	PersistentPreRunE: guardRoute("dashboard"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		interval, _ := cmd.Flags().GetDuration("refresh")
		if interval < 5*time.Second {
			interval = 5 * time.Second
		}

		recent := openCache()
		if recent != nil {
			defer recent.Close()
		}

		model := dashboard.NewModel(a.session, a.nutrition, recent, interval)
		p := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("dashboard error: %w", err)
		}
		return nil
	},
}

func init() {
	dashboardCmd.Flags().Duration("refresh", 30*time.Second, "Auto refresh interval")
	rootCmd.AddCommand(dashboardCmd)
}
