package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/appconfig"
	"github.com/nutrisuggest/nutri/internal/guard"
	"github.com/nutrisuggest/nutri/internal/output"
)

var version string

// SetVersion sets the version string
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "nutri",
	Short: "Nutrition tracking and meal recommendation CLI",
	Long: `nutri - Track what you eat, see your macro progress, and get
meal recommendations matched to your remaining daily targets.

Requires a NutriSuggest account; run 'nutri auth login' to get started.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// nameWithAliases returns "name, alias1, alias2" if aliases exist, else just "name"
func nameWithAliases(cmd *cobra.Command) string {
	if len(cmd.Aliases) > 0 {
		return cmd.Name() + ", " + strings.Join(cmd.Aliases, ", ")
	}
	return cmd.Name()
}

func init() {
	// Add custom template function for showing aliases
	cobra.AddTemplateFunc("nameWithAliases", nameWithAliases)
	cobra.AddTemplateFunc("add", func(a, b int) int { return a + b })

	// Custom usage template that shows aliases inline
	usageTemplate := `Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

Aliases:
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

Available Commands:{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

Additional Commands:{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad (nameWithAliases .) (add .NamePadding 8)}} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasHelpSubCommands}}

Additional help topics:{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .CommandPath .CommandPathPadding}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
	rootCmd.SetUsageTemplate(usageTemplate)

	// Define command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: "tracking", Title: "Tracking Commands:"},
		&cobra.Group{ID: "library", Title: "Library Commands:"},
		&cobra.Group{ID: "insights", Title: "Insight Commands:"},
		&cobra.Group{ID: "account", Title: "Account Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)

	rootCmd.SetHelpCommandGroupID("system")
	rootCmd.SetCompletionCommandGroupID("system")
}

// guardRoute evaluates the navigation guard for a named route before a
// command runs, printing where the user was redirected and why.
func guardRoute(name string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		route, ok := guard.RouteByName(name)
		if !ok {
			return fmt.Errorf("unknown route: %s", name)
		}

		a, err := getApp()
		if err != nil {
			return err
		}

		decision := guard.Decide(cmd.Context(), a.session, route)
		if decision.Allow {
			return nil
		}

		switch decision.RedirectTo {
		case "login":
			output.Error("You are not logged in. Run 'nutri auth login' first.")
		case "profile":
			output.Error("Complete your profile first: 'nutri profile set'.")
		case "dashboard":
			output.Info("Already logged in as %s.", a.session.User().Email)
		}
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("redirected to %s", decision.RedirectTo)
	}
}

// homeCmd mirrors the bare entry point: report where a fresh start lands.
var homeCmd = &cobra.Command{
	Use:     "home",
	Short:   "Show where you'd land: dashboard if logged in, login otherwise",
	GroupID: "system",
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := guard.HomeRedirect(appconfig.HasToken())
		output.Info("→ nutri %s", dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
