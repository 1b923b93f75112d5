package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/appconfig"
	"github.com/nutrisuggest/nutri/internal/output"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Show or change client configuration",
	GroupID: "system",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(map[string]string{
				"api_url":            appconfig.APIURL(),
				"recommendation_url": appconfig.RecommendationURL(),
			})
		}
		fmt.Printf("API server:             %s\n", appconfig.APIURL())
		fmt.Printf("Recommendation service: %s\n", appconfig.RecommendationURL())
		if appconfig.HasToken() {
			fmt.Println("Credentials:            stored")
		} else {
			fmt.Println("Credentials:            none")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config key (api-url, recommendation-url)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := appconfig.LoadConfig()
		if err != nil {
			return err
		}

		switch args[0] {
		case "api-url":
			cfg.APIURL = args[1]
		case "recommendation-url":
			cfg.RecommendationURL = args[1]
		default:
			return fmt.Errorf("unknown config key %q, want api-url or recommendation-url", args[0])
		}

		if err := appconfig.SaveConfig(cfg); err != nil {
			return err
		}
		output.Success("Set %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	configShowCmd.Flags().Bool("json", false, "Output as JSON")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
