package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/output"
)

var intakesCmd = &cobra.Command{
	Use:               "intakes",
	Aliases:           []string{"intake"},
	Short:             "List and manage logged intakes",
	GroupID:           "tracking",
	PersistentPreRunE: guardRoute("nutrition"),
}

var intakesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List intakes, optionally within a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := a.client.Intakes(cmd.Context(), api.IntakeQueryParams{
			StartDate: from,
			EndDate:   to,
			Page:      page,
			Limit:     limit,
		})
		if err != nil {
			output.Error("%s", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(resp.Data.Intakes)
		}
		if len(resp.Data.Intakes) == 0 {
			fmt.Println("No intakes logged.")
			return nil
		}
		for i := range resp.Data.Intakes {
			fmt.Println(output.FormatIntakeShort(&resp.Data.Intakes[i]))
		}
		return nil
	},
}

var intakesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one intake with its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid intake id: %s", args[0])
		}

		resp, err := a.client.Intake(cmd.Context(), id)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(resp.Data.Intake)
		}
		fmt.Println(output.FormatIntakeShort(&resp.Data.Intake))
		return nil
	},
}

var intakesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid intake id: %s", args[0])
		}
		if !a.nutrition.DeleteIntake(cmd.Context(), id) {
			return errors.New(a.nutrition.Err())
		}
		output.Success("Deleted intake #%d", id)
		fmt.Println(output.FormatTotalsLine(a.nutrition.TodayTotal()))
		return nil
	},
}

var intakesItemCmd = &cobra.Command{
	Use:   "item",
	Short: "Add or remove items on an intake",
}

var intakesItemAddCmd = &cobra.Command{
	Use:   "add <intake-id> <grams>",
	Short: "Add an item to an intake (--food or --recipe)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		intakeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid intake id: %s", args[0])
		}
		grams, err := strconv.ParseFloat(args[1], 64)
		if err != nil || grams <= 0 {
			return fmt.Errorf("invalid quantity: %s", args[1])
		}

		foodID, _ := cmd.Flags().GetInt("food")
		recipeID, _ := cmd.Flags().GetInt("recipe")
		if (foodID > 0) == (recipeID > 0) {
			return errors.New("exactly one of --food or --recipe is required")
		}

		item := api.CreateIntakeItem{QuantityGrams: grams}
		if foodID > 0 {
			item.FoodID = &foodID
		} else {
			item.RecipeID = &recipeID
		}

		if _, err := a.client.AddIntakeItem(cmd.Context(), intakeID, item); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Added item to intake #%d", intakeID)
		return nil
	},
}

var intakesItemRemoveCmd = &cobra.Command{
	Use:   "remove <intake-id> <item-id>",
	Short: "Remove an item from an intake",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		intakeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid intake id: %s", args[0])
		}
		itemID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid item id: %s", args[1])
		}
		if _, err := a.client.RemoveIntakeItem(cmd.Context(), intakeID, itemID); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Removed item #%d from intake #%d", itemID, intakeID)
		return nil
	},
}

func init() {
	intakesListCmd.Flags().String("from", "", "Start date (YYYY-MM-DD)")
	intakesListCmd.Flags().String("to", "", "End date (YYYY-MM-DD)")
	intakesListCmd.Flags().Int("page", 1, "Result page")
	intakesListCmd.Flags().Int("limit", 20, "Results per page")
	intakesListCmd.Flags().Bool("json", false, "Output as JSON")
	intakesShowCmd.Flags().Bool("json", false, "Output as JSON")

	intakesItemAddCmd.Flags().Int("food", 0, "Food id to add")
	intakesItemAddCmd.Flags().Int("recipe", 0, "Recipe id to add")
	intakesItemCmd.AddCommand(intakesItemAddCmd)
	intakesItemCmd.AddCommand(intakesItemRemoveCmd)

	intakesCmd.AddCommand(intakesListCmd)
	intakesCmd.AddCommand(intakesShowCmd)
	intakesCmd.AddCommand(intakesDeleteCmd)
	intakesCmd.AddCommand(intakesItemCmd)
	rootCmd.AddCommand(intakesCmd)
}
