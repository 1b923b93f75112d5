package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/nutrition"
	"github.com/nutrisuggest/nutri/internal/output"
)

var foodsCmd = &cobra.Command{
	Use:               "foods",
	Aliases:           []string{"food"},
	Short:             "Browse and manage the food library",
	GroupID:           "library",
	PersistentPreRunE: guardRoute("foods"),
}

var foodsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		brand, _ := cmd.Flags().GetString("brand")
		mine, _ := cmd.Flags().GetBool("mine")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		resp, err := a.client.SearchFoods(cmd.Context(), api.FoodSearchParams{
			Query:       args[0],
			Brand:       brand,
			CreatedByMe: mine,
			Page:        page,
			Limit:       limit,
		})
		if err != nil {
			output.Error("%s", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(resp.Data.Foods)
		}
		if len(resp.Data.Foods) == 0 {
			fmt.Println("No foods found.")
			return nil
		}
		for i := range resp.Data.Foods {
			fmt.Println(output.FormatFoodShort(&resp.Data.Foods[i]))
		}
		return nil
	},
}

var foodsPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		resp, err := a.client.PopularFoods(cmd.Context())
		if err != nil {
			output.Error("%s", err)
			return err
		}
		for i := range resp.Data.Foods {
			fmt.Println(output.FormatFoodShort(&resp.Data.Foods[i]))
		}
		return nil
	},
}

var foodsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List foods you created",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		resp, err := a.client.UserFoods(cmd.Context(), page, limit)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		if len(resp.Data.Foods) == 0 {
			fmt.Println("You have not created any foods.")
			return nil
		}
		for i := range resp.Data.Foods {
			fmt.Println(output.FormatFoodShort(&resp.Data.Foods[i]))
		}
		return nil
	},
}

var foodsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently logged foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := openCache()
		if c == nil {
			fmt.Println("No recent items recorded.")
			return nil
		}
		defer c.Close()

		items, err := c.Recent(cache.KindFood, 10)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No recent items recorded.")
			return nil
		}
		for _, item := range items {
			fmt.Printf("#%-4d %s (%s, used %dx)\n", item.ItemID, item.Name, item.Detail, item.Uses)
		}
		return nil
	},
}

var foodsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one food with full macros",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid food id: %s", args[0])
		}

		resp, err := a.client.Food(cmd.Context(), id)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		food := resp.Data.Food

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(food)
		}

		fmt.Println(output.FormatFoodShort(&food))
		fmt.Printf("  Protein: %s/100g\n", nutrition.FormatNutrientValue(food.ProteinPer100g, "g"))
		fmt.Printf("  Carbs:   %s/100g\n", nutrition.FormatNutrientValue(food.CarbsPer100g, "g"))
		fmt.Printf("  Fat:     %s/100g\n", nutrition.FormatNutrientValue(food.FatPer100g, "g"))
		if food.FiberPer100g != nil {
			fmt.Printf("  Fiber:   %s/100g\n", nutrition.FormatNutrientValue(*food.FiberPer100g, "g"))
		}
		if food.Barcode != "" {
			fmt.Printf("  Barcode: %s\n", food.Barcode)
		}
		return nil
	},
}

var foodsBarcodeCmd = &cobra.Command{
	Use:   "barcode <code>",
	Short: "Look a food up by barcode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		resp, err := a.client.FoodByBarcode(cmd.Context(), args[0])
		if err != nil {
			output.Error("%s", err)
			return err
		}
		fmt.Println(output.FormatFoodShort(&resp.Data.Food))
		return nil
	},
}

var foodsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a food (macros per 100g via flags)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		calories, _ := cmd.Flags().GetFloat64("calories")
		protein, _ := cmd.Flags().GetFloat64("protein")
		carbs, _ := cmd.Flags().GetFloat64("carbs")
		fat, _ := cmd.Flags().GetFloat64("fat")
		brand, _ := cmd.Flags().GetString("brand")
		barcode, _ := cmd.Flags().GetString("barcode")
		if calories <= 0 {
			return errors.New("--calories is required and must be positive")
		}

		resp, err := a.client.CreateFood(cmd.Context(), api.CreateFoodData{
			Name:            args[0],
			Brand:           brand,
			Barcode:         barcode,
			CaloriesPer100g: calories,
			ProteinPer100g:  protein,
			CarbsPer100g:    carbs,
			FatPer100g:      fat,
		})
		if err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Created food #%d: %s", resp.Data.Food.ID, resp.Data.Food.Name)
		return nil
	},
}

var foodsUpdateCmd = &cobra.Command{
	Use:   "update <id> <name>",
	Short: "Update a food you created",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid food id: %s", args[0])
		}

		calories, _ := cmd.Flags().GetFloat64("calories")
		protein, _ := cmd.Flags().GetFloat64("protein")
		carbs, _ := cmd.Flags().GetFloat64("carbs")
		fat, _ := cmd.Flags().GetFloat64("fat")
		brand, _ := cmd.Flags().GetString("brand")
		barcode, _ := cmd.Flags().GetString("barcode")
		if calories <= 0 {
			return errors.New("--calories is required and must be positive")
		}

		resp, err := a.client.UpdateFood(cmd.Context(), id, api.CreateFoodData{
			Name:            args[1],
			Brand:           brand,
			Barcode:         barcode,
			CaloriesPer100g: calories,
			ProteinPer100g:  protein,
			CarbsPer100g:    carbs,
			FatPer100g:      fat,
		})
		if err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Updated food #%d: %s", resp.Data.Food.ID, resp.Data.Food.Name)
		return nil
	},
}

var foodsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a food you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid food id: %s", args[0])
		}
		if _, err := a.client.DeleteFood(cmd.Context(), id); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Deleted food #%d", id)
		return nil
	},
}

var foodsNutritionCmd = &cobra.Command{
	Use:   "nutrition <id> <grams>",
	Short: "Compute nutrition for a quantity of a food",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid food id: %s", args[0])
		}
		grams, err := strconv.ParseFloat(args[1], 64)
		if err != nil || grams <= 0 {
			return fmt.Errorf("invalid quantity: %s", args[1])
		}

		resp, err := a.client.FoodNutrition(cmd.Context(), id, grams)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		fmt.Println(output.FormatTotalsLine(resp.Data.Nutrition))
		return nil
	},
}

func init() {
	foodsSearchCmd.Flags().String("brand", "", "Filter by brand")
	foodsSearchCmd.Flags().Bool("mine", false, "Only foods you created")
	foodsSearchCmd.Flags().Int("page", 1, "Result page")
	foodsSearchCmd.Flags().Int("limit", 20, "Results per page")
	foodsSearchCmd.Flags().Bool("json", false, "Output as JSON")
	foodsMineCmd.Flags().Int("page", 1, "Result page")
	foodsMineCmd.Flags().Int("limit", 20, "Results per page")
	foodsShowCmd.Flags().Bool("json", false, "Output as JSON")

	foodsCreateCmd.Flags().Float64("calories", 0, "Calories per 100g")
	foodsCreateCmd.Flags().Float64("protein", 0, "Protein grams per 100g")
	foodsCreateCmd.Flags().Float64("carbs", 0, "Carb grams per 100g")
	foodsCreateCmd.Flags().Float64("fat", 0, "Fat grams per 100g")
	foodsCreateCmd.Flags().String("brand", "", "Brand name")
	foodsCreateCmd.Flags().String("barcode", "", "Barcode")

	foodsUpdateCmd.Flags().Float64("calories", 0, "Calories per 100g")
	foodsUpdateCmd.Flags().Float64("protein", 0, "Protein grams per 100g")
	foodsUpdateCmd.Flags().Float64("carbs", 0, "Carb grams per 100g")
	foodsUpdateCmd.Flags().Float64("fat", 0, "Fat grams per 100g")
	foodsUpdateCmd.Flags().String("brand", "", "Brand name")
	foodsUpdateCmd.Flags().String("barcode", "", "Barcode")

	foodsCmd.AddCommand(foodsSearchCmd)
	foodsCmd.AddCommand(foodsPopularCmd)
	foodsCmd.AddCommand(foodsMineCmd)
	foodsCmd.AddCommand(foodsRecentCmd)
	foodsCmd.AddCommand(foodsShowCmd)
	foodsCmd.AddCommand(foodsBarcodeCmd)
	foodsCmd.AddCommand(foodsCreateCmd)
	foodsCmd.AddCommand(foodsUpdateCmd)
	foodsCmd.AddCommand(foodsDeleteCmd)
	foodsCmd.AddCommand(foodsNutritionCmd)
	rootCmd.AddCommand(foodsCmd)
}
