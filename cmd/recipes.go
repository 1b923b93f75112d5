package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/output"
)

var recipesCmd = &cobra.Command{
	Use:               "recipes",
	Aliases:           []string{"recipe"},
	Short:             "Browse and manage recipes",
	GroupID:           "library",
	PersistentPreRunE: guardRoute("recipes"),
}

var recipesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recipes by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		mine, _ := cmd.Flags().GetBool("mine")

		resp, err := a.client.SearchRecipes(cmd.Context(), api.RecipeSearchParams{
			Query:       args[0],
			Page:        page,
			Limit:       limit,
			CreatedByMe: mine,
		})
		if err != nil {
			output.Error("%s", err)
			return err
		}

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(resp.Data.Recipes)
		}
		if len(resp.Data.Recipes) == 0 {
			fmt.Println("No recipes found.")
			return nil
		}
		for i := range resp.Data.Recipes {
			fmt.Println(output.FormatRecipeShort(&resp.Data.Recipes[i]))
		}
		return nil
	},
}

var recipesPopularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		resp, err := a.client.PopularRecipes(cmd.Context())
		if err != nil {
			output.Error("%s", err)
			return err
		}
		for i := range resp.Data.Recipes {
			fmt.Println(output.FormatRecipeShort(&resp.Data.Recipes[i]))
		}
		return nil
	},
}

var recipesMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List recipes you created",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")
		resp, err := a.client.UserRecipes(cmd.Context(), page, limit)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		if len(resp.Data.Recipes) == 0 {
			fmt.Println("You have not created any recipes.")
			return nil
		}
		for i := range resp.Data.Recipes {
			fmt.Println(output.FormatRecipeShort(&resp.Data.Recipes[i]))
		}
		return nil
	},
}

var recipesRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently logged recipes",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := openCache()
		if c == nil {
			fmt.Println("No recent items recorded.")
			return nil
		}
		defer c.Close()

		items, err := c.Recent(cache.KindRecipe, 10)
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

var recipesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one recipe with its ingredients",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}

		resp, err := a.client.Recipe(cmd.Context(), id)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		recipe := resp.Data.Recipe

		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(recipe)
		}

		fmt.Println(output.FormatRecipeShort(&recipe))
		if recipe.PrepTimeMinutes != nil {
			fmt.Printf("  Prep time: %d min\n", *recipe.PrepTimeMinutes)
		}
		if len(recipe.Ingredients) > 0 {
			fmt.Print(output.SectionHeader("ingredients"))
			for _, ing := range recipe.Ingredients {
				name := fmt.Sprintf("food #%d", ing.FoodID)
				if ing.Food != nil {
					name = ing.Food.Name
				}
				fmt.Printf("  %s (%.0fg)\n", name, ing.QuantityGrams)
			}
		}
		if recipe.Instructions != "" {
			fmt.Print(output.SectionHeader("instructions"))
			fmt.Println(output.IndentString(recipe.Instructions, 2))
		}
		return nil
	},
}

var recipesNutritionCmd = &cobra.Command{
	Use:   "nutrition <id>",
	Short: "Show nutrition totals for a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}
		servings, _ := cmd.Flags().GetInt("servings")

		resp, err := a.client.RecipeNutrition(cmd.Context(), id, servings)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		fmt.Printf("Total:       %s\n", output.FormatTotalsLine(resp.Data.Nutrition.Total))
		fmt.Printf("Per serving: %s\n", output.FormatTotalsLine(resp.Data.Nutrition.PerServing))
		return nil
	},
}

var recipesCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a recipe (ingredients via repeated --ingredient id:grams)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		servings, _ := cmd.Flags().GetInt("servings")
		instructions, _ := cmd.Flags().GetString("instructions")
		prep, _ := cmd.Flags().GetInt("prep-time")
		specs, _ := cmd.Flags().GetStringArray("ingredient")
		if len(specs) == 0 {
			return fmt.Errorf("at least one --ingredient is required")
		}

		ingredients := make([]api.CreateRecipeIngredient, 0, len(specs))
		for _, spec := range specs {
			ing, err := parseIngredient(spec)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, ing)
		}

		data := api.CreateRecipeData{
			Name:         args[0],
			Instructions: instructions,
			Servings:     servings,
			Ingredients:  ingredients,
		}
		if prep > 0 {
			data.PrepTimeMinutes = &prep
		}

		resp, err := a.client.CreateRecipe(cmd.Context(), data)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Created recipe #%d: %s", resp.Data.Recipe.ID, resp.Data.Recipe.Name)
		return nil
	},
}

var recipesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe you created",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}
		if _, err := a.client.DeleteRecipe(cmd.Context(), id); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Deleted recipe #%d", id)
		return nil
	},
}

var recipesIngredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Add or remove recipe ingredients",
}

var recipesIngredientAddCmd = &cobra.Command{
	Use:   "add <recipe-id> <food-id> <grams>",
	Short: "Add an ingredient to a recipe",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		recipeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}
		ing, err := parseIngredient(args[1] + ":" + args[2])
		if err != nil {
			return err
		}
		if _, err := a.client.AddIngredient(cmd.Context(), recipeID, ing); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Added food #%d (%.0fg) to recipe #%d", ing.FoodID, ing.QuantityGrams, recipeID)
		return nil
	},
}

var recipesIngredientRemoveCmd = &cobra.Command{
	Use:   "remove <recipe-id> <ingredient-id>",
	Short: "Remove an ingredient from a recipe",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		recipeID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}
		ingredientID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid ingredient id: %s", args[1])
		}
		if _, err := a.client.RemoveIngredient(cmd.Context(), recipeID, ingredientID); err != nil {
			output.Error("%s", err)
			return err
		}
		output.Success("Removed ingredient #%d from recipe #%d", ingredientID, recipeID)
		return nil
	},
}

// parseIngredient parses "foodID:grams" as used by --ingredient flags.
func parseIngredient(spec string) (api.CreateRecipeIngredient, error) {
	var foodID int
	var grams float64
	if _, err := fmt.Sscanf(spec, "%d:%f", &foodID, &grams); err != nil {
		return api.CreateRecipeIngredient{}, fmt.Errorf("invalid ingredient %q, want food-id:grams", spec)
	}
	if grams <= 0 {
		return api.CreateRecipeIngredient{}, fmt.Errorf("ingredient %q must have a positive quantity", spec)
	}
	return api.CreateRecipeIngredient{FoodID: foodID, QuantityGrams: grams}, nil
}

func init() {
	recipesSearchCmd.Flags().Int("page", 1, "Result page")
	recipesSearchCmd.Flags().Int("limit", 20, "Results per page")
	recipesSearchCmd.Flags().Bool("mine", false, "Only recipes you created")
	recipesSearchCmd.Flags().Bool("json", false, "Output as JSON")
	recipesMineCmd.Flags().Int("page", 1, "Result page")
	recipesMineCmd.Flags().Int("limit", 20, "Results per page")
	recipesShowCmd.Flags().Bool("json", false, "Output as JSON")
	recipesNutritionCmd.Flags().Int("servings", 0, "Override serving count")

	recipesCreateCmd.Flags().Int("servings", 1, "Number of servings the recipe yields")
	recipesCreateCmd.Flags().String("instructions", "", "Preparation instructions")
	recipesCreateCmd.Flags().Int("prep-time", 0, "Prep time in minutes")
	recipesCreateCmd.Flags().StringArray("ingredient", nil, "Ingredient as food-id:grams (repeatable)")

	recipesIngredientCmd.AddCommand(recipesIngredientAddCmd)
	recipesIngredientCmd.AddCommand(recipesIngredientRemoveCmd)

	recipesCmd.AddCommand(recipesSearchCmd)
	recipesCmd.AddCommand(recipesPopularCmd)
	recipesCmd.AddCommand(recipesMineCmd)
	recipesCmd.AddCommand(recipesRecentCmd)
	recipesCmd.AddCommand(recipesShowCmd)
	recipesCmd.AddCommand(recipesNutritionCmd)
	recipesCmd.AddCommand(recipesCreateCmd)
	recipesCmd.AddCommand(recipesDeleteCmd)
	recipesCmd.AddCommand(recipesIngredientCmd)
	rootCmd.AddCommand(recipesCmd)
}
