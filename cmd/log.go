package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/output"
)

var logCmd = &cobra.Command{
	Use:               "log",
	Short:             "Log food or recipe consumption",
	GroupID:           "tracking",
	PersistentPreRunE: guardRoute("nutrition"),
}

var logFoodCmd = &cobra.Command{
	Use:   "food <id> <grams>",
	Short: "Log a food by id and quantity in grams",
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
		meal, err := mealFromFlags(cmd)
		if err != nil {
			return err
		}

		if !a.nutrition.LogQuickFood(cmd.Context(), id, grams, meal) {
			return errors.New(a.nutrition.Err())
		}
		output.Success("Logged %.0fg for %s", grams, meal)
		rememberItem(cache.KindFood, id, grams)
		fmt.Println(output.FormatTotalsLine(a.nutrition.TodayTotal()))
		return nil
	},
}

var logRecipeCmd = &cobra.Command{
	Use:   "recipe <id> <servings>",
	Short: "Log a recipe by id and serving count",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid recipe id: %s", args[0])
		}
		servings, err := strconv.ParseFloat(args[1], 64)
		if err != nil || servings <= 0 {
			return fmt.Errorf("invalid serving count: %s", args[1])
		}
		meal, err := mealFromFlags(cmd)
		if err != nil {
			return err
		}

		if !a.nutrition.LogQuickRecipe(cmd.Context(), id, servings, meal) {
			return errors.New(a.nutrition.Err())
		}
		output.Success("Logged %g serving(s) for %s", servings, meal)
		rememberItem(cache.KindRecipe, id, servings*100)
		fmt.Println(output.FormatTotalsLine(a.nutrition.TodayTotal()))
		return nil
	},
}

// mealFromFlags resolves --meal, defaulting by time of day.
func mealFromFlags(cmd *cobra.Command) (models.MealType, error) {
	raw, _ := cmd.Flags().GetString("meal")
	if raw == "" {
		return defaultMealType(time.Now()), nil
	}
	meal := models.MealType(raw)
	if !meal.Valid() {
		return "", fmt.Errorf("invalid meal type %q, want one of breakfast, lunch, dinner, snack", raw)
	}
	return meal, nil
}

func defaultMealType(now time.Time) models.MealType {
	switch h := now.Hour(); {
	case h < 11:
		return models.MealBreakfast
	case h < 15:
		return models.MealLunch
	case h < 21:
		return models.MealDinner
	default:
		return models.MealSnack
	}
}

// rememberItem records a logged item in the recent-items cache so the
// dashboard quick-log can offer it. Best effort; the name is resolved
// from the freshly refetched day so no extra request is needed.
func rememberItem(kind cache.Kind, id int, grams float64) {
	c := openCache()
	if c == nil {
		return
	}
	defer c.Close()

	a, err := getApp()
	if err != nil {
		return
	}
	name := fmt.Sprintf("%s #%d", kind, id)
	for _, intake := range a.nutrition.TodayIntakes() {
		for _, item := range intake.Items {
			switch kind {
			case cache.KindFood:
				if item.FoodID != nil && *item.FoodID == id && item.Food != nil {
					name = item.Food.Name
				}
			case cache.KindRecipe:
				if item.RecipeID != nil && *item.RecipeID == id && item.Recipe != nil {
					name = item.Recipe.Name
				}
			}
		}
	}
	_ = c.Touch(kind, id, name, fmt.Sprintf("%.0fg", grams))
}

func init() {
	logCmd.PersistentFlags().String("meal", "", "Meal type (breakfast, lunch, dinner, snack); defaults by time of day")
	logCmd.AddCommand(logFoodCmd)
	logCmd.AddCommand(logRecipeCmd)
	rootCmd.AddCommand(logCmd)
}
