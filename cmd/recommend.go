package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/output"
)

var recommendCmd = &cobra.Command{
	Use:               "recommend",
	Aliases:           []string{"rec"},
	Short:             "Meal recommendations and nutrition analysis",
	GroupID:           "insights",
	PersistentPreRunE: guardRoute("nutrition"),
}

var recommendNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest foods and recipes for your next meal",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		meal, err := mealFromFlags(cmd)
		if err != nil {
			return err
		}

		// Today's totals feed the scorer; fetch them first.
		if !a.nutrition.FetchToday(cmd.Context()) {
			return errors.New(a.nutrition.Err())
		}
		if !a.nutrition.FetchRecommendations(cmd.Context(), meal) {
			return errors.New(a.nutrition.Err())
		}

		recs := a.nutrition.Recommendations()
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(recs)
		}
		fmt.Print(output.FormatRecommendations(recs))
		if len(recs.NutritionTips) > 0 {
			if rendered, err := output.RenderTips(recs.NutritionTips); err == nil {
				fmt.Print(rendered)
			}
		}
		return nil
	},
}

var recommendPlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a full-day meal plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		user := a.session.User()
		if user == nil || user.Profile == nil {
			return errors.New("User profile is required for recommendations")
		}

		req := api.DailyPlanRequest{
			UserID:      user.ID,
			UserProfile: *user.Profile,
		}
		if calories, _ := cmd.Flags().GetFloat64("calories"); calories > 0 {
			req.TargetCalories = &calories
		}
		req.Preferences, _ = cmd.Flags().GetStringSlice("prefer")
		req.Restrictions, _ = cmd.Flags().GetStringSlice("avoid")

		resp, err := a.client.GenerateDailyPlan(cmd.Context(), req)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		plan := resp.Data
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(plan)
		}

		fmt.Printf("Plan for %s (%.0f kcal target)\n", plan.Date, plan.TargetCalories)
		for _, mealPlan := range plan.Meals {
			fmt.Print(output.SectionHeader(mealPlan.MealType))
			for i := range mealPlan.Foods {
				food := &mealPlan.Foods[i]
				fmt.Printf("  %s (%.0fg)\n", food.Name, food.RecommendedAmount)
			}
			for i := range mealPlan.Recipes {
				fmt.Printf("  %s\n", mealPlan.Recipes[i].Name)
			}
			fmt.Printf("  ~%.0f kcal\n", mealPlan.TotalCalories)
		}
		fmt.Println()
		fmt.Println(output.FormatScore(int(plan.NutritionScore)))
		if len(plan.Recommendations) > 0 {
			if rendered, err := output.RenderTips(plan.Recommendations); err == nil {
				fmt.Print(rendered)
			}
		}
		return nil
	},
}

var recommendGapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Analyze today's nutrient gaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		user := a.session.User()
		if user == nil || !a.session.HasCompleteProfile() {
			return errors.New("User profile is required for recommendations")
		}
		if !a.nutrition.FetchToday(cmd.Context()) {
			return errors.New(a.nutrition.Err())
		}

		targets := a.nutrition.TodayTargets()
		req := api.GapAnalysisRequest{
			UserID:         user.ID,
			CurrentIntake:  a.nutrition.TodayTotal(),
			TargetCalories: targets.Calories,
			TargetProtein:  targets.Protein,
			TargetCarbs:    targets.Carbs,
			TargetFat:      targets.Fat,
		}
		if raw, _ := cmd.Flags().GetString("meal"); raw != "" {
			meal := models.MealType(raw)
			if !meal.Valid() {
				return fmt.Errorf("invalid meal type %q", raw)
			}
			req.MealType = raw
		}

		resp, err := a.client.AnalyzeGaps(cmd.Context(), req)
		if err != nil {
			output.Error("%s", err)
			return err
		}
		analysis := resp.Data
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return output.JSON(analysis)
		}

		for _, gap := range analysis.Gaps {
			fmt.Printf("%-8s %5.0f / %5.0f  (%3.0f%%, %s)\n",
				gap.Nutrient, gap.Current, gap.Target, gap.PercentageMet, gap.Status)
		}
		if len(analysis.PriorityNutrients) > 0 {
			fmt.Printf("\nFocus on: %v\n", analysis.PriorityNutrients)
		}
		if len(analysis.RecommendedFoods) > 0 {
			fmt.Print(output.SectionHeader("foods"))
			for i := range analysis.RecommendedFoods {
				food := &analysis.RecommendedFoods[i]
				fmt.Printf("  %s (%.0fg)\n", food.Name, food.RecommendedAmount)
			}
		}
		fmt.Println()
		fmt.Println(output.FormatScore(int(analysis.OverallScore)))
		if len(analysis.ActionableTips) > 0 {
			if rendered, err := output.RenderTips(analysis.ActionableTips); err == nil {
				fmt.Print(rendered)
			}
		}
		return nil
	},
}

func init() {
	recommendNextCmd.Flags().String("meal", "", "Meal type to plan for; defaults by time of day")
	recommendNextCmd.Flags().Bool("json", false, "Output as JSON")
	recommendPlanCmd.Flags().Float64("calories", 0, "Override the calorie target")
	recommendPlanCmd.Flags().StringSlice("prefer", nil, "Preferred foods or cuisines")
	recommendPlanCmd.Flags().StringSlice("avoid", nil, "Foods to avoid")
	recommendPlanCmd.Flags().Bool("json", false, "Output as JSON")
	recommendGapsCmd.Flags().String("meal", "", "Restrict suggestions to a meal type")
	recommendGapsCmd.Flags().Bool("json", false, "Output as JSON")

	recommendCmd.AddCommand(recommendNextCmd)
	recommendCmd.AddCommand(recommendPlanCmd)
	recommendCmd.AddCommand(recommendGapsCmd)
	rootCmd.AddCommand(recommendCmd)
}
