// Package output provides styled terminal output helpers (success, error,
// warning, nutrition formatting) using lipgloss.
package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/nutrition"
)

var (
	// Styles
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	scoreStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mealStyles   = map[models.MealType]lipgloss.Style{
		models.MealBreakfast: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.MealLunch:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		models.MealDinner:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.MealSnack:     lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// OutputMode determines output format
type OutputMode int

const (
	ModeShort OutputMode = iota
	ModeLong
	ModeJSON
)

// Success prints a success message
func Success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints an error message
func Error(format string, args ...interface{}) {
	fmt.Println(errorStyle.Render("ERROR: " + fmt.Sprintf(format, args...)))
}

// Warning prints a warning message
func Warning(format string, args ...interface{}) {
	fmt.Println(warningStyle.Render("Warning: " + fmt.Sprintf(format, args...)))
}

// Info prints an info message
func Info(format string, args ...interface{}) {
	fmt.Println(fmt.Sprintf(format, args...))
}

// JSON outputs data as JSON
func JSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// FormatMealType formats a meal type with its icon and color
func FormatMealType(meal models.MealType) string {
	label := fmt.Sprintf("%s %s", nutrition.MealTypeIcon(meal), meal)
	style, ok := mealStyles[meal]
	if !ok {
		return label
	}
	return style.Render(label)
}

// FormatNutrient renders one nutrient as "consumed/target" colored by
// progress
func FormatNutrient(name string, consumed, target, progress float64, unit string) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(nutrition.NutrientColor(progress)))
	value := fmt.Sprintf("%s/%s",
		nutrition.FormatNutrientValue(consumed, unit),
		nutrition.FormatNutrientValue(target, unit))
	return fmt.Sprintf("%-10s %s", name, style.Render(value))
}

// ProgressBar renders a fixed-width bar colored by the progress bucket.
// Fill is capped at 100% so overshoot shows in color, not length.
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		width = 20
	}
	filled := int(progress / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(nutrition.NutrientColor(progress)))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return style.Render(bar) + fmt.Sprintf(" %3.0f%%", progress)
}

// FormatScore renders the 0-100 daily nutrition score
func FormatScore(score int) string {
	return scoreStyle.Render(fmt.Sprintf("Nutrition score: %d/100", score))
}

// FormatTotalsLine renders totals compactly on one line
func FormatTotalsLine(t models.NutritionTotals) string {
	return fmt.Sprintf("%.0f kcal | P %s | C %s | F %s",
		t.Calories,
		nutrition.FormatNutrientValue(t.Protein, "g"),
		nutrition.FormatNutrientValue(t.Carbs, "g"),
		nutrition.FormatNutrientValue(t.Fat, "g"))
}

// FormatIntakeShort formats a logged intake in short format
func FormatIntakeShort(intake *models.Intake) string {
	var parts []string
	parts = append(parts, titleStyle.Render(fmt.Sprintf("#%d", intake.ID)))
	parts = append(parts, FormatMealType(intake.MealType))
	parts = append(parts, subtleStyle.Render(FormatTimeAgo(intake.ConsumedAt)))
	for _, item := range intake.Items {
		parts = append(parts, describeItem(item))
	}
	return strings.Join(parts, "  ")
}

func describeItem(item models.IntakeItem) string {
	name := "?"
	if item.Food != nil {
		name = item.Food.Name
	} else if item.Recipe != nil {
		name = item.Recipe.Name
	}
	return fmt.Sprintf("%s (%s)", name, nutrition.FormatNutrientValue(item.QuantityGrams, "g"))
}

// FormatDaily formats a full day in long format: per-nutrient bars, the
// per-meal breakdown, then each logged intake.
func FormatDaily(day *models.DailyNutrition) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(day.Date))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("%-10s %s\n", "Calories", ProgressBar(day.Progress.Calories, 20)))
	sb.WriteString(fmt.Sprintf("%-10s %s\n", "Protein", ProgressBar(day.Progress.Protein, 20)))
	sb.WriteString(fmt.Sprintf("%-10s %s\n", "Carbs", ProgressBar(day.Progress.Carbs, 20)))
	sb.WriteString(fmt.Sprintf("%-10s %s\n", "Fat", ProgressBar(day.Progress.Fat, 20)))

	sb.WriteString("\n")
	sb.WriteString(FormatScore(nutrition.Score(day.Progress)))
	sb.WriteString("\n")

	sb.WriteString(SectionHeader("meals"))
	for _, meal := range models.MealTypes {
		totals := day.ByMeal.ForMeal(meal)
		if totals.Calories == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s  %s\n", FormatMealType(meal), FormatTotalsLine(totals)))
	}

	if len(day.Intakes) > 0 {
		sb.WriteString(SectionHeader("logged"))
		for _, intake := range day.Intakes {
			sb.WriteString("  " + FormatIntakeShort(&intake) + "\n")
		}
	}

	return sb.String()
}

// FormatWeekly formats a week of daily summaries as one line per day.
func FormatWeekly(week []models.DailySummary) string {
	var sb strings.Builder
	for _, day := range week {
		sb.WriteString(fmt.Sprintf("%s  %s  score %d\n",
			titleStyle.Render(day.Date),
			FormatTotalsLine(day.Total),
			nutrition.Score(day.Progress)))
	}
	return sb.String()
}

// FormatFoodShort formats a food in short format
func FormatFoodShort(food *models.Food) string {
	var parts []string
	parts = append(parts, titleStyle.Render(fmt.Sprintf("#%d", food.ID)))
	parts = append(parts, food.Name)
	if food.Brand != "" {
		parts = append(parts, subtleStyle.Render(food.Brand))
	}
	parts = append(parts, subtleStyle.Render(fmt.Sprintf("%.0f kcal/100g", food.CaloriesPer100g)))
	return strings.Join(parts, "  ")
}

// FormatRecipeShort formats a recipe in short format
func FormatRecipeShort(recipe *models.Recipe) string {
	var parts []string
	parts = append(parts, titleStyle.Render(fmt.Sprintf("#%d", recipe.ID)))
	parts = append(parts, recipe.Name)
	parts = append(parts, subtleStyle.Render(fmt.Sprintf("%d servings", recipe.Servings)))
	if len(recipe.Ingredients) > 0 {
		parts = append(parts, subtleStyle.Render(fmt.Sprintf("%d ingredients", len(recipe.Ingredients))))
	}
	return strings.Join(parts, "  ")
}

// FormatRecommendations formats a next-meal recommendation response in
// long format.
func FormatRecommendations(recs *models.NextMealRecommendations) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Recommendations for %s", recs.MealType)))
	sb.WriteString("\n")
	sb.WriteString(subtleStyle.Render(fmt.Sprintf("Remaining today: %.0f kcal | P %.0fg | C %.0fg | F %.0fg",
		recs.RemainingCalories, recs.RemainingProtein, recs.RemainingCarbs, recs.RemainingFat)))
	sb.WriteString("\n")

	if len(recs.RecommendedFoods) > 0 {
		sb.WriteString(SectionHeader("foods"))
		for _, food := range recs.RecommendedFoods {
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				titleStyle.Render(food.Name),
				subtleStyle.Render(fmt.Sprintf("%s, %.0f kcal/100g (fit %.0f%%)",
					nutrition.FormatNutrientValue(food.RecommendedAmount, "g"),
					food.CaloriesPer100g, food.FitScore*100))))
			if food.Reasoning != "" {
				sb.WriteString(fmt.Sprintf("    %s\n", food.Reasoning))
			}
		}
	}

	if len(recs.RecommendedRecipes) > 0 {
		sb.WriteString(SectionHeader("recipes"))
		for _, recipe := range recs.RecommendedRecipes {
			sb.WriteString(fmt.Sprintf("  %s  %s\n",
				titleStyle.Render(recipe.Name),
				subtleStyle.Render(fmt.Sprintf("%.0f kcal/serving (fit %.0f%%)",
					recipe.CaloriesPerServing, recipe.FitScore*100))))
		}
	}

	return sb.String()
}

// FormatTimeAgo formats a time as a human-readable "ago" string
func FormatTimeAgo(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		return t.Format("2006-01-02")
	}
}

// SectionHeader returns a formatted section header for CLI output
// e.g., "\nMEALS:\n"
func SectionHeader(title string) string {
	return fmt.Sprintf("\n%s:\n", strings.ToUpper(title))
}

// IndentString indents each line in a string by the specified number of spaces
func IndentString(s string, spaces int) string {
	if s == "" {
		return ""
	}
	indent := strings.Repeat(" ", spaces)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}
