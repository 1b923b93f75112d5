package dashboard

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/nutrition"
)

var (
	// Base colors
	primaryColor = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("241")
	errorColor   = lipgloss.Color("196")

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	panelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Background(lipgloss.Color("237")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	// Text styles
	titleStyle     = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(mutedColor)
	helpStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	errStyle       = lipgloss.NewStyle().Foreground(errorColor)
	scoreStyle     = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
	timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	// Meal styles
	mealStyles = map[models.MealType]lipgloss.Style{
		models.MealBreakfast: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.MealLunch:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		models.MealDinner:    lipgloss.NewStyle().Foreground(lipgloss.Color("141")),
		models.MealSnack:     lipgloss.NewStyle().Foreground(lipgloss.Color("45")),
	}
)

// formatMeal renders a meal type with its icon and color
func formatMeal(meal models.MealType) string {
	label := nutrition.MealTypeIcon(meal) + " " + string(meal)
	style, ok := mealStyles[meal]
	if !ok {
		return label
	}
	return style.Render(label)
}

// progressStyle returns the style for a progress percentage bucket
func progressStyle(progress float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(nutrition.NutrientColor(progress)))
}
