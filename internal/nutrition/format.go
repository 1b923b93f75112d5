package nutrition

import (
	"fmt"
	"math"

	"github.com/nutrisuggest/nutri/internal/models"
)

// Progress-to-color buckets for nutrient display.
const (
	ColorRed   = "#ef4444"
	ColorAmber = "#f59e0b"
	ColorGreen = "#10b981"
)

// FormatNutrientValue renders a gram quantity for display; sub-1g
// quantities render in milligrams.
func FormatNutrientValue(value float64, unit string) string {
	if value < 1 && unit == "g" {
		return fmt.Sprintf("%dmg", int(math.Round(value*1000)))
	}
	return fmt.Sprintf("%g%s", math.Round(value*10)/10, unit)
}

// NutrientColor maps a progress percentage to a display color: short of
// target is red then amber, on target is green, and over 110% drops back
// to amber.
func NutrientColor(progress float64) string {
	switch {
	case progress < 50:
		return ColorRed
	case progress < 80:
		return ColorAmber
	case progress <= 110:
		return ColorGreen
	default:
		return ColorAmber
	}
}

// MealTypeIcon returns the display icon for a meal type.
func MealTypeIcon(meal models.MealType) string {
	switch meal {
	case models.MealBreakfast:
		return "🌅"
	case models.MealLunch:
		return "☀️"
	case models.MealDinner:
		return "🌙"
	case models.MealSnack:
		return "🍎"
	}
	return "🍽️"
}
