package nutrition

import (
	"math"

	"github.com/nutrisuggest/nutri/internal/models"
)

// DefaultTargets apply until the server reports per-user targets.
var DefaultTargets = models.NutritionTargets{
	Calories: 2000,
	Protein:  150,
	Carbs:    250,
	Fat:      65,
}

// Progress computes consumed/target per nutrient as percentages. A zero
// target yields zero progress rather than a division by zero.
func Progress(total models.NutritionTotals, targets models.NutritionTargets) models.NutritionProgress {
	ratio := func(total, target float64) float64 {
		if target <= 0 {
			return 0
		}
		return total / target * 100
	}
	return models.NutritionProgress{
		Calories: ratio(total.Calories, targets.Calories),
		Protein:  ratio(total.Protein, targets.Protein),
		Carbs:    ratio(total.Carbs, targets.Carbs),
		Fat:      ratio(total.Fat, targets.Fat),
	}
}

// Remaining computes target minus consumed per nutrient, floored at zero.
func Remaining(total models.NutritionTotals, targets models.NutritionTargets) models.NutritionTargets {
	left := func(total, target float64) float64 {
		return math.Max(0, target-total)
	}
	return models.NutritionTargets{
		Calories: left(total.Calories, targets.Calories),
		Protein:  left(total.Protein, targets.Protein),
		Carbs:    left(total.Carbs, targets.Carbs),
		Fat:      left(total.Fat, targets.Fat),
	}
}

// Score averages the four nutrient-fulfillment ratios, each capped at
// 100%, into an integer score in [0, 100].
func Score(progress models.NutritionProgress) int {
	sum := 0.0
	for _, p := range []float64{progress.Calories, progress.Protein, progress.Carbs, progress.Fat} {
		sum += math.Min(p/100, 1)
	}
	return int(math.Round(sum / 4 * 100))
}
