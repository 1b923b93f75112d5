package dashboard

import (
	"context"
	"strconv"
	"time"

	"github.com/nutrisuggest/nutri/internal/cache"
	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/nutrition"
)

// FetchData refreshes today's aggregate and the recent-items list.
func FetchData(ctx context.Context, store *nutrition.Store, recent *cache.Cache) RefreshDataMsg {
	msg := RefreshDataMsg{Timestamp: time.Now()}

	if !store.FetchToday(ctx) {
		msg.Err = store.Err()
	}
	msg.Daily = store.Daily()
	msg.Score = store.OverallScore()

	if recent != nil {
		items, _ := recent.Recent(cache.KindFood, 10)
		recipes, _ := recent.Recent(cache.KindRecipe, 5)
		msg.Recent = append(items, recipes...)
	}

	return msg
}

// FetchRecommendations asks the recommendation service for the given meal.
func FetchRecommendations(ctx context.Context, store *nutrition.Store, meal models.MealType) RecommendationsMsg {
	if !store.FetchRecommendations(ctx, meal) {
		return RecommendationsMsg{Err: store.Err()}
	}
	return RecommendationsMsg{Recs: store.Recommendations()}
}

// SubmitQuickLog logs a recently used food or recipe for a meal.
func SubmitQuickLog(ctx context.Context, store *nutrition.Store, recent *cache.Cache, item cache.RecentItem, grams string, meal models.MealType) QuickLogResultMsg {
	quantity, err := strconv.ParseFloat(grams, 64)
	if err != nil || quantity <= 0 {
		return QuickLogResultMsg{Err: "Enter a positive amount in grams"}
	}

	var ok bool
	switch item.Kind {
	case cache.KindRecipe:
		// Quick-log treats grams as servings*100, the server convention.
		ok = store.LogQuickRecipe(ctx, item.ItemID, quantity/100, meal)
	default:
		ok = store.LogQuickFood(ctx, item.ItemID, quantity, meal)
	}
	if !ok {
		return QuickLogResultMsg{Err: store.Err()}
	}

	if recent != nil {
		_ = recent.Touch(item.Kind, item.ItemID, item.Name, item.Detail)
	}
	return QuickLogResultMsg{OK: true}
}
