package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nutrisuggest/nutri/internal/models"
	"github.com/nutrisuggest/nutri/internal/nutrition"
)

// renderView renders the complete TUI view
func (m Model) renderView() string {
	if m.Width == 0 || m.Height == 0 {
		return "Loading..."
	}

	if m.Width < MinWidth || m.Height < MinHeight {
		return m.renderCompact()
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	// Calculate panel heights (3 panels + footer)
	availableHeight := m.Height - 3
	panelHeight := availableHeight / 3

	overview := m.renderOverviewPanel(panelHeight)
	meals := m.renderMealsPanel(panelHeight)
	recommend := m.renderRecommendPanel(panelHeight)

	panels := lipgloss.JoinVertical(lipgloss.Left,
		overview,
		meals,
		recommend,
	)

	footer := m.renderFooter()
	base := lipgloss.JoinVertical(lipgloss.Left, panels, footer)

	if m.QuickLogging {
		overlay := m.renderQuickLog()
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, overlay,
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceForeground(lipgloss.Color("0")))
	}

	return base
}

// renderCompact renders a minimal view for small terminals
func (m Model) renderCompact() string {
	var s strings.Builder

	s.WriteString("nutri dashboard (resize for full view)\n\n")

	if m.Daily != nil {
		s.WriteString(fmt.Sprintf("%.0f / %.0f kcal\n", m.Daily.Total.Calories, m.Daily.Targets.Calories))
		s.WriteString(fmt.Sprintf("Score: %d/100\n", m.Score))
	}

	s.WriteString("\nq:quit r:refresh ?:help")

	return s.String()
}

// renderOverviewPanel renders today's progress bars and score (Panel 1)
func (m Model) renderOverviewPanel(height int) string {
	var content strings.Builder

	if m.Daily == nil {
		content.WriteString(subtleStyle.Render("No data yet. Log something with 'l'."))
		content.WriteString("\n")
		return m.wrapPanel("TODAY", content.String(), height, PanelOverview)
	}

	bars := []struct {
		name     string
		consumed float64
		target   float64
		progress float64
	}{
		{"Calories", m.Daily.Total.Calories, m.Daily.Targets.Calories, m.Daily.Progress.Calories},
		{"Protein", m.Daily.Total.Protein, m.Daily.Targets.Protein, m.Daily.Progress.Protein},
		{"Carbs", m.Daily.Total.Carbs, m.Daily.Targets.Carbs, m.Daily.Progress.Carbs},
		{"Fat", m.Daily.Total.Fat, m.Daily.Targets.Fat, m.Daily.Progress.Fat},
	}

	barWidth := m.Width / 3
	if barWidth > 40 {
		barWidth = 40
	}
	for _, b := range bars {
		content.WriteString(fmt.Sprintf("%-9s %s %s\n",
			b.name,
			renderBar(b.progress, barWidth),
			subtleStyle.Render(fmt.Sprintf("%.0f/%.0f", b.consumed, b.target))))
	}

	content.WriteString("\n")
	content.WriteString(scoreStyle.Render(fmt.Sprintf("Nutrition score: %d/100", m.Score)))
	content.WriteString("\n")

	return m.wrapPanel("TODAY", content.String(), height, PanelOverview)
}

// renderBar renders a progress bar colored by the progress bucket
func renderBar(progress float64, width int) string {
	if width < 5 {
		width = 5
	}
	filled := int(progress / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return progressStyle(progress).Render(bar) + fmt.Sprintf(" %3.0f%%", progress)
}

// renderMealsPanel renders the per-meal breakdown and logged intakes (Panel 2)
func (m Model) renderMealsPanel(height int) string {
	var content strings.Builder

	if m.Daily == nil || len(m.Daily.Intakes) == 0 {
		content.WriteString(subtleStyle.Render("Nothing logged today"))
		content.WriteString("\n")
		return m.wrapPanel("MEALS", content.String(), height, PanelMeals)
	}

	for _, meal := range models.MealTypes {
		totals := m.Daily.ByMeal.ForMeal(meal)
		if totals.Calories == 0 {
			continue
		}
		content.WriteString(fmt.Sprintf("%s  %s\n",
			formatMeal(meal),
			subtleStyle.Render(fmt.Sprintf("%.0f kcal | P %.0fg | C %.0fg | F %.0fg",
				totals.Calories, totals.Protein, totals.Carbs, totals.Fat))))
	}

	content.WriteString("\n")
	offset := m.ScrollOffset[PanelMeals]
	intakes := m.Daily.Intakes
	if offset > len(intakes) {
		offset = len(intakes)
	}
	for _, intake := range intakes[offset:] {
		var names []string
		for _, item := range intake.Items {
			switch {
			case item.Food != nil:
				names = append(names, item.Food.Name)
			case item.Recipe != nil:
				names = append(names, item.Recipe.Name)
			}
		}
		content.WriteString(fmt.Sprintf("  %s %s %s\n",
			timestampStyle.Render(intake.ConsumedAt.Local().Format("15:04")),
			formatMeal(intake.MealType),
			strings.Join(names, ", ")))
	}

	return m.wrapPanel("MEALS", content.String(), height, PanelMeals)
}

// renderRecommendPanel renders next-meal recommendations (Panel 3)
func (m Model) renderRecommendPanel(height int) string {
	var content strings.Builder

	if m.Recs == nil {
		content.WriteString(subtleStyle.Render(fmt.Sprintf("Press 'n' for %s suggestions", m.QuickMeal)))
		content.WriteString("\n")
		return m.wrapPanel("NEXT MEAL", content.String(), height, PanelRecommend)
	}

	content.WriteString(subtleStyle.Render(fmt.Sprintf("Remaining: %.0f kcal | P %.0fg | C %.0fg | F %.0fg",
		m.Recs.RemainingCalories, m.Recs.RemainingProtein, m.Recs.RemainingCarbs, m.Recs.RemainingFat)))
	content.WriteString("\n\n")

	offset := m.ScrollOffset[PanelRecommend]
	foods := m.Recs.RecommendedFoods
	if offset > len(foods) {
		offset = len(foods)
	}
	for _, food := range foods[offset:] {
		content.WriteString(fmt.Sprintf("  %s %s\n",
			titleStyle.Render(food.Name),
			subtleStyle.Render(fmt.Sprintf("%s, fit %.0f%%",
				nutrition.FormatNutrientValue(food.RecommendedAmount, "g"), food.FitScore*100))))
	}
	for _, recipe := range m.Recs.RecommendedRecipes {
		content.WriteString(fmt.Sprintf("  %s %s\n",
			titleStyle.Render(recipe.Name),
			subtleStyle.Render(fmt.Sprintf("%.0f kcal/serving", recipe.CaloriesPerServing))))
	}

	return m.wrapPanel("NEXT MEAL", content.String(), height, PanelRecommend)
}

// renderQuickLog renders the quick-log overlay
func (m Model) renderQuickLog() string {
	var content strings.Builder

	content.WriteString(panelTitleStyle.Render(fmt.Sprintf("QUICK LOG — %s", m.QuickMeal)))
	content.WriteString("\n\n")

	for i, item := range m.RecentItems {
		line := fmt.Sprintf("%s %s", item.Name, subtleStyle.Render(item.Detail))
		if i == m.QuickIndex {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString("Amount: " + m.GramsInput.View())
	content.WriteString("\n\n")
	content.WriteString(helpStyle.Render("enter:confirm  esc:cancel  ↑↓:select"))

	return activePanelStyle.Render(content.String())
}

// renderFooter renders the footer with key bindings and refresh time
func (m Model) renderFooter() string {
	keys := helpStyle.Render("q:quit  tab:switch  l:log  n:suggest  m:meal  r:refresh  ?:help")

	meal := formatMeal(m.QuickMeal)

	errMsg := ""
	if m.ErrMsg != "" {
		errMsg = errStyle.Render(" " + m.ErrMsg + " ")
	}

	refresh := timestampStyle.Render(fmt.Sprintf("Last: %s", m.LastRefresh.Format("15:04:05")))

	padding := m.Width - lipgloss.Width(keys) - lipgloss.Width(meal) - lipgloss.Width(errMsg) - lipgloss.Width(refresh) - 3
	if padding < 0 {
		padding = 0
	}

	return fmt.Sprintf(" %s%s%s %s%s", keys, strings.Repeat(" ", padding), errMsg, meal, refresh)
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	help := `
nutri dashboard

  q, ctrl+c     quit
  tab           next panel
  1 / 2 / 3     jump to panel
  j / k         scroll panel
  r             refresh now
  l             quick-log a recent item
  m             cycle target meal
  n             fetch next-meal suggestions
  ?             toggle this help

Panels refresh automatically.
`
	return strings.TrimLeft(help, "\n")
}

// wrapPanel wraps content in a titled, bordered panel sized to fit
func (m Model) wrapPanel(title, content string, height int, panel Panel) string {
	style := panelStyle
	if m.ActivePanel == panel {
		style = activePanelStyle
	}

	titleStr := panelTitleStyle.Render(title)
	contentWidth := m.Width - 4

	lines := strings.Split(content, "\n")
	contentHeight := height - 3
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > contentWidth {
			lines[i] = truncateString(line, contentWidth)
		}
	}

	body := strings.Join(lines, "\n")
	inner := lipgloss.JoinVertical(lipgloss.Left, titleStr, body)

	return style.Width(m.Width - 2).Render(inner)
}

// truncateString cuts a string to fit a display width, rune-safe
func truncateString(s string, width int) string {
	if width <= 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
