package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/thesavant42/launchdeck/internal/filter"
)

// sanitizeInput removes null bytes and other invisible control characters from input
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		// Keep printable characters and normal whitespace
		if r == 0 || (r < 32 && r != '\t' && r != '\n' && r != '\r') {
			return -1
		}
		return r
	}, s)
}

// anyYearOption is the select value for "no year filter"
const anyYearOption = ""

// PromptForFilters asks for search text, year and the outcome toggles,
// starting from cfg. years are the values offered in the year select.
func PromptForFilters(years []string, cfg filter.Config) (filter.Config, error) {
	search := cfg.Search
	year := cfg.Year
	successOnly := cfg.SuccessOnly
	favoritesOnly := cfg.FavoritesOnly

	options := []huh.Option[string]{huh.NewOption("Any year", anyYearOption)}
	for _, y := range years {
		options = append(options, huh.NewOption(y, y))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search Missions").
				Description("Case-insensitive match on mission name (empty for all)").
				Placeholder("Starlink").
				Value(&search),
			huh.NewSelect[string]().
				Title("Launch Year").
				Options(options...).
				Value(&year),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Successful launches only?").
				Affirmative("Yes").
				Negative("No").
				Value(&successOnly),
			huh.NewConfirm().
				Title("Favorites only?").
				Affirmative("Yes").
				Negative("No").
				Value(&favoritesOnly),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return cfg, fmt.Errorf("prompt cancelled: %w", err)
	}

	return filter.Config{
		Search:        strings.TrimSpace(sanitizeInput(search)),
		Year:          year,
		SuccessOnly:   successOnly,
		FavoritesOnly: favoritesOnly,
	}, nil
}

// ConfirmClearFavorites asks before removing every favorite
func ConfirmClearFavorites(count int) (bool, error) {
	var confirm bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Clear %d favorites?", count)).
				Description("This cannot be undone").
				Affirmative("Yes, clear them").
				Negative("Cancel").
				Value(&confirm),
		),
	).WithTheme(NewAppTheme())

	if err := form.Run(); err != nil {
		return false, err
	}

	return confirm, nil
}
