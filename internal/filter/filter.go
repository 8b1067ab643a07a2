package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/thesavant42/launchdeck/internal/models"
)

// YearAny is the year constraint that matches every launch
const YearAny = ""

// FirstLaunchYear is the earliest year offered by the year selector
const FirstLaunchYear = 2006

// Config holds the client-side filter predicates
type Config struct {
	Search        string // case-insensitive substring of the launch name
	Year          string // 4-digit UTC year, or YearAny
	SuccessOnly   bool
	FavoritesOnly bool
}

// Default returns a config with every predicate inactive
func Default() Config {
	return Config{}
}

// SetSearch replaces the search text
func (c *Config) SetSearch(text string) {
	c.Search = text
}

// SetYear replaces the year constraint; "any" in any case clears it
func (c *Config) SetYear(year string) {
	year = strings.TrimSpace(year)
	if strings.EqualFold(year, "any") {
		year = YearAny
	}
	c.Year = year
}

// ToggleSuccessOnly flips the success-only flag
func (c *Config) ToggleSuccessOnly() {
	c.SuccessOnly = !c.SuccessOnly
}

// ToggleFavoritesOnly flips the favorites-only flag
func (c *Config) ToggleFavoritesOnly() {
	c.FavoritesOnly = !c.FavoritesOnly
}

// Clear resets every predicate
func (c *Config) Clear() {
	*c = Default()
}

// CycleYear steps the year constraint through years (newest first) with YearAny
// at the head of the cycle. step is +1 (older) or -1 (newer).
func (c *Config) CycleYear(years []string, step int) {
	choices := append([]string{YearAny}, years...)
	idx := 0
	for i, y := range choices {
		if y == c.yearConstraint() {
			idx = i
			break
		}
	}
	idx = (idx + step) % len(choices)
	if idx < 0 {
		idx += len(choices)
	}
	c.Year = choices[idx]
}

// Active reports whether any predicate is on
func (c Config) Active() bool {
	return c.Search != "" || c.yearConstraint() != YearAny || c.SuccessOnly || c.FavoritesOnly
}

// Labels returns one human-readable chip per active predicate
func (c Config) Labels() []string {
	var labels []string
	if c.Search != "" {
		labels = append(labels, fmt.Sprintf("Search: %q", c.Search))
	}
	if y := c.yearConstraint(); y != YearAny {
		labels = append(labels, "Year: "+y)
	}
	if c.SuccessOnly {
		labels = append(labels, "Status: Successful Only")
	}
	if c.FavoritesOnly {
		labels = append(labels, "Favorites Only")
	}
	return labels
}

func (c Config) yearConstraint() string {
	if strings.EqualFold(c.Year, "any") {
		return YearAny
	}
	return c.Year
}

// Apply returns the launches that pass every active predicate, in input order.
// favoriteIDs is only consulted when FavoritesOnly is set.
func Apply(launches []models.Launch, cfg Config, favoriteIDs []string) []models.Launch {
	if len(launches) == 0 {
		return []models.Launch{}
	}

	search := strings.ToLower(cfg.Search)
	year := cfg.yearConstraint()

	var favorites map[string]struct{}
	if cfg.FavoritesOnly {
		favorites = make(map[string]struct{}, len(favoriteIDs))
		for _, id := range favoriteIDs {
			favorites[id] = struct{}{}
		}
	}

	out := make([]models.Launch, 0, len(launches))
	for _, l := range launches {
		if search != "" && !strings.Contains(strings.ToLower(l.Name), search) {
			continue
		}
		if year != YearAny && l.Year() != year {
			continue
		}
		if cfg.SuccessOnly && l.Outcome != models.OutcomeSucceeded {
			continue
		}
		if cfg.FavoritesOnly {
			if _, ok := favorites[l.ID]; !ok {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

// Years lists the selectable years from FirstLaunchYear through now's year, newest first
func Years(now time.Time) []string {
	current := now.UTC().Year()
	if current < FirstLaunchYear {
		return nil
	}
	years := make([]string, 0, current-FirstLaunchYear+1)
	for y := current; y >= FirstLaunchYear; y-- {
		years = append(years, strconv.Itoa(y))
	}
	return years
}
