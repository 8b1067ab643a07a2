package filter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/launchdeck/internal/models"
)

func launch(id, name, date string, outcome models.Outcome) models.Launch {
	ts, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.Launch{ID: id, Name: name, DateUTC: ts, Outcome: outcome}
}

func scenarioLaunches() []models.Launch {
	return []models.Launch{
		launch("1", "Falcon Heavy Test", "2018-02-06", models.OutcomeSucceeded),
		launch("2", "Starship SN15", "2021-05-05", models.OutcomeFailed),
	}
}

func ids(launches []models.Launch) []string {
	out := make([]string, len(launches))
	for i, l := range launches {
		out[i] = l.ID
	}
	return out
}

func TestApplyInactiveIsIdentity(t *testing.T) {
	input := []models.Launch{
		launch("c", "CRS-20", "2020-03-07", models.OutcomeSucceeded),
		launch("a", "FalconSat", "2006-03-24", models.OutcomeFailed),
		launch("b", "Crew-1", "2020-11-16", models.OutcomeUnknown),
	}

	got := Apply(input, Default(), []string{"a"})
	assert.Equal(t, input, got)

	// "any" is the same as no year constraint
	got = Apply(input, Config{Year: "any"}, nil)
	assert.Equal(t, input, got)
}

func TestApplyEmptyInput(t *testing.T) {
	got := Apply(nil, Config{Search: "falcon", SuccessOnly: true}, nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	input := []models.Launch{
		launch("1", "Falcon Heavy Test", "2018-02-06", models.OutcomeSucceeded),
		launch("2", "Starship SN15", "2021-05-05", models.OutcomeFailed),
		launch("3", "FALCONSAT", "2006-03-24", models.OutcomeFailed),
		launch("4", "Trailblazer", "2008-08-03", models.OutcomeFailed),
	}

	for _, search := range []string{"falcon", "FaLc", "sn1", "z", "tr"} {
		t.Run(search, func(t *testing.T) {
			got := Apply(input, Config{Search: search}, nil)
			kept := make(map[string]bool)
			for _, l := range got {
				kept[l.ID] = true
				assert.True(t, strings.Contains(strings.ToLower(l.Name), strings.ToLower(search)))
			}
			for _, l := range input {
				if !kept[l.ID] {
					assert.False(t, strings.Contains(strings.ToLower(l.Name), strings.ToLower(search)))
				}
			}
		})
	}
}

func TestApplyYearScenario(t *testing.T) {
	got := Apply(scenarioLaunches(), Config{Year: "2018"}, nil)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApplySuccessOnlyScenario(t *testing.T) {
	got := Apply(scenarioLaunches(), Config{SuccessOnly: true}, nil)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestApplySuccessOnlyExcludesUnknown(t *testing.T) {
	input := []models.Launch{
		launch("ok", "A", "2020-01-01", models.OutcomeSucceeded),
		launch("unknown", "B", "2020-01-01", models.OutcomeUnknown),
		launch("failed", "C", "2020-01-01", models.OutcomeFailed),
	}
	got := Apply(input, Config{SuccessOnly: true}, nil)
	assert.Equal(t, []string{"ok"}, ids(got))
}

func TestApplyYearUsesUTC(t *testing.T) {
	// 2018-12-31 23:30 in UTC-05:00 is already 2019 in UTC
	ts := time.Date(2018, 12, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	input := []models.Launch{{ID: "x", Name: "Late", DateUTC: ts}}

	assert.Empty(t, Apply(input, Config{Year: "2018"}, nil))
	assert.Len(t, Apply(input, Config{Year: "2019"}, nil), 1)
}

func TestApplyFavoritesOnly(t *testing.T) {
	input := scenarioLaunches()

	got := Apply(input, Config{FavoritesOnly: true}, []string{"2"})
	assert.Equal(t, []string{"2"}, ids(got))

	got = Apply(input, Config{FavoritesOnly: true}, nil)
	assert.Empty(t, got)
}

func TestApplyPredicatesCommute(t *testing.T) {
	input := []models.Launch{
		launch("1", "Falcon 9 Test", "2010-06-04", models.OutcomeSucceeded),
		launch("2", "Falcon 9 COTS", "2010-12-08", models.OutcomeSucceeded),
		launch("3", "Falcon 1 Flight 4", "2008-09-28", models.OutcomeSucceeded),
		launch("4", "Falcon 9 Demo", "2010-12-09", models.OutcomeFailed),
	}
	favs := []string{"2", "3", "4"}

	all := Apply(input, Config{Search: "falcon 9", Year: "2010", SuccessOnly: true, FavoritesOnly: true}, favs)

	// Applying predicates one at a time, in any order, gives the same result
	step := Apply(input, Config{FavoritesOnly: true}, favs)
	step = Apply(step, Config{SuccessOnly: true}, favs)
	step = Apply(step, Config{Year: "2010"}, favs)
	step = Apply(step, Config{Search: "falcon 9"}, favs)

	assert.Equal(t, ids(all), ids(step))
	assert.Equal(t, []string{"2"}, ids(all))
}

func TestConfigMutators(t *testing.T) {
	var c Config
	assert.False(t, c.Active())

	c.SetSearch("crew")
	c.SetYear("2020")
	c.ToggleSuccessOnly()
	c.ToggleFavoritesOnly()
	assert.True(t, c.Active())
	assert.Equal(t, []string{
		`Search: "crew"`,
		"Year: 2020",
		"Status: Successful Only",
		"Favorites Only",
	}, c.Labels())

	c.SetYear("Any")
	assert.Equal(t, YearAny, c.Year)

	c.Clear()
	assert.Equal(t, Default(), c)
	assert.Empty(t, c.Labels())
}

func TestCycleYear(t *testing.T) {
	years := []string{"2021", "2020", "2019"}
	var c Config

	c.CycleYear(years, 1)
	assert.Equal(t, "2021", c.Year)
	c.CycleYear(years, 1)
	assert.Equal(t, "2020", c.Year)

	c.CycleYear(years, -1)
	c.CycleYear(years, -1)
	assert.Equal(t, YearAny, c.Year)

	// wraps backwards to the oldest year
	c.CycleYear(years, -1)
	assert.Equal(t, "2019", c.Year)
}

func TestYears(t *testing.T) {
	years := Years(time.Date(2009, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"2009", "2008", "2007", "2006"}, years)
	assert.Nil(t, Years(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
}
