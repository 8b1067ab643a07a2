package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listLaunch = `{
	"id": "5eb87cd9ffd86e000604b32a",
	"name": "FalconSat",
	"flight_number": 1,
	"date_utc": "2006-03-24T22:30:00.000Z",
	"upcoming": false,
	"success": false,
	"rocket": "5e9d0d95eda69955f709d1eb",
	"launchpad": "5e9e4502f5090995de566f86",
	"details": "Engine failure at 33 seconds and loss of vehicle",
	"links": {
		"patch": {"small": "https://images2.imgbox.com/s.png", "large": null},
		"webcast": "https://www.youtube.com/watch?v=0a_00nJ_Y88",
		"wikipedia": "https://en.wikipedia.org/wiki/DemoSat",
		"article": null,
		"flickr": {"small": [], "original": []}
	},
	"payloads": ["5eb0e4b5b6c3bb0006eeb1e1"],
	"cores": [{"core": "5e9e289df35918033d3b2623", "flight": 1, "landing_attempt": false, "landing_success": null, "landing_type": null}]
}`

func TestOutcomeDecodesTriState(t *testing.T) {
	cases := map[string]Outcome{
		"true":  OutcomeSucceeded,
		"false": OutcomeFailed,
		"null":  OutcomeUnknown,
	}
	for raw, want := range cases {
		var got Outcome
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		assert.Equal(t, want, got, raw)
	}

	var o Outcome
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &o))
}

func TestOutcomeMissingFieldIsUnknown(t *testing.T) {
	var l Launch
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","name":"Upcoming"}`), &l))
	assert.Equal(t, OutcomeUnknown, l.Outcome)
}

func TestOutcomeRoundTripsThroughJSON(t *testing.T) {
	for _, o := range []Outcome{OutcomeUnknown, OutcomeSucceeded, OutcomeFailed} {
		data, err := json.Marshal(o)
		require.NoError(t, err)
		var back Outcome
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, o, back)
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Successful", OutcomeSucceeded.String())
	assert.Equal(t, "Failed", OutcomeFailed.String())
	assert.Equal(t, "Unknown", OutcomeUnknown.String())
}

func TestDecodeListLaunch(t *testing.T) {
	var l Launch
	require.NoError(t, json.Unmarshal([]byte(listLaunch), &l))

	assert.Equal(t, "5eb87cd9ffd86e000604b32a", l.ID)
	assert.Equal(t, "FalconSat", l.Name)
	assert.Equal(t, 1, l.FlightNumber)
	assert.Equal(t, OutcomeFailed, l.Outcome)
	assert.Equal(t, "2006", l.Year())
	assert.Equal(t, "5e9d0d95eda69955f709d1eb", l.Rocket.ID)
	assert.Equal(t, "Unknown", l.Rocket.Label())
	assert.Equal(t, "Engine failure at 33 seconds and loss of vehicle", l.Description())

	require.Len(t, l.Payloads, 1)
	assert.Equal(t, "5eb0e4b5b6c3bb0006eeb1e1", l.Payloads[0].ID)

	require.Len(t, l.Cores, 1)
	assert.Equal(t, OutcomeUnknown, l.Cores[0].Landing)
	assert.Equal(t, "No Landing", l.Cores[0].LandingLabel())
	require.NotNil(t, l.Cores[0].LandingAttempt)
	assert.False(t, *l.Cores[0].LandingAttempt)

	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=0a_00nJ_Y88",
		"https://en.wikipedia.org/wiki/DemoSat",
	}, l.Links.URLs())
}

func TestDecodePopulatedRocket(t *testing.T) {
	raw := `{"id":"x","rocket":{"id":"r1","name":"Falcon 9","active":true},"date_utc":"2020-05-30T19:22:00.000Z","success":true,
		"payloads":[{"id":"p1","name":"Crew Dragon","type":"Crew Dragon","mass_kg":12055}],
		"cores":[{"core":"c1","landing_success":true},{"core":"c2","landing_success":false}]}`

	var l Launch
	require.NoError(t, json.Unmarshal([]byte(raw), &l))

	assert.Equal(t, Ref{ID: "r1", Name: "Falcon 9"}, l.Rocket)
	assert.Equal(t, "Falcon 9", l.Rocket.Label())
	assert.Equal(t, OutcomeSucceeded, l.Outcome)
	require.NotNil(t, l.Payloads[0].MassKg)
	assert.InDelta(t, 12055.0, *l.Payloads[0].MassKg, 0.001)
	assert.Equal(t, "Landed", l.Cores[0].LandingLabel())
	assert.Equal(t, "Lost", l.Cores[1].LandingLabel())
}

func TestRefNullAndInvalid(t *testing.T) {
	var r Ref
	require.NoError(t, json.Unmarshal([]byte(`null`), &r))
	assert.Equal(t, Ref{}, r)

	assert.Error(t, json.Unmarshal([]byte(`42`), &r))
}

func TestYearUsesUTC(t *testing.T) {
	// 01:30 on Jan 1 at UTC+2 is still New Year's Eve in UTC
	loc := time.FixedZone("UTC+2", 2*60*60)
	l := Launch{DateUTC: time.Date(2020, 1, 1, 1, 30, 0, 0, loc)}
	assert.Equal(t, "2019", l.Year())
}

func TestDescriptionNil(t *testing.T) {
	assert.Equal(t, "", Launch{}.Description())
}

func TestLinksURLsIncludesPhotos(t *testing.T) {
	links := Links{
		Article: "https://spaceflightnow.com/a",
		Flickr:  Flickr{Original: []string{"https://live.staticflickr.com/1.jpg", ""}},
	}
	assert.Equal(t, []string{"https://spaceflightnow.com/a", "https://live.staticflickr.com/1.jpg"}, links.URLs())
}
