package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesavant42/launchdeck/internal/api"
	"github.com/thesavant42/launchdeck/internal/models"
)

type fakeLaunches struct {
	launches []models.Launch
	err      error
	calls    int
}

func (f *fakeLaunches) FetchLaunches(ctx context.Context) ([]models.Launch, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Launch, len(f.launches))
	copy(out, f.launches)
	return out, nil
}

type fakeRockets struct {
	rockets []models.Rocket
	err     error
}

func (f *fakeRockets) FetchRockets(ctx context.Context) ([]models.Rocket, error) {
	return f.rockets, f.err
}

type fakeDetails map[string]*models.Launch

func (f fakeDetails) FetchLaunchByID(ctx context.Context, id string) (*models.Launch, error) {
	if l, ok := f[id]; ok {
		return l, nil
	}
	return nil, &api.RemoteFetchError{Op: api.OpLaunchDetails, Err: errors.New("API returned status 404")}
}

func sampleLaunches() []models.Launch {
	return []models.Launch{
		{ID: "1", Name: "Alpha", Rocket: models.Ref{ID: "r1"}},
		{ID: "2", Name: "Beta", Rocket: models.Ref{ID: "r2"}},
	}
}

func TestControllerFetchSuccess(t *testing.T) {
	source := &fakeLaunches{launches: sampleLaunches()}
	c := NewController(source, &fakeRockets{rockets: []models.Rocket{{ID: "r1", Name: "Falcon 9"}}}, nil)
	c.now = func() time.Time { return t0 }

	require.NoError(t, c.Fetch(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	require.Len(t, c.Launches(), 2)
	assert.Equal(t, "Falcon 9", c.Launches()[0].Rocket.Name)
	assert.Equal(t, "", c.Launches()[1].Rocket.Name)
	assert.Equal(t, t0, c.LastUpdated())
}

func TestControllerRocketFailureIsNotFatal(t *testing.T) {
	c := NewController(&fakeLaunches{launches: sampleLaunches()}, &fakeRockets{err: errors.New("down")}, nil)

	require.NoError(t, c.Fetch(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Len(t, c.Launches(), 2)
}

func TestControllerEmptyResultIsLoaded(t *testing.T) {
	c := NewController(&fakeLaunches{}, nil, nil)

	require.NoError(t, c.Fetch(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.NotNil(t, c.Launches())
	assert.Empty(t, c.Launches())
}

func TestControllerRunDoesNotTouchState(t *testing.T) {
	c := NewController(&fakeLaunches{launches: sampleLaunches()}, nil, nil)
	req := c.Begin()

	res := c.Run(context.Background(), req)
	assert.Equal(t, PhaseLoading, c.Phase())
	assert.Nil(t, c.Launches())

	require.True(t, c.Resolve(res))
	assert.Equal(t, PhaseLoaded, c.Phase())
}

// A timeout after a good load leaves the list in place with a message
func TestControllerTimeoutKeepsPreviousList(t *testing.T) {
	slow := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-slow:
			w.Write([]byte(`[]`))
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(slow)

	source := &fakeLaunches{launches: sampleLaunches()}
	c := NewController(source, nil, nil)
	require.NoError(t, c.Fetch(context.Background()))
	require.Len(t, c.Launches(), 2)

	c.source = api.NewClient(srv.URL, 50*time.Millisecond, nil)
	err := c.Fetch(context.Background())
	require.Error(t, err)

	assert.Equal(t, PhaseFailed, c.Phase())
	assert.Contains(t, c.Err(), "Failed to fetch launches:")
	assert.Len(t, c.Launches(), 2)

	var rfe *api.RemoteFetchError
	require.ErrorAs(t, err, &rfe)
	assert.True(t, rfe.Timeout())
	assert.True(t, c.TimedOut())

	// a later non-timeout failure clears the flag
	c.source = &fakeLaunches{err: &api.RemoteFetchError{Op: api.OpLaunches, Err: errors.New("API returned status 500")}}
	require.Error(t, c.Fetch(context.Background()))
	assert.False(t, c.TimedOut())
}

func TestControllerRetryAfterFailure(t *testing.T) {
	source := &fakeLaunches{err: &api.RemoteFetchError{Op: api.OpLaunches, Err: errors.New("API returned status 503")}}
	c := NewController(source, nil, nil)

	require.Error(t, c.Fetch(context.Background()))
	assert.Equal(t, PhaseFailed, c.Phase())
	assert.False(t, c.TimedOut())
	assert.Equal(t, "Failed to fetch launches: API returned status 503", c.Err())
	assert.Nil(t, c.Launches())

	source.err = nil
	source.launches = sampleLaunches()
	require.NoError(t, c.Fetch(context.Background()))
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Empty(t, c.Err())
	assert.Equal(t, 2, source.calls)
}

func TestControllerStaleGuardOption(t *testing.T) {
	c := NewController(&fakeLaunches{launches: sampleLaunches()}, nil, nil, WithStaleGuard())
	first := c.Begin()
	second := c.Begin()

	firstRes := c.Run(context.Background(), first)
	secondRes := c.Run(context.Background(), second)
	secondRes.Launches = secondRes.Launches[:1]

	assert.True(t, c.Resolve(secondRes))
	assert.False(t, c.Resolve(firstRes))
	assert.Len(t, c.Launches(), 1)
}

func TestDetailController(t *testing.T) {
	source := fakeDetails{
		"1": {ID: "1", Name: "Alpha", Rocket: models.Ref{ID: "r1", Name: "Falcon 9"}},
		"2": {ID: "2", Name: "Beta"},
	}
	c := NewDetailController(source, nil)
	assert.Equal(t, PhaseIdle, c.Phase())

	launch, err := c.Fetch(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Falcon 9", launch.Rocket.Name)
	assert.Equal(t, PhaseLoaded, c.Phase())
	assert.Same(t, launch, c.Launch())

	_, err = c.Fetch(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, PhaseFailed, c.Phase())
	assert.Equal(t, "Failed to fetch launch details: API returned status 404", c.Err())
}

func TestDetailControllerDropsSupersededRecord(t *testing.T) {
	source := fakeDetails{
		"1": {ID: "1", Name: "Alpha"},
		"2": {ID: "2", Name: "Beta"},
	}
	c := NewDetailController(source, nil)

	first := c.Begin("1")
	second := c.Begin("2")
	firstRes := c.Run(context.Background(), first)
	secondRes := c.Run(context.Background(), second)

	require.True(t, c.Resolve(secondRes))
	assert.False(t, c.Resolve(firstRes))
	assert.Equal(t, "Beta", c.Launch().Name)
}

func TestDetailControllerClose(t *testing.T) {
	c := NewDetailController(fakeDetails{"1": {ID: "1"}}, nil)
	req := c.Begin("1")
	c.Close()

	assert.False(t, c.Resolve(c.Run(context.Background(), req)))
	assert.Equal(t, PhaseIdle, c.Phase())
	assert.Nil(t, c.Launch())
}
