package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/launchdeck/internal/api"
	"github.com/thesavant42/launchdeck/internal/models"
)

// LaunchSource fetches the launch list. *api.Client satisfies it.
type LaunchSource interface {
	FetchLaunches(ctx context.Context) ([]models.Launch, error)
}

// RocketSource fetches rockets for naming list records. *api.Client satisfies it.
type RocketSource interface {
	FetchRockets(ctx context.Context) ([]models.Rocket, error)
}

// Result is the outcome of one list fetch, produced off the owning goroutine
type Result struct {
	Request  Request
	Launches []models.Launch
	Err      error
	At       time.Time
}

// Controller drives the launch list lifecycle.
//
// Begin and Resolve mutate state and must run on the owning goroutine (the
// bubbletea Update loop or main). Run only performs network I/O and may run
// anywhere.
type Controller struct {
	state   *State[[]models.Launch]
	source  LaunchSource
	rockets RocketSource
	logger  *log.Logger
	now     func() time.Time

	timedOut bool // the applied failure was a timeout
}

// NewController creates a list controller. rockets and logger may be nil.
func NewController(source LaunchSource, rockets RocketSource, logger *log.Logger, opts ...Option) *Controller {
	return &Controller{
		state:   NewState[[]models.Launch](opts...),
		source:  source,
		rockets: rockets,
		logger:  logger,
		now:     time.Now,
	}
}

// Begin marks the list Loading
func (c *Controller) Begin() Request {
	req := c.state.Begin()
	if c.logger != nil {
		c.logger.Debug("Fetching launches", "request", req.Seq())
	}
	return req
}

// Run fetches launches and, best effort, rocket names. State is not touched.
func (c *Controller) Run(ctx context.Context, req Request) Result {
	var rocketsCh chan []models.Rocket
	if c.rockets != nil {
		rocketsCh = make(chan []models.Rocket, 1)
		go func() {
			rockets, err := c.rockets.FetchRockets(ctx)
			if err != nil && c.logger != nil {
				c.logger.Warn("Rocket names unavailable", "error", err)
			}
			rocketsCh <- rockets
		}()
	}

	launches, err := c.source.FetchLaunches(ctx)

	if rocketsCh != nil {
		rockets := <-rocketsCh
		if err == nil {
			api.AttachRocketNames(launches, rockets)
		}
	}

	return Result{Request: req, Launches: launches, Err: err, At: c.now()}
}

// Resolve applies a Result. Returns false if it was dropped as stale.
func (c *Controller) Resolve(res Result) bool {
	var applied bool
	if res.Err != nil {
		applied = c.state.Fail(res.Request, res.Err)
	} else {
		launches := res.Launches
		if launches == nil {
			launches = []models.Launch{}
		}
		applied = c.state.Succeed(res.Request, launches, res.At)
	}
	if applied {
		c.timedOut = res.Err != nil && api.IsTimeout(res.Err)
	}

	if c.logger != nil {
		switch {
		case !applied:
			c.logger.Debug("Dropped stale launch result", "request", res.Request.Seq())
		case res.Err != nil:
			c.logger.Error("Launch fetch failed", "request", res.Request.Seq(), "error", res.Err)
		default:
			c.logger.Info("Launches loaded", "request", res.Request.Seq(), "count", len(res.Launches))
		}
	}
	return applied
}

// Fetch runs a whole fetch synchronously and returns the failure, if any
func (c *Controller) Fetch(ctx context.Context) error {
	res := c.Run(ctx, c.Begin())
	c.Resolve(res)
	return res.Err
}

func (c *Controller) Phase() Phase {
	return c.state.Phase()
}

// Launches returns the last successfully loaded list (nil before any success)
func (c *Controller) Launches() []models.Launch {
	return c.state.Data()
}

// TimedOut reports whether the current failure is a request timeout
func (c *Controller) TimedOut() bool {
	return c.Phase() == PhaseFailed && c.timedOut
}

func (c *Controller) Err() string {
	return c.state.Err()
}

func (c *Controller) LastUpdated() time.Time {
	return c.state.LastUpdated()
}

func (c *Controller) Snapshot() Snapshot[[]models.Launch] {
	return c.state.Snapshot()
}
