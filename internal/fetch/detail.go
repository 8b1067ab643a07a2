package fetch

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/launchdeck/internal/models"
)

// DetailSource fetches a single populated launch. *api.Client satisfies it.
type DetailSource interface {
	FetchLaunchByID(ctx context.Context, id string) (*models.Launch, error)
}

// DetailResult is the outcome of one detail fetch
type DetailResult struct {
	Request Request
	Launch  *models.Launch
	Err     error
	At      time.Time
}

// DetailController drives the lifecycle of the launch shown in the detail
// overlay. Only the most recently requested launch is ever applied.
type DetailController struct {
	state  *State[*models.Launch]
	source DetailSource
	logger *log.Logger
	now    func() time.Time
}

func NewDetailController(source DetailSource, logger *log.Logger) *DetailController {
	return &DetailController{
		state:  NewState[*models.Launch](WithStaleGuard()),
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Begin marks the detail for id Loading
func (c *DetailController) Begin(id string) Request {
	req := c.state.BeginKey(id)
	if c.logger != nil {
		c.logger.Debug("Fetching launch details", "id", id, "request", req.Seq())
	}
	return req
}

// Run fetches the launch named by req.Key. State is not touched.
func (c *DetailController) Run(ctx context.Context, req Request) DetailResult {
	launch, err := c.source.FetchLaunchByID(ctx, req.Key)
	return DetailResult{Request: req, Launch: launch, Err: err, At: c.now()}
}

// Resolve applies a DetailResult. Returns false if it was dropped as stale.
func (c *DetailController) Resolve(res DetailResult) bool {
	var applied bool
	if res.Err != nil {
		applied = c.state.Fail(res.Request, res.Err)
	} else {
		applied = c.state.Succeed(res.Request, res.Launch, res.At)
	}

	if c.logger != nil {
		switch {
		case !applied:
			c.logger.Debug("Dropped stale detail result", "id", res.Request.Key)
		case res.Err != nil:
			c.logger.Error("Launch details failed", "id", res.Request.Key, "error", res.Err)
		default:
			c.logger.Info("Launch details loaded", "id", res.Request.Key)
		}
	}
	return applied
}

// Fetch runs a whole detail fetch synchronously
func (c *DetailController) Fetch(ctx context.Context, id string) (*models.Launch, error) {
	res := c.Run(ctx, c.Begin(id))
	c.Resolve(res)
	return res.Launch, res.Err
}

// Close forgets the current detail; in-flight results are dropped
func (c *DetailController) Close() {
	c.state.Reset()
}

func (c *DetailController) Phase() Phase {
	return c.state.Phase()
}

func (c *DetailController) Launch() *models.Launch {
	return c.state.Data()
}

func (c *DetailController) Err() string {
	return c.state.Err()
}

func (c *DetailController) Snapshot() Snapshot[*models.Launch] {
	return c.state.Snapshot()
}
