package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/sirupsen/logrus"
)

// MsgDetailFailed is shown when a detail lookup fails
const MsgDetailFailed = "Could not load movie details"

// ErrNotRated is returned when building an entry before a rating is set
var ErrNotRated = errors.New("movie has not been rated")

// DetailState is what the details pane renders
type DetailState struct {
	ID              string
	Status          models.FetchStatus
	Detail          *models.MovieDetail
	Error           string
	UserRating      int
	RatingDecisions int // Non-zero rating changes since the movie was opened
}

// DetailOutcome is the result of one detail request
type DetailOutcome struct {
	Seq    uint64
	ID     string
	Detail *models.MovieDetail
	Err    error
}

// DetailController loads the selected movie and tracks the user's rating of it
type DetailController struct {
	mu      sync.Mutex
	client  MovieClient
	seq     uint64
	cancel  context.CancelFunc
	state   DetailState
	metrics *metrics.Metrics
	logger  *logrus.Logger
}

// NewDetailController creates a new detail controller
func NewDetailController(client MovieClient, m *metrics.Metrics, logger *logrus.Logger) *DetailController {
	return &DetailController{
		client:  client,
		state:   DetailState{Status: models.FetchIdle},
		metrics: m,
		logger:  logger,
	}
}

// Select cancels any in-flight lookup, resets the rating state and
// returns the fetch for id.
func (c *DetailController) Select(parent context.Context, id string) func() DetailOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.abortLocked()
	c.seq++
	c.state = DetailState{ID: id, Status: models.FetchLoading}

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel

	seq := c.seq
	client := c.client
	c.logger.WithFields(logrus.Fields{
		"seq": seq,
		"id":  id,
	}).Debug("Loading movie details")

	return func() DetailOutcome {
		detail, err := client.GetByID(ctx, id)
		return DetailOutcome{Seq: seq, ID: id, Detail: detail, Err: err}
	}
}

// Deselect cancels any in-flight lookup and clears the state
func (c *DetailController) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.seq++
	c.state = DetailState{Status: models.FetchIdle}
}

// Resolve applies out if it belongs to the latest request.
// It reports whether out was applied.
func (c *DetailController) Resolve(out DetailOutcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cancelled := errors.Is(out.Err, context.Canceled)
	if out.Seq != c.seq {
		outcome := metrics.OutcomeSuperseded
		if cancelled {
			outcome = metrics.OutcomeCancelled
		}
		c.metrics.ObserveRequest(metrics.KindDetail, outcome)
		c.logger.WithFields(logrus.Fields{
			"seq":    out.Seq,
			"latest": c.seq,
			"id":     out.ID,
		}).Debug("Discarding stale detail outcome")
		return false
	}
	if cancelled {
		c.metrics.ObserveRequest(metrics.KindDetail, metrics.OutcomeCancelled)
		return false
	}

	c.abortLocked()
	if out.Err != nil || out.Detail == nil {
		c.state.Status = models.FetchError
		c.state.Detail = nil
		c.state.Error = MsgDetailFailed
		c.metrics.ObserveRequest(metrics.KindDetail, metrics.OutcomeError)
		c.logger.WithError(out.Err).WithField("id", out.ID).Warn("Detail lookup failed")
		return true
	}

	c.state.Status = models.FetchSuccess
	c.state.Detail = out.Detail
	c.state.Error = ""
	c.metrics.ObserveRequest(metrics.KindDetail, metrics.OutcomeSuccess)
	return true
}

// SetUserRating records the user's rating. Each change to a non-zero
// value counts as one rating decision.
func (c *DetailController) SetUserRating(value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if value != 0 && value != c.state.UserRating {
		c.state.RatingDecisions++
	}
	c.state.UserRating = value
}

// State returns a snapshot of the current detail state
func (c *DetailController) State() DetailState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Entry builds the watched entry for the loaded movie and current rating
func (c *DetailController) Entry() (models.WatchedEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Status != models.FetchSuccess || c.state.Detail == nil {
		return models.WatchedEntry{}, fmt.Errorf("movie details not loaded")
	}
	if c.state.UserRating <= 0 {
		return models.WatchedEntry{}, ErrNotRated
	}

	d := c.state.Detail
	return models.WatchedEntry{
		ID:                  c.state.ID,
		Title:               d.Title,
		PosterURL:           d.PosterURL,
		RatingExternal:      d.RatingExternal,
		RatingUser:          c.state.UserRating,
		RuntimeMinutes:      d.RuntimeMinutes,
		RatingDecisionCount: c.state.RatingDecisions,
	}, nil
}

// Close cancels the in-flight lookup; later outcomes are discarded
func (c *DetailController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.seq++
}

func (c *DetailController) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
