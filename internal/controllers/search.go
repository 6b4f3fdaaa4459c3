package controllers

import (
	"context"
	"errors"
	"sync"

	"github.com/amaumene/popcorn/internal/metrics"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/services/omdb"
	"github.com/amaumene/popcorn/internal/utils"
	"github.com/sirupsen/logrus"
)

// User-visible search errors
const (
	MsgMovieNotFound = "Movie not found"
	MsgSearchFailed  = "Something went wrong with fetching movies"
)

// SearchState is what the results pane renders
type SearchState struct {
	Query   string
	Status  models.FetchStatus
	Results []models.SearchResult
	Error   string
}

// SearchOutcome is the result of one search request.
// Seq identifies the request; outcomes of superseded requests are dropped.
type SearchOutcome struct {
	Seq     uint64
	Query   string
	Results []models.SearchResult
	Err     error
}

// SearchController keeps at most one search in flight and applies only
// the outcome of the latest query.
type SearchController struct {
	mu        sync.Mutex
	client    MovieClient
	minLength int
	mediaType models.MediaType
	seq       uint64
	cancel    context.CancelFunc
	state     SearchState
	metrics   *metrics.Metrics
	logger    *logrus.Logger
}

// NewSearchController creates a new search controller
func NewSearchController(client MovieClient, minLength int, m *metrics.Metrics, logger *logrus.Logger) *SearchController {
	return &SearchController{
		client:    client,
		minLength: minLength,
		state:     SearchState{Status: models.FetchIdle},
		metrics:   m,
		logger:    logger,
	}
}

// SetMediaType restricts subsequent searches to one kind of title
func (c *SearchController) SetMediaType(mediaType models.MediaType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mediaType = mediaType
}

// SetQuery switches to query and cancels any in-flight search.
// It returns the fetch to run for the new query, or nil when no request
// is needed: the query is unchanged or shorter than the minimum length.
func (c *SearchController) SetQuery(parent context.Context, query string) func() SearchOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if query == c.state.Query && c.state.Status != models.FetchIdle {
		return nil
	}

	c.abortLocked()
	c.seq++
	c.state = SearchState{Query: query, Status: models.FetchIdle}

	if n := utils.QueryLength(query); n == 0 || n < c.minLength {
		c.metrics.ObserveRequest(metrics.KindSearch, metrics.OutcomeSkipped)
		return nil
	}

	ctx, cancel := context.WithCancel(parent)
	c.cancel = cancel
	c.state.Status = models.FetchLoading

	seq := c.seq
	term := utils.NormalizeQuery(query)
	mediaType := c.mediaType
	client := c.client

	c.logger.WithFields(logrus.Fields{
		"seq":   seq,
		"query": term,
	}).Debug("Starting search")

	return func() SearchOutcome {
		results, err := client.Search(ctx, term, mediaType)
		return SearchOutcome{Seq: seq, Query: query, Results: results, Err: err}
	}
}

// Resolve applies out if it belongs to the latest request.
// Superseded and cancelled outcomes are discarded; it reports whether out was applied.
func (c *SearchController) Resolve(out SearchOutcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	cancelled := errors.Is(out.Err, context.Canceled)
	if out.Seq != c.seq {
		outcome := metrics.OutcomeSuperseded
		if cancelled {
			outcome = metrics.OutcomeCancelled
		}
		c.metrics.ObserveRequest(metrics.KindSearch, outcome)
		c.logger.WithFields(logrus.Fields{
			"seq":    out.Seq,
			"latest": c.seq,
			"query":  out.Query,
		}).Debug("Discarding stale search outcome")
		return false
	}
	if cancelled {
		c.metrics.ObserveRequest(metrics.KindSearch, metrics.OutcomeCancelled)
		return false
	}

	// Releases the request context
	c.abortLocked()
	switch {
	case out.Err == nil && len(out.Results) > 0:
		c.state.Status = models.FetchSuccess
		c.state.Results = out.Results
		c.state.Error = ""
		c.metrics.ObserveRequest(metrics.KindSearch, metrics.OutcomeSuccess)
	case out.Err == nil || errors.Is(out.Err, omdb.ErrNotFound):
		c.fail(MsgMovieNotFound)
		c.metrics.ObserveRequest(metrics.KindSearch, metrics.OutcomeNotFound)
	default:
		c.fail(searchErrorMessage(out.Err))
		c.metrics.ObserveRequest(metrics.KindSearch, metrics.OutcomeError)
		c.logger.WithError(out.Err).WithField("query", out.Query).Warn("Search failed")
	}
	return true
}

// State returns a snapshot of the current search state
func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.state
	state.Results = append([]models.SearchResult(nil), c.state.Results...)
	return state
}

// Close cancels the in-flight search; later outcomes are discarded
func (c *SearchController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.abortLocked()
	c.seq++
}

func (c *SearchController) abortLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *SearchController) fail(message string) {
	c.state.Status = models.FetchError
	c.state.Results = nil
	c.state.Error = message
}

func searchErrorMessage(err error) string {
	var apiErr *omdb.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgSearchFailed
}
