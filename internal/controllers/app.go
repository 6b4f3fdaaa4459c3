package controllers

import (
	"context"
	"fmt"
	"sync"

	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/state"
	"github.com/sirupsen/logrus"
)

// Key is a keyboard key the app reacts to globally
type Key string

const (
	KeyEnter  Key = "enter"
	KeyEscape Key = "esc"
)

// KeyAction tells the view what a global key did
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionFocusSearch
	ActionCloseMovie
)

// AppController owns the top-level state: query, selection and watched list
type AppController struct {
	mu       sync.Mutex
	search   *SearchController
	detail   *DetailController
	watched  *state.Persisted[models.WatchedList]
	title    *TitleScope
	query    string
	selected string
	logger   *logrus.Logger
}

// NewAppController wires the coordinators together
func NewAppController(search *SearchController, detail *DetailController, watched *state.Persisted[models.WatchedList], title *TitleScope, logger *logrus.Logger) *AppController {
	return &AppController{
		search:  search,
		detail:  detail,
		watched: watched,
		title:   title,
		logger:  logger,
	}
}

// Search returns the search coordinator
func (a *AppController) Search() *SearchController { return a.search }

// Detail returns the detail coordinator
func (a *AppController) Detail() *DetailController { return a.detail }

// Query returns the current search query
func (a *AppController) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// Selected returns the open movie ID, "" when none
func (a *AppController) Selected() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.selected
}

// SetQuery updates the query. A changed query closes the open movie.
func (a *AppController) SetQuery(ctx context.Context, query string) func() SearchOutcome {
	a.mu.Lock()
	changed := query != a.query
	a.query = query
	a.mu.Unlock()

	if changed {
		a.CloseMovie()
	}
	return a.search.SetQuery(ctx, query)
}

// SelectMovie opens id, or closes it when it is already open
func (a *AppController) SelectMovie(ctx context.Context, id string) func() DetailOutcome {
	a.mu.Lock()
	if id == "" || id == a.selected {
		a.mu.Unlock()
		a.CloseMovie()
		return nil
	}
	a.selected = id
	a.mu.Unlock()

	a.title.Release()
	return a.detail.Select(ctx, id)
}

// ResolveDetail applies a detail outcome and titles the window after the movie
func (a *AppController) ResolveDetail(out DetailOutcome) bool {
	if !a.detail.Resolve(out) {
		return false
	}
	if st := a.detail.State(); st.Detail != nil {
		a.title.Acquire(st.Detail.Title)
	}
	return true
}

// CloseMovie clears the selection
func (a *AppController) CloseMovie() {
	a.mu.Lock()
	a.selected = ""
	a.mu.Unlock()

	a.detail.Deselect()
	a.title.Release()
}

// Watched returns the watched list
func (a *AppController) Watched() models.WatchedList {
	return a.watched.Get()
}

// IsWatched reports whether id is in the watched list
func (a *AppController) IsWatched(id string) bool {
	return a.watched.Get().Contains(id)
}

// WatchedRating returns the user's stored rating for id
func (a *AppController) WatchedRating(id string) (int, bool) {
	entry, ok := a.watched.Get().Find(id)
	return entry.RatingUser, ok
}

// AddWatched appends entry to the watched list and closes the movie
func (a *AppController) AddWatched(entry models.WatchedEntry) {
	a.watched.Update(func(l models.WatchedList) models.WatchedList {
		return l.Add(entry)
	})
	a.logger.WithFields(logrus.Fields{
		"id":     entry.ID,
		"title":  entry.Title,
		"rating": entry.RatingUser,
	}).Info("Added movie to watched list")
	a.CloseMovie()
}

// AddCurrent adds the open movie with the user's current rating
func (a *AppController) AddCurrent() error {
	entry, err := a.detail.Entry()
	if err != nil {
		return fmt.Errorf("cannot add movie: %w", err)
	}
	a.AddWatched(entry)
	return nil
}

// DeleteWatched removes the entry with id
func (a *AppController) DeleteWatched(id string) {
	a.watched.Update(func(l models.WatchedList) models.WatchedList {
		return l.Remove(id)
	})
	a.logger.WithField("id", id).Info("Removed movie from watched list")
}

// HandleKey applies the global keyboard shortcuts.
// Keys typed into the focused search box are never shortcuts.
func (a *AppController) HandleKey(ctx context.Context, key Key, searchFocused bool) KeyAction {
	if searchFocused {
		return ActionNone
	}

	switch key {
	case KeyEnter:
		a.SetQuery(ctx, "")
		return ActionFocusSearch
	case KeyEscape:
		if a.Selected() == "" {
			return ActionNone
		}
		a.CloseMovie()
		return ActionCloseMovie
	}
	return ActionNone
}

// Close cancels all in-flight requests and restores the window title
func (a *AppController) Close() {
	a.search.Close()
	a.detail.Close()
	a.title.Release()
}
