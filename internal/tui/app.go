// Package tui is the terminal front end: a search bar over two panes,
// search results on the left and the open movie or the watched list on
// the right.
package tui

import (
	"context"
	"errors"

	"github.com/amaumene/popcorn/internal/controllers"
	"github.com/amaumene/popcorn/internal/rating"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

// UserRatingStars is the star count of the rating control in the details pane
const UserRatingStars = 10

type pane int

const (
	paneResults pane = iota
	paneSide
)

type searchResolvedMsg struct {
	out controllers.SearchOutcome
}

type detailResolvedMsg struct {
	out controllers.DetailOutcome
}

// App is the root Bubble Tea model
type App struct {
	ctx    context.Context
	cancel context.CancelFunc
	ctrl   *controllers.AppController
	titles *TitleBuffer
	keys   keyMap

	searchInput textinput.Model
	spinner     spinner.Model
	stars       *rating.StarRating

	pane          pane
	resultCursor  int
	watchedCursor int
	resultsOpen   bool
	sideOpen      bool
	notice        string
	width         int
	height        int

	logger *logrus.Logger
}

// NewApp creates the root model. titles must be the buffer the
// controller's TitleScope writes to.
func NewApp(ctx context.Context, ctrl *controllers.AppController, titles *TitleBuffer, logger *logrus.Logger) *App {
	ctx, cancel := context.WithCancel(ctx)

	si := textinput.New()
	si.Placeholder = "Search movies..."
	si.CharLimit = 100
	si.Width = 30
	si.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return &App{
		ctx:         ctx,
		cancel:      cancel,
		ctrl:        ctrl,
		titles:      titles,
		keys:        newKeyMap(),
		searchInput: si,
		spinner:     s,
		resultsOpen: true,
		sideOpen:    true,
		logger:      logger,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		a.spinner.Tick,
		tea.SetWindowTitle(controllers.DefaultTitle),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, a.quit()
		}
		cmds = append(cmds, a.handleKey(msg))

	case searchResolvedMsg:
		if a.ctrl.Search().Resolve(msg.out) {
			a.resultCursor = 0
		}

	case detailResolvedMsg:
		a.ctrl.ResolveDetail(msg.out)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if title, ok := a.titles.Take(); ok {
		cmds = append(cmds, tea.SetWindowTitle(title))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) quit() tea.Cmd {
	a.ctrl.Close()
	a.cancel()
	return tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	a.notice = ""

	if a.searchInput.Focused() {
		return a.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a.quit()
	case key.Matches(msg, a.keys.Focus):
		if a.ctrl.HandleKey(a.ctx, controllers.KeyEnter, false) == controllers.ActionFocusSearch {
			a.searchInput.SetValue("")
			a.resultCursor = 0
			return a.searchInput.Focus()
		}
		return nil
	case msg.Type == tea.KeyEsc:
		a.ctrl.HandleKey(a.ctx, controllers.KeyEscape, false)
		return nil
	case key.Matches(msg, a.keys.SwitchPane):
		if a.pane == paneResults {
			a.pane = paneSide
		} else {
			a.pane = paneResults
		}
		return nil
	case key.Matches(msg, a.keys.ToggleBox):
		if a.pane == paneResults {
			a.resultsOpen = !a.resultsOpen
		} else {
			a.sideOpen = !a.sideOpen
		}
		return nil
	}

	if a.pane == paneResults {
		return a.handleResultsKey(msg)
	}
	if a.ctrl.Selected() != "" {
		return a.handleDetailKey(msg)
	}
	return a.handleWatchedKey(msg)
}

// handleSearchKey edits the query. Leaving the box hands focus to the results.
func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyDown:
		a.searchInput.Blur()
		a.pane = paneResults
		return nil
	}

	var cmd tea.Cmd
	previous := a.searchInput.Value()
	a.searchInput, cmd = a.searchInput.Update(msg)
	if query := a.searchInput.Value(); query != previous {
		a.resultCursor = 0
		if fetch := a.ctrl.SetQuery(a.ctx, query); fetch != nil {
			return tea.Batch(cmd, func() tea.Msg { return searchResolvedMsg{out: fetch()} })
		}
	}
	return cmd
}

func (a *App) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	results := a.ctrl.Search().State().Results
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.resultCursor > 0 {
			a.resultCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.resultCursor < len(results)-1 {
			a.resultCursor++
		}
	case key.Matches(msg, a.keys.Open):
		if a.resultCursor < len(results) {
			return a.openMovie(results[a.resultCursor].ID)
		}
	}
	return nil
}

func (a *App) openMovie(id string) tea.Cmd {
	fetch := a.ctrl.SelectMovie(a.ctx, id)
	if fetch == nil {
		a.stars = nil
		return nil
	}

	detail := a.ctrl.Detail()
	a.stars = rating.NewStarRating(rating.Options{
		MaxRating:   UserRatingStars,
		Size:        2,
		OnSetRating: detail.SetUserRating,
	})
	a.pane = paneSide
	return func() tea.Msg { return detailResolvedMsg{out: fetch()} }
}

func (a *App) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	st := a.ctrl.Detail().State()
	if key.Matches(msg, a.keys.Back) {
		a.ctrl.CloseMovie()
		return nil
	}
	if st.Detail == nil || a.stars == nil || a.ctrl.IsWatched(st.ID) {
		return nil
	}

	switch {
	case key.Matches(msg, a.keys.StarLeft):
		a.stars.MoveLeft()
	case key.Matches(msg, a.keys.StarRight):
		a.stars.MoveRight()
	case key.Matches(msg, a.keys.Rate):
		if msg.String() == " " {
			a.stars.Press()
			break
		}
		value := int(msg.String()[0] - '0')
		if value == 0 {
			value = 10
		}
		// Typing the committed value again clears it, like clicking the star
		a.stars.Click(value - 1)
	case key.Matches(msg, a.keys.Add):
		if err := a.ctrl.AddCurrent(); err != nil {
			if errors.Is(err, controllers.ErrNotRated) {
				a.notice = "Rate the movie before adding it"
			}
			return nil
		}
		a.stars = nil
		a.pane = paneSide
	}
	return nil
}

func (a *App) handleWatchedKey(msg tea.KeyMsg) tea.Cmd {
	watched := a.ctrl.Watched()
	switch {
	case key.Matches(msg, a.keys.Up):
		if a.watchedCursor > 0 {
			a.watchedCursor--
		}
	case key.Matches(msg, a.keys.Down):
		if a.watchedCursor < len(watched)-1 {
			a.watchedCursor++
		}
	case key.Matches(msg, a.keys.Delete):
		if a.watchedCursor < len(watched) {
			a.ctrl.DeleteWatched(watched[a.watchedCursor].ID)
			if a.watchedCursor > 0 && a.watchedCursor >= len(watched)-1 {
				a.watchedCursor--
			}
		}
	}
	return nil
}
