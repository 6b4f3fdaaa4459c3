package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amaumene/popcorn/internal/controllers"
	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/services/omdb"
	"github.com/amaumene/popcorn/internal/state"
	"github.com/amaumene/popcorn/internal/utils"
	tea "github.com/charmbracelet/bubbletea"
)

type stubClient struct{}

func (stubClient) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.SearchResult, error) {
	if query != "matrix" {
		return nil, omdb.ErrNotFound
	}
	return []models.SearchResult{
		{ID: "tt0133093", Title: "The Matrix", Year: "1999"},
		{ID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003"},
	}, nil
}

func (stubClient) GetByID(ctx context.Context, id string) (*models.MovieDetail, error) {
	runtime, imdb := 136, 8.7
	return &models.MovieDetail{
		ID:             id,
		Title:          "The Matrix",
		Runtime:        "136 min",
		RuntimeMinutes: &runtime,
		RatingExternal: &imdb,
		Plot:           "A hacker learns the truth.",
		Actors:         "Keanu Reeves",
		Director:       "Lana Wachowski",
	}, nil
}

func newTestApp(t *testing.T, store state.Store) (*App, *TitleBuffer) {
	t.Helper()
	logger := utils.NewNullLogger()
	titles := &TitleBuffer{}
	watched := state.NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, logger)
	ctrl := controllers.NewAppController(
		controllers.NewSearchController(stubClient{}, 3, nil, logger),
		controllers.NewDetailController(stubClient{}, nil, logger),
		watched,
		controllers.NewTitleScope(titles.Set),
		logger,
	)
	app := NewApp(context.Background(), ctrl, titles, logger)
	t.Cleanup(app.ctrl.Close)
	return app, titles
}

// collect runs cmd and returns the messages it produces. Commands that
// block (cursor blink, ticks) are abandoned after a short wait.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var msgs []tea.Msg
			for _, c := range batch {
				msgs = append(msgs, collect(c)...)
			}
			return msgs
		}
		return []tea.Msg{msg}
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// send delivers msg and feeds back any fetch results it triggers
func send(a *App, msg tea.Msg) {
	_, cmd := a.Update(msg)
	for _, out := range collect(cmd) {
		switch out.(type) {
		case searchResolvedMsg, detailResolvedMsg:
			send(a, out)
		}
	}
}

func typeText(a *App, text string) {
	for _, r := range text {
		send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(a *App, k string) {
	switch k {
	case "enter":
		send(a, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		send(a, tea.KeyMsg{Type: tea.KeyEsc})
	case "tab":
		send(a, tea.KeyMsg{Type: tea.KeyTab})
	default:
		send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func TestTypingSearchesAndRendersResults(t *testing.T) {
	app, _ := newTestApp(t, state.NewMemoryStore())

	typeText(app, "matrix")

	st := app.ctrl.Search().State()
	if st.Status != models.FetchSuccess {
		t.Fatalf("Expected success, got %v (%s)", st.Status, st.Error)
	}
	if len(st.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(st.Results))
	}
	if app.ctrl.Query() != "matrix" {
		t.Errorf("Expected query 'matrix', got '%s'", app.ctrl.Query())
	}

	view := app.View()
	if !strings.Contains(view, "The Matrix Reloaded") {
		t.Error("Expected results in view")
	}
	if !strings.Contains(view, "Found") {
		t.Error("Expected result count in view")
	}
}

func TestUnknownQueryShowsNotFound(t *testing.T) {
	app, _ := newTestApp(t, state.NewMemoryStore())

	typeText(app, "zzzz")

	if !strings.Contains(app.View(), controllers.MsgMovieNotFound) {
		t.Errorf("Expected '%s' in view", controllers.MsgMovieNotFound)
	}
}

func TestOpenRateAndAddMovie(t *testing.T) {
	app, titles := newTestApp(t, state.NewMemoryStore())

	typeText(app, "matrix")
	press(app, "enter")
	if app.searchInput.Focused() {
		t.Fatal("Expected enter to leave the search box")
	}

	press(app, "o")
	if app.ctrl.Selected() != "tt0133093" {
		t.Fatalf("Expected movie to open, got '%s'", app.ctrl.Selected())
	}
	if _, pending := titles.Take(); pending {
		t.Error("Expected window title to be flushed by the update")
	}
	if !strings.Contains(app.View(), "Directed by Lana Wachowski") {
		t.Error("Expected details in view")
	}

	press(app, "8")
	if got := app.ctrl.Detail().State().UserRating; got != 8 {
		t.Fatalf("Expected rating 8, got %d", got)
	}
	if !strings.Contains(app.View(), "Add to list") {
		t.Error("Expected add button once rated")
	}

	press(app, "a")
	watched := app.ctrl.Watched()
	if len(watched) != 1 || watched[0].RatingUser != 8 {
		t.Fatalf("Expected one entry rated 8, got %+v", watched)
	}
	if app.ctrl.Selected() != "" {
		t.Error("Expected adding to close the movie")
	}
	if !strings.Contains(app.View(), "MOVIES YOU WATCHED") {
		t.Error("Expected watched summary after adding")
	}

	// Reopening a watched movie shows the stored rating instead of stars
	press(app, "tab")
	press(app, "o")
	if !strings.Contains(app.View(), "You rated the movie 8") {
		t.Error("Expected stored rating for a watched movie")
	}
}

func TestAddWithoutRatingShowsNotice(t *testing.T) {
	app, _ := newTestApp(t, state.NewMemoryStore())

	typeText(app, "matrix")
	press(app, "enter")
	press(app, "o")
	press(app, "a")

	if len(app.ctrl.Watched()) != 0 {
		t.Error("Expected unrated movie not to be added")
	}
	if app.notice == "" {
		t.Error("Expected a notice")
	}
}

func TestEscapeClosesAndEnterRefocuses(t *testing.T) {
	app, _ := newTestApp(t, state.NewMemoryStore())

	typeText(app, "matrix")
	press(app, "enter")
	press(app, "o")
	press(app, "esc")
	if app.ctrl.Selected() != "" {
		t.Error("Expected esc to close the movie")
	}

	press(app, "enter")
	if !app.searchInput.Focused() {
		t.Error("Expected enter to focus the search box")
	}
	if app.ctrl.Query() != "" || app.searchInput.Value() != "" {
		t.Error("Expected enter to clear the query")
	}
}

func TestDeleteWatched(t *testing.T) {
	store := state.NewMemoryStore()
	seed := state.NewPersisted(store, models.WatchedKey, models.WatchedList{}, nil, utils.NewNullLogger())
	seed.Set(models.WatchedList{{ID: "tt0133093", Title: "The Matrix", RatingUser: 9}})

	app, _ := newTestApp(t, store)
	if len(app.ctrl.Watched()) != 1 {
		t.Fatal("Expected watched list to load from the store")
	}

	press(app, "esc")
	press(app, "tab")
	press(app, "d")

	if len(app.ctrl.Watched()) != 0 {
		t.Error("Expected entry to be deleted")
	}
	value, _, _ := store.Get(models.WatchedKey)
	if value != "[]" {
		t.Errorf("Expected empty list persisted, got %s", value)
	}
}

func TestTitleBuffer(t *testing.T) {
	var b TitleBuffer
	if _, ok := b.Take(); ok {
		t.Fatal("Expected empty buffer")
	}
	b.Set("usePopcorn | The Matrix")
	b.Set("usePopcorn")
	title, ok := b.Take()
	if !ok || title != "usePopcorn" {
		t.Errorf("Expected latest title, got '%s'", title)
	}
	if _, ok := b.Take(); ok {
		t.Error("Expected Take to clear the buffer")
	}
}
