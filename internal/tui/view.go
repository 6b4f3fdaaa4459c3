package tui

import (
	"fmt"
	"strings"

	"github.com/amaumene/popcorn/internal/models"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	colorAccent = lipgloss.Color("#6741d9")
	colorMuted  = lipgloss.Color("#adb5bd")
	colorError  = lipgloss.Color("#fa5252")

	logoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#fcc419"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	selectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	navStyle      = lipgloss.NewStyle().Padding(0, 1).Background(colorAccent)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	activeBox     = boxStyle.Copy().BorderForeground(colorAccent)

	printer = message.NewPrinter(language.English)
)

func (a *App) View() string {
	nav := a.navBar()

	boxWidth := 48
	if a.width > 0 {
		boxWidth = (a.width - 6) / 2
	}

	left := a.box(a.resultsView(), a.resultsOpen, a.pane == paneResults, boxWidth)
	right := a.box(a.sideView(), a.sideOpen, a.pane == paneSide, boxWidth)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	footer := mutedStyle.Render(a.helpLine())
	if a.notice != "" {
		footer = errorStyle.Render(a.notice)
	}
	return lipgloss.JoinVertical(lipgloss.Left, nav, main, footer)
}

func (a *App) navBar() string {
	logo := logoStyle.Render("🍿 usePopcorn")
	count := fmt.Sprintf("Found %s results", titleStyle.Render(fmt.Sprint(len(a.ctrl.Search().State().Results))))
	return navStyle.Render(lipgloss.JoinHorizontal(lipgloss.Center, logo, "   ", a.searchInput.View(), "   ", count))
}

func (a *App) box(content string, open, active bool, width int) string {
	style := boxStyle
	if active {
		style = activeBox
	}
	toggle := "–"
	if !open {
		toggle = "+"
		content = ""
	}
	return style.Width(width).Render(mutedStyle.Render("["+toggle+"]") + "\n" + content)
}

func (a *App) resultsView() string {
	st := a.ctrl.Search().State()
	switch st.Status {
	case models.FetchLoading:
		return a.spinner.View() + " Loading..."
	case models.FetchError:
		return errorStyle.Render("⛔️ " + st.Error)
	}

	var b strings.Builder
	for i, movie := range st.Results {
		line := fmt.Sprintf("%s  🗓 %s", movie.Title, movie.Year)
		if i == a.resultCursor && a.pane == paneResults {
			line = selectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a *App) sideView() string {
	if a.ctrl.Selected() != "" {
		return a.detailView()
	}
	return a.summaryView() + "\n" + a.watchedView()
}

func (a *App) detailView() string {
	st := a.ctrl.Detail().State()
	switch st.Status {
	case models.FetchLoading:
		return a.spinner.View() + " Loading..."
	case models.FetchError:
		return errorStyle.Render("⛔️ " + st.Error)
	}
	d := st.Detail
	if d == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render("← esc") + "\n")
	b.WriteString(titleStyle.Render(d.Title) + "\n")
	b.WriteString(fmt.Sprintf("%s • %s\n", d.ReleaseDate, d.Runtime))
	b.WriteString(d.Genre + "\n")
	b.WriteString(fmt.Sprintf("⭐ %s IMDb rating\n\n", formatRating(d.RatingExternal)))

	if rated, ok := a.ctrl.WatchedRating(st.ID); ok {
		b.WriteString(fmt.Sprintf("You rated the movie %d 🪅\n", rated))
	} else if a.stars != nil {
		b.WriteString(a.stars.View() + "\n")
		if st.UserRating > 0 {
			b.WriteString(selectedStyle.Render("+ Add to list (a)") + "\n")
		}
	}

	b.WriteString("\n" + lipgloss.NewStyle().Italic(true).Render(d.Plot) + "\n")
	b.WriteString("Starring " + d.Actors + "\n")
	b.WriteString("Directed by " + d.Director + "\n")
	return b.String()
}

func (a *App) summaryView() string {
	s := a.ctrl.Watched().Summary()
	return titleStyle.Render("MOVIES YOU WATCHED") + "\n" + printer.Sprintf(
		"#️⃣ %d movies  ⭐️ %.2f  🌟 %.2f  ⏳ %.0f min\n",
		s.Count, s.AvgExternalRating, s.AvgUserRating, s.AvgRuntime,
	)
}

func (a *App) watchedView() string {
	var b strings.Builder
	for i, movie := range a.ctrl.Watched() {
		line := fmt.Sprintf("%s  ⭐️ %s  🌟 %d  ⏳ %s",
			movie.Title, formatRating(movie.RatingExternal), movie.RatingUser, formatRuntime(movie.RuntimeMinutes))
		if i == a.watchedCursor && a.pane == paneSide {
			line = selectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (a *App) helpLine() string {
	if a.searchInput.Focused() {
		return "type to search • enter/esc leave search • ctrl+c quit"
	}
	bindings := []string{a.keys.Focus.Help().Key + " " + a.keys.Focus.Help().Desc}
	switch {
	case a.pane == paneResults:
		bindings = append(bindings, "↑/↓ move", "o open")
	case a.ctrl.Selected() != "":
		bindings = append(bindings, "←/→ preview", "space/0-9 rate", "a add", "esc close")
	default:
		bindings = append(bindings, "↑/↓ move", "d delete")
	}
	bindings = append(bindings, "tab switch", "+/- toggle", "q quit")
	return strings.Join(bindings, " • ")
}

func formatRating(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return printer.Sprintf("%.1f", *r)
}

func formatRuntime(m *int) string {
	if m == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d min", *m)
}
