package rating

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	fullStar  = "★"
	emptyStar = "☆"
)

// Options configures a StarRating
type Options struct {
	MaxRating     int
	Size          int // Horizontal cells per star, at least 1
	Color         string
	Messages      []string // Labels shown instead of the number when len == MaxRating
	DefaultRating int
	OnSetRating   func(int)
}

// StarRating is a Widget with a label and terminal rendering
type StarRating struct {
	*Widget
	opts      Options
	starStyle lipgloss.Style
	textStyle lipgloss.Style
}

// NewStarRating creates a StarRating. Zero options get defaults:
// five stars, size 1 and a gold color. A negative MaxRating renders nothing.
func NewStarRating(opts Options) *StarRating {
	if opts.MaxRating == 0 {
		opts.MaxRating = DefaultMaxRating
	}
	if opts.Size < 1 {
		opts.Size = 1
	}
	if opts.Color == "" {
		opts.Color = "#fcc419"
	}

	s := &StarRating{
		Widget: NewWidget(opts.MaxRating, opts.OnSetRating),
		opts:   opts,
		starStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(opts.Color)).
			Width(opts.Size).
			Align(lipgloss.Center),
		textStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(opts.Color)).
			MarginLeft(2),
	}
	// The default seeds the committed value without notifying the owner
	if opts.DefaultRating > 0 && opts.DefaultRating <= s.max {
		s.committed = opts.DefaultRating
	}
	return s
}

// Label is the message for the displayed rating, else its number, else ""
func (s *StarRating) Label() string {
	display := s.Display()
	if display == 0 {
		return ""
	}
	if len(s.opts.Messages) == s.max {
		return s.opts.Messages[display-1]
	}
	return strconv.Itoa(display)
}

// MoveRight moves the hover preview one star right, starting from the committed rating
func (s *StarRating) MoveRight() {
	next := s.Display()
	if next >= s.max {
		next = s.max - 1
	}
	s.Hover(next)
}

// MoveLeft moves the hover preview one star left
func (s *StarRating) MoveLeft() {
	current := s.Display()
	if current <= 1 {
		s.Leave()
		return
	}
	s.Hover(current - 2)
}

// Press commits the hovered star and clears the preview
func (s *StarRating) Press() {
	if s.hover == 0 {
		return
	}
	s.Click(s.hover - 1)
	s.Leave()
}

// View renders the stars followed by the label
func (s *StarRating) View() string {
	if s.max <= 0 {
		return ""
	}
	var b strings.Builder
	for i := 0; i < s.max; i++ {
		glyph := emptyStar
		if s.Full(i) {
			glyph = fullStar
		}
		b.WriteString(s.starStyle.Render(glyph))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, b.String(), s.textStyle.Render(s.Label()))
}
