package controllers

// DefaultTitle is the window title while no movie is open
const DefaultTitle = "usePopcorn"

// TitleScope holds the window title while a movie is open.
// Release restores the default and is safe to call more than once.
type TitleScope struct {
	set  func(string)
	held string
}

// NewTitleScope creates a scope that writes titles through set
func NewTitleScope(set func(string)) *TitleScope {
	return &TitleScope{set: set}
}

// Acquire shows movieTitle in the window title
func (s *TitleScope) Acquire(movieTitle string) {
	if movieTitle == "" {
		return
	}
	title := DefaultTitle + " | " + movieTitle
	if title == s.held {
		return
	}
	s.held = title
	s.set(title)
}

// Release restores the default title if a movie title is held
func (s *TitleScope) Release() {
	if s.held == "" {
		return
	}
	s.held = ""
	s.set(DefaultTitle)
}

// Held returns the title currently shown, "" when released
func (s *TitleScope) Held() string {
	return s.held
}
