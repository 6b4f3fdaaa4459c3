package models

// SearchResult represents a single movie returned by a title search
type SearchResult struct {
	ID        string // IMDb ID, e.g. "tt0133093"
	Title     string
	Year      string // OMDb year string, e.g. "1999" or "2011–2019"
	PosterURL string
}

// MovieDetail represents the full record of one movie
type MovieDetail struct {
	ID             string
	Title          string
	PosterURL      string
	Runtime        string   // Raw runtime for display, e.g. "136 min"
	RuntimeMinutes *int     // nil when OMDb reports "N/A"
	RatingExternal *float64 // IMDb rating, nil when unrated
	Plot           string
	ReleaseDate    string
	Actors         string
	Director       string
	Genre          string
}
