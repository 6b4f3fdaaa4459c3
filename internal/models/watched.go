package models

import "github.com/amaumene/popcorn/internal/utils"

// WatchedEntry is a user's personal record of a movie they rated.
// JSON names match the layout already written by earlier versions.
type WatchedEntry struct {
	ID                  string   `json:"imdbId"`
	Title               string   `json:"title"`
	PosterURL           string   `json:"poster"`
	RatingExternal      *float64 `json:"imdbRating"`
	RatingUser          int      `json:"userRating"`
	RuntimeMinutes      *int     `json:"runtime"`
	RatingDecisionCount int      `json:"countRatingDecisions"`
}

// WatchedList is the ordered watched list. IDs are unique.
// Mutating helpers return a new slice and never modify the receiver.
type WatchedList []WatchedEntry

// Find returns the entry with the given ID
func (l WatchedList) Find(id string) (WatchedEntry, bool) {
	for _, entry := range l {
		if entry.ID == id {
			return entry, true
		}
	}
	return WatchedEntry{}, false
}

// Contains reports whether an entry with the given ID exists
func (l WatchedList) Contains(id string) bool {
	_, ok := l.Find(id)
	return ok
}

// Add appends entry unless its ID is already present
func (l WatchedList) Add(entry WatchedEntry) WatchedList {
	if l.Contains(entry.ID) {
		return l
	}
	out := make(WatchedList, 0, len(l)+1)
	out = append(out, l...)
	return append(out, entry)
}

// Remove drops every entry matching id
func (l WatchedList) Remove(id string) WatchedList {
	out := make(WatchedList, 0, len(l))
	for _, entry := range l {
		if entry.ID != id {
			out = append(out, entry)
		}
	}
	return out
}

// WatchedSummary aggregates the watched list
type WatchedSummary struct {
	Count             int
	AvgExternalRating float64
	AvgUserRating     float64
	AvgRuntime        float64
}

// Summary computes averages over the list. Entries with no external
// rating or runtime are left out of those averages.
func (l WatchedList) Summary() WatchedSummary {
	var external, user, runtime []float64
	for _, entry := range l {
		if entry.RatingExternal != nil {
			external = append(external, *entry.RatingExternal)
		}
		if entry.RuntimeMinutes != nil {
			runtime = append(runtime, float64(*entry.RuntimeMinutes))
		}
		user = append(user, float64(entry.RatingUser))
	}

	return WatchedSummary{
		Count:             len(l),
		AvgExternalRating: utils.Average(external),
		AvgUserRating:     utils.Average(user),
		AvgRuntime:        utils.Average(runtime),
	}
}
