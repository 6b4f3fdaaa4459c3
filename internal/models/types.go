package models

// FetchStatus represents the state of a search or detail request
type FetchStatus string

const (
	FetchIdle    FetchStatus = "idle"
	FetchLoading FetchStatus = "loading"
	FetchSuccess FetchStatus = "success"
	FetchError   FetchStatus = "error"
)

// MediaType filters OMDb results by kind
type MediaType string

const (
	MediaTypeAny     MediaType = ""
	MediaTypeMovie   MediaType = "movie"
	MediaTypeSeries  MediaType = "series"
	MediaTypeEpisode MediaType = "episode"
)

// WatchedKey is the storage key holding the watched list
const WatchedKey = "watched"
