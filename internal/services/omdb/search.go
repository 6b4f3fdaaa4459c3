package omdb

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/utils"
	"github.com/sirupsen/logrus"
)

// SearchResponse represents the JSON body of a title search
type SearchResponse struct {
	Search       []SearchItem `json:"Search"`
	TotalResults string       `json:"totalResults"`
}

// SearchItem represents a single search hit
type SearchItem struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	IMDbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
}

// DetailResponse represents the JSON body of a lookup by IMDb ID
type DetailResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Released   string `json:"Released"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
}

// Search finds titles matching query.
// Zero results are reported as ErrNotFound.
func (c *Client) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.SearchResult, error) {
	params := url.Values{"s": {query}}
	if mediaType != models.MediaTypeAny {
		params["type"] = []string{string(mediaType)}
	}

	var response SearchResponse
	if err := c.doRequest(ctx, "search", params, &response); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := convertResults(response.Search)
	if len(results) == 0 {
		return nil, fmt.Errorf("search %q: %w", query, ErrNotFound)
	}

	c.logger.WithFields(logrus.Fields{
		"query": query,
		"count": len(results),
	}).Debug("OMDb search completed")

	return results, nil
}

// GetByID fetches the full record of one title
func (c *Client) GetByID(ctx context.Context, id string) (*models.MovieDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("IMDb ID is required")
	}

	var response DetailResponse
	if err := c.doRequest(ctx, "detail", url.Values{"i": {id}}, &response); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", id, err)
	}
	if response.IMDbID == "" && response.Title == "" {
		return nil, fmt.Errorf("lookup %s: %w: empty record", id, ErrMalformed)
	}

	detail := convertDetail(response)
	if detail.ID == "" {
		detail.ID = id
	}
	return detail, nil
}

// convertResults maps search hits to domain results, skipping hits without an ID
func convertResults(items []SearchItem) []models.SearchResult {
	results := make([]models.SearchResult, 0, len(items))
	for _, item := range items {
		if item.IMDbID == "" {
			continue
		}
		results = append(results, models.SearchResult{
			ID:        item.IMDbID,
			Title:     item.Title,
			Year:      item.Year,
			PosterURL: utils.NormalizeOptional(item.Poster),
		})
	}
	return results
}

// convertDetail coerces OMDb strings into typed fields.
// "N/A" values become empty strings or nil rather than errors.
func convertDetail(r DetailResponse) *models.MovieDetail {
	return &models.MovieDetail{
		ID:             r.IMDbID,
		Title:          r.Title,
		PosterURL:      utils.NormalizeOptional(r.Poster),
		Runtime:        utils.NormalizeOptional(r.Runtime),
		RuntimeMinutes: utils.ParseRuntime(r.Runtime),
		RatingExternal: utils.ParseRating(r.IMDbRating),
		Plot:           utils.NormalizeOptional(r.Plot),
		ReleaseDate:    utils.NormalizeOptional(r.Released),
		Actors:         utils.NormalizeOptional(r.Actors),
		Director:       utils.NormalizeOptional(r.Director),
		Genre:          utils.NormalizeOptional(r.Genre),
	}
}
