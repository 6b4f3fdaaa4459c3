package controllers

import (
	"context"
	"sync"

	"github.com/amaumene/popcorn/internal/models"
	"github.com/amaumene/popcorn/internal/services/omdb"
)

// fakeClient answers from fixed tables and records every call.
// When honorCancel is set, calls on a cancelled context fail with its error.
type fakeClient struct {
	mu          sync.Mutex
	searches    []string
	lookups     []string
	results     map[string][]models.SearchResult
	details     map[string]*models.MovieDetail
	searchErr   error
	honorCancel bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		results: map[string][]models.SearchResult{
			"matrix": {
				{ID: "tt0133093", Title: "The Matrix", Year: "1999"},
				{ID: "tt0234215", Title: "The Matrix Reloaded", Year: "2003"},
			},
			"shawshank": {
				{ID: "tt0111161", Title: "The Shawshank Redemption", Year: "1994"},
			},
		},
		details: map[string]*models.MovieDetail{
			"tt0133093": {ID: "tt0133093", Title: "The Matrix", Runtime: "136 min", RuntimeMinutes: intPtr(136), RatingExternal: floatPtr(8.7)},
			"tt0111161": {ID: "tt0111161", Title: "The Shawshank Redemption", Runtime: "142 min", RuntimeMinutes: intPtr(142), RatingExternal: floatPtr(9.3)},
		},
	}
}

func (f *fakeClient) Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, query)
	if f.honorCancel && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	results, ok := f.results[query]
	if !ok {
		return nil, omdb.ErrNotFound
	}
	return results, nil
}

func (f *fakeClient) GetByID(ctx context.Context, id string) (*models.MovieDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	if f.honorCancel && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	detail, ok := f.details[id]
	if !ok {
		return nil, omdb.ErrNotFound
	}
	return detail, nil
}

func (f *fakeClient) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
