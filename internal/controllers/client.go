package controllers

import (
	"context"

	"github.com/amaumene/popcorn/internal/models"
)

// MovieClient is the metadata API used by the coordinators
type MovieClient interface {
	Search(ctx context.Context, query string, mediaType models.MediaType) ([]models.SearchResult, error)
	GetByID(ctx context.Context, id string) (*models.MovieDetail, error)
}
