package store

import (
	"context"

	"github.com/kinothek/kinothek/pkg/models"
)

// FilmFilter is the translated form of a criteria search. All populated
// clauses are AND-conjoined by the store.
type FilmFilter struct {
	// TitleSubstring matches the main title case-insensitively.
	TitleSubstring string
	// Genres lists genre tags the film must all carry.
	Genres []models.Genre
	// Fields holds equality clauses keyed by film column name. Columns
	// come from the search allow-list, never from raw criteria keys.
	Fields map[string]interface{}
	// Limit and Offset bound the result window; a zero Limit means no
	// bound.
	Limit  int
	Offset int
}

// FilmStore defines the interface for film data access.
type FilmStore interface {
	FindByID(ctx context.Context, id uint, includeActors bool) (*models.Film, error)
	FindByTitle(ctx context.Context, title string) (*models.Film, error)
	Save(ctx context.Context, film *models.Film) (*models.Film, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Query(ctx context.Context, filter FilmFilter) ([]*models.Film, error)
	Count(ctx context.Context, filter FilmFilter) (int64, error)
}
