package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/models"
)

// GormStore implements FilmStore on a GORM database handle.
type GormStore struct {
	db     *gorm.DB
	logger interfaces.Logger
}

// NewGormStore creates a new GORM-backed film store.
func NewGormStore(db *gorm.DB, logger interfaces.Logger) *GormStore {
	return &GormStore{db: db, logger: logger}
}

// FindByID retrieves a film by its id. The title group is always loaded;
// actors only when requested.
func (s *GormStore) FindByID(ctx context.Context, id uint, includeActors bool) (*models.Film, error) {
	var film models.Film

	query := s.db.WithContext(ctx).Preload("Title")
	if includeActors {
		query = query.Preload("Actors")
	}

	if err := query.First(&film, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(fmt.Sprintf("film %d not found", id))
		}
		return nil, fmt.Errorf("querying film: %w", err)
	}

	return &film, nil
}

// FindByTitle retrieves a film by its exact main title.
func (s *GormStore) FindByTitle(ctx context.Context, title string) (*models.Film, error) {
	var film models.Film

	err := s.db.WithContext(ctx).
		Joins("JOIN title_groups ON title_groups.film_id = films.id").
		Where("title_groups.title = ?", title).
		Preload("Title").
		First(&film).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NotFound(fmt.Sprintf("no film titled %q", title))
		}
		return nil, fmt.Errorf("querying film by title: %w", err)
	}

	return &film, nil
}

// Save persists a film. A zero id inserts the film together with its
// owned relations at version 0. Otherwise the scalar columns are written
// with an update conditioned on the caller's version, and the store alone
// increments the persisted version by exactly one.
func (s *GormStore) Save(ctx context.Context, film *models.Film) (*models.Film, error) {
	if film.ID == 0 {
		return s.insert(ctx, film)
	}
	return s.update(ctx, film)
}

func (s *GormStore) insert(ctx context.Context, film *models.Film) (*models.Film, error) {
	film.Version = 0

	if err := s.db.WithContext(ctx).Create(film).Error; err != nil {
		if pkgerrors.IsDuplicateError(err) {
			return nil, pkgerrors.Conflict(fmt.Sprintf("film %q already exists", film.MainTitle()))
		}
		return nil, fmt.Errorf("creating film: %w", err)
	}

	s.logger.Debug("film inserted",
		interfaces.Uint("film_id", film.ID),
		interfaces.String("title", film.MainTitle()))

	return film, nil
}

func (s *GormStore) update(ctx context.Context, film *models.Film) (*models.Film, error) {
	claimed := film.Version

	updates := map[string]interface{}{
		"rating":       film.Rating,
		"release_date": film.ReleaseDate,
		"duration":     film.Duration,
		"language":     film.Language,
		"director":     film.Director,
		"genres":       film.Genres,
		"version":      claimed + 1,
		"updated_at":   time.Now(),
	}

	result := s.db.WithContext(ctx).Model(&models.Film{}).
		Where("id = ? AND version = ?", film.ID, claimed).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("updating film: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Row is gone, or another writer advanced the version first.
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.Film{}).
			Where("id = ?", film.ID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("checking film existence: %w", err)
		}
		if count == 0 {
			return nil, pkgerrors.NotFound(fmt.Sprintf("film %d not found", film.ID))
		}
		return nil, pkgerrors.VersionOutdated(
			fmt.Sprintf("film %d was modified concurrently (version %d superseded)", film.ID, claimed))
	}

	return s.FindByID(ctx, film.ID, false)
}

// Delete removes a film and its owned rows in one transaction. The
// boolean reports whether a film row actually existed.
func (s *GormStore) Delete(ctx context.Context, id uint) (bool, error) {
	var removed bool

	err := WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Actor{}, "film_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting actors: %w", err)
		}
		if err := tx.Delete(&models.TitleGroup{}, "film_id = ?", id).Error; err != nil {
			return fmt.Errorf("deleting title group: %w", err)
		}

		result := tx.Delete(&models.Film{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("deleting film: %w", result.Error)
		}
		removed = result.RowsAffected > 0

		return nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.logger.Debug("film deleted", interfaces.Uint("film_id", id))
	}

	return removed, nil
}

// Query returns the films matching the filter, title groups attached.
// An empty result is returned as an empty slice, not an error.
func (s *GormStore) Query(ctx context.Context, filter FilmFilter) ([]*models.Film, error) {
	var films []*models.Film

	query := s.buildQuery(ctx, filter).Preload("Title")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	if err := query.Order("films.id").Find(&films).Error; err != nil {
		return nil, fmt.Errorf("querying films: %w", err)
	}

	return films, nil
}

// Count returns the number of films matching the filter.
func (s *GormStore) Count(ctx context.Context, filter FilmFilter) (int64, error) {
	var count int64
	if err := s.buildQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting films: %w", err)
	}
	return count, nil
}

// buildQuery translates a filter into AND-conjoined clauses.
func (s *GormStore) buildQuery(ctx context.Context, filter FilmFilter) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Film{})

	if filter.TitleSubstring != "" {
		pattern := "%" + strings.ToLower(filter.TitleSubstring) + "%"
		query = query.
			Joins("JOIN title_groups ON title_groups.film_id = films.id").
			Where("LOWER(title_groups.title) LIKE ?", pattern)
	}

	// Genres live in a JSON-encoded text column; tag containment is a
	// quoted substring match.
	for _, genre := range filter.Genres {
		query = query.Where("films.genres LIKE ?", `%"`+string(genre)+`"%`)
	}

	for column, value := range filter.Fields {
		query = query.Where("films."+column+" = ?", value)
	}

	return query
}
