// Package catalog implements the film catalog: create, update, delete,
// and read operations with title uniqueness and optimistic version
// checking, backed by a FilmStore.
package catalog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kinothek/kinothek/artwork"
	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/etag"
	"github.com/kinothek/kinothek/pkg/interfaces"
	"github.com/kinothek/kinothek/pkg/metric"
	"github.com/kinothek/kinothek/pkg/models"
	"github.com/kinothek/kinothek/pkg/pagination"
	"github.com/kinothek/kinothek/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service coordinates catalog writes and reads. Each operation is a
// single linear pass over its collaborators; correctness under
// concurrent writers comes from the store's conditional version write,
// with CheckVersion as an early reject.
type Service struct {
	films    store.FilmStore
	notifier interfaces.Notifier
	logger   interfaces.Logger
	metrics  *metric.Metrics

	posters artwork.Storage
	cursors *pagination.CursorEncoder

	searchLimit  int
	notifyCreate bool
}

// NewService creates a new catalog service.
func NewService(films store.FilmStore, notifier interfaces.Notifier, logger interfaces.Logger, metrics *metric.Metrics) *Service {
	return &Service{
		films:        films,
		notifier:     notifier,
		logger:       logger,
		metrics:      metrics,
		notifyCreate: true,
	}
}

// SetArtworkStorage attaches a poster storage backend.
func (s *Service) SetArtworkStorage(storage artwork.Storage) {
	s.posters = storage
}

// SetCursorEncoder attaches the encoder used for search page tokens.
func (s *Service) SetCursorEncoder(encoder *pagination.CursorEncoder) {
	s.cursors = encoder
}

// SetSearchLimit caps how many films an unpaged search returns. Zero
// means unlimited.
func (s *Service) SetSearchLimit(limit int) {
	s.searchLimit = limit
}

// SetCreateNotifications toggles the notification published after a
// successful create.
func (s *Service) SetCreateNotifications(enabled bool) {
	s.notifyCreate = enabled
}

// VersionToken renders a film's stored version as the opaque token
// callers pass back on update.
func VersionToken(film *models.Film) string {
	return etag.Format(film.Version)
}

// Create validates and persists a new film together with its owned
// title group and actors, then notifies subscribers about the new
// entry. The notification is awaited but a delivery failure is logged
// and swallowed; it never undoes the create.
func (s *Service) Create(ctx context.Context, film *models.Film) (_ uint, err error) {
	start := time.Now()
	defer func() { s.observe("create", start, err) }()

	if err := ValidateFilm(film); err != nil {
		return 0, err
	}
	if film.ID != 0 {
		return 0, errors.BadRequest("id must not be set on create")
	}

	title := film.MainTitle()

	_, err = s.films.FindByTitle(ctx, title)
	if err == nil {
		return 0, errors.Conflict(fmt.Sprintf("film with title %q already exists", title))
	}
	if !errors.IsNotFound(err) {
		return 0, err
	}

	saved, err := s.films.Save(ctx, film)
	if err != nil {
		return 0, err
	}

	if s.notifyCreate {
		s.notifyCreated(ctx, saved)
	}

	s.logger.Info("film created",
		interfaces.Uint("film_id", saved.ID),
		interfaces.String("title", title))

	return saved.ID, nil
}

// Update merges the caller's scalar fields onto the stored film once
// the version guard accepts the claimed token, and returns the new
// version assigned by the store. The title group and actors are not
// touched by update.
func (s *Service) Update(ctx context.Context, id uint, patch *models.Film, versionToken string) (_ int, err error) {
	start := time.Now()
	defer func() { s.observe("update", start, err) }()

	if id == 0 {
		return 0, errors.MissingID("film id is required for update")
	}

	claimed, err := etag.Parse(versionToken)
	if err != nil {
		return 0, err
	}

	if err := ValidateFilmPatch(patch); err != nil {
		return 0, err
	}

	stored, err := s.films.FindByID(ctx, id, false)
	if err != nil {
		return 0, err
	}

	if err := CheckVersion(claimed, stored.Version); err != nil {
		return 0, err
	}

	saved, err := s.films.Save(ctx, mergeScalars(stored, patch))
	if err != nil {
		return 0, err
	}

	s.logger.Info("film updated",
		interfaces.Uint("film_id", saved.ID),
		interfaces.Int("version", saved.Version))

	return saved.Version, nil
}

// Delete removes a film with its title group and actors in one atomic
// unit. A missing film is not an error; it reports false.
func (s *Service) Delete(ctx context.Context, id uint) (_ bool, err error) {
	start := time.Now()
	defer func() { s.observe("delete", start, err) }()

	_, err = s.films.FindByID(ctx, id, true)
	if errors.IsNotFound(err) {
		s.logger.Debug("delete of missing film ignored", interfaces.Uint("film_id", id))
		return false, nil
	}
	if err != nil {
		return false, err
	}

	removed, err := s.films.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	s.logger.Info("film deleted", interfaces.Uint("film_id", id))

	return removed, nil
}

// Get returns the film with the given id, its title group attached.
// Actors are loaded only when requested.
func (s *Service) Get(ctx context.Context, id uint, includeActors bool) (_ *models.Film, err error) {
	start := time.Now()
	defer func() { s.observe("get", start, err) }()

	return s.films.FindByID(ctx, id, includeActors)
}

// GetByTitle returns the full film whose main title matches exactly.
func (s *Service) GetByTitle(ctx context.Context, title string) (_ *models.Film, err error) {
	start := time.Now()
	defer func() { s.observe("get_by_title", start, err) }()

	film, err := s.films.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}

	return s.films.FindByID(ctx, film.ID, true)
}

// Search returns all films matching the criteria, title groups
// attached. Invalid criteria keys and an empty result both surface as
// not-found.
func (s *Service) Search(ctx context.Context, criteria Criteria) (_ []*models.Film, err error) {
	start := time.Now()
	defer func() { s.observe("search", start, err) }()

	filter, err := translateCriteria(criteria)
	if err != nil {
		return nil, err
	}
	if s.searchLimit > 0 {
		filter.Limit = s.searchLimit
	}

	films, err := s.films.Query(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(films) == 0 {
		return nil, errors.NotFound("no films match the search criteria")
	}

	return films, nil
}

// SearchPage is the paged form of Search for browsing large results.
// Unlike Search it reports an empty page as such instead of not-found,
// and it carries totals plus opaque continuation tokens. Tokens require
// a cursor encoder; without one only the first page is reachable.
func (s *Service) SearchPage(ctx context.Context, criteria Criteria, params pagination.Params) (_ []*models.Film, _ *pagination.Response, err error) {
	start := time.Now()
	defer func() { s.observe("search_page", start, err) }()

	filter, err := translateCriteria(criteria)
	if err != nil {
		return nil, nil, err
	}

	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	fingerprint := criteria.Fingerprint()

	offset := 0
	if s.cursors != nil {
		offset, err = pagination.Offset(s.cursors, params.PageToken, fingerprint)
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrorTypeBadRequest, "invalid page token", err)
		}
	}

	filter.Limit = pageSize
	filter.Offset = offset

	films, err := s.films.Query(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	total, err := s.films.Count(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	response := &pagination.Response{
		TotalItems: total,
		HasMore:    int64(offset+len(films)) < total,
	}

	if s.cursors != nil {
		next, err := pagination.NextPageToken(s.cursors, fingerprint, offset, pageSize, total)
		if err != nil {
			return nil, nil, err
		}
		prev, err := pagination.PrevPageToken(s.cursors, fingerprint, offset, pageSize)
		if err != nil {
			return nil, nil, err
		}
		response.NextPageToken = next
		response.PrevPageToken = prev
	}

	return films, response, nil
}

// StorePoster saves poster artwork for an existing film and returns its
// storage URL.
func (s *Service) StorePoster(ctx context.Context, id uint, poster io.Reader) (_ string, err error) {
	start := time.Now()
	defer func() { s.observe("store_poster", start, err) }()

	if s.posters == nil {
		return "", errors.Internal("artwork storage not configured")
	}

	if _, err := s.films.FindByID(ctx, id, false); err != nil {
		return "", err
	}

	key := artwork.PosterKey(id)
	if err := s.posters.Store(ctx, key, poster); err != nil {
		return "", errors.Wrap(errors.ErrorTypeInternal, "failed to store poster", err)
	}

	return s.posters.URL(ctx, key)
}

// PosterURL returns the storage URL of a film's poster, or not-found
// when the film has none.
func (s *Service) PosterURL(ctx context.Context, id uint) (_ string, err error) {
	start := time.Now()
	defer func() { s.observe("poster_url", start, err) }()

	if s.posters == nil {
		return "", errors.Internal("artwork storage not configured")
	}

	if _, err := s.films.FindByID(ctx, id, false); err != nil {
		return "", err
	}

	return s.posters.URL(ctx, artwork.PosterKey(id))
}

// DeletePoster removes a film's poster artwork if present.
func (s *Service) DeletePoster(ctx context.Context, id uint) (err error) {
	start := time.Now()
	defer func() { s.observe("delete_poster", start, err) }()

	if s.posters == nil {
		return errors.Internal("artwork storage not configured")
	}

	key := artwork.PosterKey(id)

	exists, err := s.posters.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	return s.posters.Delete(ctx, key)
}

// mergeScalars copies the caller-supplied scalar fields onto the stored
// entity. Id, version, timestamps, and owned relations stay as stored.
func mergeScalars(stored, patch *models.Film) *models.Film {
	merged := *stored
	merged.Rating = patch.Rating
	merged.ReleaseDate = patch.ReleaseDate
	merged.Duration = patch.Duration
	merged.Language = patch.Language
	merged.Director = patch.Director
	merged.Genres = patch.Genres
	return &merged
}

func (s *Service) notifyCreated(ctx context.Context, film *models.Film) {
	subject := fmt.Sprintf("New film in catalog: %s", film.MainTitle())
	body := fmt.Sprintf("Film %q is now in the catalog (id %d, version %s).",
		film.MainTitle(), film.ID, VersionToken(film))

	if err := s.notifier.Send(ctx, subject, body); err != nil {
		s.logger.Warn("create notification failed",
			interfaces.Uint("film_id", film.ID),
			interfaces.Error(err))
	}
}

func (s *Service) observe(operation string, start time.Time, err error) {
	s.metrics.RecordOperation(operation, statusFor(err), time.Since(start))
}

func statusFor(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.IsNotFound(err):
		return "not_found"
	case errors.IsConflict(err):
		return "conflict"
	case errors.IsVersionOutdated(err):
		return "stale"
	case errors.IsInvalidVersion(err), errors.IsMissingID(err), errors.IsBadRequest(err):
		return "invalid"
	default:
		return "error"
	}
}
