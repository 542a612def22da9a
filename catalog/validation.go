package catalog

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/models"
)

const maxNameLength = 40

// FieldViolation is one field path with the constraint it broke.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in a single input, so
// callers see all broken fields at once instead of the first one.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return stderrors.As(err, &vErr)
}

// ValidateFilm checks a complete film input, including its title group
// and actors. Used for create.
func ValidateFilm(film *models.Film) error {
	if film == nil {
		return errors.BadRequest("film is required")
	}

	violations := checkScalars(film)
	violations = append(violations, checkTitle(film.Title)...)
	violations = append(violations, checkActors(film.Actors)...)

	return wrapViolations(violations)
}

// ValidateFilmPatch checks the scalar fields of an update input. The
// title group and actors are not writable through update, so they are
// not inspected.
func ValidateFilmPatch(film *models.Film) error {
	if film == nil {
		return errors.BadRequest("film is required")
	}

	return wrapViolations(checkScalars(film))
}

func wrapViolations(violations []FieldViolation) error {
	if len(violations) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrorTypeBadRequest, "film validation failed", &ValidationError{Violations: violations})
}

func checkScalars(film *models.Film) []FieldViolation {
	var violations []FieldViolation

	if film.Rating < 0 || film.Rating > 5 {
		violations = append(violations, FieldViolation{"rating", "must be between 0 and 5"})
	}
	if film.ReleaseDate.IsZero() {
		violations = append(violations, FieldViolation{"releaseDate", "is required"})
	}
	if film.Duration <= 0 {
		violations = append(violations, FieldViolation{"duration", "must be a positive number of minutes"})
	}
	if len(film.Language) > maxNameLength {
		violations = append(violations, FieldViolation{"language", "must be at most 40 characters"})
	}
	if len(film.Director) > maxNameLength {
		violations = append(violations, FieldViolation{"director", "must be at most 40 characters"})
	}

	violations = append(violations, checkGenres(film.Genres)...)

	return violations
}

func checkGenres(genres models.GenreList) []FieldViolation {
	var violations []FieldViolation

	seen := make(map[models.Genre]bool, len(genres))
	for _, genre := range genres {
		if !genre.Valid() {
			violations = append(violations, FieldViolation{"genres", fmt.Sprintf("unknown genre %q", string(genre))})
			continue
		}
		if seen[genre] {
			violations = append(violations, FieldViolation{"genres", fmt.Sprintf("duplicate genre %q", string(genre))})
		}
		seen[genre] = true
	}

	return violations
}

func checkTitle(title *models.TitleGroup) []FieldViolation {
	if title == nil {
		return []FieldViolation{{"title", "is required"}}
	}

	var violations []FieldViolation

	if strings.TrimSpace(title.Title) == "" {
		violations = append(violations, FieldViolation{"title.title", "is required"})
	} else if len(title.Title) > maxNameLength {
		violations = append(violations, FieldViolation{"title.title", "must be at most 40 characters"})
	}
	if len(title.Original) > maxNameLength {
		violations = append(violations, FieldViolation{"title.original", "must be at most 40 characters"})
	}
	if len(title.Series) > maxNameLength {
		violations = append(violations, FieldViolation{"title.series", "must be at most 40 characters"})
	}

	return violations
}

func checkActors(actors []models.Actor) []FieldViolation {
	var violations []FieldViolation

	for i, actor := range actors {
		if strings.TrimSpace(actor.LastName) == "" {
			violations = append(violations, FieldViolation{fmt.Sprintf("actors[%d].lastName", i), "is required"})
		}
	}

	return violations
}
