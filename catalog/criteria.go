package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/models"
	"github.com/kinothek/kinothek/store"
)

// Criteria is the flat key/value form a search request arrives as. The
// key "titel" selects a title substring match, the genre keys (action,
// horror, romance) select genre containment when set to "true", and
// every other key must name a searchable film attribute compared for
// equality.
type Criteria map[string]string

// genreFlags maps boolean criteria keys to the genre they select.
var genreFlags = map[string]models.Genre{
	"action":  models.GenreAction,
	"horror":  models.GenreHorror,
	"romance": models.GenreRomance,
}

// numericColumns lists the film columns compared as integers so their
// criteria values are converted before they reach the store.
var numericColumns = map[string]bool{
	"rating":   true,
	"duration": true,
}

// translateCriteria validates criteria keys against the searchable-field
// allow-list and builds the store filter. Unknown keys and unparsable
// numeric values surface as not-found, the same way an empty result
// does.
func translateCriteria(criteria Criteria) (store.FilmFilter, error) {
	filter := store.FilmFilter{}

	for key, value := range criteria {
		if key == "titel" {
			filter.TitleSubstring = value
			continue
		}

		if genre, ok := genreFlags[key]; ok {
			if value == "true" {
				filter.Genres = append(filter.Genres, genre)
			}
			continue
		}

		column, ok := models.SearchFields[key]
		if !ok {
			return store.FilmFilter{}, errors.NotFound("invalid search criteria")
		}

		if filter.Fields == nil {
			filter.Fields = make(map[string]interface{})
		}

		if numericColumns[column] {
			number, err := strconv.Atoi(value)
			if err != nil {
				return store.FilmFilter{}, errors.NotFound("invalid search criteria")
			}
			filter.Fields[column] = number
		} else {
			filter.Fields[column] = value
		}
	}

	return filter, nil
}

// Fingerprint renders the criteria as a canonical string, used to bind
// page tokens to the search that issued them.
func (c Criteria) Fingerprint() string {
	if len(c) == 0 {
		return ""
	}

	keys := make([]string, 0, len(c))
	for key := range c {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s=%s", key, c[key])
	}

	return strings.Join(parts, "&")
}
