package testutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/kinothek/kinothek/pkg/models"
)

// CreateTestFilm creates a test film with default values and the given
// main title.
func CreateTestFilm(title string) *models.Film {
	return &models.Film{
		Rating:      3,
		ReleaseDate: time.Date(2020, time.March, 14, 0, 0, 0, 0, time.UTC),
		Duration:    117,
		Language:    "english",
		Director:    "Jane Doe",
		Genres:      models.GenreList{models.GenreAction},
		Title:       &models.TitleGroup{Title: title},
	}
}

// CreateTestActor creates a test actor.
func CreateTestActor(firstName, lastName string) models.Actor {
	return models.Actor{
		FirstName: firstName,
		LastName:  lastName,
		Gender:    "F",
		Email:     strings.ToLower(fmt.Sprintf("%s.%s@example.com", firstName, lastName)),
		Phone:     "+1-555-0100",
	}
}
