package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/kinothek/kinothek/pkg/errors"
	"github.com/kinothek/kinothek/pkg/logger"
	"github.com/kinothek/kinothek/pkg/models"
	"github.com/kinothek/kinothek/store"
	"github.com/kinothek/kinothek/test/testutil"
)

type GormStoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *store.GormStore
	ctx   context.Context
}

func (suite *GormStoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = store.NewTestDB(suite.T())
	suite.store = store.NewGormStore(suite.db, logger.NewNoop())
}

func (suite *GormStoreTestSuite) TestSaveInsertAssignsIDAndVersionZero() {
	// Arrange
	film := testutil.CreateTestFilm("The Ring 3")
	film.Actors = []models.Actor{
		testutil.CreateTestActor("Naomi", "Watts"),
		testutil.CreateTestActor("Martin", "Henderson"),
	}

	// Act
	saved, err := suite.store.Save(suite.ctx, film)

	// Assert
	suite.Require().NoError(err)
	assert.Positive(suite.T(), saved.ID)
	assert.Equal(suite.T(), 0, saved.Version)

	retrieved, err := suite.store.FindByID(suite.ctx, saved.ID, true)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "The Ring 3", retrieved.MainTitle())
	assert.Equal(suite.T(), 0, retrieved.Version)
	assert.Len(suite.T(), retrieved.Actors, 2)
	assert.Equal(suite.T(), saved.ID, retrieved.Title.FilmID)
}

func (suite *GormStoreTestSuite) TestSaveInsertDuplicateTitle() {
	// Arrange
	_, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm("Twice Told"))
	suite.Require().NoError(err)

	// Act
	_, err = suite.store.Save(suite.ctx, testutil.CreateTestFilm("Twice Told"))

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), errors.IsConflict(err))
}

func (suite *GormStoreTestSuite) TestSaveUpdateIncrementsVersion() {
	// Arrange
	saved, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm("Versioned"))
	suite.Require().NoError(err)

	// Act
	saved.Rating = 5
	saved.Director = "Tom Alder"
	updated, err := suite.store.Save(suite.ctx, saved)

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 1, updated.Version)
	assert.Equal(suite.T(), 5, updated.Rating)
	assert.Equal(suite.T(), "Tom Alder", updated.Director)
	assert.Equal(suite.T(), "Versioned", updated.MainTitle())
}

func (suite *GormStoreTestSuite) TestSaveUpdateStaleVersion() {
	// Arrange
	saved, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm("Contested"))
	suite.Require().NoError(err)

	first := *saved
	first.Rating = 4
	_, err = suite.store.Save(suite.ctx, &first)
	suite.Require().NoError(err)

	// Act: second writer still holds version 0
	second := *saved
	second.Rating = 1
	second.Version = 0
	_, err = suite.store.Save(suite.ctx, &second)

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), errors.IsVersionOutdated(err))
}

func (suite *GormStoreTestSuite) TestSaveUpdateMissingFilm() {
	// Arrange
	ghost := testutil.CreateTestFilm("Ghost")
	ghost.ID = 9999

	// Act
	_, err := suite.store.Save(suite.ctx, ghost)

	// Assert
	suite.Require().Error(err)
	assert.True(suite.T(), errors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestSaveUpdateLeavesRelationsAlone() {
	// Arrange
	film := testutil.CreateTestFilm("Steady Cast")
	film.Actors = []models.Actor{testutil.CreateTestActor("Ada", "Lee")}
	saved, err := suite.store.Save(suite.ctx, film)
	suite.Require().NoError(err)

	// Act
	saved.Duration = 90
	saved.Actors = nil
	saved.Title = nil
	_, err = suite.store.Save(suite.ctx, saved)
	suite.Require().NoError(err)

	// Assert
	retrieved, err := suite.store.FindByID(suite.ctx, saved.ID, true)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), 90, retrieved.Duration)
	assert.Equal(suite.T(), "Steady Cast", retrieved.MainTitle())
	assert.Len(suite.T(), retrieved.Actors, 1)
}

func (suite *GormStoreTestSuite) TestDeleteCascades() {
	// Arrange
	film := testutil.CreateTestFilm("Short Lived")
	film.Actors = []models.Actor{
		testutil.CreateTestActor("One", "Actor"),
		testutil.CreateTestActor("Two", "Actor"),
	}
	saved, err := suite.store.Save(suite.ctx, film)
	suite.Require().NoError(err)

	// Act
	removed, err := suite.store.Delete(suite.ctx, saved.ID)

	// Assert
	suite.Require().NoError(err)
	assert.True(suite.T(), removed)

	_, err = suite.store.FindByID(suite.ctx, saved.ID, false)
	assert.True(suite.T(), errors.IsNotFound(err))

	var actorCount, titleCount int64
	suite.db.Model(&models.Actor{}).Where("film_id = ?", saved.ID).Count(&actorCount)
	suite.db.Model(&models.TitleGroup{}).Where("film_id = ?", saved.ID).Count(&titleCount)
	assert.Zero(suite.T(), actorCount)
	assert.Zero(suite.T(), titleCount)
}

func (suite *GormStoreTestSuite) TestDeleteMissingReturnsFalse() {
	// Act
	removed, err := suite.store.Delete(suite.ctx, 4242)

	// Assert
	suite.Require().NoError(err)
	assert.False(suite.T(), removed)
}

func (suite *GormStoreTestSuite) TestFindByTitle() {
	// Arrange
	saved, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm("Exactly This"))
	suite.Require().NoError(err)

	// Act
	found, err := suite.store.FindByTitle(suite.ctx, "Exactly This")

	// Assert
	suite.Require().NoError(err)
	assert.Equal(suite.T(), saved.ID, found.ID)

	_, err = suite.store.FindByTitle(suite.ctx, "Exactly That")
	assert.True(suite.T(), errors.IsNotFound(err))
}

func (suite *GormStoreTestSuite) TestFindByIDSkipsActorsUnlessRequested() {
	// Arrange
	film := testutil.CreateTestFilm("Cast Optional")
	film.Actors = []models.Actor{testutil.CreateTestActor("Solo", "Star")}
	saved, err := suite.store.Save(suite.ctx, film)
	suite.Require().NoError(err)

	// Act
	bare, err := suite.store.FindByID(suite.ctx, saved.ID, false)
	suite.Require().NoError(err)
	full, err := suite.store.FindByID(suite.ctx, saved.ID, true)
	suite.Require().NoError(err)

	// Assert
	assert.Empty(suite.T(), bare.Actors)
	assert.NotNil(suite.T(), bare.Title)
	assert.Len(suite.T(), full.Actors, 1)
}

func (suite *GormStoreTestSuite) TestQueryTitleSubstring() {
	// Arrange
	for _, title := range []string{"The Ring 3", "Boring Story", "Alien"} {
		_, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm(title))
		suite.Require().NoError(err)
	}

	// Act
	films, err := suite.store.Query(suite.ctx, store.FilmFilter{TitleSubstring: "RING"})

	// Assert
	suite.Require().NoError(err)
	titles := make([]string, 0, len(films))
	for _, f := range films {
		titles = append(titles, f.MainTitle())
	}
	assert.ElementsMatch(suite.T(), []string{"The Ring 3", "Boring Story"}, titles)
}

func (suite *GormStoreTestSuite) TestQueryGenreAndEquality() {
	// Arrange
	action := testutil.CreateTestFilm("Fast Car")
	action.Genres = models.GenreList{models.GenreAction}
	action.Director = "Tom Alder"
	_, err := suite.store.Save(suite.ctx, action)
	suite.Require().NoError(err)

	romance := testutil.CreateTestFilm("Slow Dance")
	romance.Genres = models.GenreList{models.GenreRomance}
	romance.Director = "Tom Alder"
	_, err = suite.store.Save(suite.ctx, romance)
	suite.Require().NoError(err)

	otherDirector := testutil.CreateTestFilm("Fast Boat")
	otherDirector.Genres = models.GenreList{models.GenreAction}
	otherDirector.Director = "Ann Blake"
	_, err = suite.store.Save(suite.ctx, otherDirector)
	suite.Require().NoError(err)

	// Act
	films, err := suite.store.Query(suite.ctx, store.FilmFilter{
		Genres: []models.Genre{models.GenreAction},
		Fields: map[string]interface{}{"director": "Tom Alder"},
	})

	// Assert
	suite.Require().NoError(err)
	suite.Require().Len(films, 1)
	assert.Equal(suite.T(), "Fast Car", films[0].MainTitle())
}

func (suite *GormStoreTestSuite) TestQueryNoFilterReturnsAll() {
	// Arrange
	for _, title := range []string{"One", "Two", "Three"} {
		_, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm(title))
		suite.Require().NoError(err)
	}

	// Act
	films, err := suite.store.Query(suite.ctx, store.FilmFilter{})

	// Assert
	suite.Require().NoError(err)
	assert.Len(suite.T(), films, 3)
}

func (suite *GormStoreTestSuite) TestQueryWindowAndCount() {
	// Arrange
	for _, title := range []string{"A", "B", "C"} {
		_, err := suite.store.Save(suite.ctx, testutil.CreateTestFilm(title))
		suite.Require().NoError(err)
	}

	// Act
	page, err := suite.store.Query(suite.ctx, store.FilmFilter{Limit: 2, Offset: 2})
	suite.Require().NoError(err)
	total, err := suite.store.Count(suite.ctx, store.FilmFilter{})
	suite.Require().NoError(err)

	// Assert
	assert.Len(suite.T(), page, 1)
	assert.EqualValues(suite.T(), 3, total)
}

func TestGormStoreTestSuite(t *testing.T) {
	suite.Run(t, new(GormStoreTestSuite))
}
