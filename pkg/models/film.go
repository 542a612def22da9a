package models

import (
	"time"
)

// Film is the catalog aggregate root. Ownership of the title group and
// actors is expressed through foreign keys and the store's atomic
// save/delete contracts; child records carry no back-pointers.
type Film struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	Version     int       `json:"version"      gorm:"not null;default:0"`
	Rating      int       `json:"rating"       gorm:"not null;default:0"`
	ReleaseDate time.Time `json:"release_date"`
	Duration    int       `json:"duration"     gorm:"not null;default:0"` // minutes
	Language    string    `json:"language"     gorm:"type:varchar(40)"`
	Director    string    `json:"director"     gorm:"type:varchar(40);index"`
	Genres      GenreList `json:"genres,omitempty" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Title  *TitleGroup `json:"title,omitempty"  gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
	Actors []Actor     `json:"actors,omitempty" gorm:"foreignKey:FilmID;constraint:OnDelete:CASCADE"`
}

// TitleGroup holds the titles of exactly one film. The main title is
// unique across the whole catalog.
type TitleGroup struct {
	ID       uint   `json:"id"                 gorm:"primaryKey"`
	FilmID   uint   `json:"film_id"            gorm:"not null;uniqueIndex"`
	Title    string `json:"title"              gorm:"type:varchar(40);not null;uniqueIndex"`
	Original string `json:"original,omitempty" gorm:"type:varchar(40)"`
	Series   string `json:"series,omitempty"   gorm:"type:varchar(40)"`
}

// Actor is a cast member of one film.
type Actor struct {
	ID        uint   `json:"id"              gorm:"primaryKey"`
	FilmID    uint   `json:"film_id"         gorm:"not null;index"`
	FirstName string `json:"first_name"      gorm:"type:varchar(40)"`
	LastName  string `json:"last_name"       gorm:"type:varchar(40)"`
	Gender    string `json:"gender,omitempty" gorm:"type:varchar(16)"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty" gorm:"type:varchar(24)"`
}

// MainTitle returns the film's main title, or "" when the title group is
// not loaded.
func (f *Film) MainTitle() string {
	if f.Title == nil {
		return ""
	}
	return f.Title.Title
}

// SearchFields is the static allow-list of equality-searchable criteria
// keys, mapped to film columns. The German keys are aliases kept from the
// v1 catalog API.
var SearchFields = map[string]string{
	"rating":   "rating",
	"duration": "duration",
	"dauer":    "duration",
	"language": "language",
	"sprache":  "language",
	"director": "director",
	"direktor": "director",
}

// TableName customizations.
func (Film) TableName() string {
	return "films"
}

func (TitleGroup) TableName() string {
	return "title_groups"
}

func (Actor) TableName() string {
	return "actors"
}
