package domain

import "strings"

// Sentinel used by the movies snapshot when a movie has no genre
// information. Maps to an empty genre list.
const NoGenresSentinel = "(no genres listed)"

// CREATE TABLE public.movies (
//     movie_id BIGINT PRIMARY KEY,
//     title    TEXT NOT NULL,
//     genres   TEXT
// );

type Movie struct {
	MovieID   int    `gorm:"column:movie_id;primaryKey" json:"movieId"`
	Title     string `gorm:"column:title;type:text" json:"title"`
	RawGenres string `gorm:"column:genres;type:text" json:"-"`

	// Parsed from RawGenres after load; static for the process lifetime.
	Genres []string `gorm:"-" json:"genres,omitempty"`
}

func (Movie) TableName() string {
	return "movies"
}

// ParseGenres splits the pipe-delimited genre column into a list.
func ParseGenres(raw string) []string {
	if raw == "" || raw == NoGenresSentinel {
		return nil
	}
	return strings.Split(raw, "|")
}
