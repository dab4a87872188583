package domain

// CREATE TABLE public.ratings (
//     user_id   BIGINT  NOT NULL,
//     movie_id  BIGINT  NOT NULL,
//     rating    NUMERIC NOT NULL,
//     rated_at  BIGINT
// );

// Rating is an immutable historical interaction between a user and a movie.
type Rating struct {
	UserID  int     `gorm:"column:user_id;not null" json:"userId"`
	MovieID int     `gorm:"column:movie_id;not null" json:"movieId"`
	Rating  float64 `gorm:"column:rating;type:numeric;not null" json:"rating"`
	RatedAt int64   `gorm:"column:rated_at" json:"ratedAt,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}

// Tag is a free-text label a user attached to a movie. Tags are
// lower-cased when indexed; the raw value is preserved here.
type Tag struct {
	UserID   int    `gorm:"column:user_id;not null" json:"userId"`
	MovieID  int    `gorm:"column:movie_id;not null" json:"movieId"`
	Tag      string `gorm:"column:tag;type:text;not null" json:"tag"`
	TaggedAt int64  `gorm:"column:tagged_at" json:"taggedAt,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}

// Link maps a movie to its external catalog ids.
type Link struct {
	MovieID int    `gorm:"column:movie_id;primaryKey" json:"movieId"`
	ImdbID  string `gorm:"column:imdb_id;type:text" json:"imdbId,omitempty"`
	TmdbID  string `gorm:"column:tmdb_id;type:text" json:"tmdbId,omitempty"`
}

func (Link) TableName() string {
	return "links"
}

// Snapshot is the full static input the engine is initialized from.
// Built once at startup, read-only afterwards.
type Snapshot struct {
	Ratings []Rating
	Movies  []Movie
	Tags    []Tag
	Links   []Link
}
