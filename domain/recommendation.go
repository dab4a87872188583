package domain

// Recommendation is the caller-facing record for one ranked movie.
// The field names are the compatibility contract with existing consumers
// (the React frontend reads them as-is).
type Recommendation struct {
	MovieID         int     `json:"movieId"`
	Title           string  `json:"title"`
	PredictedRating float64 `json:"predicted_rating"`
	MatchPercentage float64 `json:"match_percentage"`
	Explanation     string  `json:"explanation"`
	TmdbID          string  `json:"tmdbId,omitempty"`
}

// DebugRecommendation exposes the internal score components for one
// candidate, including candidates the scorer skipped and why.
type DebugRecommendation struct {
	MovieID         int      `json:"movieId"`
	Title           string   `json:"title"`
	PersonalScore   float64  `json:"personal_score"`
	GlobalScore     float64  `json:"global_score"`
	HybridRating    float64  `json:"hybrid_rating"`
	SortKey         float64  `json:"sort_key"`
	TagOverlap      []string `json:"tag_overlap,omitempty"`
	MatchPercentage float64  `json:"match_percentage"`
	Explanation     string   `json:"explanation,omitempty"`
	Skipped         bool     `json:"skipped"`
	SkipReason      string   `json:"skip_reason,omitempty"`
}

// LikedMovie is one entry of a user's high-rated history, shown by the
// UI next to the recommendation list.
type LikedMovie struct {
	MovieID int      `json:"movieId"`
	Title   string   `json:"title"`
	Rating  float64  `json:"rating"`
	Genres  []string `json:"genres,omitempty"`
}
