package recommend

import (
	"math"

	"reelsense/domain"
)

// Skip reasons for candidates the scorer dropped. Skips never abort the
// batch and never surface through the public result; they are observable
// via DebugRecommend and the skip counter.
const (
	SkipBelowQualityFloor = "below_quality_floor"
	SkipMissingMetadata   = "missing_metadata"
	SkipPredictorFailure  = "predictor_failure"
)

// scoreResult is the explicit per-candidate outcome: either a scored
// recommendation with its internal sort key, or a skip with a reason.
type scoreResult struct {
	rec     domain.Recommendation
	sortKey float64

	personal float64
	global   float64
	hybrid   float64
	overlap  []string

	skipped bool
	reason  string
}

// scoreCandidate runs the hybrid scoring pipeline for a single movie.
func (e *Engine) scoreCandidate(userID int, movie domain.Movie, profile map[string]struct{}) scoreResult {
	if _, ok := e.idx.movies[movie.MovieID]; !ok {
		return scoreResult{skipped: true, reason: SkipMissingMetadata}
	}

	personal, err := e.predictor.Predict(userID, movie.MovieID)
	if err != nil {
		return scoreResult{skipped: true, reason: SkipPredictorFailure}
	}

	global := e.stats.weightedScore(movie.MovieID, e.cfg.DefaultGlobalScore)
	hybrid := math.Min(e.cfg.MaxRating, e.cfg.WPersonal*personal+e.cfg.WGlobal*global)

	if hybrid < e.cfg.QualityFloor {
		return scoreResult{
			personal: personal,
			global:   global,
			hybrid:   hybrid,
			skipped:  true,
			reason:   SkipBelowQualityFloor,
		}
	}

	outcome := e.matcher.Match(userID, movie.MovieID, matchInput{
		profile:       profile,
		movieTags:     e.idx.movieTags[movie.MovieID],
		personalScore: personal,
		globalScore:   global,
	})

	sortKey := hybrid + e.cfg.TagBonus*float64(len(outcome.overlap))

	return scoreResult{
		rec: domain.Recommendation{
			MovieID:         movie.MovieID,
			Title:           movie.Title,
			PredictedRating: round2(hybrid),
			MatchPercentage: round1(outcome.percent),
			Explanation: explain(explainInput{
				overlap:       outcome.overlap,
				personalScore: personal,
				genres:        movie.Genres,
			}),
			TmdbID: e.idx.tmdbByMovie[movie.MovieID],
		},
		sortKey:  sortKey,
		personal: personal,
		global:   global,
		hybrid:   hybrid,
		overlap:  outcome.overlap,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
