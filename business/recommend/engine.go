package recommend

import (
	"context"
	"fmt"
	"sort"

	"reelsense/domain"
	"reelsense/pkg/logger"
)

// Predictor is the trained latent-factor model boundary. Predict returns
// the estimated rating on the model's native scale; implementations must
// substitute a neutral fallback for ids outside the training vocabulary
// instead of failing, so cold starts never reach the scorer as errors.
type Predictor interface {
	Predict(userID, movieID int) (float64, error)
}

// VectorSource exposes the model's raw latent vectors. Only the cosine
// match strategy needs it.
type VectorSource interface {
	UserVector(userID int) ([]float64, bool)
	ItemVector(movieID int) ([]float64, bool)
}

// Engine is the hybrid scoring-and-ranking core. All fields are immutable
// after NewEngine returns: safe to share across concurrent requests
// without locking. Per-request state (tag profile, scored candidates) is
// owned by the request that created it.
type Engine struct {
	cfg       Config
	idx       *index
	stats     populationStats
	predictor Predictor
	matcher   matchStrategy
}

func NewEngine(snap domain.Snapshot, predictor Predictor, vectors VectorSource, cfg Config) (*Engine, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor is required")
	}

	idx, err := buildIndex(snap, cfg.DropDangling)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	var matcher matchStrategy
	switch cfg.Strategy {
	case StrategyCosine:
		if vectors == nil {
			return nil, fmt.Errorf("cosine strategy requires a vector source")
		}
		matcher = cosineStrategy{vectors: vectors}
	case StrategyTagOverlap, "":
		matcher = tagOverlapStrategy{cfg: cfg}
	default:
		return nil, fmt.Errorf("unknown match strategy %q", cfg.Strategy)
	}

	e := &Engine{
		cfg:       cfg,
		idx:       idx,
		stats:     buildPopulationStats(snap.Ratings, cfg.PriorPercentile),
		predictor: predictor,
		matcher:   matcher,
	}

	logger.Info("recommendation engine ready",
		"movies", len(idx.movies),
		"users", len(idx.ratingsByUser),
		"tagged_movies", len(idx.movieTags),
		"global_mean", e.stats.globalMean,
		"prior_strength", e.stats.priorStrength,
		"strategy", matcher.Name(),
	)

	return e, nil
}

// Strategy reports the active match strategy name.
func (e *Engine) Strategy() string {
	return e.matcher.Name()
}

// Recommend returns up to topK not-yet-watched movies for the user,
// ordered by descending internal sort key. A non-positive topK and a
// fully filtered candidate pool both yield an empty list, never an error.
func (e *Engine) Recommend(ctx context.Context, userID, topK int) ([]domain.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topK <= 0 {
		return []domain.Recommendation{}, nil
	}

	results := e.scoreAll(ctx, userID)

	survivors := make([]scoreResult, 0, len(results))
	for _, res := range results {
		if !res.skipped {
			survivors = append(survivors, res)
		}
	}

	// Stable: equal sort keys keep candidate-generation order.
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].sortKey > survivors[j].sortKey
	})
	if len(survivors) > topK {
		survivors = survivors[:topK]
	}

	out := make([]domain.Recommendation, 0, len(survivors))
	for _, res := range survivors {
		out = append(out, res.rec)
	}
	return out, nil
}

// DebugRecommend returns the score components of the ranked survivors
// plus up to topK skipped candidates with their reasons.
func (e *Engine) DebugRecommend(ctx context.Context, userID, topK int) ([]domain.DebugRecommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if topK <= 0 {
		return []domain.DebugRecommendation{}, nil
	}

	results := e.scoreAll(ctx, userID)

	var survivors, skipped []scoreResult
	for _, res := range results {
		if res.skipped {
			skipped = append(skipped, res)
		} else {
			survivors = append(survivors, res)
		}
	}

	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].sortKey > survivors[j].sortKey
	})
	if len(survivors) > topK {
		survivors = survivors[:topK]
	}
	if len(skipped) > topK {
		skipped = skipped[:topK]
	}

	out := make([]domain.DebugRecommendation, 0, len(survivors)+len(skipped))
	for _, res := range survivors {
		out = append(out, domain.DebugRecommendation{
			MovieID:         res.rec.MovieID,
			Title:           res.rec.Title,
			PersonalScore:   res.personal,
			GlobalScore:     res.global,
			HybridRating:    res.hybrid,
			SortKey:         res.sortKey,
			TagOverlap:      res.overlap,
			MatchPercentage: res.rec.MatchPercentage,
			Explanation:     res.rec.Explanation,
		})
	}
	for _, res := range skipped {
		out = append(out, domain.DebugRecommendation{
			MovieID:       res.rec.MovieID,
			PersonalScore: res.personal,
			GlobalScore:   res.global,
			HybridRating:  res.hybrid,
			Skipped:       true,
			SkipReason:    res.reason,
		})
	}
	return out, nil
}

// scoreAll evaluates every candidate for the user. Pure and synchronous:
// no I/O, no shared mutation, so requests may run on any worker.
func (e *Engine) scoreAll(ctx context.Context, userID int) []scoreResult {
	profileTags := tagProfile(e.idx, userID, e.cfg)
	profile := make(map[string]struct{}, len(profileTags))
	for _, tag := range profileTags {
		profile[tag] = struct{}{}
	}

	cands := candidates(e.idx, userID)

	tid := TraceIDFromContext(ctx)
	logger.Debug("scoring candidates",
		"trace_id", tid,
		"user_id", userID,
		"candidates", len(cands),
		"profile_tags", len(profileTags),
	)

	results := make([]scoreResult, 0, len(cands))
	for _, movie := range cands {
		res := e.scoreCandidate(userID, movie, profile)
		if res.skipped {
			res.rec.MovieID = movie.MovieID
			CandidatesSkippedTotal.WithLabelValues(res.reason).Inc()
		}
		results = append(results, res)
	}
	return results
}

// TagProfile exposes the user's derived favorite tags (≤ TagProfileSize,
// frequency order). Empty for users with no qualifying interactions.
func (e *Engine) TagProfile(userID int) []string {
	return tagProfile(e.idx, userID, e.cfg)
}

// LikedHistory returns the user's highest-rated movies at or above the
// liked threshold, best first, capped at topN (≤0 means the default of 5).
func (e *Engine) LikedHistory(userID, topN int) []domain.LikedMovie {
	if topN <= 0 {
		topN = defaultHistorySize
	}

	var liked []domain.Rating
	for _, r := range e.idx.ratingsByUser[userID] {
		if r.Rating >= e.cfg.LikedThreshold {
			liked = append(liked, r)
		}
	}
	sort.SliceStable(liked, func(i, j int) bool {
		return liked[i].Rating > liked[j].Rating
	})
	if len(liked) > topN {
		liked = liked[:topN]
	}

	out := make([]domain.LikedMovie, 0, len(liked))
	for _, r := range liked {
		movie := e.idx.movies[r.MovieID]
		out = append(out, domain.LikedMovie{
			MovieID: r.MovieID,
			Title:   movie.Title,
			Rating:  r.Rating,
			Genres:  movie.Genres,
		})
	}
	return out
}
