package recommend

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"reelsense/domain"
)

// stubPredictor returns fixed per-movie scores regardless of user, a
// neutral fallback otherwise, and can simulate model failures.
type stubPredictor struct {
	scores   map[int]float64
	fallback float64
	failFor  map[int]bool
}

func (p stubPredictor) Predict(userID, movieID int) (float64, error) {
	if p.failFor[movieID] {
		return 0, errors.New("model blew up")
	}
	if s, ok := p.scores[movieID]; ok {
		return s, nil
	}
	return p.fallback, nil
}

// Catalog of three movies; user 10 liked movie 1 (tag "noir") and
// watched nothing else. Movie 2 shares the tag, movie 3 does not.
func scenarioSnapshot() domain.Snapshot {
	return domain.Snapshot{
		Movies: []domain.Movie{
			{MovieID: 1, Title: "Movie A", Genres: []string{"Film-Noir"}},
			{MovieID: 2, Title: "Movie B", Genres: []string{"Crime"}},
			{MovieID: 3, Title: "Movie C", Genres: []string{"Comedy"}},
		},
		Ratings: []domain.Rating{
			{UserID: 10, MovieID: 1, Rating: 5.0},
		},
		Tags: []domain.Tag{
			{UserID: 10, MovieID: 1, Tag: "noir"},
			{UserID: 11, MovieID: 2, Tag: "noir"},
		},
		Links: []domain.Link{
			{MovieID: 2, TmdbID: "680"},
		},
	}
}

func scenarioEngine(t *testing.T) *Engine {
	t.Helper()
	pred := stubPredictor{
		scores:   map[int]float64{2: 4.0, 3: 2.0},
		fallback: 2.5,
	}
	e, err := NewEngine(scenarioSnapshot(), pred, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestRecommendScenario(t *testing.T) {
	e := scenarioEngine(t)

	recs, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}

	// Movie 1 is watched, movie 3 falls below the quality floor
	// (0.7*2.0 + 0.3*3.0 = 2.3), so only movie 2 survives.
	if len(recs) != 1 {
		t.Fatalf("got %d recommendations, want 1: %+v", len(recs), recs)
	}

	rec := recs[0]
	if rec.MovieID != 2 {
		t.Fatalf("top recommendation=%d, want movie 2", rec.MovieID)
	}
	if rec.PredictedRating != 3.7 {
		t.Errorf("predicted_rating=%v, want 3.7", rec.PredictedRating)
	}
	// 75 + 5*1 + 10*frac(4.0) = 80
	if rec.MatchPercentage != 80.0 {
		t.Errorf("match_percentage=%v, want 80.0", rec.MatchPercentage)
	}
	if !strings.Contains(rec.Explanation, "noir") {
		t.Errorf("explanation=%q, want a reference to the shared tag", rec.Explanation)
	}
	if rec.TmdbID != "680" {
		t.Errorf("tmdbId=%q, want 680", rec.TmdbID)
	}
}

func TestRecommendNeverReturnsWatchedMovies(t *testing.T) {
	e := scenarioEngine(t)

	recs, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rec := range recs {
		if rec.MovieID == 1 {
			t.Fatalf("watched movie 1 leaked into recommendations")
		}
	}
}

func TestRecommendQualityGateAndBounds(t *testing.T) {
	e := scenarioEngine(t)

	recs, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	for _, rec := range recs {
		if rec.PredictedRating < defaultQualityFloor {
			t.Errorf("movie %d: predicted_rating=%v below quality floor", rec.MovieID, rec.PredictedRating)
		}
		if rec.MatchPercentage < 0 || rec.MatchPercentage > 100 {
			t.Errorf("movie %d: match_percentage=%v out of range", rec.MovieID, rec.MatchPercentage)
		}
	}
}

func TestRecommendIdempotent(t *testing.T) {
	e := scenarioEngine(t)

	first, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	second, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRecommendNonPositiveTopK(t *testing.T) {
	e := scenarioEngine(t)

	recs, err := e.Recommend(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("topK=0 returned %d records, want 0", len(recs))
	}
}

func TestRankingStabilityOnEqualSortKeys(t *testing.T) {
	// Two untagged, unrated movies with identical predictions score the
	// same sort key; the ascending-id generation order must survive.
	snap := domain.Snapshot{
		Movies: []domain.Movie{
			{MovieID: 6, Title: "Later"},
			{MovieID: 5, Title: "Earlier"},
		},
	}
	pred := stubPredictor{scores: map[int]float64{5: 4.0, 6: 4.0}, fallback: 2.5}

	e, err := NewEngine(snap, pred, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	recs, err := e.Recommend(context.Background(), 7, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 || recs[0].MovieID != 5 || recs[1].MovieID != 6 {
		t.Fatalf("order=%+v, want movie 5 before movie 6", recs)
	}
}

func TestRecommendTopKTruncation(t *testing.T) {
	snap := domain.Snapshot{
		Movies: []domain.Movie{
			{MovieID: 1}, {MovieID: 2}, {MovieID: 3}, {MovieID: 4},
		},
	}
	pred := stubPredictor{fallback: 4.5}

	e, err := NewEngine(snap, pred, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	recs, err := e.Recommend(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want exactly topK=2", len(recs))
	}
}

func TestRecommendColdUser(t *testing.T) {
	// Zero-history user: neutral predictions, empty tag profile. The
	// population signal keeps candidates above the floor and every
	// explanation lands in the genre branch.
	snap := domain.Snapshot{
		Movies: []domain.Movie{
			{MovieID: 1, Title: "One", Genres: []string{"Drama"}},
			{MovieID: 2, Title: "Two", Genres: []string{"Action"}},
		},
	}
	for i := 0; i < 50; i++ {
		snap.Ratings = append(snap.Ratings,
			domain.Rating{UserID: 100 + i, MovieID: 1, Rating: 5.0},
			domain.Rating{UserID: 100 + i, MovieID: 2, Rating: 5.0},
		)
	}
	pred := stubPredictor{fallback: 2.5}

	e, err := NewEngine(snap, pred, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	if profile := e.TagProfile(9999); len(profile) != 0 {
		t.Fatalf("cold user tag profile=%v, want empty", profile)
	}

	recs, err := e.Recommend(context.Background(), 9999, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	for _, rec := range recs {
		if !strings.HasPrefix(rec.Explanation, "Recommended for fans of") {
			t.Errorf("movie %d: explanation=%q, want genre branch", rec.MovieID, rec.Explanation)
		}
		if rec.MatchPercentage < 0 || rec.MatchPercentage > 100 {
			t.Errorf("movie %d: match_percentage=%v out of range", rec.MovieID, rec.MatchPercentage)
		}
	}
}

func TestDebugRecommendReportsSkipReasons(t *testing.T) {
	e := scenarioEngine(t)

	debug, err := e.DebugRecommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("DebugRecommend: %v", err)
	}

	var sawFloorSkip bool
	for _, d := range debug {
		if d.MovieID == 3 {
			if !d.Skipped || d.SkipReason != SkipBelowQualityFloor {
				t.Fatalf("movie 3: skipped=%v reason=%q, want quality-floor skip", d.Skipped, d.SkipReason)
			}
			sawFloorSkip = true
		}
	}
	if !sawFloorSkip {
		t.Fatal("movie 3 missing from debug output")
	}
}

func TestPredictorFailureSkipsOnlyThatCandidate(t *testing.T) {
	pred := stubPredictor{
		scores:   map[int]float64{2: 4.0, 3: 4.2},
		fallback: 2.5,
		failFor:  map[int]bool{2: true},
	}
	e, err := NewEngine(scenarioSnapshot(), pred, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	recs, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].MovieID != 3 {
		t.Fatalf("recs=%+v, want only movie 3", recs)
	}

	debug, err := e.DebugRecommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("DebugRecommend: %v", err)
	}
	var sawFailure bool
	for _, d := range debug {
		if d.MovieID == 2 && d.Skipped && d.SkipReason == SkipPredictorFailure {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatal("predictor failure not reported in debug output")
	}
}

func TestCosineStrategyIsDropInReplacement(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyCosine

	vectors := stubVectors{
		users: map[int][]float64{10: {1, 0}},
		items: map[int][]float64{2: {1, 0}, 3: {1, 0}},
	}
	pred := stubPredictor{scores: map[int]float64{2: 4.0, 3: 2.0}, fallback: 2.5}

	e, err := NewEngine(scenarioSnapshot(), pred, vectors, cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	recs, err := e.Recommend(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(recs) != 1 || recs[0].MovieID != 2 {
		t.Fatalf("recs=%+v, want only movie 2", recs)
	}
	// Identical vectors map to 100; tags are invisible to this strategy.
	if recs[0].MatchPercentage != 100.0 {
		t.Errorf("match_percentage=%v, want 100.0", recs[0].MatchPercentage)
	}
}

func TestNewEngineCosineRequiresVectors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = StrategyCosine

	_, err := NewEngine(scenarioSnapshot(), stubPredictor{fallback: 2.5}, nil, cfg)
	if err == nil {
		t.Fatal("expected error for cosine strategy without vectors")
	}
}

func TestLikedHistory(t *testing.T) {
	snap := domain.Snapshot{
		Movies: []domain.Movie{
			{MovieID: 1, Title: "Low"},
			{MovieID: 2, Title: "High", Genres: []string{"Drama"}},
			{MovieID: 3, Title: "Mid"},
		},
		Ratings: []domain.Rating{
			{UserID: 5, MovieID: 1, Rating: 3.0},
			{UserID: 5, MovieID: 2, Rating: 5.0},
			{UserID: 5, MovieID: 3, Rating: 4.0},
		},
	}
	e, err := NewEngine(snap, stubPredictor{fallback: 2.5}, nil, DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	got := e.LikedHistory(5, 0)
	if len(got) != 2 {
		t.Fatalf("history=%+v, want the two liked movies", got)
	}
	if got[0].MovieID != 2 || got[1].MovieID != 3 {
		t.Fatalf("history order=%+v, want best-first [2 3]", got)
	}
}
