package recommend

// Match strategy selectors.
const (
	StrategyTagOverlap = "tags"
	StrategyCosine     = "cosine"
)

type Config struct {
	// Blend weights for personal prediction vs population statistic.
	WPersonal float64
	WGlobal   float64

	// Candidates below this hybrid rating are never shown.
	QualityFloor float64

	// Ranking-only bonus per overlapping tag; never shown to the caller.
	TagBonus float64

	// Max tags kept in a user's tag profile.
	TagProfileSize int

	// Minimum rating for an interaction to count as "liked".
	LikedThreshold float64

	// Rank (0..1) of the per-movie rating-count distribution used as the
	// shrinkage prior strength m.
	PriorPercentile float64

	// Weighted score substituted for movies with no population statistic.
	DefaultGlobalScore float64

	// Native rating scale of the snapshot and the trained model.
	MinRating float64
	MaxRating float64

	// Match-percentage strategy: StrategyTagOverlap or StrategyCosine.
	Strategy string

	// Drop ratings/tags referencing unknown movies instead of aborting.
	DropDangling bool
}

const (
	defaultWPersonal          = 0.7
	defaultWGlobal            = 0.3
	defaultQualityFloor       = 3.0
	defaultTagBonus           = 0.25
	defaultTagProfileSize     = 15
	defaultLikedThreshold     = 4.0
	defaultPriorPercentile    = 0.70
	defaultGlobalScore        = 3.0
	defaultMinRating          = 0.5
	defaultMaxRating          = 5.0
	defaultHistorySize        = 5
	defaultOverlapBase        = 75.0
	defaultOverlapPerTag      = 5.0
	defaultOverlapFracWeight  = 10.0
	defaultOverlapCap         = 99.5
	defaultStrongPrediction   = 4.5
	defaultStrongPercentCap   = 95.0
	defaultGenreBase          = 60.0
	defaultGenreGlobalWeight  = 5.0
	defaultGenreFracWeight    = 5.0
	defaultNeutralCosineMatch = 50.0
)

func DefaultConfig() Config {
	return Config{
		WPersonal:          defaultWPersonal,
		WGlobal:            defaultWGlobal,
		QualityFloor:       defaultQualityFloor,
		TagBonus:           defaultTagBonus,
		TagProfileSize:     defaultTagProfileSize,
		LikedThreshold:     defaultLikedThreshold,
		PriorPercentile:    defaultPriorPercentile,
		DefaultGlobalScore: defaultGlobalScore,
		MinRating:          defaultMinRating,
		MaxRating:          defaultMaxRating,
		Strategy:           StrategyTagOverlap,
		DropDangling:       false,
	}
}
