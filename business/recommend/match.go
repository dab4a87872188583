package recommend

import "math"

// matchInput carries the per-candidate signals a match strategy may use.
type matchInput struct {
	profile       map[string]struct{} // user tag profile as a set
	movieTags     []string            // candidate tags, indexed order
	personalScore float64
	globalScore   float64
}

// matchOutcome is the strategy's verdict: the displayed match percentage
// (unrounded, already within [0,100]) and the overlapping tags in movie
// tag order. Overlap is empty for strategies without tag access.
type matchOutcome struct {
	percent float64
	overlap []string
}

// matchStrategy computes the match percentage for one candidate. The two
// implementations are interchangeable; the rest of the pipeline never
// branches on which one is active.
type matchStrategy interface {
	Name() string
	Match(userID, movieID int, in matchInput) matchOutcome
}

// tagOverlapStrategy is the primary strategy: a heuristic blend of tag
// overlap, prediction strength, and the population signal.
type tagOverlapStrategy struct {
	cfg Config
}

func (tagOverlapStrategy) Name() string { return StrategyTagOverlap }

func (s tagOverlapStrategy) Match(userID, movieID int, in matchInput) matchOutcome {
	overlap := sharedTags(in.movieTags, in.profile)

	var pct float64
	switch {
	case len(overlap) > 0:
		pct = defaultOverlapBase +
			defaultOverlapPerTag*float64(len(overlap)) +
			defaultOverlapFracWeight*frac(in.personalScore)
		pct = math.Min(defaultOverlapCap, pct)
	case in.personalScore > defaultStrongPrediction:
		pct = math.Min(defaultStrongPercentCap, in.personalScore/s.cfg.MaxRating*100)
	default:
		pct = defaultGenreBase +
			defaultGenreGlobalWeight*in.globalScore +
			defaultGenreFracWeight*frac(in.personalScore)
	}

	return matchOutcome{percent: pct, overlap: overlap}
}

// cosineStrategy derives the match percentage from the cosine similarity
// of the user's and movie's latent vectors, mapped linearly from [-1,1]
// to [0,100]. Used when tag data is unavailable; it has no tag access,
// so it never produces an overlap.
type cosineStrategy struct {
	vectors VectorSource
}

func (cosineStrategy) Name() string { return StrategyCosine }

func (s cosineStrategy) Match(userID, movieID int, in matchInput) matchOutcome {
	u, okU := s.vectors.UserVector(userID)
	v, okV := s.vectors.ItemVector(movieID)
	if !okU || !okV {
		return matchOutcome{percent: defaultNeutralCosineMatch}
	}

	sim, ok := cosine(u, v)
	if !ok {
		return matchOutcome{percent: defaultNeutralCosineMatch}
	}
	return matchOutcome{percent: (sim + 1) / 2 * 100}
}

// sharedTags returns the candidate tags present in the user profile,
// preserving the candidate's tag order. The first element is the tag the
// explanation references.
func sharedTags(movieTags []string, profile map[string]struct{}) []string {
	var shared []string
	for _, tag := range movieTags {
		if _, ok := profile[tag]; ok {
			shared = append(shared, tag)
		}
	}
	return shared
}

// cosine reports the cosine similarity of two vectors. ok is false when
// the vectors differ in length or either magnitude is zero.
func cosine(a, b []float64) (sim float64, ok bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	mag := math.Sqrt(na) * math.Sqrt(nb)
	if mag == 0 {
		return 0, false
	}
	return dot / mag, true
}

func frac(x float64) float64 {
	return x - math.Floor(x)
}
