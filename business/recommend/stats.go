package recommend

import (
	"math"
	"sort"

	"reelsense/domain"
)

// PopulationStat is the per-movie population signal. WeightedScore is the
// Bayesian-shrinkage blend of the movie's raw mean with the global mean.
type PopulationStat struct {
	Count         int
	Mean          float64
	WeightedScore float64
}

// populationStats holds the catalog-wide statistics. Computed once at
// engine construction from the full snapshot; constant for the process
// lifetime.
type populationStats struct {
	byMovie map[int]PopulationStat

	// C: arithmetic mean of per-movie mean ratings. Averaging the means
	// rather than the raw ratings up-weights sparsely-rated movies,
	// matching the shrinkage target.
	globalMean float64

	// m: prior strength, the configured percentile of per-movie rating
	// counts.
	priorStrength float64
}

func buildPopulationStats(ratings []domain.Rating, pctl float64) populationStats {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	order := make([]int, 0)
	for _, r := range ratings {
		if _, ok := counts[r.MovieID]; !ok {
			order = append(order, r.MovieID)
		}
		sums[r.MovieID] += r.Rating
		counts[r.MovieID]++
	}

	stats := populationStats{byMovie: make(map[int]PopulationStat, len(counts))}
	if len(counts) == 0 {
		return stats
	}

	countDist := make([]float64, 0, len(counts))
	meanTotal := 0.0
	for _, id := range order {
		mean := sums[id] / float64(counts[id])
		meanTotal += mean
		countDist = append(countDist, float64(counts[id]))
		stats.byMovie[id] = PopulationStat{Count: counts[id], Mean: mean}
	}

	stats.globalMean = meanTotal / float64(len(counts))

	sort.Float64s(countDist)
	stats.priorStrength = percentile(countDist, pctl)

	c := stats.globalMean
	m := stats.priorStrength
	for id, st := range stats.byMovie {
		v := float64(st.Count)
		st.WeightedScore = (v/(v+m))*st.Mean + (m/(v+m))*c
		stats.byMovie[id] = st
	}

	return stats
}

// weightedScore returns the population signal for a movie, or the
// configured default when the movie has no ratings at all.
func (p populationStats) weightedScore(movieID int, fallback float64) float64 {
	if st, ok := p.byMovie[movieID]; ok {
		return st.WeightedScore
	}
	return fallback
}

// percentile computes the p-th percentile (0..1) of an ascending-sorted
// sample with linear interpolation between order statistics.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
