package recommend

import "reelsense/domain"

// candidates returns every movie the user has not rated, in ascending
// movie-id order. That order is the tie-break reference for the ranker:
// candidates with equal sort keys keep their generation order.
func candidates(idx *index, userID int) []domain.Movie {
	watched := idx.watchedSet(userID)

	out := make([]domain.Movie, 0, len(idx.movieOrder)-len(watched))
	for _, id := range idx.movieOrder {
		if _, seen := watched[id]; seen {
			continue
		}
		out = append(out, idx.movies[id])
	}
	return out
}
