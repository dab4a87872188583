package recommend

import (
	"sort"
	"strings"

	"reelsense/domain"
)

// index holds the lookup structures built once from the static snapshot.
// Read-only after buildIndex returns; shared across requests without locking.
type index struct {
	movies        map[int]domain.Movie
	movieOrder    []int // ascending movie ids; candidate-generation order
	ratingsByUser map[int][]domain.Rating
	movieTags     map[int][]string // lower-cased, deduplicated, tag-table order
	tagFirstSeen  map[string]int   // ordinal of first appearance in the tag table
	tmdbByMovie   map[int]string
}

func buildIndex(snap domain.Snapshot, dropDangling bool) (*index, error) {
	idx := &index{
		movies:        make(map[int]domain.Movie, len(snap.Movies)),
		movieOrder:    make([]int, 0, len(snap.Movies)),
		ratingsByUser: make(map[int][]domain.Rating),
		movieTags:     make(map[int][]string),
		tagFirstSeen:  make(map[string]int),
		tmdbByMovie:   make(map[int]string, len(snap.Links)),
	}

	for _, m := range snap.Movies {
		if _, dup := idx.movies[m.MovieID]; !dup {
			idx.movieOrder = append(idx.movieOrder, m.MovieID)
		}
		idx.movies[m.MovieID] = m
	}
	sort.Ints(idx.movieOrder)

	for _, r := range snap.Ratings {
		if _, ok := idx.movies[r.MovieID]; !ok {
			if dropDangling {
				continue
			}
			return nil, &domain.DataIntegrityError{Table: "ratings", MovieID: r.MovieID}
		}
		idx.ratingsByUser[r.UserID] = append(idx.ratingsByUser[r.UserID], r)
	}

	seen := make(map[int]map[string]struct{})
	for _, t := range snap.Tags {
		if _, ok := idx.movies[t.MovieID]; !ok {
			if dropDangling {
				continue
			}
			return nil, &domain.DataIntegrityError{Table: "tags", MovieID: t.MovieID}
		}

		tag := strings.ToLower(strings.TrimSpace(t.Tag))
		if tag == "" {
			continue
		}
		if _, ok := idx.tagFirstSeen[tag]; !ok {
			idx.tagFirstSeen[tag] = len(idx.tagFirstSeen)
		}

		perMovie, ok := seen[t.MovieID]
		if !ok {
			perMovie = make(map[string]struct{})
			seen[t.MovieID] = perMovie
		}
		if _, dup := perMovie[tag]; dup {
			continue
		}
		perMovie[tag] = struct{}{}
		idx.movieTags[t.MovieID] = append(idx.movieTags[t.MovieID], tag)
	}

	for _, l := range snap.Links {
		if l.TmdbID == "" {
			continue
		}
		idx.tmdbByMovie[l.MovieID] = l.TmdbID
	}

	return idx, nil
}

// watchedSet returns the movie ids the user has rated, at any rating.
func (idx *index) watchedSet(userID int) map[int]struct{} {
	ratings := idx.ratingsByUser[userID]
	watched := make(map[int]struct{}, len(ratings))
	for _, r := range ratings {
		watched[r.MovieID] = struct{}{}
	}
	return watched
}
