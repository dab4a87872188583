package recommend

import "sort"

// tagProfile derives the user's favorite-tag set: the most frequent tags
// across all movies the user rated at or above the liked threshold,
// capped at cfg.TagProfileSize. Frequency ties break by first-seen order
// in the underlying tag table, so the result is deterministic.
func tagProfile(idx *index, userID int, cfg Config) []string {
	freq := make(map[string]int)
	for _, r := range idx.ratingsByUser[userID] {
		if r.Rating < cfg.LikedThreshold {
			continue
		}
		for _, tag := range idx.movieTags[r.MovieID] {
			freq[tag]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	tags := make([]string, 0, len(freq))
	for tag := range freq {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if freq[tags[i]] != freq[tags[j]] {
			return freq[tags[i]] > freq[tags[j]]
		}
		return idx.tagFirstSeen[tags[i]] < idx.tagFirstSeen[tags[j]]
	})

	if len(tags) > cfg.TagProfileSize {
		tags = tags[:cfg.TagProfileSize]
	}
	return tags
}
