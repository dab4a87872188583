package recommend

import (
	"fmt"
	"reflect"
	"testing"

	"reelsense/domain"
)

func mustIndex(t *testing.T, snap domain.Snapshot) *index {
	t.Helper()
	idx, err := buildIndex(snap, false)
	if err != nil {
		t.Fatalf("buildIndex: %v", err)
	}
	return idx
}

func TestTagProfileFrequencyAndTieBreak(t *testing.T) {
	// "alpha" and "beta" both occur twice across liked movies; "alpha"
	// appears first in the tag table, so it must rank first.
	snap := domain.Snapshot{
		Movies: []domain.Movie{{MovieID: 1}, {MovieID: 2}, {MovieID: 3}},
		Ratings: []domain.Rating{
			{UserID: 7, MovieID: 1, Rating: 5.0},
			{UserID: 7, MovieID: 2, Rating: 4.5},
			{UserID: 7, MovieID: 3, Rating: 4.0},
		},
		Tags: []domain.Tag{
			{UserID: 7, MovieID: 1, Tag: "alpha"},
			{UserID: 7, MovieID: 1, Tag: "beta"},
			{UserID: 7, MovieID: 2, Tag: "alpha"},
			{UserID: 7, MovieID: 3, Tag: "beta"},
			{UserID: 7, MovieID: 3, Tag: "gamma"},
		},
	}

	got := tagProfile(mustIndex(t, snap), 7, DefaultConfig())
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("profile=%v, want %v", got, want)
	}
}

func TestTagProfileLikedThreshold(t *testing.T) {
	// Tags on a movie rated below 4.0 never enter the profile.
	snap := domain.Snapshot{
		Movies: []domain.Movie{{MovieID: 1}, {MovieID: 2}},
		Ratings: []domain.Rating{
			{UserID: 7, MovieID: 1, Rating: 3.9},
			{UserID: 7, MovieID: 2, Rating: 4.0},
		},
		Tags: []domain.Tag{
			{UserID: 7, MovieID: 1, Tag: "skipped"},
			{UserID: 7, MovieID: 2, Tag: "kept"},
		},
	}

	got := tagProfile(mustIndex(t, snap), 7, DefaultConfig())
	if !reflect.DeepEqual(got, []string{"kept"}) {
		t.Fatalf("profile=%v, want [kept]", got)
	}
}

func TestTagProfileCap(t *testing.T) {
	snap := domain.Snapshot{
		Movies:  []domain.Movie{{MovieID: 1}},
		Ratings: []domain.Rating{{UserID: 7, MovieID: 1, Rating: 5.0}},
	}
	for i := 0; i < 30; i++ {
		snap.Tags = append(snap.Tags, domain.Tag{
			UserID: 7, MovieID: 1, Tag: fmt.Sprintf("tag-%02d", i),
		})
	}

	got := tagProfile(mustIndex(t, snap), 7, DefaultConfig())
	if len(got) != defaultTagProfileSize {
		t.Fatalf("profile size=%d, want %d", len(got), defaultTagProfileSize)
	}
	// All frequencies tie at 1, so first-seen order decides.
	if got[0] != "tag-00" || got[14] != "tag-14" {
		t.Fatalf("profile order broken: first=%q last=%q", got[0], got[14])
	}
}

func TestTagProfileColdUserIsEmpty(t *testing.T) {
	snap := domain.Snapshot{
		Movies: []domain.Movie{{MovieID: 1}},
		Tags:   []domain.Tag{{UserID: 2, MovieID: 1, Tag: "noir"}},
	}

	if got := tagProfile(mustIndex(t, snap), 999, DefaultConfig()); len(got) != 0 {
		t.Fatalf("cold user profile=%v, want empty", got)
	}
}

func TestIndexLowercasesTags(t *testing.T) {
	snap := domain.Snapshot{
		Movies: []domain.Movie{{MovieID: 1}},
		Tags: []domain.Tag{
			{UserID: 1, MovieID: 1, Tag: "Film Noir"},
			{UserID: 2, MovieID: 1, Tag: "film noir"},
		},
	}

	idx := mustIndex(t, snap)
	if !reflect.DeepEqual(idx.movieTags[1], []string{"film noir"}) {
		t.Fatalf("movieTags=%v, want deduplicated lowercase [film noir]", idx.movieTags[1])
	}
}

func TestIndexDataIntegrity(t *testing.T) {
	snap := domain.Snapshot{
		Movies:  []domain.Movie{{MovieID: 1}},
		Ratings: []domain.Rating{{UserID: 1, MovieID: 42, Rating: 5.0}},
	}

	if _, err := buildIndex(snap, false); err == nil {
		t.Fatal("expected DataIntegrityError for dangling rating")
	} else if _, ok := err.(*domain.DataIntegrityError); !ok {
		t.Fatalf("err=%T, want *domain.DataIntegrityError", err)
	}

	// Opt-in drop keeps initialization alive and skips the bad row.
	idx, err := buildIndex(snap, true)
	if err != nil {
		t.Fatalf("buildIndex with drop: %v", err)
	}
	if len(idx.ratingsByUser[1]) != 0 {
		t.Fatalf("dangling rating was kept: %v", idx.ratingsByUser[1])
	}
}
