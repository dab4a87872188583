// Package csvfile loads the static snapshot from MovieLens-style CSV
// exports: ratings.csv, movies.csv, tags.csv, links.csv.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"reelsense/domain"
)

type SnapshotRepository struct {
	dir string
}

func NewSnapshotRepository(dir string) *SnapshotRepository {
	return &SnapshotRepository{dir: dir}
}

// Load reads all four files. links.csv is optional; the other three are
// required.
func (r *SnapshotRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("context error: %w", err)
	}

	var snap domain.Snapshot
	var err error

	if snap.Ratings, err = r.loadRatings(); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Movies, err = r.loadMovies(); err != nil {
		return domain.Snapshot{}, err
	}
	if snap.Tags, err = r.loadTags(); err != nil {
		return domain.Snapshot{}, err
	}

	snap.Links, err = r.loadLinks()
	if err != nil {
		if os.IsNotExist(err) {
			snap.Links = nil
		} else {
			return domain.Snapshot{}, err
		}
	}

	return snap, nil
}

func (r *SnapshotRepository) loadRatings() ([]domain.Rating, error) {
	var out []domain.Rating
	err := r.forEachRow("ratings.csv", 3, func(row []string) error {
		userID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("user id %q: %w", row[0], err)
		}
		movieID, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("movie id %q: %w", row[1], err)
		}
		rating, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("rating %q: %w", row[2], err)
		}

		rec := domain.Rating{UserID: userID, MovieID: movieID, Rating: rating}
		if len(row) > 3 && row[3] != "" {
			rec.RatedAt, _ = strconv.ParseInt(row[3], 10, 64)
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

func (r *SnapshotRepository) loadMovies() ([]domain.Movie, error) {
	var out []domain.Movie
	err := r.forEachRow("movies.csv", 3, func(row []string) error {
		movieID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("movie id %q: %w", row[0], err)
		}
		out = append(out, domain.Movie{
			MovieID:   movieID,
			Title:     row[1],
			RawGenres: row[2],
			Genres:    domain.ParseGenres(row[2]),
		})
		return nil
	})
	return out, err
}

func (r *SnapshotRepository) loadTags() ([]domain.Tag, error) {
	var out []domain.Tag
	err := r.forEachRow("tags.csv", 3, func(row []string) error {
		userID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("user id %q: %w", row[0], err)
		}
		movieID, err := strconv.Atoi(row[1])
		if err != nil {
			return fmt.Errorf("movie id %q: %w", row[1], err)
		}

		rec := domain.Tag{UserID: userID, MovieID: movieID, Tag: row[2]}
		if len(row) > 3 && row[3] != "" {
			rec.TaggedAt, _ = strconv.ParseInt(row[3], 10, 64)
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

func (r *SnapshotRepository) loadLinks() ([]domain.Link, error) {
	var out []domain.Link
	err := r.forEachRow("links.csv", 1, func(row []string) error {
		movieID, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("movie id %q: %w", row[0], err)
		}

		rec := domain.Link{MovieID: movieID}
		if len(row) > 1 {
			rec.ImdbID = row[1]
		}
		if len(row) > 2 {
			rec.TmdbID = row[2]
		}
		out = append(out, rec)
		return nil
	})
	return out, err
}

// forEachRow streams a CSV file, skipping its header row.
func (r *SnapshotRepository) forEachRow(name string, minCols int, fn func([]string) error) error {
	path := filepath.Join(r.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line++
		if line == 1 {
			// header
			continue
		}
		if len(row) < minCols {
			return fmt.Errorf("%s line %d: expected at least %d columns, got %d", name, line, minCols, len(row))
		}
		if err := fn(row); err != nil {
			return fmt.Errorf("%s line %d: %w", name, line, err)
		}
	}
}
