package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"reelsense/domain"
)

// SnapshotRepository reads the static snapshot tables. Used once at
// startup; the engine never queries the database per request.
type SnapshotRepository struct {
	DB *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *SnapshotRepository {
	return &SnapshotRepository{
		DB: db,
	}
}

func (r *SnapshotRepository) Load(ctx context.Context) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("context error: %w", err)
	}

	var snap domain.Snapshot

	if err := r.DB.WithContext(ctx).Find(&snap.Ratings).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load ratings: %w", err)
	}
	if err := r.DB.WithContext(ctx).Find(&snap.Movies).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load movies: %w", err)
	}
	if err := r.DB.WithContext(ctx).Find(&snap.Tags).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load tags: %w", err)
	}
	if err := r.DB.WithContext(ctx).Find(&snap.Links).Error; err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to load links: %w", err)
	}

	// The genres column is stored raw; parse once here so downstream code
	// only ever sees the list form.
	for i := range snap.Movies {
		snap.Movies[i].Genres = domain.ParseGenres(snap.Movies[i].RawGenres)
	}

	return snap, nil
}
