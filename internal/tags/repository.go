package tags

import (
	"context"
	"fmt"

	"gatherly/internal/events"

	"gorm.io/gorm"
)

type Repository interface {
	GetTagCounts(ctx context.Context) ([]TagCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetTagCounts unrolls the comma separated tags column of active events
// and counts events per tag.
func (r *repository) GetTagCounts(ctx context.Context) ([]TagCount, error) {
	var counts []TagCount
	err := r.db.WithContext(ctx).
		Model(&events.Event{}).
		Select("TRIM(tag) as name, COUNT(DISTINCT events.id) as event_count").
		Joins("CROSS JOIN LATERAL unnest(string_to_array(events.tags, ',')) AS tag").
		Where("events.status = ? AND events.tags <> ''", events.StatusActive).
		Group("TRIM(tag)").
		Order("event_count DESC, name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tags: %w", err)
	}
	return counts, nil
}
