package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"task-reminder/internal/model"
)

// SeriesRepository stores recurring task definitions.
type SeriesRepository struct {
	db *gorm.DB
}

func NewSeriesRepository(db *gorm.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

func (r *SeriesRepository) Create(ctx context.Context, s *model.Series) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create series: %w", err)
	}
	return nil
}

func (r *SeriesRepository) GetByID(ctx context.Context, id string) (*model.Series, error) {
	var series model.Series
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&series).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find series: %w", err)
	}
	return &series, nil
}

func (r *SeriesRepository) List(ctx context.Context) ([]model.Series, error) {
	var series []model.Series
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&series).Error; err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	return series, nil
}

// UpdateCheckpoint advances the last-generated-date marker for a series.
func (r *SeriesRepository) UpdateCheckpoint(ctx context.Context, id, date string) error {
	res := r.db.WithContext(ctx).Model(&model.Series{}).
		Where("id = ?", id).
		Update("last_generated_date", date)
	if res.Error != nil {
		return fmt.Errorf("update series checkpoint: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a series definition. Instances already materialized from it
// are left in place as ordinary tasks.
func (r *SeriesRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Series{})
	if res.Error != nil {
		return fmt.Errorf("delete series: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
