package repository

import (
	"context"

	"gorm.io/gorm"

	"sentiment-trading/internal/model"
	"sentiment-trading/pkg/utils"
)

type RecommendationRunRepository interface {
	Create(ctx context.Context, run *model.RecommendationRun, opts ...utils.DBOption) error
	List(ctx context.Context, limit int, opts ...utils.DBOption) ([]model.RecommendationRun, error)
}

type recommendationRunRepository struct {
	db *gorm.DB
}

func NewRecommendationRunRepository(db *gorm.DB) RecommendationRunRepository {
	return &recommendationRunRepository{db: db}
}

func (r *recommendationRunRepository) Create(ctx context.Context, run *model.RecommendationRun, opts ...utils.DBOption) error {
	return utils.ApplyOptions(r.db.WithContext(ctx), opts...).Create(run).Error
}

// List returns the most recent runs first.
func (r *recommendationRunRepository) List(ctx context.Context, limit int, opts ...utils.DBOption) ([]model.RecommendationRun, error) {
	var runs []model.RecommendationRun
	opts = append(opts, utils.WithOrder("created_at DESC"), utils.WithLimit(limit))
	if err := utils.ApplyOptions(r.db.WithContext(ctx), opts...).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// noopRecommendationRunRepository is used when the database is disabled.
type noopRecommendationRunRepository struct{}

func NewNoopRecommendationRunRepository() RecommendationRunRepository {
	return noopRecommendationRunRepository{}
}

func (noopRecommendationRunRepository) Create(context.Context, *model.RecommendationRun, ...utils.DBOption) error {
	return nil
}

func (noopRecommendationRunRepository) List(context.Context, int, ...utils.DBOption) ([]model.RecommendationRun, error) {
	return []model.RecommendationRun{}, nil
}
