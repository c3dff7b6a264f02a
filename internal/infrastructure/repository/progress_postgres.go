package repository

import (
	"context"
	"errors"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// AddCompleted атомарно добавляет позицию в множество пройденных.
// Возвращает true, если позиция добавлена впервые (конфликт по PK — дубликат).
func (r *ProgressRepository) AddCompleted(ctx context.Context, item *domain.CompletedContent) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RemoveCompleted атомарно убирает позицию. true — строка реально удалена.
func (r *ProgressRepository) RemoveCompleted(ctx context.Context, userID, moduleID uuid.UUID, position string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND module_id = ? AND position = ?", userID, moduleID, position).
		Delete(&domain.CompletedContent{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ProgressRepository) GetCompletedPositions(ctx context.Context, userID, moduleID uuid.UUID) ([]string, error) {
	var items []domain.CompletedContent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	var positions []string
	for _, it := range items {
		positions = append(positions, it.Position)
	}
	return positions, nil
}

func (r *ProgressRepository) GetCompleted(ctx context.Context, userID, moduleID uuid.UUID, position string) (*domain.CompletedContent, error) {
	var item domain.CompletedContent
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND module_id = ? AND position = ?", userID, moduleID, position).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *ProgressRepository) UpsertModuleProgress(ctx context.Context, mp *domain.ModuleProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(mp).Error
}

func (r *ProgressRepository) GetModuleProgress(ctx context.Context, userID, moduleID uuid.UUID) (*domain.ModuleProgress, error) {
	var mp domain.ModuleProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&mp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mp, nil
}

func (r *ProgressRepository) SaveSummary(ctx context.Context, s *domain.CourseProgressSummary) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(s).Error
}

func (r *ProgressRepository) GetSummary(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseProgressSummary, error) {
	var s domain.CourseProgressSummary
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *ProgressRepository) ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.CourseProgressSummary, error) {
	var summaries []domain.CourseProgressSummary
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_activity_at desc"). // Сначала последние открытые
		Find(&summaries).Error
	return summaries, err
}
