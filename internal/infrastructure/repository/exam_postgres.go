package repository

import (
	"context"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExamRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// Есть ли у курса действующий оцениваемый экзамен.
func (r *ExamRepository) HasActiveGradedExam(ctx context.Context, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Exam{}).
		Where("course_id = ? AND graded = ? AND active = ?", courseID, true, true).
		Count(&count).Error
	return count > 0, err
}

// Есть ли хотя бы одна сданная попытка по курсу.
func (r *ExamRepository) FindPassedAttempt(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ExamAttempt{}).
		Where("user_id = ? AND course_id = ? AND passed = ?", userID, courseID, true).
		Count(&count).Error
	return count > 0, err
}
