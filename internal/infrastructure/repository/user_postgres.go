package repository

import (
	"context"
	"time"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Проверка, что курс назначен пользователю.
func (r *UserRepository) HasEntitlement(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.CourseEntitlement{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) AssignCourse(ctx context.Context, userID, courseID uuid.UUID) error {
	// FirstOrCreate чтобы не дублировать повторное назначение
	ent := domain.CourseEntitlement{UserID: userID, CourseID: courseID}
	return r.db.WithContext(ctx).
		Where(domain.CourseEntitlement{UserID: userID, CourseID: courseID}).
		Attrs(domain.CourseEntitlement{CreatedAt: time.Now()}).
		FirstOrCreate(&ent).Error
}

func (r *UserRepository) ListEntitledCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ents []domain.CourseEntitlement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&ents).Error
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	for _, e := range ents {
		ids = append(ids, e.CourseID)
	}
	return ids, nil
}
