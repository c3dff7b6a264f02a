package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository struct {
	db      *gorm.DB
	catalog *cache.CatalogCache
}

func NewCourseRepository(db *gorm.DB, catalog *cache.CatalogCache) *CourseRepository {
	return &CourseRepository{db: db, catalog: catalog}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		return err
	}
	r.catalog.InvalidateLists(ctx)
	return nil
}

// List возвращает каталог с фильтрами. Выдача кешируется в redis.
func (r *CourseRepository) List(ctx context.Context, search, category string, limit, offset int) ([]domain.Course, int64, error) {
	key := fmt.Sprintf("courses:list:%s:%s:%d:%d", search, category, limit, offset)

	// 1. Читаем из кеша
	if val, ok := r.catalog.Get(ctx, key); ok {
		var result struct {
			Courses []domain.Course
			Total   int64
		}
		if json.Unmarshal([]byte(val), &result) == nil {
			return result.Courses, result.Total, nil
		}
	}

	// 2. Читаем из БД
	var courses []domain.Course
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if search != "" {
		query = query.Where("title ILIKE ?", "%"+search+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	// 3. Кладём в кеш
	if data, err := json.Marshal(struct {
		Courses []domain.Course
		Total   int64
	}{courses, total}); err == nil {
		r.catalog.Set(ctx, key, string(data))
	}

	return courses, total, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order(`modules."order" asc`) }).
		Preload("Modules.Contents", func(db *gorm.DB) *gorm.DB { return db.Order("content_items.position asc") }).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// GetModules возвращает модули курса в авторском порядке, с контентом.
func (r *CourseRepository) GetModules(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error) {
	var modules []domain.Module
	err := r.db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("content_items.position asc") }).
		Where("course_id = ?", courseID).
		Order(`"order" asc`).
		Find(&modules).Error
	return modules, err
}

func (r *CourseRepository) GetModule(ctx context.Context, moduleID uuid.UUID) (*domain.Module, error) {
	var module domain.Module
	err := r.db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("content_items.position asc") }).
		Where("id = ?", moduleID).
		First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}
