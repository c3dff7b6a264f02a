package domain

import (
	"time"

	"github.com/google/uuid"
)

// Категория контента, которая не участвует в подсчёте прогресса.
const CategorySupplementary = "supplementary"

type Course struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"index"`
	Description string
	Category    string `gorm:"index"`
	CoverURL    string

	// Связь один-ко-многим: у курса много модулей
	Modules []Module `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Module struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID uuid.UUID `gorm:"type:uuid;index"`
	Title    string
	Order    int // Для сортировки (1, 2, 3...)

	Contents []ContentItem `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time
}

// Единица материала модуля (видео, PDF, тест...).
// Position — каноничный ключ прогресса: позиция внутри модуля, с нуля.
type ContentItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ModuleID uuid.UUID `gorm:"type:uuid;index"`
	Position int       `gorm:"not null"`
	StableID string    `gorm:"index"` // внешний стабильный ID, может быть пустым
	Title    string
	Category string
	FileLink string

	CreatedAt time.Time
}
