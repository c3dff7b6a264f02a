package domain

import (
	"time"

	"github.com/google/uuid"
)

// Одна строка — один пройденный элемент контента. Композитный PK даёт
// атомарную вставку-в-множество без read-modify-write.
type CompletedContent struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	ModuleID  uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Position  string    `gorm:"primaryKey"` // каноничная позиция строкой
	CourseID  uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

type ModuleProgress struct {
	UserID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ModuleID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourseID         uuid.UUID `gorm:"type:uuid;index"`
	IsModuleComplete bool      `gorm:"default:false"`
	LastUpdatedAt    time.Time
}

// Денормализованная сводка по курсу. Никогда не правится вручную —
// только полный пересчёт из ModuleProgress/CompletedContent.
type CourseProgressSummary struct {
	UserID                uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"userId"`
	CourseID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"courseId"`
	CourseTitle           string    `json:"courseTitle"` // Кешируем название
	Percentage            int       `gorm:"default:0" json:"percentage"`
	CompletedContentCount int       `gorm:"default:0" json:"completedContentCount"`
	TotalContentCount     int       `gorm:"default:0" json:"totalContentCount"`
	LastActivityAt        time.Time `json:"lastActivityAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}
