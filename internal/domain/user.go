package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email      string    `gorm:"uniqueIndex;not null;size:100"`
	Password   string    `gorm:"not null"`
	FullName   string    `gorm:"not null;size:150"`
	NationalID string    `gorm:"size:30"`
	Role       string    `gorm:"default:'student'"` // "student", "admin"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Назначенный пользователю курс (покупка/зачисление).
type CourseEntitlement struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CourseID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
}
