package domain

import (
	"time"

	"github.com/google/uuid"
)

type Exam struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CourseID uuid.UUID `gorm:"type:uuid;index"`
	Title    string
	Graded   bool `gorm:"default:false"`
	Active   bool `gorm:"default:true"`

	CreatedAt time.Time
}

type ExamAttempt struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExamID   uuid.UUID `gorm:"type:uuid;index"`
	UserID   uuid.UUID `gorm:"type:uuid;index"`
	CourseID uuid.UUID `gorm:"type:uuid;index"`
	Score    int
	Passed   bool `gorm:"default:false"`

	CreatedAt time.Time
}
