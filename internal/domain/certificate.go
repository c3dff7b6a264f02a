package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	CertificateKindApproval      = "APPROVAL"      // курс с экзаменом, экзамен сдан
	CertificateKindParticipation = "PARTICIPATION" // без экзамена
)

// Сертификат ключуется собственным ID — поиска по user+course нет,
// сам идентификатор и есть учётные данные для проверки.
// Поля-снимки фиксируются в момент выдачи и больше не меняются.
type Certificate struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	CourseID   uuid.UUID `gorm:"type:uuid;index"`
	FullName   string
	NationalID string
	CourseName string
	Kind       string `gorm:"not null"`

	CompletionDate  time.Time
	IssuanceDate    time.Time
	VerificationURL string
	QRCodeImage     []byte `gorm:"type:bytea"`
}
