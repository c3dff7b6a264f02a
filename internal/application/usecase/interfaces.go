package usecase

import (
	"context"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
)

type UserRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	HasEntitlement(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	ListEntitledCourseIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type CourseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	GetModules(ctx context.Context, courseID uuid.UUID) ([]domain.Module, error)
	GetModule(ctx context.Context, moduleID uuid.UUID) (*domain.Module, error)
}

type ProgressRepo interface {
	AddCompleted(ctx context.Context, item *domain.CompletedContent) (bool, error)
	RemoveCompleted(ctx context.Context, userID, moduleID uuid.UUID, position string) (bool, error)
	GetCompletedPositions(ctx context.Context, userID, moduleID uuid.UUID) ([]string, error)
	GetCompleted(ctx context.Context, userID, moduleID uuid.UUID, position string) (*domain.CompletedContent, error)
	UpsertModuleProgress(ctx context.Context, mp *domain.ModuleProgress) error
	GetModuleProgress(ctx context.Context, userID, moduleID uuid.UUID) (*domain.ModuleProgress, error)
	SaveSummary(ctx context.Context, s *domain.CourseProgressSummary) error
	GetSummary(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseProgressSummary, error)
	ListSummaries(ctx context.Context, userID uuid.UUID) ([]domain.CourseProgressSummary, error)
}

type ExamRepo interface {
	HasActiveGradedExam(ctx context.Context, courseID uuid.UUID) (bool, error)
	FindPassedAttempt(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

type CertificateRepo interface {
	Create(ctx context.Context, cert *domain.Certificate) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Certificate, error)
}

type QRRenderer interface {
	RenderPNG(url string) ([]byte, error)
}

type PDFRenderer interface {
	Render(cert *domain.Certificate) ([]byte, error)
}
