package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eduplatform/internal/domain"
	"eduplatform/internal/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CertificateValidation struct {
	Valid       bool
	Message     string
	Certificate *domain.Certificate
}

type CertificateUseCase struct {
	users    UserRepo
	courses  CourseRepo
	exams    ExamRepo
	certs    CertificateRepo
	progress *ProgressUseCase
	qr       QRRenderer
	pdf      PDFRenderer
	baseURL  string
	log      *logger.Logger
}

func NewCertificateUseCase(
	users UserRepo,
	courses CourseRepo,
	exams ExamRepo,
	certs CertificateRepo,
	progress *ProgressUseCase,
	qr QRRenderer,
	pdf PDFRenderer,
	baseURL string,
	log *logger.Logger,
) *CertificateUseCase {
	return &CertificateUseCase{
		users:    users,
		courses:  courses,
		exams:    exams,
		certs:    certs,
		progress: progress,
		qr:       qr,
		pdf:      pdf,
		baseURL:  baseURL,
		log:      log.With("usecase", "certificate"),
	}
}

// Generate выдаёт сертификат: курс должен быть пройден на ровно 100%
// (пересчёт сводки выполняется заново, кешу не доверяем), а при наличии
// действующего оцениваемого экзамена — экзамен сдан. Повторный вызов
// для уже пройденного курса создаёт новую независимую запись.
func (uc *CertificateUseCase) Generate(ctx context.Context, userID, courseID uuid.UUID) (*domain.Certificate, []byte, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.NotFound("user_not_found", "user not found")
		}
		return nil, nil, domain.Internal("failed to load user", err)
	}

	entitled, err := uc.users.HasEntitlement(ctx, userID, courseID)
	if err != nil {
		return nil, nil, domain.Internal("failed to check entitlement", err)
	}
	if !entitled {
		return nil, nil, domain.Forbidden("course_not_assigned", "course is not assigned to user")
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.NotFound("course_not_found", "course not found")
		}
		return nil, nil, domain.Internal("failed to load course", err)
	}
	if len(course.Modules) == 0 {
		return nil, nil, domain.PreconditionFailed("course_empty", "course has no modules")
	}

	// Свежий пересчёт из исходных записей
	summary, err := uc.progress.Recompute(ctx, userID, courseID)
	if err != nil {
		return nil, nil, domain.Internal("failed to recompute course progress", err)
	}
	if summary.Percentage != 100 {
		return nil, nil, domain.PreconditionFailed("course_not_completed",
			fmt.Sprintf("course is %d%% complete, certificate requires 100%%", summary.Percentage))
	}

	// Экзаменационный гейт
	examGate, err := uc.exams.HasActiveGradedExam(ctx, courseID)
	if err != nil {
		return nil, nil, domain.Internal("failed to check exams", err)
	}
	if examGate {
		passed, err := uc.exams.FindPassedAttempt(ctx, userID, courseID)
		if err != nil {
			return nil, nil, domain.Internal("failed to check exam attempts", err)
		}
		if !passed {
			return nil, nil, domain.PreconditionFailed("exam_not_passed", "course exam has not been passed")
		}
	}

	kind := domain.CertificateKindParticipation
	if examGate {
		kind = domain.CertificateKindApproval
	}

	certID := uuid.New()
	verificationURL := fmt.Sprintf("%s/api/v1/certificates/validate/%s", uc.baseURL, certID)

	qrPNG, err := uc.qr.RenderPNG(verificationURL)
	if err != nil {
		return nil, nil, domain.Internal("failed to render QR code", err)
	}

	cert := &domain.Certificate{
		ID:              certID,
		UserID:          userID,
		CourseID:        courseID,
		FullName:        user.FullName,
		NationalID:      user.NationalID,
		CourseName:      course.Title,
		Kind:            kind,
		CompletionDate:  summary.LastActivityAt,
		IssuanceDate:    time.Now(),
		VerificationURL: verificationURL,
		QRCodeImage:     qrPNG,
	}

	// Сначала сохраняем запись, потом рендерим PDF: при падении рендера
	// сертификат уже существует и PDF можно получить повторным запросом
	if err := uc.certs.Create(ctx, cert); err != nil {
		return nil, nil, domain.Internal("failed to save certificate", err)
	}

	pdfBytes, err := uc.pdf.Render(cert)
	if err != nil {
		uc.log.Error("certificate PDF render failed", "error", err, "certificateId", certID)
		return cert, nil, domain.Internal("failed to render certificate PDF", err)
	}

	uc.log.Info("certificate issued", "certificateId", certID, "userId", userID, "courseId", courseID, "kind", kind)
	return cert, pdfBytes, nil
}

// Validate — публичная проверка сертификата. Отсутствие или
// недействительность — это данные, а не ошибка: всегда успешный ответ.
// Снимков в записи недостаточно: курс и пользователь должны существовать.
func (uc *CertificateUseCase) Validate(ctx context.Context, certificateID string) (*CertificateValidation, error) {
	id, err := uuid.Parse(certificateID)
	if err != nil {
		return &CertificateValidation{Valid: false, Message: "certificate not found"}, nil
	}

	cert, err := uc.certs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CertificateValidation{Valid: false, Message: "certificate not found"}, nil
		}
		return nil, domain.Internal("failed to load certificate", err)
	}

	if _, err := uc.courses.GetByID(ctx, cert.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CertificateValidation{Valid: false, Message: "the course for this certificate no longer exists"}, nil
		}
		return nil, domain.Internal("failed to load course", err)
	}

	if _, err := uc.users.GetByID(ctx, cert.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CertificateValidation{Valid: false, Message: "the certificate holder no longer exists"}, nil
		}
		return nil, domain.Internal("failed to load user", err)
	}

	return &CertificateValidation{Valid: true, Certificate: cert}, nil
}

// GetPDF восстанавливает PDF из сохранённой записи, без повторной
// проверки условий выдачи.
func (uc *CertificateUseCase) GetPDF(ctx context.Context, certificateID string) ([]byte, *domain.Certificate, error) {
	id, err := uuid.Parse(certificateID)
	if err != nil {
		return nil, nil, domain.BadRequest("invalid_certificate_id", "invalid certificate id")
	}

	cert, err := uc.certs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.NotFound("certificate_not_found", "certificate not found")
		}
		return nil, nil, domain.Internal("failed to load certificate", err)
	}

	pdfBytes, err := uc.pdf.Render(cert)
	if err != nil {
		return nil, nil, domain.Internal("failed to render certificate PDF", err)
	}
	return pdfBytes, cert, nil
}
