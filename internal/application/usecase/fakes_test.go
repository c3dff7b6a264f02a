package usecase

import (
	"context"
	"fmt"

	"eduplatform/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users        map[uuid.UUID]*domain.User
	entitlements map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:        make(map[uuid.UUID]*domain.User),
		entitlements: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) HasEntitlement(_ context.Context, userID, courseID uuid.UUID) (bool, error) {
	return f.entitlements[userID][courseID], nil
}

func (f *fakeUserRepo) ListEntitledCourseIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for courseID, ok := range f.entitlements[userID] {
		if ok {
			ids = append(ids, courseID)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) entitle(userID, courseID uuid.UUID) {
	if f.entitlements[userID] == nil {
		f.entitlements[userID] = make(map[uuid.UUID]bool)
	}
	f.entitlements[userID][courseID] = true
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*domain.Course
	modules map[uuid.UUID]*domain.Module
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses: make(map[uuid.UUID]*domain.Course),
		modules: make(map[uuid.UUID]*domain.Module),
	}
}

func (f *fakeCourseRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Course, error) {
	if c, ok := f.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) GetModules(_ context.Context, courseID uuid.UUID) ([]domain.Module, error) {
	c, ok := f.courses[courseID]
	if !ok {
		return nil, nil
	}
	return c.Modules, nil
}

func (f *fakeCourseRepo) GetModule(_ context.Context, moduleID uuid.UUID) (*domain.Module, error) {
	if m, ok := f.modules[moduleID]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCourseRepo) add(course *domain.Course) {
	f.courses[course.ID] = course
	for i := range course.Modules {
		f.modules[course.Modules[i].ID] = &course.Modules[i]
	}
}

type fakeProgressRepo struct {
	completed map[string]*domain.CompletedContent
	modules   map[string]*domain.ModuleProgress
	summaries map[string]*domain.CourseProgressSummary
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		completed: make(map[string]*domain.CompletedContent),
		modules:   make(map[string]*domain.ModuleProgress),
		summaries: make(map[string]*domain.CourseProgressSummary),
	}
}

func completedKey(userID, moduleID uuid.UUID, position string) string {
	return fmt.Sprintf("%s|%s|%s", userID, moduleID, position)
}

func pairKey(a, b uuid.UUID) string {
	return fmt.Sprintf("%s|%s", a, b)
}

func (f *fakeProgressRepo) AddCompleted(_ context.Context, item *domain.CompletedContent) (bool, error) {
	key := completedKey(item.UserID, item.ModuleID, item.Position)
	if _, ok := f.completed[key]; ok {
		return false, nil
	}
	f.completed[key] = item
	return true, nil
}

func (f *fakeProgressRepo) RemoveCompleted(_ context.Context, userID, moduleID uuid.UUID, position string) (bool, error) {
	key := completedKey(userID, moduleID, position)
	if _, ok := f.completed[key]; !ok {
		return false, nil
	}
	delete(f.completed, key)
	return true, nil
}

func (f *fakeProgressRepo) GetCompletedPositions(_ context.Context, userID, moduleID uuid.UUID) ([]string, error) {
	var positions []string
	for _, item := range f.completed {
		if item.UserID == userID && item.ModuleID == moduleID {
			positions = append(positions, item.Position)
		}
	}
	return positions, nil
}

func (f *fakeProgressRepo) GetCompleted(_ context.Context, userID, moduleID uuid.UUID, position string) (*domain.CompletedContent, error) {
	return f.completed[completedKey(userID, moduleID, position)], nil
}

func (f *fakeProgressRepo) UpsertModuleProgress(_ context.Context, mp *domain.ModuleProgress) error {
	f.modules[pairKey(mp.UserID, mp.ModuleID)] = mp
	return nil
}

func (f *fakeProgressRepo) GetModuleProgress(_ context.Context, userID, moduleID uuid.UUID) (*domain.ModuleProgress, error) {
	return f.modules[pairKey(userID, moduleID)], nil
}

func (f *fakeProgressRepo) SaveSummary(_ context.Context, s *domain.CourseProgressSummary) error {
	f.summaries[pairKey(s.UserID, s.CourseID)] = s
	return nil
}

func (f *fakeProgressRepo) GetSummary(_ context.Context, userID, courseID uuid.UUID) (*domain.CourseProgressSummary, error) {
	return f.summaries[pairKey(userID, courseID)], nil
}

func (f *fakeProgressRepo) ListSummaries(_ context.Context, userID uuid.UUID) ([]domain.CourseProgressSummary, error) {
	var out []domain.CourseProgressSummary
	for _, s := range f.summaries {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeExamRepo struct {
	gradedExam bool
	passed     bool
}

func (f *fakeExamRepo) HasActiveGradedExam(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.gradedExam, nil
}

func (f *fakeExamRepo) FindPassedAttempt(_ context.Context, _, _ uuid.UUID) (bool, error) {
	return f.passed, nil
}

type fakeCertRepo struct {
	certs map[uuid.UUID]*domain.Certificate
}

func newFakeCertRepo() *fakeCertRepo {
	return &fakeCertRepo{certs: make(map[uuid.UUID]*domain.Certificate)}
}

func (f *fakeCertRepo) Create(_ context.Context, cert *domain.Certificate) error {
	f.certs[cert.ID] = cert
	return nil
}

func (f *fakeCertRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Certificate, error) {
	if c, ok := f.certs[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeQR struct{}

func (fakeQR) RenderPNG(_ string) ([]byte, error) {
	return []byte("png"), nil
}

type fakePDF struct {
	err error
}

func (f *fakePDF) Render(_ *domain.Certificate) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}
