package usecase

import (
	"context"
	"strconv"
	"testing"

	"eduplatform/internal/domain"
	"eduplatform/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressFixture struct {
	users    *fakeUserRepo
	courses  *fakeCourseRepo
	progress *fakeProgressRepo
	uc       *ProgressUseCase

	userID   uuid.UUID
	courseID uuid.UUID
	moduleA  uuid.UUID
	moduleB  uuid.UUID
}

// Курс из двух модулей: A — 4 учитываемых элемента плюс один
// supplementary, B — 4 учитываемых.
func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()

	f := &progressFixture{
		users:    newFakeUserRepo(),
		courses:  newFakeCourseRepo(),
		progress: newFakeProgressRepo(),
		userID:   uuid.New(),
		courseID: uuid.New(),
		moduleA:  uuid.New(),
		moduleB:  uuid.New(),
	}

	f.users.users[f.userID] = &domain.User{ID: f.userID, FullName: "Ada Lovelace", NationalID: "12345678"}
	f.users.entitle(f.userID, f.courseID)

	contentsA := []domain.ContentItem{
		{Position: 0, Title: "A Intro", Category: "video"},
		{Position: 1, StableID: "lesson-a2", Title: "A Lesson 2", Category: "video"},
		{Position: 2, Title: "A Lesson 3", Category: "pdf"},
		{Position: 3, Title: "A Quiz", Category: "quiz"},
		{Position: 4, Title: "A Extras", Category: domain.CategorySupplementary},
	}
	contentsB := []domain.ContentItem{
		{Position: 0, Title: "B Intro", Category: "video"},
		{Position: 1, Title: "B Lesson 2", Category: "video"},
		{Position: 2, Title: "B Lesson 3", Category: "video"},
		{Position: 3, Title: "B Quiz", Category: "quiz"},
	}

	course := &domain.Course{
		ID:    f.courseID,
		Title: "Course Under Test",
		Modules: []domain.Module{
			{ID: f.moduleA, CourseID: f.courseID, Title: "Module A", Order: 1, Contents: contentsA},
			{ID: f.moduleB, CourseID: f.courseID, Title: "Module B", Order: 2, Contents: contentsB},
		},
	}
	f.courses.add(course)

	f.uc = NewProgressUseCase(f.users, f.courses, f.progress, logger.Nop())
	return f
}

func (f *progressFixture) complete(t *testing.T, moduleID uuid.UUID, contentID string) *domain.CourseProgressSummary {
	t.Helper()
	summary, _, err := f.uc.MarkCompleted(context.Background(), f.userID, f.courseID, moduleID, contentID)
	require.NoError(t, err)
	return summary
}

func TestMarkCompletedIdempotent(t *testing.T) {
	f := newProgressFixture(t)

	first := f.complete(t, f.moduleA, "0")
	second := f.complete(t, f.moduleA, "0")

	assert.Equal(t, first.CompletedContentCount, second.CompletedContentCount)
	assert.Equal(t, first.Percentage, second.Percentage)
	assert.Len(t, f.progress.completed, 1)
}

func TestIdentifierEquivalenceConverges(t *testing.T) {
	f := newProgressFixture(t)

	// Позиция, стабильный ID и название указывают на один элемент
	f.complete(t, f.moduleA, "1")
	f.complete(t, f.moduleA, "lesson-a2")
	summary := f.complete(t, f.moduleA, "A Lesson 2")

	assert.Equal(t, 1, summary.CompletedContentCount)
	assert.Len(t, f.progress.completed, 1)
}

func TestSupplementaryExcludedFromCounts(t *testing.T) {
	f := newProgressFixture(t)

	before := f.complete(t, f.moduleA, "0")
	after := f.complete(t, f.moduleA, "A Extras")

	assert.Equal(t, before.TotalContentCount, after.TotalContentCount)
	assert.Equal(t, before.CompletedContentCount, after.CompletedContentCount)
	assert.Equal(t, before.Percentage, after.Percentage)
	// Сама отметка при этом сохранена
	assert.Len(t, f.progress.completed, 2)
}

func TestModuleCompletionBoundary(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	for _, id := range []string{"0", "1", "2"} {
		f.complete(t, f.moduleA, id)
	}

	info, err := f.uc.GetModuleProgress(ctx, f.userID, f.courseID, f.moduleA)
	require.NoError(t, err)
	assert.Equal(t, 75, info.Percentage)
	assert.False(t, info.IsComplete)

	f.complete(t, f.moduleA, "3")
	info, err = f.uc.GetModuleProgress(ctx, f.userID, f.courseID, f.moduleA)
	require.NoError(t, err)
	assert.Equal(t, 100, info.Percentage)
	assert.True(t, info.IsComplete)

	// Удаление любого пройденного элемента сразу ломает пройденность
	_, err = f.uc.MarkIncomplete(ctx, f.userID, f.courseID, f.moduleA, "2")
	require.NoError(t, err)
	info, err = f.uc.GetModuleProgress(ctx, f.userID, f.courseID, f.moduleA)
	require.NoError(t, err)
	assert.False(t, info.IsComplete)
	assert.Equal(t, 75, info.Percentage)

	mp, err := f.progress.GetModuleProgress(ctx, f.userID, f.moduleA)
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.False(t, mp.IsModuleComplete)
}

func TestCoursePercentageAcrossModules(t *testing.T) {
	f := newProgressFixture(t)

	// Весь модуль A (4 учитываемых), ничего в B → 4 из 8 = 50%
	var summary *domain.CourseProgressSummary
	for i := 0; i < 4; i++ {
		summary = f.complete(t, f.moduleA, strconv.Itoa(i))
	}

	assert.Equal(t, 8, summary.TotalContentCount)
	assert.Equal(t, 4, summary.CompletedContentCount)
	assert.Equal(t, 50, summary.Percentage)
}

func TestMarkIncompleteNeverCompletedIsNoop(t *testing.T) {
	f := newProgressFixture(t)

	summary, err := f.uc.MarkIncomplete(context.Background(), f.userID, f.courseID, f.moduleA, "2")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CompletedContentCount)
	assert.Empty(t, f.progress.completed)
}

func TestMarkCompletedValidationErrors(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	// Неизвестный пользователь
	_, _, err := f.uc.MarkCompleted(ctx, uuid.New(), f.courseID, f.moduleA, "0")
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrKindNotFound, appErr.Kind)
	assert.Equal(t, "user_not_found", appErr.Code)

	// Курс не назначен
	strangerID := uuid.New()
	f.users.users[strangerID] = &domain.User{ID: strangerID}
	_, _, err = f.uc.MarkCompleted(ctx, strangerID, f.courseID, f.moduleA, "0")
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrKindForbidden, appErr.Kind)

	// Модуль чужого курса
	otherCourse := uuid.New()
	otherModule := uuid.New()
	f.courses.add(&domain.Course{
		ID:      otherCourse,
		Title:   "Other",
		Modules: []domain.Module{{ID: otherModule, CourseID: otherCourse, Title: "M"}},
	})
	_, _, err = f.uc.MarkCompleted(ctx, f.userID, f.courseID, otherModule, "0")
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrKindBadRequest, appErr.Kind)
	assert.Equal(t, "module_course_mismatch", appErr.Code)

	// Контент не найден
	_, _, err = f.uc.MarkCompleted(ctx, f.userID, f.courseID, f.moduleA, "no-such-content")
	appErr, ok = domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrKindNotFound, appErr.Kind)
	assert.Equal(t, "content_not_found", appErr.Code)
}

func TestGetContentStatus(t *testing.T) {
	f := newProgressFixture(t)
	ctx := context.Background()

	status, err := f.uc.GetContentStatus(ctx, f.userID, f.moduleA, "lesson-a2")
	require.NoError(t, err)
	assert.False(t, status.Completed)
	assert.Nil(t, status.CompletedAt)

	f.complete(t, f.moduleA, "1")

	// Любое эквивалентное представление видит ту же отметку
	status, err = f.uc.GetContentStatus(ctx, f.userID, f.moduleA, "A Lesson 2")
	require.NoError(t, err)
	assert.True(t, status.Completed)
	require.NotNil(t, status.CompletedAt)
}

func TestCourseProgressDetail(t *testing.T) {
	f := newProgressFixture(t)

	f.complete(t, f.moduleA, "0")
	f.complete(t, f.moduleB, "0")
	f.complete(t, f.moduleB, "1")

	detail, err := f.uc.GetCourseProgress(context.Background(), f.userID, f.courseID)
	require.NoError(t, err)
	require.Len(t, detail.Modules, 2)
	assert.Equal(t, 25, detail.Modules[0].Percentage)
	assert.Equal(t, 50, detail.Modules[1].Percentage)
	assert.Equal(t, 38, detail.Summary.Percentage) // round(100*3/8)
}

func TestListUserCoursesReadsSummaryCache(t *testing.T) {
	f := newProgressFixture(t)

	f.complete(t, f.moduleA, "0")

	entries, err := f.uc.ListUserCourses(context.Background(), f.userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, f.courseID, entries[0].CourseID)
	assert.Equal(t, "Course Under Test", entries[0].CourseTitle)
	assert.Equal(t, 13, entries[0].Percentage) // round(100*1/8)
}
