package usecase

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	"eduplatform/internal/domain"
	"eduplatform/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type ModuleProgressInfo struct {
	ModuleID       uuid.UUID `json:"moduleId"`
	Title          string    `json:"title"`
	Percentage     int       `json:"percentage"`
	CompletedCount int       `json:"completedCount"`
	TotalCount     int       `json:"totalCount"`
	IsComplete     bool      `json:"isComplete"`
}

type CourseProgressDetail struct {
	Summary *domain.CourseProgressSummary `json:"summary"`
	Modules []ModuleProgressInfo          `json:"modules"`
}

type ContentStatus struct {
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

type UserCourseEntry struct {
	CourseID              uuid.UUID `json:"courseId"`
	CourseTitle           string    `json:"courseTitle"`
	Percentage            int       `json:"percentage"`
	CompletedContentCount int       `json:"completedContentCount"`
	TotalContentCount     int       `json:"totalContentCount"`
	LastActivityAt        time.Time `json:"lastActivityAt"`
}

type ProgressUseCase struct {
	users    UserRepo
	courses  CourseRepo
	progress ProgressRepo
	log      *logger.Logger
}

func NewProgressUseCase(users UserRepo, courses CourseRepo, progress ProgressRepo, log *logger.Logger) *ProgressUseCase {
	return &ProgressUseCase{
		users:    users,
		courses:  courses,
		progress: progress,
		log:      log.With("usecase", "progress"),
	}
}

// MarkCompleted отмечает элемент контента пройденным. Повторная отметка —
// no-op с тем же результатом, но сводка по курсу пересчитывается всегда.
func (uc *ProgressUseCase) MarkCompleted(ctx context.Context, userID, courseID, moduleID uuid.UUID, contentID string) (*domain.CourseProgressSummary, *ModuleProgressInfo, error) {
	module, err := uc.validateTarget(ctx, userID, courseID, moduleID)
	if err != nil {
		return nil, nil, err
	}

	pos, ok := ResolvePosition(module.Contents, contentID)
	if !ok {
		return nil, nil, domain.NotFound("content_not_found", "content not found in module")
	}

	item := &domain.CompletedContent{
		UserID:    userID,
		ModuleID:  moduleID,
		Position:  strconv.Itoa(pos),
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}
	created, err := uc.progress.AddCompleted(ctx, item)
	if err != nil {
		return nil, nil, domain.Internal("failed to save progress", err)
	}
	if !created {
		uc.log.Debug("content already completed", "userId", userID, "moduleId", moduleID, "position", pos)
	}

	info, err := uc.refreshModuleProgress(ctx, userID, module)
	if err != nil {
		return nil, nil, err
	}

	summary, err := uc.Recompute(ctx, userID, courseID)
	if err != nil {
		// Отметка уже сохранена, откатывать её не нужно
		uc.log.Error("course summary recompute failed", "error", err, "userId", userID, "courseId", courseID)
		return nil, nil, domain.Internal("failed to recompute course progress", err)
	}

	return summary, info, nil
}

// MarkIncomplete убирает отметку. Отсутствие записи — no-op с успехом.
func (uc *ProgressUseCase) MarkIncomplete(ctx context.Context, userID, courseID, moduleID uuid.UUID, contentID string) (*domain.CourseProgressSummary, error) {
	module, err := uc.validateTarget(ctx, userID, courseID, moduleID)
	if err != nil {
		return nil, err
	}

	// Мягкая нормализация: нераспознанный идентификатор просто не найдётся в множестве
	pos := NormalizePosition(module.Contents, contentID)

	removed, err := uc.progress.RemoveCompleted(ctx, userID, moduleID, pos)
	if err != nil {
		return nil, domain.Internal("failed to remove progress", err)
	}

	if removed {
		// Удаление всегда ломает полную пройденность модуля
		mp := &domain.ModuleProgress{
			UserID:           userID,
			ModuleID:         moduleID,
			CourseID:         module.CourseID,
			IsModuleComplete: false,
			LastUpdatedAt:    time.Now(),
		}
		if err := uc.progress.UpsertModuleProgress(ctx, mp); err != nil {
			return nil, domain.Internal("failed to update module progress", err)
		}
	}

	summary, err := uc.Recompute(ctx, userID, courseID)
	if err != nil {
		uc.log.Error("course summary recompute failed", "error", err, "userId", userID, "courseId", courseID)
		return nil, domain.Internal("failed to recompute course progress", err)
	}

	return summary, nil
}

func (uc *ProgressUseCase) GetModuleProgress(ctx context.Context, userID, courseID, moduleID uuid.UUID) (*ModuleProgressInfo, error) {
	module, err := uc.validateTarget(ctx, userID, courseID, moduleID)
	if err != nil {
		return nil, err
	}
	return uc.moduleInfo(ctx, userID, module)
}

// GetContentStatus — пройден ли конкретный элемент и когда.
func (uc *ProgressUseCase) GetContentStatus(ctx context.Context, userID, moduleID uuid.UUID, contentID string) (*ContentStatus, error) {
	module, err := uc.courses.GetModule(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("module_not_found", "module not found")
		}
		return nil, domain.Internal("failed to load module", err)
	}

	entitled, err := uc.users.HasEntitlement(ctx, userID, module.CourseID)
	if err != nil {
		return nil, domain.Internal("failed to check entitlement", err)
	}
	if !entitled {
		return nil, domain.Forbidden("course_not_assigned", "course is not assigned to user")
	}

	pos, ok := ResolvePosition(module.Contents, contentID)
	if !ok {
		return nil, domain.NotFound("content_not_found", "content not found in module")
	}

	item, err := uc.progress.GetCompleted(ctx, userID, moduleID, strconv.Itoa(pos))
	if err != nil {
		return nil, domain.Internal("failed to load progress", err)
	}
	if item == nil {
		return &ContentStatus{Completed: false}, nil
	}
	completedAt := item.CreatedAt
	return &ContentStatus{Completed: true, CompletedAt: &completedAt}, nil
}

// GetCourseProgress — разбивка по модулям плюс свежая сводка.
func (uc *ProgressUseCase) GetCourseProgress(ctx context.Context, userID, courseID uuid.UUID) (*CourseProgressDetail, error) {
	if _, err := uc.validateUserAndCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	modules, err := uc.courses.GetModules(ctx, courseID)
	if err != nil {
		return nil, domain.Internal("failed to load modules", err)
	}

	infos := make([]ModuleProgressInfo, len(modules))
	for i := range modules {
		info, err := uc.moduleInfo(ctx, userID, &modules[i])
		if err != nil {
			return nil, err
		}
		infos[i] = *info
	}

	summary, err := uc.Recompute(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal("failed to recompute course progress", err)
	}

	return &CourseProgressDetail{Summary: summary, Modules: infos}, nil
}

// ListUserCourses читает сводки напрямую из кеша, без агрегации на лету.
func (uc *ProgressUseCase) ListUserCourses(ctx context.Context, userID uuid.UUID) ([]UserCourseEntry, error) {
	if _, err := uc.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	courseIDs, err := uc.users.ListEntitledCourseIDs(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to load entitlements", err)
	}

	summaries, err := uc.progress.ListSummaries(ctx, userID)
	if err != nil {
		return nil, domain.Internal("failed to load summaries", err)
	}
	byCourse := make(map[uuid.UUID]*domain.CourseProgressSummary, len(summaries))
	for i := range summaries {
		byCourse[summaries[i].CourseID] = &summaries[i]
	}

	entries := make([]UserCourseEntry, 0, len(courseIDs))
	for _, id := range courseIDs {
		if s, ok := byCourse[id]; ok {
			entries = append(entries, UserCourseEntry{
				CourseID:              s.CourseID,
				CourseTitle:           s.CourseTitle,
				Percentage:            s.Percentage,
				CompletedContentCount: s.CompletedContentCount,
				TotalContentCount:     s.TotalContentCount,
				LastActivityAt:        s.LastActivityAt,
			})
			continue
		}
		// Курс назначен, но прогресса ещё нет
		course, err := uc.courses.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, domain.Internal("failed to load course", err)
		}
		entries = append(entries, UserCourseEntry{CourseID: id, CourseTitle: course.Title})
	}

	return entries, nil
}

// Recompute пересчитывает сводку курса целиком из исходных записей.
// Никаких инкрементальных правок: модульный прогресс — источник истины,
// сводка — производный кеш.
func (uc *ProgressUseCase) Recompute(ctx context.Context, userID, courseID uuid.UUID) (*domain.CourseProgressSummary, error) {
	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	modules, err := uc.courses.GetModules(ctx, courseID)
	if err != nil {
		return nil, err
	}

	type moduleStat struct {
		total     int
		completed int
		last      time.Time
	}
	stats := make([]moduleStat, len(modules))

	// Независимые чтения по модулям выполняем параллельно
	g, gctx := errgroup.WithContext(ctx)
	for i := range modules {
		i, m := i, modules[i]
		g.Go(func() error {
			stored, err := uc.progress.GetCompletedPositions(gctx, userID, m.ID)
			if err != nil {
				return err
			}
			mp, err := uc.progress.GetModuleProgress(gctx, userID, m.ID)
			if err != nil {
				return err
			}
			st := moduleStat{
				total:     countableTotal(m.Contents),
				completed: len(completedSet(m.Contents, stored)),
			}
			if mp != nil {
				st.last = mp.LastUpdatedAt
			}
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total, completed int
	var lastActivity time.Time
	for _, st := range stats {
		total += st.total
		completed += st.completed
		if st.last.After(lastActivity) {
			lastActivity = st.last
		}
	}

	summary := &domain.CourseProgressSummary{
		UserID:                userID,
		CourseID:              courseID,
		CourseTitle:           course.Title,
		Percentage:            percent(completed, total),
		CompletedContentCount: completed,
		TotalContentCount:     total,
		LastActivityAt:        lastActivity,
		UpdatedAt:             time.Now(),
	}

	if err := uc.progress.SaveSummary(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// --- внутренние помощники ---

func (uc *ProgressUseCase) loadUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("user_not_found", "user not found")
		}
		return nil, domain.Internal("failed to load user", err)
	}
	return user, nil
}

func (uc *ProgressUseCase) validateUserAndCourse(ctx context.Context, userID, courseID uuid.UUID) (*domain.Course, error) {
	if _, err := uc.loadUser(ctx, userID); err != nil {
		return nil, err
	}

	entitled, err := uc.users.HasEntitlement(ctx, userID, courseID)
	if err != nil {
		return nil, domain.Internal("failed to check entitlement", err)
	}
	if !entitled {
		return nil, domain.Forbidden("course_not_assigned", "course is not assigned to user")
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("course_not_found", "course not found")
		}
		return nil, domain.Internal("failed to load course", err)
	}
	return course, nil
}

// Полная цепочка проверок перед любой мутацией прогресса.
func (uc *ProgressUseCase) validateTarget(ctx context.Context, userID, courseID, moduleID uuid.UUID) (*domain.Module, error) {
	if _, err := uc.validateUserAndCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	module, err := uc.courses.GetModule(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("module_not_found", "module not found")
		}
		return nil, domain.Internal("failed to load module", err)
	}
	if module.CourseID != courseID {
		return nil, domain.BadRequest("module_course_mismatch", "module does not belong to course")
	}
	return module, nil
}

func (uc *ProgressUseCase) moduleInfo(ctx context.Context, userID uuid.UUID, module *domain.Module) (*ModuleProgressInfo, error) {
	stored, err := uc.progress.GetCompletedPositions(ctx, userID, module.ID)
	if err != nil {
		return nil, domain.Internal("failed to load progress", err)
	}

	total := countableTotal(module.Contents)
	completed := len(completedSet(module.Contents, stored))

	return &ModuleProgressInfo{
		ModuleID:       module.ID,
		Title:          module.Title,
		Percentage:     percent(completed, total),
		CompletedCount: completed,
		TotalCount:     total,
		IsComplete:     completed == total,
	}, nil
}

// refreshModuleProgress пересчитывает флаг пройденности модуля и штамп времени.
func (uc *ProgressUseCase) refreshModuleProgress(ctx context.Context, userID uuid.UUID, module *domain.Module) (*ModuleProgressInfo, error) {
	info, err := uc.moduleInfo(ctx, userID, module)
	if err != nil {
		return nil, err
	}

	mp := &domain.ModuleProgress{
		UserID:           userID,
		ModuleID:         module.ID,
		CourseID:         module.CourseID,
		IsModuleComplete: info.IsComplete,
		LastUpdatedAt:    time.Now(),
	}
	if err := uc.progress.UpsertModuleProgress(ctx, mp); err != nil {
		return nil, domain.Internal("failed to update module progress", err)
	}
	return info, nil
}

// Сколько элементов модуля участвует в прогрессе (без supplementary).
func countableTotal(contents []domain.ContentItem) int {
	total := 0
	for _, c := range contents {
		if c.Category != domain.CategorySupplementary {
			total++
		}
	}
	return total
}

// completedSet нормализует сохранённые записи и отбрасывает
// дубликаты и supplementary-позиции.
func completedSet(contents []domain.ContentItem, stored []string) map[int]struct{} {
	out := make(map[int]struct{})
	for _, s := range stored {
		pos, ok := ResolvePosition(contents, s)
		if !ok {
			continue
		}
		if contents[pos].Category == domain.CategorySupplementary {
			continue
		}
		out[pos] = struct{}{}
	}
	return out
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
