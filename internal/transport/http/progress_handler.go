package handlers

import (
	"net/http"

	"eduplatform/internal/application/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	progress *usecase.ProgressUseCase
}

func NewProgressHandler(progress *usecase.ProgressUseCase) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type progressMutationReq struct {
	CourseID  string `json:"courseId" binding:"required"`
	ModuleID  string `json:"moduleId" binding:"required"`
	ContentID string `json:"contentId" binding:"required"`
}

func (r *progressMutationReq) parse() (uuid.UUID, uuid.UUID, bool) {
	courseID, err := uuid.Parse(r.CourseID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	moduleID, err := uuid.Parse(r.ModuleID)
	if err != nil {
		return uuid.Nil, uuid.Nil, false
	}
	return courseID, moduleID, true
}

// POST /api/v1/progress/complete
func (h *ProgressHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req progressMutationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, moduleID, ok := req.parse()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course or module id"})
		return
	}

	summary, moduleInfo, err := h.progress.MarkCompleted(c, userID, courseID, moduleID, req.ContentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":       summary,
		"moduleProgress": moduleInfo,
	})
}

// POST /api/v1/progress/incomplete
func (h *ProgressHandler) Incomplete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req progressMutationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	courseID, moduleID, ok := req.parse()
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course or module id"})
		return
	}

	summary, err := h.progress.MarkIncomplete(c, userID, courseID, moduleID, req.ContentID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"progress": summary})
}

// GET /api/v1/progress/course/:courseId
func (h *ProgressHandler) CourseProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	detail, err := h.progress.GetCourseProgress(c, userID, courseID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// GET /api/v1/progress/content/:moduleId/:contentId
func (h *ProgressHandler) ContentStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	moduleID, err := uuid.Parse(c.Param("moduleId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid module id"})
		return
	}

	status, err := h.progress.GetContentStatus(c, userID, moduleID, c.Param("contentId"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GET /api/v1/users/me/courses — чтение сводок из кеша, без агрегации
func (h *ProgressHandler) MyCourses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.progress.ListUserCourses(c, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": entries})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
