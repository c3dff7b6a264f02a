package handlers

import (
	"net/http"
	"strconv"

	"eduplatform/internal/domain"
	"eduplatform/internal/infrastructure/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CourseHandler struct {
	courseRepo *repository.CourseRepository
	userRepo   *repository.UserRepository
}

func NewCourseHandler(cr *repository.CourseRepository, ur *repository.UserRepository) *CourseHandler {
	return &CourseHandler{courseRepo: cr, userRepo: ur}
}

// GET /api/v1/courses
func (h *CourseHandler) List(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	courses, total, err := h.courseRepo.List(c, search, category, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"courses": courses, "total": total})
}

// GET /api/v1/courses/:id
func (h *CourseHandler) GetOne(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	course, err := h.courseRepo.GetByID(c, courseID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.JSON(http.StatusOK, course)
}

type createCourseReq struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	CoverURL    string `json:"coverUrl"`
	Modules     []struct {
		Title    string `json:"title" binding:"required"`
		Contents []struct {
			StableID string `json:"stableId"`
			Title    string `json:"title"`
			Category string `json:"category"`
			FileLink string `json:"fileLink"`
		} `json:"contents"`
	} `json:"modules"`
}

// POST /api/v1/courses — только admin
func (h *CourseHandler) Create(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req createCourseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	course := &domain.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CoverURL:    req.CoverURL,
	}
	for i, m := range req.Modules {
		module := domain.Module{Title: m.Title, Order: i + 1}
		// Позиция контента назначается по порядку в запросе — это каноничный ключ прогресса
		for pos, item := range m.Contents {
			module.Contents = append(module.Contents, domain.ContentItem{
				Position: pos,
				StableID: item.StableID,
				Title:    item.Title,
				Category: item.Category,
				FileLink: item.FileLink,
			})
		}
		course.Modules = append(course.Modules, module)
	}

	if err := h.courseRepo.Create(c, course); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, course)
}

type assignReq struct {
	UserID string `json:"userId" binding:"required"`
}

// POST /api/v1/courses/:id/assign — назначить курс пользователю (admin)
func (h *CourseHandler) Assign(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	if _, err := h.courseRepo.GetByID(c, courseID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}
	if _, err := h.userRepo.GetByID(c, userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if err := h.userRepo.AssignCourse(c, userID, courseID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CourseHandler) requireAdmin(c *gin.Context) bool {
	callerID, err := uuid.Parse(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}

	user, err := h.userRepo.GetByID(c, callerID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify user profile"})
		return false
	}

	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied: admins only"})
		return false
	}
	return true
}
