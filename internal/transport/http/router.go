package handlers

import (
	"time"

	"eduplatform/internal/infrastructure/security"
	"eduplatform/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(
	origins []string,
	tm *security.TokenManager,
	limiter *middleware.RateLimiter,
	authHandler *AuthHandler,
	courseHandler *CourseHandler,
	progressHandler *ProgressHandler,
	certificateHandler *CertificateHandler,
) *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(origins) > 0 {
		config.AllowOrigins = origins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowCredentials = len(origins) > 0
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", limiter.Limit("login", 5, 1*time.Minute), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}

		// Публичная проверка сертификата — без авторизации
		api.GET("/certificates/validate/:certificateId", certificateHandler.Validate)

		course := api.Group("/courses")
		course.Use(middleware.AuthMiddleware(tm))
		{
			course.GET("", courseHandler.List)
			course.GET("/:id", courseHandler.GetOne)
			course.POST("", courseHandler.Create)
			course.POST("/:id/assign", courseHandler.Assign)
		}

		user := api.Group("/users")
		user.Use(middleware.AuthMiddleware(tm))
		{
			user.GET("/me/courses", progressHandler.MyCourses)
		}

		progress := api.Group("/progress")
		progress.Use(middleware.AuthMiddleware(tm))
		{
			progress.POST("/complete", progressHandler.Complete)
			progress.POST("/incomplete", progressHandler.Incomplete)
			progress.GET("/course/:courseId", progressHandler.CourseProgress)
			progress.GET("/content/:moduleId/:contentId", progressHandler.ContentStatus)
		}

		certs := api.Group("/certificates")
		certs.Use(middleware.AuthMiddleware(tm))
		{
			certs.POST("/generate/:courseId", certificateHandler.Generate)
			certs.GET("/:certificateId/pdf", certificateHandler.GetPDF)
		}
	}

	return r
}
