package app

import (
	"perception_backend/internal/config"
	"perception_backend/internal/middleware"
	"perception_backend/internal/model"
	"perception_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 认证路由
	auth := router.Group("/auth")
	{
		auth.POST("/signup", c.auth.Signup)
		auth.POST("/token", c.auth.Token)
		auth.POST("/google", c.auth.Google)

		auth.GET("/users/me", middleware.AuthMiddleware(cfg, repos.user), c.auth.Me)
	}

	// 2. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 3. 业务路由，统一要求登录
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg, repos.user))
	{
		// 即席评分，仅教师可用
		api.POST("/evaluate", middleware.RoleMiddleware(model.Teacher), c.evaluation.Evaluate)

		// 教师接口
		teacher := api.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		{
			teacher.POST("/question-sets", c.teacher.CreateQuestionSet)
			teacher.GET("/question-sets", c.teacher.ListQuestionSets)
			teacher.GET("/question-sets/:id/submissions", c.teacher.ListSubmissions)
			teacher.PUT("/submissions/:id/finalize", c.teacher.Finalize)
		}

		// 学生接口
		student := api.Group("/student")
		student.Use(middleware.RoleMiddleware(model.Student))
		{
			student.GET("/question-sets", c.student.ListQuestionSets)
			student.POST("/submissions", c.student.CreateSubmission)
			student.GET("/submissions", c.student.ListSubmissions)
		}
	}
}
