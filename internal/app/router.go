package app

import (
	"cognilab_backend/internal/config"
	"cognilab_backend/internal/middleware"
	"cognilab_backend/internal/model"

	"cognilab_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 课程目录允许游客浏览，带合法令牌时注入用户身份
	catalog := router.Group("/api")
	catalog.Use(middleware.TryAuthMiddleware(cfg))
	{
		catalog.GET("/courses", c.course.ListCourses)
		catalog.GET("/courses/:id", c.course.GetCourse)
		catalog.GET("/courses/:id/modules", c.course.ListModules)
		catalog.GET("/modules/:id/lessons", c.lesson.ListLessons)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.POST("/profile/avatar", c.user.UploadAvatar)

		authGroup.GET("/lessons/:id", c.lesson.GetLesson)
		authGroup.POST("/lessons/:id/submit_quiz", c.quiz.SubmitQuiz)

		authGroup.POST("/enrollments", c.enrollment.Enroll)
		authGroup.GET("/users/me/enrollments", c.enrollment.ListMyEnrollments)
		authGroup.GET("/users/me/study-plan", c.studyPlan.GetStudyPlan)
		authGroup.GET("/skills/:id/modules", c.skill.ListSkillModules)

		// 讲师相关接口（管理员自动放行）
		instructor := authGroup.Group("")
		instructor.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructor.POST("/courses", c.course.CreateCourse)
			instructor.PATCH("/courses/:id", c.course.UpdateCourse)
			instructor.DELETE("/courses/:id", c.course.DeleteCourse)
			instructor.POST("/courses/:id/modules", c.course.CreateModule)
			instructor.PATCH("/modules/:id", c.course.UpdateModule)
			instructor.DELETE("/modules/:id", c.course.DeleteModule)
			instructor.POST("/modules/:id/lessons", c.lesson.CreateLesson)
			instructor.PATCH("/lessons/:id", c.lesson.UpdateLesson)
			instructor.DELETE("/lessons/:id", c.lesson.DeleteLesson)
			instructor.POST("/lessons/:id/attachment", c.lesson.UploadAttachment)
		}
	}

	// 3. 管理员相关接口
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.PATCH("/users/:id", c.user.PatchUser)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		admin.POST("/skills", c.skill.CreateSkill)
		admin.GET("/skills", c.skill.ListSkills)
		admin.GET("/skills/:id", c.skill.GetSkill)
		admin.PATCH("/skills/:id", c.skill.UpdateSkill)
		admin.DELETE("/skills/:id", c.skill.DeleteSkill)
		admin.PUT("/skills/:id/modules/:moduleId", c.skill.AttachModule)
		admin.DELETE("/skills/:id/modules/:moduleId", c.skill.DetachModule)
	}
}
