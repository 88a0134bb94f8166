package server

import (
	"strings"
	"time"

	"rosalia.com/connect/internal/config"
	"rosalia.com/connect/internal/entity"
	"rosalia.com/connect/internal/middleware"
	"rosalia.com/connect/pkg/token"

	assignmentHttp "rosalia.com/connect/internal/modules/assignment/delivery/http"
	assignmentRepo "rosalia.com/connect/internal/modules/assignment/repository"
	assignmentService "rosalia.com/connect/internal/modules/assignment/service"

	courseHttp "rosalia.com/connect/internal/modules/course/delivery/http"
	courseRepo "rosalia.com/connect/internal/modules/course/repository"
	courseService "rosalia.com/connect/internal/modules/course/service"

	enrollmentHttp "rosalia.com/connect/internal/modules/enrollment/delivery/http"
	enrollmentRepo "rosalia.com/connect/internal/modules/enrollment/repository"
	enrollmentService "rosalia.com/connect/internal/modules/enrollment/service"

	userHttp "rosalia.com/connect/internal/modules/user/delivery/http"
	userRepo "rosalia.com/connect/internal/modules/user/repository"
	userService "rosalia.com/connect/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	engine *gin.Engine
	db     *gorm.DB
}

func New(db *gorm.DB, cfg *config.Config, log *zap.Logger, tokens *token.Service) *Server {
	users := userRepo.NewUserRepository(db)
	courses := courseRepo.NewCourseRepository(db)
	enrollments := enrollmentRepo.NewEnrollmentRepository(db)
	assignments := assignmentRepo.NewAssignmentRepository(db)

	authHandler := userHttp.NewAuthHandler(userService.NewAuthService(users, tokens))
	userHandler := userHttp.NewUserHandler(userService.NewUserService(users))
	courseHandler := courseHttp.NewCourseHandler(courseService.NewCourseService(courses))
	enrollmentHandler := enrollmentHttp.NewEnrollmentHandler(enrollmentService.NewEnrollmentService(enrollments, courses))
	assignmentHandler := assignmentHttp.NewAssignmentHandler(assignmentService.NewAssignmentService(assignments, courses))

	router := gin.New()

	setupCORS(router, cfg)

	router.Use(middleware.RequestID())
	router.Use(ginzap.Ginzap(log, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(log, true))

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		usersGroup := protected.Group("/users")
		{
			usersGroup.GET("", middleware.RequireRoles(entity.RoleAdmin, entity.RoleInstructor), userHandler.List)
			usersGroup.GET("/:id", userHandler.Get)
			usersGroup.PUT("/:id", userHandler.Update)
		}

		coursesGroup := protected.Group("/courses")
		{
			coursesGroup.GET("", courseHandler.List)
			coursesGroup.GET("/:id", courseHandler.Get)
			coursesGroup.POST("", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), courseHandler.Create)
			coursesGroup.PUT("/:id", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), courseHandler.Update)
			coursesGroup.DELETE("/:id", middleware.RequireRoles(entity.RoleAdmin), courseHandler.Delete)
		}

		enrollmentsGroup := protected.Group("/enrollments")
		{
			enrollmentsGroup.POST("", middleware.RequireRoles(entity.RoleStudent), enrollmentHandler.Enroll)
			enrollmentsGroup.GET("/my-courses", enrollmentHandler.MyCourses)
			enrollmentsGroup.GET("/course/:id/students", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), enrollmentHandler.CourseStudents)
			enrollmentsGroup.DELETE("/:id", enrollmentHandler.Cancel)
		}

		assignmentsGroup := protected.Group("/assignments")
		{
			assignmentsGroup.GET("/course/:id", assignmentHandler.ListByCourse)
			assignmentsGroup.GET("/:id", assignmentHandler.Get)
			assignmentsGroup.POST("", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), assignmentHandler.Create)
			assignmentsGroup.PUT("/:id", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), assignmentHandler.Update)
			assignmentsGroup.DELETE("/:id", middleware.RequireRoles(entity.RoleInstructor, entity.RoleAdmin), assignmentHandler.Delete)
		}
	}

	return &Server{engine: router, db: db}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, cfg *config.Config) {
	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
