package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "taskboard/docs"
	"taskboard/internal/database"
	"taskboard/internal/handler"
	"taskboard/internal/metrics"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
)

// NewRouter builds the HTTP surface over db. loc decides the calendar day
// used by the derived task views.
func NewRouter(db *gorm.DB, logger *zap.Logger, m *metrics.Metrics, loc *time.Location) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(m))

	r.NoMethod(handler.MethodNotAllowed)
	r.NoRoute(handler.NotFound)

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	diaryRepo := repository.NewDiaryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize handlers
	taskHandler := handler.NewTaskHandler(taskRepo, m, loc)
	statsHandler := handler.NewStatsHandler(taskRepo)
	todoHandler := handler.NewTodoHandler(todoRepo, m)
	boardHandler := handler.NewBoardHandler(boardRepo, m)
	diaryHandler := handler.NewDiaryHandler(diaryRepo, m)
	userHandler := handler.NewUserHandler(userRepo)
	healthHandler := handler.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	})

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Task routes
	r.GET("/tasks", taskHandler.List)
	r.POST("/tasks", taskHandler.Create)
	r.GET("/tasks/view", taskHandler.View)
	r.PUT("/tasks/:id", taskHandler.Update)
	r.DELETE("/tasks/:id", taskHandler.Delete)
	r.GET("/stats", statsHandler.Get)

	// Todo routes
	r.GET("/todos", todoHandler.List)
	r.POST("/todos", todoHandler.Create)
	r.PUT("/todos/:id", todoHandler.Update)
	r.DELETE("/todos/:id", todoHandler.Delete)

	// Board routes
	r.GET("/board", boardHandler.List)
	r.POST("/board", boardHandler.Create)
	r.PUT("/board", boardHandler.Update)
	r.DELETE("/board", boardHandler.Delete)
	r.POST("/board/like/:postId", boardHandler.ToggleLike)
	r.PUT("/board/view/:postId", boardHandler.IncrementView)
	r.GET("/board/comments/:postId", boardHandler.ListComments)
	r.POST("/board/comments/:postId", boardHandler.AddComment)
	r.DELETE("/board/comments/:postId/:commentId", boardHandler.DeleteComment)

	// Diary routes
	r.GET("/diary", diaryHandler.Get)
	r.POST("/diary", diaryHandler.Save)

	// User routes
	r.POST("/users/session", userHandler.Session)
	r.GET("/users/:id", userHandler.Get)

	return r
}
