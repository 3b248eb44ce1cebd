// Package api serves the Telegram Mini App backend.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/taskbot-app/taskbot/internal/models"
	"github.com/taskbot-app/taskbot/internal/repository"
)

// TaskStore is the subset of the task repository the API needs.
type TaskStore interface {
	GetAllByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	GetToday(ctx context.Context, userID int64, now time.Time) ([]*models.Task, error)
	GetActive(ctx context.Context, userID int64) ([]*models.Task, error)
	GetCompleted(ctx context.Context, userID int64) ([]*models.Task, error)
	GetByID(ctx context.Context, taskID int, userID int64) (*models.Task, error)
	// Create derives remind_at from event_at and the offset when unset.
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	ToggleCompleted(ctx context.Context, taskID int, userID int64) (*models.Task, error)
	Delete(ctx context.Context, taskID int, userID int64) error
	GetCounts(ctx context.Context, userID int64, now time.Time) (*repository.TaskCounts, error)
}

type Server struct {
	store    TaskStore
	botToken string
	debug    bool
	echo     *echo.Echo
}

func New(store TaskStore, botToken string, debug bool) *Server {
	s := &Server{
		store:    store,
		botToken: botToken,
		debug:    debug,
	}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/api/health", s.handleHealth)

	tasks := e.Group("/api/tasks")
	tasks.Use(s.telegramAuth)
	tasks.GET("", s.handleListTasks)
	tasks.GET("/counts", s.handleCounts)
	tasks.GET("/:id", s.handleGetTask)
	tasks.POST("", s.handleCreateTask)
	tasks.PUT("/:id", s.handleUpdateTask)
	tasks.POST("/toggle", s.handleToggleTask)
	tasks.DELETE("/:id", s.handleDeleteTask)

	s.echo = e
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "TaskBot API",
	})
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
