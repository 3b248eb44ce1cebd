package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskbot-app/taskbot/internal/models"
	"github.com/taskbot-app/taskbot/internal/repository"
)

type taskPayload struct {
	Text                  string     `json:"text"`
	Category              string     `json:"category"`
	EventAt               *time.Time `json:"event_at"`
	RemindAt              *time.Time `json:"remind_at"`
	ReminderOffsetMinutes *int       `json:"reminder_offset_minutes"`
	Completed             *bool      `json:"completed"`
}

type taskListResponse struct {
	Tasks  []*models.Task         `json:"tasks"`
	Counts *repository.TaskCounts `json:"counts"`
}

type messageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      int    `json:"id,omitempty"`
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// handleListTasks returns tasks for filter=all|today|active|completed,
// together with the counts the Mini App shows in its tabs.
func (s *Server) handleListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	uid := userID(c)
	now := time.Now()

	var (
		tasks []*models.Task
		err   error
	)
	switch c.QueryParam("filter") {
	case "today":
		tasks, err = s.store.GetToday(ctx, uid, now)
	case "active":
		tasks, err = s.store.GetActive(ctx, uid)
	case "completed":
		tasks, err = s.store.GetCompleted(ctx, uid)
	default:
		tasks, err = s.store.GetAllByUser(ctx, uid)
	}
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to load tasks")
	}

	counts, err := s.store.GetCounts(ctx, uid, now)
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to load counts")
	}

	if tasks == nil {
		tasks = []*models.Task{}
	}
	return c.JSON(http.StatusOK, taskListResponse{Tasks: tasks, Counts: counts})
}

func (s *Server) handleCounts(c echo.Context) error {
	counts, err := s.store.GetCounts(c.Request().Context(), userID(c), time.Now())
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to load counts")
	}
	return c.JSON(http.StatusOK, counts)
}

func (s *Server) handleGetTask(c echo.Context) error {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}

	task, err := s.store.GetByID(c.Request().Context(), taskID, userID(c))
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var payload taskPayload
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}
	if payload.Text == "" {
		return errorJSON(c, http.StatusBadRequest, "text is required")
	}

	category := payload.Category
	if category == "" {
		category = models.CategoryTask
	}

	task := &models.Task{
		UserID:                userID(c),
		Text:                  payload.Text,
		Category:              category,
		EventAt:               payload.EventAt,
		RemindAt:              payload.RemindAt,
		ReminderOffsetMinutes: payload.ReminderOffsetMinutes,
	}
	if err := s.store.Create(c.Request().Context(), task); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "failed to create task")
	}

	return c.JSON(http.StatusOK, messageResponse{
		Status:  "created",
		Message: "Task created successfully",
		ID:      task.TaskID,
	})
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}

	var payload taskPayload
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	ctx := c.Request().Context()
	uid := userID(c)

	task, err := s.store.GetByID(ctx, taskID, uid)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}

	if payload.Text != "" {
		task.Text = payload.Text
	}
	if payload.Category != "" {
		task.Category = payload.Category
	}
	task.EventAt = payload.EventAt
	task.RemindAt = payload.RemindAt
	task.ReminderOffsetMinutes = payload.ReminderOffsetMinutes
	if payload.Completed != nil {
		task.Completed = *payload.Completed
	}

	if err := s.store.Update(ctx, task); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "update failed")
	}

	return c.JSON(http.StatusOK, messageResponse{
		Status:  "updated",
		Message: "Task updated successfully",
	})
}

func (s *Server) handleToggleTask(c echo.Context) error {
	var payload struct {
		TaskID int `json:"task_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	if _, err := s.store.ToggleCompleted(c.Request().Context(), payload.TaskID, userID(c)); err != nil {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}

	return c.JSON(http.StatusOK, messageResponse{
		Status:  "toggled",
		Message: "Task status toggled",
	})
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}

	ctx := c.Request().Context()
	uid := userID(c)

	if _, err := s.store.GetByID(ctx, taskID, uid); err != nil {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	if err := s.store.Delete(ctx, taskID, uid); err != nil {
		return errorJSON(c, http.StatusInternalServerError, "delete failed")
	}

	return c.JSON(http.StatusOK, messageResponse{
		Status:  "deleted",
		Message: "Task deleted successfully",
	})
}
