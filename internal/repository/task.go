package repository

import (
	"context"
	"time"

	"github.com/taskbot-app/taskbot/internal/database"
	"github.com/taskbot-app/taskbot/internal/models"
)

const taskColumns = `task_id, user_id, text, category, event_at, remind_at, reminder_offset_minutes,
	 completed, notified, created_at, updated_at`

type TaskCounts struct {
	Today     int `json:"today"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

type TaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row interface{ Scan(dest ...any) error }) (*models.Task, error) {
	task := &models.Task{}
	err := row.Scan(&task.TaskID, &task.UserID, &task.Text, &task.Category, &task.EventAt,
		&task.RemindAt, &task.ReminderOffsetMinutes, &task.Completed, &task.Notified,
		&task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *TaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// Create inserts a task. A missing remind_at is derived from event_at and
// the offset so every stored task with an event is deliverable.
func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	if task.RemindAt == nil && task.EventAt != nil {
		t := *task.EventAt
		if task.ReminderOffsetMinutes != nil {
			t = t.Add(-time.Duration(*task.ReminderOffsetMinutes) * time.Minute)
		}
		task.RemindAt = &t
	}
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO tasks (user_id, text, category, event_at, remind_at, reminder_offset_minutes)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING task_id, created_at, updated_at`,
		task.UserID, task.Text, task.Category, task.EventAt, task.RemindAt, task.ReminderOffsetMinutes,
	).Scan(&task.TaskID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID int, userID int64) (*models.Task, error) {
	return scanTask(r.db.Pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	))
}

func (r *TaskRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1
		 ORDER BY event_at ASC NULLS LAST, created_at DESC`,
		userID,
	)
}

// GetToday returns incomplete tasks scheduled for the current day, plus
// undated tasks created today.
func (r *TaskRepository) GetToday(ctx context.Context, userID int64, now time.Time) ([]*models.Task, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND completed = FALSE
		   AND ((event_at >= $2 AND event_at < $3)
		     OR (event_at IS NULL AND created_at >= $2 AND created_at < $3))
		 ORDER BY event_at ASC NULLS LAST, created_at DESC`,
		userID, dayStart, dayEnd,
	)
}

func (r *TaskRepository) GetActive(ctx context.Context, userID int64) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND completed = FALSE
		 ORDER BY event_at ASC NULLS LAST, created_at DESC`,
		userID,
	)
}

func (r *TaskRepository) GetCompleted(ctx context.Context, userID int64) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = $1 AND completed = TRUE
		 ORDER BY updated_at DESC`,
		userID,
	)
}

func (r *TaskRepository) GetPendingReminders(ctx context.Context, until time.Time) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE notified = FALSE AND completed = FALSE
		   AND remind_at IS NOT NULL AND remind_at <= $1
		 ORDER BY remind_at ASC`,
		until,
	)
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE tasks SET text = $1, category = $2, event_at = $3, remind_at = $4,
		    reminder_offset_minutes = $5, completed = $6, updated_at = NOW()
		 WHERE task_id = $7 AND user_id = $8`,
		task.Text, task.Category, task.EventAt, task.RemindAt, task.ReminderOffsetMinutes,
		task.Completed, task.TaskID, task.UserID,
	)
	return err
}

func (r *TaskRepository) ToggleCompleted(ctx context.Context, taskID int, userID int64) (*models.Task, error) {
	return scanTask(r.db.Pool.QueryRow(ctx,
		`UPDATE tasks SET completed = NOT completed, updated_at = NOW()
		 WHERE task_id = $1 AND user_id = $2
		 RETURNING `+taskColumns,
		taskID, userID,
	))
}

func (r *TaskRepository) MarkNotified(ctx context.Context, taskID int) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE tasks SET notified = TRUE, updated_at = NOW() WHERE task_id = $1`,
		taskID,
	)
	return err
}

func (r *TaskRepository) Delete(ctx context.Context, taskID int, userID int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`DELETE FROM tasks WHERE task_id = $1 AND user_id = $2`,
		taskID, userID,
	)
	return err
}

func (r *TaskRepository) GetCounts(ctx context.Context, userID int64, now time.Time) (*TaskCounts, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)
	counts := &TaskCounts{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT
		    COUNT(*) FILTER (WHERE completed = FALSE
		        AND ((event_at >= $2 AND event_at < $3)
		          OR (event_at IS NULL AND created_at >= $2 AND created_at < $3))),
		    COUNT(*) FILTER (WHERE completed = FALSE),
		    COUNT(*) FILTER (WHERE completed = TRUE)
		 FROM tasks WHERE user_id = $1`,
		userID, dayStart, dayEnd,
	).Scan(&counts.Today, &counts.Active, &counts.Completed)
	if err != nil {
		return nil, err
	}
	return counts, nil
}
