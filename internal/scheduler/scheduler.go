package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskbot-app/taskbot/internal/parser"
	"github.com/taskbot-app/taskbot/internal/repository"
)

type Scheduler struct {
	api           *tgbotapi.BotAPI
	taskRepo      *repository.TaskRepository
	parser        *parser.Parser
	checkInterval time.Duration
	notifyCh      chan struct{}
}

func New(api *tgbotapi.BotAPI, taskRepo *repository.TaskRepository, p *parser.Parser) *Scheduler {
	return &Scheduler{
		api:           api,
		taskRepo:      taskRepo,
		parser:        p,
		checkInterval: 30 * time.Second,
		notifyCh:      make(chan struct{}, 1),
	}
}

// Notify triggers an immediate check. Non-blocking if a check is already pending.
func (s *Scheduler) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
		// Channel already has a pending notification, skip
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	log.Println("Scheduler started")
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	// Wait a bit for migrations to complete before first check
	select {
	case <-ctx.Done():
		return
	case <-time.After(2 * time.Second):
	}

	s.check(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("Scheduler stopped")
			return
		case <-ticker.C:
			s.check(ctx)
		case <-s.notifyCh:
			s.check(ctx)
		}
	}
}

func (s *Scheduler) check(ctx context.Context) {
	now := time.Now()
	tasks, err := s.taskRepo.GetPendingReminders(ctx, now)
	if err != nil {
		log.Printf("Failed to get pending reminders: %v", err)
		return
	}

	for _, task := range tasks {
		text := task.CategoryEmoji() + " Напоминание!\n\n" + task.Text
		if task.EventAt != nil && (task.RemindAt == nil || !task.EventAt.Equal(*task.RemindAt)) {
			text += "\n🕐 " + s.parser.FormatDatetime(*task.EventAt)
		}

		msg := tgbotapi.NewMessage(task.UserID, text)
		msg.ReplyMarkup = taskActions(task.TaskID)
		if _, err := s.api.Send(msg); err != nil {
			log.Printf("Failed to send reminder for task %d: %v", task.TaskID, err)
			continue
		}

		if err := s.taskRepo.MarkNotified(ctx, task.TaskID); err != nil {
			log.Printf("Failed to mark task %d as notified: %v", task.TaskID, err)
		}
		log.Printf("Sent reminder %d to user %d", task.TaskID, task.UserID)
	}
}

// taskActions mirrors the bot's callback data so taps land in the same
// handler as list interactions.
func taskActions(taskID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Выполнено", fmt.Sprintf("complete_%d", taskID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("delete_%d", taskID)),
		),
	)
}
