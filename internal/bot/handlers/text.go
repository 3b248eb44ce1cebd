package handlers

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskbot-app/taskbot/internal/models"
	"github.com/taskbot-app/taskbot/internal/parser"
)

func (h *Handlers) HandleText(ctx context.Context, msg *tgbotapi.Message) {
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	parsed := h.parser.Parse(msg.Text)

	if !parser.IsReminderRequest(msg.Text) && parsed.RemindAt == nil {
		h.sendMessageWithKeyboard(msg.Chat.ID,
			"💡 Чтобы создать напоминание, напиши например:\n\n"+
				"• _Напомни завтра в 15:00 позвонить маме_\n"+
				"• _Напомни через 2 часа проверить почту_\n"+
				"• _Не забыть купить молоко в субботу_",
			h.mainMenu())
		return
	}

	h.createTask(ctx, msg, parsed)
}

func (h *Handlers) createTask(ctx context.Context, msg *tgbotapi.Message, parsed parser.ParsedTask) {
	if parsed.RemindAt == nil {
		h.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"📝 Задача: _%s_\n\n"+
				"⚠️ Не удалось определить время.\n"+
				"Попробуй указать конкретнее:\n"+
				"_«завтра в 15:00»_, _«через 2 часа»_, _«в понедельник»_",
			parsed.Text))
		return
	}

	task := &models.Task{
		UserID:                msg.From.ID,
		Text:                  parsed.Text,
		Category:              string(parsed.Category),
		EventAt:               parsed.EventAt,
		RemindAt:              parsed.RemindAt,
		ReminderOffsetMinutes: parsed.ReminderOffsetMinutes,
	}
	if err := h.repos.Task.Create(ctx, task); err != nil {
		log.Printf("Failed to create task: %v", err)
		h.sendMessage(msg.Chat.ID, "❌ Не удалось сохранить задачу, попробуй позже.")
		return
	}
	h.notifyScheduler()

	dateStr := "—"
	if task.EventAt != nil {
		dateStr = h.parser.FormatDatetime(*task.EventAt)
	}

	response := fmt.Sprintf(
		"✅ *Задача создана!*\n\n%s\n📝 %s\n📅 Событие: %s\n⏰ Доп. напоминание: %s",
		categoryLabel(task.Category), task.Text, dateStr, offsetLabel(task.ReminderOffsetMinutes))

	h.sendMessageWithKeyboard(msg.Chat.ID, response, h.taskCreated(task.TaskID))
}

func categoryLabel(category string) string {
	switch category {
	case models.CategoryTask:
		return "✅ Задача"
	case models.CategoryEvent:
		return "📅 Событие"
	default:
		return "🔔 Напоминание"
	}
}

func offsetLabel(minutes *int) string {
	if minutes == nil {
		return "Не указано"
	}
	if *minutes < 60 {
		return fmt.Sprintf("За %d минут", *minutes)
	}
	return fmt.Sprintf("За %d час(а)", *minutes/60)
}
