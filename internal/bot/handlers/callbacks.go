package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handlers) HandleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	data := callback.Data

	switch {
	case data == "show_tasks":
		h.callbackShowTasks(ctx, callback)
	case data == "open_app":
		h.callbackOpenApp(callback)
	case data == "no_app":
		h.answerCallbackWithAlert(callback.ID, "Mini App не настроено на сервере")
	case data == "cancel_delete":
		h.answerCallback(callback.ID, "")
		h.editMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
			"👌 Удаление отменено", keyboardPtr(h.backToList()))
	case strings.HasPrefix(data, "confirm_delete_"):
		h.callbackConfirmDelete(ctx, callback, strings.TrimPrefix(data, "confirm_delete_"))
	case strings.HasPrefix(data, "delete_"):
		h.callbackDelete(callback, strings.TrimPrefix(data, "delete_"))
	case strings.HasPrefix(data, "complete_"):
		h.callbackComplete(ctx, callback, strings.TrimPrefix(data, "complete_"))
	case strings.HasPrefix(data, "edit_"):
		h.answerCallbackWithAlert(callback.ID, "✏️ Для редактирования откройте приложение")
	default:
		h.answerCallback(callback.ID, "")
	}
}

func (h *Handlers) callbackShowTasks(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	h.answerCallback(callback.ID, "")

	tasks, err := h.repos.Task.GetActive(ctx, callback.From.ID)
	if err != nil {
		log.Printf("Failed to get active tasks: %v", err)
		h.answerCallbackWithAlert(callback.ID, "Ошибка, попробуй позже")
		return
	}

	if len(tasks) == 0 {
		h.sendMessageWithKeyboard(callback.Message.Chat.ID,
			"📭 У тебя пока нет активных задач.\n\nОтправь голосовое или текстовое сообщение, чтобы создать задачу!",
			h.mainMenu())
		return
	}

	text := "📋 *Твои активные задачи:*\n\n"
	for i, task := range tasks {
		dateStr := "без даты"
		if task.RemindAt != nil {
			dateStr = h.parser.FormatDatetime(*task.RemindAt)
		}
		text += fmt.Sprintf("%d. %s %s\n   ⏰ _%s_\n\n", i+1, task.CategoryEmoji(), task.Text, dateStr)
	}
	text += fmt.Sprintf("_Всего: %d задач(и)_", len(tasks))

	h.sendMessageWithKeyboard(callback.Message.Chat.ID, text, h.mainMenu())
}

func (h *Handlers) callbackComplete(ctx context.Context, callback *tgbotapi.CallbackQuery, idStr string) {
	taskID, err := strconv.Atoi(idStr)
	if err != nil {
		return
	}

	if _, err := h.repos.Task.ToggleCompleted(ctx, taskID, callback.From.ID); err != nil {
		h.answerCallbackWithAlert(callback.ID, "❌ Задача не найдена")
		return
	}

	h.answerCallback(callback.ID, "✅ Задача выполнена!")
	h.editMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
		"✅ Задача отмечена выполненной!\n\nТак держать! 💪", keyboardPtr(h.backToList()))
}

func (h *Handlers) callbackDelete(callback *tgbotapi.CallbackQuery, idStr string) {
	taskID, err := strconv.Atoi(idStr)
	if err != nil {
		return
	}

	h.answerCallback(callback.ID, "")
	h.editMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
		"🗑 Удалить задачу?\n\nЭто действие нельзя отменить.", keyboardPtr(h.confirmDelete(taskID)))
}

func (h *Handlers) callbackConfirmDelete(ctx context.Context, callback *tgbotapi.CallbackQuery, idStr string) {
	taskID, err := strconv.Atoi(idStr)
	if err != nil {
		return
	}

	if err := h.repos.Task.Delete(ctx, taskID, callback.From.ID); err != nil {
		h.answerCallbackWithAlert(callback.ID, "❌ Задача не найдена")
		return
	}

	h.answerCallback(callback.ID, "🗑 Задача удалена")
	h.editMessageText(callback.Message.Chat.ID, callback.Message.MessageID,
		"🗑 Задача удалена", keyboardPtr(h.backToList()))
}

func (h *Handlers) callbackOpenApp(callback *tgbotapi.CallbackQuery) {
	if h.webAppURL == "" {
		h.answerCallbackWithAlert(callback.ID, "Mini App не настроено")
		return
	}
	h.answerCallback(callback.ID, "")
	h.sendMessageWithKeyboard(callback.Message.Chat.ID,
		"🔗 Откройте приложение по ссылке:\n"+h.webAppURL, h.mainMenu())
}

func (h *Handlers) answerCallback(callbackID, text string) {
	answer := tgbotapi.NewCallback(callbackID, text)
	if _, err := h.api.Request(answer); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
}

func (h *Handlers) answerCallbackWithAlert(callbackID, text string) {
	answer := tgbotapi.NewCallbackWithAlert(callbackID, text)
	if _, err := h.api.Request(answer); err != nil {
		log.Printf("Failed to answer callback with alert: %v", err)
	}
}

func keyboardPtr(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}
