package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handlers) listButton() tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData("📋 Открыть список задач", "show_tasks")
}

// appButton links to the web app when the URL qualifies. Telegram rejects
// URL buttons for non-HTTPS URLs, so plain http falls back to a callback
// that sends the link into chat.
func (h *Handlers) appButton() tgbotapi.InlineKeyboardButton {
	url := strings.TrimSpace(h.webAppURL)
	if url == "" {
		return tgbotapi.NewInlineKeyboardButtonData("📱 Открыть приложение", "no_app")
	}
	if strings.HasPrefix(strings.ToLower(url), "https://") {
		return tgbotapi.NewInlineKeyboardButtonURL("📱 Открыть приложение", url)
	}
	return tgbotapi.NewInlineKeyboardButtonData("📱 Открыть приложение", "open_app")
}

func (h *Handlers) mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(h.listButton()),
		tgbotapi.NewInlineKeyboardRow(h.appButton()),
	)
}

func (h *Handlers) taskCreated(taskID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Изменить", fmt.Sprintf("edit_%d", taskID)),
			tgbotapi.NewInlineKeyboardButtonData("🗑 Удалить", fmt.Sprintf("delete_%d", taskID)),
		),
		tgbotapi.NewInlineKeyboardRow(h.listButton()),
	)
}

func (h *Handlers) confirmDelete(taskID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", fmt.Sprintf("confirm_delete_%d", taskID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отмена", "cancel_delete"),
		),
	)
}

func (h *Handlers) backToList() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(h.listButton()),
	)
}
