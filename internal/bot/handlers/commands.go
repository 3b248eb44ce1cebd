package handlers

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handlers) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	name := msg.From.FirstName
	if name == "" {
		name = "друг"
	}

	text := fmt.Sprintf(`👋 Привет, %s!

Я — TaskBot, твой умный помощник для управления задачами.

🎤 Голосом: Отправь голосовое сообщение
Например: «Напомни завтра в 15:00 позвонить маме»

✍️ Текстом: Просто напиши задачу
Например: «Напомни через 2 часа проверить почту»

📱 Приложение: Нажми кнопку ниже

📌 Команды:
/tasks — список задач
/today — задачи на сегодня
/help — помощь`, name)

	h.sendMessageWithKeyboard(msg.Chat.ID, text, h.mainMenu())
}

func (h *Handlers) handleHelp(ctx context.Context, msg *tgbotapi.Message) {
	text := `📖 Как пользоваться TaskBot

🎤 Голосовые сообщения
Просто запиши голосовое:
• «Напомни завтра в 9 утра на встречу»
• «Напомни через час позвонить»
• «Не забыть купить молоко в субботу»

✍️ Текстовые сообщения
Напиши так же, как сказал бы:
• «Напомни в понедельник сдать отчёт»
• «Напомни 25 декабря поздравить друзей»

📱 Mini App
Нажми кнопку «Открыть список задач»

📌 Команды:
/start — начало работы
/tasks — все задачи
/today — задачи на сегодня
/help — эта справка`

	h.sendMessageWithKeyboard(msg.Chat.ID, text, h.mainMenu())
}

func (h *Handlers) handleTasks(ctx context.Context, msg *tgbotapi.Message) {
	tasks, err := h.repos.Task.GetActive(ctx, msg.From.ID)
	if err != nil {
		log.Printf("Failed to get active tasks: %v", err)
		h.sendMessage(msg.Chat.ID, "❌ Не удалось загрузить задачи, попробуй позже.")
		return
	}

	if len(tasks) == 0 {
		h.sendMessageWithKeyboard(msg.Chat.ID,
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

	h.sendMessageWithKeyboard(msg.Chat.ID, text, h.mainMenu())
}

func (h *Handlers) handleToday(ctx context.Context, msg *tgbotapi.Message) {
	tasks, err := h.repos.Task.GetToday(ctx, msg.From.ID, h.parser.Now())
	if err != nil {
		log.Printf("Failed to get today tasks: %v", err)
		h.sendMessage(msg.Chat.ID, "❌ Не удалось загрузить задачи, попробуй позже.")
		return
	}

	if len(tasks) == 0 {
		h.sendMessageWithKeyboard(msg.Chat.ID,
			"🎉 На сегодня задач нет!\n\nМожешь расслабиться или добавить новую задачу.",
			h.mainMenu())
		return
	}

	text := "📅 *Задачи на сегодня:*\n\n"
	for _, task := range tasks {
		status := "○"
		if task.Completed {
			status = "✓"
		}
		text += fmt.Sprintf("%s %s %s", status, task.CategoryEmoji(), task.Text)
		if task.RemindAt != nil {
			text += fmt.Sprintf(" — _%s_", task.RemindAt.Format("15:04"))
		}
		text += "\n"
	}

	h.sendMessageWithKeyboard(msg.Chat.ID, text, h.mainMenu())
}
