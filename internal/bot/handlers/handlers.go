package handlers

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskbot-app/taskbot/internal/parser"
	"github.com/taskbot-app/taskbot/internal/repository"
	"github.com/taskbot-app/taskbot/internal/speech"
)

type Repositories struct {
	User *repository.UserRepository
	Task *repository.TaskRepository
}

// Notifier wakes the scheduler after a task is created.
type Notifier interface {
	Notify()
}

type Handlers struct {
	api       *tgbotapi.BotAPI
	repos     *Repositories
	parser    *parser.Parser
	speech    *speech.Client
	notifier  Notifier
	webAppURL string
}

func New(api *tgbotapi.BotAPI, repos *Repositories, p *parser.Parser, sp *speech.Client, webAppURL string) *Handlers {
	return &Handlers{
		api:       api,
		repos:     repos,
		parser:    p,
		speech:    sp,
		webAppURL: webAppURL,
	}
}

func (h *Handlers) SetNotifier(n Notifier) {
	h.notifier = n
}

func (h *Handlers) notifyScheduler() {
	if h.notifier != nil {
		h.notifier.Notify()
	}
}

func (h *Handlers) HandleCommand(ctx context.Context, msg *tgbotapi.Message) {
	// Ensure user exists
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	switch msg.Command() {
	case "start":
		h.handleStart(ctx, msg)
	case "help":
		h.handleHelp(ctx, msg)
	case "tasks":
		h.handleTasks(ctx, msg)
	case "today":
		h.handleToday(ctx, msg)
	default:
		h.sendMessage(msg.Chat.ID, "Неизвестная команда. Используй /help для списка команд.")
	}
}

func (h *Handlers) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handlers) sendMessageWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboard
	if _, err := h.api.Send(msg); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (h *Handlers) editMessageText(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = keyboard
	if _, err := h.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}
