package bot

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskbot-app/taskbot/internal/bot/handlers"
	"github.com/taskbot-app/taskbot/internal/database"
	"github.com/taskbot-app/taskbot/internal/parser"
	"github.com/taskbot-app/taskbot/internal/repository"
	"github.com/taskbot-app/taskbot/internal/speech"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	handlers *handlers.Handlers
}

type Options struct {
	Parser    *parser.Parser
	Speech    *speech.Client // nil disables voice messages
	WebAppURL string
}

func New(token string, db *database.DB, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	repos := &handlers.Repositories{
		User: repository.NewUserRepository(db),
		Task: repository.NewTaskRepository(db),
	}

	return &Bot{
		api:      api,
		handlers: handlers.New(api, repos, opts.Parser, opts.Speech, opts.WebAppURL),
	}, nil
}

// API exposes the underlying client for the scheduler.
func (b *Bot) API() *tgbotapi.BotAPI {
	return b.api
}

// SetNotifier wires the scheduler so new tasks get checked without waiting
// for the next tick.
func (b *Bot) SetNotifier(n handlers.Notifier) {
	b.handlers.SetNotifier(n)
}

func (b *Bot) Start(ctx context.Context) error {
	log.Printf("Authorized on account %s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.handlers.HandleCallbackQuery(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if update.Message.IsCommand() {
		b.handlers.HandleCommand(ctx, update.Message)
		return
	}

	if update.Message.Voice != nil {
		b.handlers.HandleVoice(ctx, update.Message)
		return
	}

	if update.Message.Text != "" {
		b.handlers.HandleText(ctx, update.Message)
	}
}
