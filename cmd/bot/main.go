package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskbot-app/taskbot/internal/api"
	"github.com/taskbot-app/taskbot/internal/bot"
	"github.com/taskbot-app/taskbot/internal/config"
	"github.com/taskbot-app/taskbot/internal/database"
	"github.com/taskbot-app/taskbot/internal/dates"
	"github.com/taskbot-app/taskbot/internal/parser"
	"github.com/taskbot-app/taskbot/internal/repository"
	"github.com/taskbot-app/taskbot/internal/scheduler"
	"github.com/taskbot-app/taskbot/internal/speech"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	taskParser := parser.New(dates.New())

	// Speech recognition is optional
	var speechClient *speech.Client
	if cfg.OpenAIAPIKey != "" {
		speechClient = speech.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
		log.Println("Speech recognition enabled")
	} else {
		log.Println("OPENAI_API_KEY not set, voice messages disabled")
	}

	b, err := bot.New(cfg.BotToken, db, bot.Options{
		Parser:    taskParser,
		Speech:    speechClient,
		WebAppURL: cfg.WebAppURL,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db)

	sched := scheduler.New(b.API(), taskRepo, taskParser)
	b.SetNotifier(sched)
	go sched.Start(ctx)

	apiServer := api.New(taskRepo, cfg.BotToken, cfg.Debug)
	go func() {
		log.Printf("API server listening on %s", cfg.APIAddr)
		if err := apiServer.Start(cfg.APIAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("API server error: %v", err)
		}
	}()

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API shutdown error: %v", err)
		}
		cancel()
	}()

	log.Println("Starting bot...")
	if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Bot error: %v", err)
	}
}
