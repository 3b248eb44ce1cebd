package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/taskbot-app/taskbot/internal/parser"
)

func (h *Handlers) HandleVoice(ctx context.Context, msg *tgbotapi.Message) {
	_, err := h.repos.User.GetOrCreate(ctx, msg.From.ID, msg.From.UserName, msg.From.FirstName)
	if err != nil {
		log.Printf("Failed to get/create user: %v", err)
		return
	}

	if h.speech == nil {
		h.sendMessage(msg.Chat.ID, "🎤 Распознавание голоса не настроено. Напиши задачу текстом.")
		return
	}

	processing, err := h.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "🎤 Распознаю голосовое сообщение..."))
	if err != nil {
		log.Printf("Failed to send status message: %v", err)
		return
	}

	text, err := h.transcribeVoice(ctx, msg.Voice)
	if err != nil {
		log.Printf("Failed to transcribe voice message: %v", err)
		h.editMessageText(msg.Chat.ID, processing.MessageID,
			"😕 Не удалось распознать речь. Попробуй ещё раз или напиши текстом.", nil)
		return
	}

	h.editMessageText(msg.Chat.ID, processing.MessageID, fmt.Sprintf("🎤 Распознано: _%s_", text), nil)

	parsed := h.parser.Parse(text)

	if !parser.IsReminderRequest(text) && parsed.RemindAt == nil {
		h.sendMessageWithKeyboard(msg.Chat.ID,
			fmt.Sprintf("💬 Я услышал: «%s»\n\n"+
				"Чтобы создать напоминание, скажи например:\n"+
				"_«Напомни завтра в 15:00 позвонить маме»_", text),
			h.mainMenu())
		return
	}

	h.createTask(ctx, msg, parsed)
}

func (h *Handlers) transcribeVoice(ctx context.Context, voice *tgbotapi.Voice) (string, error) {
	url, err := h.api.GetFileDirectURL(voice.FileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve voice file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download voice file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download voice file: status %d", resp.StatusCode)
	}

	return h.speech.Transcribe(ctx, resp.Body, voice.FileID+".ogg")
}
