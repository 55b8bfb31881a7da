// Package telegram отправляет текстовые уведомления в чат Telegram через Bot API.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	telebot "gopkg.in/telebot.v3"
)

// ErrUndeliverable: чат недоступен боту, повторная отправка не поможет.
var ErrUndeliverable = errors.New("telegram chat is undeliverable")

// Ошибки Bot API, после которых сообщение в этот чат не доставить.
var permanentErrors = []error{
	telebot.ErrBlockedByUser,
	telebot.ErrChatNotFound,
	telebot.ErrEmptyChatID,
	telebot.ErrUserIsDeactivated,
	telebot.ErrNotStartedByUser,
	telebot.ErrKickedFromGroup,
	telebot.ErrKickedFromSuperGroup,
	telebot.ErrKickedFromChannel,
	telebot.ErrNoRightsToSend,
}

// Bot: отправитель сообщений без поллинга обновлений.
type Bot struct {
	tb *telebot.Bot
}

// New создаёт бота. apiURL можно оставить пустым, тогда используется api.telegram.org.
// Бот создаётся в offline-режиме: токен не проверяется при старте.
func New(token, apiURL string, timeout time.Duration) (*Bot, error) {
	const op = "telegram.New"
	tb, err := telebot.NewBot(telebot.Settings{
		URL:     apiURL,
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Bot{tb: tb}, nil
}

// SendText отправляет text в чат chatID.
func (b *Bot) SendText(ctx context.Context, chatID int64, text string) error {
	const op = "telegram.SendText"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := b.tb.Send(telebot.ChatID(chatID), text); err != nil {
		if isPermanent(err) {
			return fmt.Errorf("%s: %w: %w", op, ErrUndeliverable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func isPermanent(err error) bool {
	for _, target := range permanentErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
