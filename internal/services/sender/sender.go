// Package services содержит обработчик событий уведомлений, который
// доставляет их в Telegram с учётом настроек пользователя.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/lib/telegram"
	"github.com/magabrotheeeer/profile-settings/internal/metrics"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// UserRepository возвращает пользователя вместе с настройками уведомлений.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Messenger отправляет текст в чат Telegram.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
}

// SenderService обрабатывает события из очередей уведомлений.
type SenderService struct {
	repo      UserRepository
	messenger Messenger
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(repo UserRepository, messenger Messenger, log *slog.Logger) *SenderService {
	return &SenderService{
		repo:      repo,
		messenger: messenger,
		log:       log,
	}
}

// HandleEvent разбирает событие и отправляет его в Telegram, если пользователь
// включил бота, привязал аккаунт и хочет получать события этого типа.
// Ошибка возвращается только тогда, когда повторная доставка имеет смысл.
func (s *SenderService) HandleEvent(ctx context.Context, body []byte) error {
	const op = "services.HandleEvent"

	var event models.NotificationEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("malformed notification event, dropping", slog.String("op", op), sl.Err(err))
		metrics.Notifications.WithLabelValues("unknown", metrics.StatusError).Inc()
		return nil
	}
	log := s.log.With(
		slog.String("op", op),
		slog.String("event_id", event.ID),
		slog.String("kind", string(event.Kind)),
		slog.String("user_uid", event.UserUID),
	)
	kind := string(event.Kind)

	user, err := s.repo.GetUser(ctx, event.UserUID)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Warn("user not found, skipping")
		metrics.Notifications.WithLabelValues(kind, metrics.StatusSkipped).Inc()
		return nil
	}
	if err != nil {
		metrics.Notifications.WithLabelValues(kind, metrics.StatusError).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	if !user.Notice.Wants(event.Kind) {
		log.Debug("user opted out, skipping")
		metrics.Notifications.WithLabelValues(kind, metrics.StatusSkipped).Inc()
		return nil
	}
	chatID, err := user.Notice.TgID.ChatID()
	if err != nil {
		log.Warn("invalid telegram id, skipping", sl.Err(err))
		metrics.Notifications.WithLabelValues(kind, metrics.StatusSkipped).Inc()
		return nil
	}

	err = s.messenger.SendText(ctx, chatID, event.Text)
	if errors.Is(err, telegram.ErrUndeliverable) {
		log.Warn("telegram chat is undeliverable, skipping", sl.Err(err))
		metrics.Notifications.WithLabelValues(kind, metrics.StatusSkipped).Inc()
		return nil
	}
	if err != nil {
		metrics.Notifications.WithLabelValues(kind, metrics.StatusError).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	metrics.Notifications.WithLabelValues(kind, metrics.StatusOK).Inc()
	log.Info("notification delivered")
	return nil
}
