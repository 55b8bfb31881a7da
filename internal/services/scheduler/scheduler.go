// Package services содержит планировщик, который находит пользователей
// с заканчивающимся сервисом и публикует для них события уведомлений.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/profile-settings/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// UserRepository описывает поиск пользователей, у которых сервис заканчивается завтра.
type UserRepository interface {
	FindServiceExpiringTomorrow(ctx context.Context) ([]*models.User, error)
}

// SchedulerService периодически публикует события service_almost_expired.
type SchedulerService struct {
	repo    UserRepository
	channel rabbitmq.Channel
	log     *slog.Logger
	now     func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo UserRepository, channel rabbitmq.Channel, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:    repo,
		channel: channel,
		log:     log,
		now:     time.Now,
	}
}

// Run выполняет проверку сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runFindServiceExpiringTomorrow(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runFindServiceExpiringTomorrow(ctx)
		}
	}
}

func (s *SchedulerService) runFindServiceExpiringTomorrow(ctx context.Context) {
	s.log.Info("starting service to find users with service expiring tomorrow")
	published, err := s.PublishExpiring(ctx)
	if err != nil {
		s.log.Error("failed to publish expiring notifications", sl.Err(err))
		return
	}
	s.log.Info("expiring notifications published", slog.Int("count", published))
}

// PublishExpiring публикует по событию на каждого пользователя, чей сервис
// заканчивается завтра, и возвращает число опубликованных событий.
// Ошибка публикации одного события не останавливает остальные.
func (s *SchedulerService) PublishExpiring(ctx context.Context) (int, error) {
	const op = "services.PublishExpiring"
	users, err := s.repo.FindServiceExpiringTomorrow(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	published := 0
	for _, user := range users {
		event := s.expiringEvent(user)
		err := rabbitmq.PublishMessage(s.channel, rabbitmq.Exchange, rabbitmq.RoutingKey(event.Kind), event)
		if err != nil {
			s.log.Error("failed to publish message",
				slog.String("user_uid", user.UUID),
				sl.Err(err),
			)
			continue
		}
		published++
	}
	return published, nil
}

func (s *SchedulerService) expiringEvent(user *models.User) models.NotificationEvent {
	text := fmt.Sprintf("Здравствуйте, %s!\n\nВаш сервис заканчивается завтра.\n\nПожалуйста, продлите его заранее.", user.Username)
	if user.ServiceExpireAt != nil {
		text = fmt.Sprintf("Здравствуйте, %s!\n\nВаш сервис заканчивается %s.\n\nПожалуйста, продлите его заранее.",
			user.Username, user.ServiceExpireAt.Format("02.01.2006"))
	}
	return models.NotificationEvent{
		ID:        uuid.NewString(),
		UserUID:   user.UUID,
		Kind:      models.EventServiceAlmostExpired,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
}
