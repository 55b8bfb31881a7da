// Package services содержит логику чтения и изменения профиля пользователя:
// смену пароля и настройки уведомлений.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/profile-settings/internal/lib/password"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/metrics"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// UserRepository описывает хранилище пользователей.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	UpdatePassword(ctx context.Context, userUID, passwordHash string) error
	UpdateNotice(ctx context.Context, userUID string, notice models.NoticeSettings) error
}

// InfoCache описывает кэш профилей.
type InfoCache interface {
	GetUserInfo(ctx context.Context, userUID string) (models.UserInfo, bool, error)
	SetUserInfo(ctx context.Context, info models.UserInfo) error
	Invalidate(ctx context.Context, userUID string) error
}

// ProfileService реализует операции страницы настроек.
type ProfileService struct {
	repo  UserRepository
	cache InfoCache
	log   *slog.Logger
}

// NewProfileService создает новый экземпляр ProfileService.
func NewProfileService(repo UserRepository, cache InfoCache, log *slog.Logger) *ProfileService {
	return &ProfileService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// GetInfo возвращает профиль пользователя. Сначала смотрит в кэш,
// при промахе читает базу и кладёт результат в кэш.
// Ошибки кэша не прерывают запрос.
func (s *ProfileService) GetInfo(ctx context.Context, userUID string) (models.UserInfo, error) {
	const op = "services.GetInfo"
	log := s.log.With(slog.String("op", op), slog.String("user_uid", userUID))

	info, found, err := s.cache.GetUserInfo(ctx, userUID)
	if err != nil {
		log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		return info, nil
	}

	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	info = user.Info()
	if err := s.cache.SetUserInfo(ctx, info); err != nil {
		log.Warn("cache write failed", sl.Err(err))
	}
	return info, nil
}

// ChangePassword проверяет новый пароль, сохраняет его хэш и сбрасывает кэш профиля.
// Текущая сессия пользователя остаётся действительной.
func (s *ProfileService) ChangePassword(ctx context.Context, userUID, newPassword, repeat string) (err error) {
	const op = "services.ChangePassword"
	defer func() { metrics.ObserveProfileUpdate("password", err) }()

	if err := password.Check(newPassword, repeat); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	hash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.UpdatePassword(ctx, userUID, hash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, userUID); err != nil {
		s.log.Warn("cache invalidate failed", slog.String("op", op), sl.Err(err))
	}
	return nil
}

// SetNotice сохраняет настройки уведомлений и возвращает обновлённый профиль.
func (s *ProfileService) SetNotice(ctx context.Context, userUID string, notice models.NoticeSettings) (info models.UserInfo, err error) {
	const op = "services.SetNotice"
	defer func() { metrics.ObserveProfileUpdate("notice", err) }()
	log := s.log.With(slog.String("op", op), slog.String("user_uid", userUID))

	if err := s.repo.UpdateNotice(ctx, userUID, notice); err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	info = user.Info()
	if err := s.cache.SetUserInfo(ctx, info); err != nil {
		log.Warn("cache write failed, invalidating", sl.Err(err))
		if err := s.cache.Invalidate(ctx, userUID); err != nil {
			log.Error("cache invalidate failed", sl.Err(err))
		}
	}
	log.Info("notice settings updated",
		slog.Bool("enable_tg_bot", info.EnableTgBot),
		slog.Bool("tg_bound", info.TgID.Bound()),
	)
	return info, nil
}
