// Package profileapi собирает HTTP API профиля пользователя: регистрацию и вход,
// чтение профиля, смену пароля и настройки уведомлений.
package profileapi

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/profile-settings/internal/http/docs"

	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/user/info"
	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/user/notice"
	"github.com/magabrotheeeer/profile-settings/internal/http/handlers/user/password"
	"github.com/magabrotheeeer/profile-settings/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// AuthService: регистрация и вход.
type AuthService interface {
	Register(ctx context.Context, email, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (token, role string, err error)
}

// ProfileService: операции страницы настроек.
type ProfileService interface {
	GetInfo(ctx context.Context, userUID string) (models.UserInfo, error)
	ChangePassword(ctx context.Context, userUID, password, repeat string) error
	SetNotice(ctx context.Context, userUID string, notice models.NoticeSettings) (models.UserInfo, error)
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService AuthService, profileService ProfileService,
	tokens middlewarectx.TokenParser, limiter *rate.Limiter) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, limiter))

		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(tokens, logger))
			r.Get("/user/info", info.New(logger, profileService).ServeHTTP)
			r.Post("/user/password", password.New(logger, profileService).ServeHTTP)
			r.Post("/user/notice", notice.New(logger, profileService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
