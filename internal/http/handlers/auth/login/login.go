// Package login реализует HTTP-обработчик входа пользователя.
//
// Обработчик декодирует и валидирует учётные данные, делегирует проверку
// сервису аутентификации и при успехе возвращает JWT.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	services "github.com/magabrotheeeer/profile-settings/internal/services/auth"
)

// Request: структура входных данных для авторизации.
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
}

// Handler обрабатывает HTTP-запросы для авторизации.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	Login(ctx context.Context, username, password string) (token, role string, err error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом аутентификации.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет имя и пароль, возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "code 0, data: token, role, username"
// @Failure 400 {object} response.Response "code 1001"
// @Failure 422 {object} response.Response "code 1002"
// @Failure 401 {object} response.Response "code 1003"
// @Failure 500 {object} response.Response "code 1004"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInvalidBody, "invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, role, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		log.Warn("invalid credentials", slog.String("username", req.Username))
		response.Render(w, r, response.Error(response.CodeUnauthorized, "invalid credentials"))
		return
	}
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInternal, "internal error"))
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	response.Render(w, r, response.OK(map[string]any{
		"token":    token,
		"role":     role,
		"username": req.Username,
	}))
}
