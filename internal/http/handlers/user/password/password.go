// Package password реализует HTTP-обработчик смены пароля.
//
// Тело запроса {password, re_password} проверяется валидатором, затем
// новый пароль передаётся сервису профиля. Текущая сессия не завершается.
package password

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-settings/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	pwd "github.com/magabrotheeeer/profile-settings/internal/lib/password"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Service меняет пароль пользователя.
type Service interface {
	ChangePassword(ctx context.Context, userUID, password, repeat string) error
}

type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Смена пароля
// @Description Текущий токен остаётся действительным.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body models.PasswordChange true "Новый пароль и подтверждение"
// @Success 200 {object} response.Response "code 0"
// @Failure 400 {object} response.Response "code 1001"
// @Failure 422 {object} response.Response "code 1002 или 1006"
// @Failure 401 {object} response.Response "code 1003"
// @Failure 500 {object} response.Response "code 1004"
// @Router /user/password [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.password"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := middlewarectx.UserUIDFromContext(r.Context())
	if !ok {
		log.Error("user identification missing")
		response.Render(w, r, response.Error(response.CodeUnauthorized, "user identification missing"))
		return
	}

	var req models.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInvalidBody, "invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Warn("validation failed", sl.Err(err))
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.ChangePassword(r.Context(), userUID, req.Password, req.RePassword)
	switch {
	case err == nil:
	case errors.Is(err, pwd.ErrMismatch):
		response.Render(w, r, response.Error(response.CodePasswordMismatch, "Passwords do not match."))
		return
	case errors.Is(err, pwd.ErrTooShort):
		response.Render(w, r, response.Error(response.CodeValidation, "Password must be at least 8 characters."))
		return
	case errors.Is(err, pwd.ErrTooLong):
		response.Render(w, r, response.Error(response.CodeValidation, "Password must be at most 72 bytes."))
		return
	case errors.Is(err, models.ErrUserNotFound):
		log.Warn("user not found", slog.String("user_uid", userUID))
		response.Render(w, r, response.Error(response.CodeUnauthorized, "user not found"))
		return
	default:
		log.Error("failed to change password", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInternal, "internal error"))
		return
	}

	log.Info("password changed", slog.String("user_uid", userUID))
	response.Render(w, r, response.OK(nil))
}
