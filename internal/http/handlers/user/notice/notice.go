// Package notice реализует HTTP-обработчик изменения настроек уведомлений.
//
// Клиент присылает профиль целиком; сохраняются только поля настроек
// уведомлений, в ответ возвращается профиль после сохранения.
package notice

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
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Service сохраняет настройки уведомлений.
type Service interface {
	SetNotice(ctx context.Context, userUID string, notice models.NoticeSettings) (models.UserInfo, error)
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
// @Summary Настройки уведомлений
// @Description Принимает профиль целиком, сохраняет только поля уведомлений.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body models.UserInfo true "Профиль с изменёнными настройками"
// @Success 200 {object} response.Response "code 0, data: UserInfo"
// @Failure 400 {object} response.Response "code 1001"
// @Failure 422 {object} response.Response "code 1002"
// @Failure 401 {object} response.Response "code 1003"
// @Failure 500 {object} response.Response "code 1004"
// @Router /user/notice [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.notice"

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

	var req models.UserInfo
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInvalidBody, "invalid request body"))
		return
	}
	if req.ID != "" && req.ID != userUID {
		log.Warn("body id differs from token uid, ignoring", slog.String("body_id", req.ID))
	}

	if err := h.validate.Struct(req.NoticeSettings); err != nil {
		log.Warn("validation failed", sl.Err(err))
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	info, err := h.service.SetNotice(r.Context(), userUID, req.NoticeSettings)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Warn("user not found", slog.String("user_uid", userUID))
		response.Render(w, r, response.Error(response.CodeUnauthorized, "user not found"))
		return
	}
	if err != nil {
		log.Error("failed to update notice settings", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInternal, "internal error"))
		return
	}

	response.Render(w, r, response.OK(info))
}
