// Package info реализует HTTP-обработчик чтения профиля текущего пользователя.
package info

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-settings/internal/http/middlewarectx"
	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Service возвращает профиль пользователя.
type Service interface {
	GetInfo(ctx context.Context, userUID string) (models.UserInfo, error)
}

type Handler struct {
	log     *slog.Logger
	service Service
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Tags User
// @Produce  json
// @Success 200 {object} response.Response "code 0, data: UserInfo"
// @Failure 401 {object} response.Response "code 1003"
// @Failure 500 {object} response.Response "code 1004"
// @Router /user/info [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.info"

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

	info, err := h.service.GetInfo(r.Context(), userUID)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Warn("user not found", slog.String("user_uid", userUID))
		response.Render(w, r, response.Error(response.CodeUnauthorized, "user not found"))
		return
	}
	if err != nil {
		log.Error("failed to get user info", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInternal, "internal error"))
		return
	}

	response.Render(w, r, response.OK(info))
}
