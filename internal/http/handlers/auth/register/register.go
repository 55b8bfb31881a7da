// Package register реализует HTTP-обработчик регистрации пользователя.
package register

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
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Request: входные данные для регистрации
type Request struct {
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

// Service регистрирует пользователя и возвращает его uid.
type Service interface {
	Register(ctx context.Context, email, username, password string) (string, error)
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
// @Summary Регистрация пользователя
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "code 0, data: id, username"
// @Failure 400 {object} response.Response "code 1001"
// @Failure 422 {object} response.Response "code 1002"
// @Failure 500 {object} response.Response "code 1004"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		response.Render(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	uid, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if errors.Is(err, models.ErrUserExists) {
		log.Warn("user already exists", slog.String("username", req.Username))
		response.Render(w, r, response.Error(response.CodeValidation, "user already exists"))
		return
	}
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.Render(w, r, response.Error(response.CodeInternal, "failed to register user"))
		return
	}

	log.Info("user registered", slog.String("user_uid", uid))
	response.Render(w, r, response.OK(map[string]any{
		"id":       uid,
		"username": req.Username,
	}))
}
