// Package health отдаёт состояние зависимостей API.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/profile-settings/internal/http/response"
	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
)

const checkTimeout = 2 * time.Second

// Checker: зависимость, которую можно проверить.
type Checker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	log    *slog.Logger
	checks map[string]Checker
}

func New(log *slog.Logger, checks map[string]Checker) *Handler {
	return &Handler{
		log:    log,
		checks: checks,
	}
}

// ServeHTTP godoc
// @Summary Состояние зависимостей
// @Tags Health
// @Produce  json
// @Success 200 {object} response.Response "code 0"
// @Failure 500 {object} response.Response "code 1004"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := make(map[string]string, len(names))
	healthy := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := h.checks[name].Ping(ctx)
		cancel()
		if err != nil {
			log.Error("dependency is unhealthy", slog.String("dependency", name), sl.Err(err))
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		response.Render(w, r, response.Response{Code: response.CodeInternal, Msg: "unhealthy", Data: status})
		return
	}
	response.Render(w, r, response.OK(status))
}
