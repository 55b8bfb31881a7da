// Package settings содержит логику страницы настроек профиля:
// панель уведомлений с привязкой Telegram и форму смены пароля.
//
// Панели не знают, как отображаются. Состояние профиля берётся из
// внедрённого InfoStore, запросы уходят через NoticeAPI и PasswordAPI,
// а сообщения для пользователя выводятся через Notifier.
package settings

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/magabrotheeeer/profile-settings/internal/client/api"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

var (
	// ErrNotLoaded: профиль ещё не загружен в хранилище.
	ErrNotLoaded = errors.New("user info is not loaded")
	// ErrBusy: предыдущая отправка формы ещё не завершилась.
	ErrBusy = errors.New("request already in flight")
)

// NoticeAPI отправляет настройки уведомлений (POST /user/notice).
type NoticeAPI interface {
	SetNotice(ctx context.Context, info models.UserInfo) (models.UserInfo, error)
}

// PasswordAPI меняет пароль (POST /user/password).
type PasswordAPI interface {
	ChangePassword(ctx context.Context, password, repeat string) error
}

// InfoStore: хранилище профиля текущего пользователя.
type InfoStore interface {
	Get() (models.UserInfo, bool)
	Set(info models.UserInfo)
}

// Notifier показывает короткие сообщения пользователю.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// FormError содержит ошибки заполнения формы. Ключ Fields совпадает с именем поля в JSON.
type FormError struct {
	Fields map[string]string
}

func (e *FormError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		msg := e.Fields[k]
		if seen[msg] {
			continue
		}
		seen[msg] = true
		msgs = append(msgs, msg)
	}
	return strings.Join(msgs, " ")
}

// errorMessage подбирает текст для тоста об ошибке.
func errorMessage(err error) string {
	var apiErr *api.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Msg != "":
		return apiErr.Msg
	case errors.Is(err, api.ErrNetwork):
		return "Network error, please try again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Request cancelled."
	default:
		return "Something went wrong, please try again."
	}
}
