package api

import (
	"errors"
	"fmt"

	"github.com/magabrotheeeer/profile-settings/internal/http/response"
)

var (
	// ErrNetwork: запрос не дошёл до сервера или ответ не был получен.
	ErrNetwork = errors.New("network error")
	// ErrBadResponse: сервер ответил не конвертом {code, msg, data}.
	ErrBadResponse = errors.New("unexpected response")
	// ErrValidation: сервер отклонил данные (коды 1002 и 1006).
	ErrValidation = errors.New("validation failed")
	// ErrUnauthorized: токен отсутствует, истёк или пользователь не найден.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError: ответ сервера с ненулевым кодом.
type APIError struct {
	Code int
	Msg  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

// Is сопоставляет код ответа с ErrValidation и ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Code == response.CodeValidation || e.Code == response.CodePasswordMismatch
	case ErrUnauthorized:
		return e.Code == response.CodeUnauthorized
	default:
		return false
	}
}
