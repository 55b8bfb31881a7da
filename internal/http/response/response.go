// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Любой ответ сервера имеет вид
// {"code": int, "msg": string, "data": any}, где code == 0 означает успех.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// Коды ответа.
const (
	CodeOK               = 0
	CodeInvalidBody      = 1001
	CodeValidation       = 1002
	CodeUnauthorized     = 1003
	CodeInternal         = 1004
	CodeTooManyRequests  = 1005
	CodePasswordMismatch = 1006
)

// MsgOK: сообщение успешного ответа.
const MsgOK = "ok"

// OK возвращает успешный Response с переданными данными.
func OK(data any) Response {
	return Response{
		Code: CodeOK,
		Msg:  MsgOK,
		Data: data,
	}
}

// Error возвращает Response с кодом ошибки и сообщением.
func Error(code int, msg string) Response {
	return Response{
		Code: code,
		Msg:  msg,
	}
}

// HTTPStatus возвращает HTTP-статус, соответствующий коду ответа.
func HTTPStatus(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeInvalidBody:
		return http.StatusBadRequest
	case CodeValidation, CodePasswordMismatch:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Render пишет ответ с HTTP-статусом, соответствующим его коду.
func Render(w http.ResponseWriter, r *http.Request, resp Response) {
	render.Status(r, HTTPStatus(resp.Code))
	render.JSON(w, r, resp)
}

// ValidationError формирует Response на основе ошибок валидации.
// Каждое нарушение превращается в человеко‑читаемый текст, тексты объединяются через пробел.
// Несовпадение пароля с подтверждением даёт отдельный код CodePasswordMismatch.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string
	code := CodeValidation

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s is required.", err.Field()))
		case "min":
			if isPasswordField(err.Field()) {
				errsMsgs = append(errsMsgs, "Password must be at least 8 characters.")
			} else {
				errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s must be at least %s characters.", err.Field(), err.Param()))
			}
		case "eqfield":
			code = CodePasswordMismatch
			errsMsgs = append(errsMsgs, "Passwords do not match.")
		case "number", "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s can contain only numbers.", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s must be a valid email.", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s can contain only numbers and letters.", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("Field %s is not valid.", err.Field()))
		}
	}
	if code == CodePasswordMismatch && len(errsMsgs) > 1 {
		// длина проверяется раньше совпадения
		code = CodeValidation
	}
	return Response{
		Code: code,
		Msg:  strings.Join(dedup(errsMsgs), " "),
	}
}

func isPasswordField(field string) bool {
	return field == "Password" || field == "RePassword"
}

func dedup(msgs []string) []string {
	seen := make(map[string]struct{}, len(msgs))
	out := msgs[:0]
	for _, m := range msgs {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
