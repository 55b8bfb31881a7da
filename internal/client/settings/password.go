package settings

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
)

const (
	msgPasswordTooShort = "Password must be at least 8 characters."
	msgPasswordMismatch = "Passwords do not match."
	msgPasswordChanged  = "Password changed, please log in again."
)

// PasswordForm: поля формы смены пароля.
type PasswordForm struct {
	Password   string `json:"password" validate:"required,min=8"`
	RePassword string `json:"re_password" validate:"required,min=8,eqfield=Password"`
}

// PasswordPanel проверяет и отправляет форму смены пароля.
type PasswordPanel struct {
	log      *slog.Logger
	api      PasswordAPI
	notifier Notifier
	validate *validator.Validate
	busy     atomic.Bool
}

func NewPasswordPanel(log *slog.Logger, api PasswordAPI, notifier Notifier) *PasswordPanel {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &PasswordPanel{
		log:      log,
		api:      api,
		notifier: notifier,
		validate: v,
	}
}

// Busy сообщает, идёт ли отправка формы.
func (p *PasswordPanel) Busy() bool {
	return p.busy.Load()
}

// Submit проверяет форму и при успехе меняет пароль. Сессия не завершается.
func (p *PasswordPanel) Submit(ctx context.Context, form PasswordForm) error {
	const op = "settings.Submit"
	log := p.log.With(slog.String("op", op))

	if err := p.Validate(form); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if !p.busy.CompareAndSwap(false, true) {
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}
	defer p.busy.Store(false)

	if err := p.api.ChangePassword(ctx, form.Password, form.RePassword); err != nil {
		log.Error("failed to change password", sl.Err(err))
		p.notifier.Error(errorMessage(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("password changed")
	p.notifier.Success(msgPasswordChanged)
	return nil
}

// Validate возвращает *FormError, если форма заполнена неверно.
func (p *PasswordPanel) Validate(form PasswordForm) error {
	err := p.validate.Struct(form)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fe := &FormError{Fields: make(map[string]string, len(verrs))}
	for _, e := range verrs {
		if e.Tag() == "eqfield" {
			fe.Fields[e.Field()] = msgPasswordMismatch
			continue
		}
		fe.Fields[e.Field()] = msgPasswordTooShort
	}
	return fe
}
