package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
	"github.com/magabrotheeeer/profile-settings/internal/models"
)

// Имена полей настроек уведомлений, как в JSON.
const (
	FieldEnableTgBot              = "enable_tg_bot"
	FieldTgID                     = "tg_id"
	FieldWhenServiceAlmostExpired = "when_service_almost_expired"
	FieldWhenPurchased            = "when_purchased"
	FieldWhenBalanceChanged       = "when_balance_changed"
)

// ToggleFields: переключатели панели уведомлений в порядке отображения.
var ToggleFields = []string{
	FieldEnableTgBot,
	FieldWhenServiceAlmostExpired,
	FieldWhenPurchased,
	FieldWhenBalanceChanged,
}

// NoticePatch: частичное обновление настроек. nil означает "не менять".
type NoticePatch struct {
	EnableTgBot              *bool
	TgID                     *models.TelegramID
	WhenServiceAlmostExpired *bool
	WhenPurchased            *bool
	WhenBalanceChanged       *bool
}

// Toggle строит патч для одного переключателя.
func Toggle(field string, on bool) (NoticePatch, error) {
	var p NoticePatch
	switch field {
	case FieldEnableTgBot:
		p.EnableTgBot = &on
	case FieldWhenServiceAlmostExpired:
		p.WhenServiceAlmostExpired = &on
	case FieldWhenPurchased:
		p.WhenPurchased = &on
	case FieldWhenBalanceChanged:
		p.WhenBalanceChanged = &on
	default:
		return NoticePatch{}, fmt.Errorf("unknown notice field %q", field)
	}
	return p, nil
}

// Apply накладывает патч на профиль. Остальные поля профиля не меняются.
func (p NoticePatch) Apply(info models.UserInfo) models.UserInfo {
	if p.EnableTgBot != nil {
		info.EnableTgBot = *p.EnableTgBot
	}
	if p.TgID != nil {
		info.TgID = *p.TgID
	}
	if p.WhenServiceAlmostExpired != nil {
		info.WhenServiceAlmostExpired = *p.WhenServiceAlmostExpired
	}
	if p.WhenPurchased != nil {
		info.WhenPurchased = *p.WhenPurchased
	}
	if p.WhenBalanceChanged != nil {
		info.WhenBalanceChanged = *p.WhenBalanceChanged
	}
	return info
}

// NotificationPanel меняет настройки уведомлений по одному действию пользователя.
//
// Обновления выполняются строго по очереди: следующее начинается только
// после ответа на предыдущее и сливается с уже подтверждённым состоянием.
type NotificationPanel struct {
	log      *slog.Logger
	api      NoticeAPI
	store    InfoStore
	notifier Notifier
	validate *validator.Validate

	sem chan struct{}

	inputMu sync.Mutex
	tgInput string
}

func NewNotificationPanel(log *slog.Logger, api NoticeAPI, store InfoStore, notifier Notifier) *NotificationPanel {
	return &NotificationPanel{
		log:      log,
		api:      api,
		store:    store,
		notifier: notifier,
		validate: validator.New(),
		sem:      make(chan struct{}, 1),
	}
}

// SetPreference сливает патч с текущим профилем и отправляет объект целиком.
// При успехе хранилище получает тот же слитый объект.
func (p *NotificationPanel) SetPreference(ctx context.Context, patch NoticePatch) (models.UserInfo, error) {
	const op = "settings.SetPreference"
	log := p.log.With(slog.String("op", op))

	if err := ctx.Err(); err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, ctx.Err())
	}
	defer func() { <-p.sem }()

	current, ok := p.store.Get()
	if !ok {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, ErrNotLoaded)
	}
	merged := patch.Apply(current)

	if err := p.validate.Struct(merged.NoticeSettings); err != nil {
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, noticeFormError(err))
	}

	if _, err := p.api.SetNotice(ctx, merged); err != nil {
		log.Error("failed to update notice settings", sl.Err(err))
		p.notifier.Error(errorMessage(err))
		return models.UserInfo{}, fmt.Errorf("%s: %w", op, err)
	}

	p.store.Set(merged)
	log.Debug("notice settings updated")
	return merged, nil
}

// SetTelegramInput запоминает введённый Telegram ID до подтверждения.
func (p *NotificationPanel) SetTelegramInput(s string) {
	p.inputMu.Lock()
	p.tgInput = s
	p.inputMu.Unlock()
}

// TelegramInput возвращает текущее содержимое поля ввода.
func (p *NotificationPanel) TelegramInput() string {
	p.inputMu.Lock()
	defer p.inputMu.Unlock()
	return p.tgInput
}

// BindTelegram отправляет введённый Telegram ID.
// Пустой ввод и "0" не отправляются: возвращается (false, nil).
func (p *NotificationPanel) BindTelegram(ctx context.Context) (bool, error) {
	id := models.TelegramID(strings.TrimSpace(p.TelegramInput()))
	if !id.Bound() {
		return false, nil
	}
	if _, err := p.SetPreference(ctx, NoticePatch{TgID: &id}); err != nil {
		return false, err
	}
	return true, nil
}

func noticeFormError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fe := &FormError{Fields: make(map[string]string, len(verrs))}
	for _, e := range verrs {
		switch e.Field() {
		case "TgID":
			fe.Fields[FieldTgID] = "Telegram ID can contain only numbers."
		default:
			fe.Fields[e.Field()] = fmt.Sprintf("Field %s is invalid.", e.Field())
		}
	}
	return fe
}
