// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и настройки уведомлений.
// Структуры используются в бизнес‑логике, при работе с хранилищем
// и как JSON-контракт между сервером и клиентом профиля.
package models

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound возвращается хранилищем, если пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists возвращается при попытке зарегистрировать занятый username или email.
	ErrUserExists = errors.New("user already exists")
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID            string     // Уникальный идентификатор пользователя
	Email           string     // Электронная почта
	Username        string     // Имя пользователя (уникальное)
	PasswordHash    string     // Хэш пароля пользователя
	Role            string     // Роль пользователя, admin или user
	ServiceExpireAt *time.Time // Дата окончания оплаченного сервиса
	Notice          NoticeSettings
}

// NoticeSettings: подмножество профиля, отвечающее за уведомления.
type NoticeSettings struct {
	EnableTgBot              bool       `json:"enable_tg_bot"`
	TgID                     TelegramID `json:"tg_id" validate:"omitempty,number"`
	WhenServiceAlmostExpired bool       `json:"when_service_almost_expired"`
	WhenPurchased            bool       `json:"when_purchased"`
	WhenBalanceChanged       bool       `json:"when_balance_changed"`
}

// UserInfo: профиль пользователя в том виде, в котором его видит клиент.
// Эндпоинт настроек уведомлений принимает весь объект целиком,
// но сохраняет только поля NoticeSettings.
type UserInfo struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	ServiceExpireAt *time.Time `json:"service_expire_at,omitempty"`
	NoticeSettings
}

// Info собирает UserInfo из полной модели пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:              u.UUID,
		Username:        u.Username,
		Email:           u.Email,
		ServiceExpireAt: u.ServiceExpireAt,
		NoticeSettings:  u.Notice,
	}
}

// PasswordChange: тело запроса смены пароля.
type PasswordChange struct {
	Password   string `json:"password" validate:"required,min=8"`
	RePassword string `json:"re_password" validate:"required,min=8,eqfield=Password"`
}
