package models

import "time"

// EventKind: тип события, о котором пользователь может получать уведомления.
type EventKind string

const (
	// EventServiceAlmostExpired: оплаченный сервис скоро закончится.
	EventServiceAlmostExpired EventKind = "service_almost_expired"
	// EventPurchased: успешная покупка.
	EventPurchased EventKind = "purchased"
	// EventBalanceChanged: изменился баланс.
	EventBalanceChanged EventKind = "balance_changed"
)

// NotificationEvent: сообщение в очереди уведомлений.
type NotificationEvent struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"user_uid"`
	Kind      EventKind `json:"kind"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Wants проверяет, хочет ли пользователь получить событие данного типа в Telegram.
func (n NoticeSettings) Wants(kind EventKind) bool {
	if !n.EnableTgBot || !n.TgID.Bound() {
		return false
	}
	switch kind {
	case EventServiceAlmostExpired:
		return n.WhenServiceAlmostExpired
	case EventPurchased:
		return n.WhenPurchased
	case EventBalanceChanged:
		return n.WhenBalanceChanged
	default:
		return false
	}
}
