package rabbitmq

import "github.com/magabrotheeeer/profile-settings/internal/models"

// QueueConfig связывает очередь с ключом маршрутизации.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Очереди отправщика уведомлений, по одной на тип события.
const (
	QueueExpiring  = "notification.expiring"
	QueuePurchased = "notification.purchased"
	QueueBalance   = "notification.balance"
)

// GetNotificationQueues возвращает очереди, которые слушает отправщик уведомлений.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueExpiring, RoutingKey: RoutingKey(models.EventServiceAlmostExpired)},
		{QueueName: QueuePurchased, RoutingKey: RoutingKey(models.EventPurchased)},
		{QueueName: QueueBalance, RoutingKey: RoutingKey(models.EventBalanceChanged)},
	}
}

// RoutingKey возвращает ключ маршрутизации для типа события.
func RoutingKey(kind models.EventKind) string {
	return string(kind)
}
