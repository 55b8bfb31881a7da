// Package metrics содержит счётчики Prometheus сервиса профиля и отправщика уведомлений.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Значения метки status.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

var (
	// ProfileUpdates считает изменения профиля по операции (password, notice) и результату.
	ProfileUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "profile_updates_total",
		Help: "Total number of profile updates",
	}, []string{"op", "status"})

	// Notifications считает обработанные события уведомлений по типу и результату.
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Total number of processed notification events",
	}, []string{"kind", "status"})
)

// ObserveProfileUpdate увеличивает ProfileUpdates для операции op.
func ObserveProfileUpdate(op string, err error) {
	ProfileUpdates.WithLabelValues(op, statusOf(err)).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}
