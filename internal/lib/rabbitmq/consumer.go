package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/profile-settings/internal/lib/sl"
)

// Handler обрабатывает тело одного сообщения.
// Ошибка возвращает сообщение в очередь один раз; если обработка упала и
// на повторной доставке, сообщение отклоняется без возврата в очередь
// и уходит в dead-letter exchange, если он настроен у очереди.
type Handler func(ctx context.Context, body []byte) error

// ConsumerMessage запускает потребителя очереди queueName.
// Одновременно обрабатывается не больше 10 сообщений; потребитель останавливается по ctx.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler Handler, log *slog.Logger) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go consume(ctx, delivery, handler, log.With(slog.String("queue", queueName)))
	return nil
}

func consume(ctx context.Context, delivery <-chan amqp.Delivery, handler Handler, log *slog.Logger) {
	sem := make(chan struct{}, 10)
	for {
		select {
		case d, ok := <-delivery:
			if !ok {
				return
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleDelivery(ctx, d, handler, log)
			}(d)
		case <-ctx.Done():
			return
		}
	}
}

func handleDelivery(ctx context.Context, d amqp.Delivery, handler Handler, log *slog.Logger) {
	if err := handler(ctx, d.Body); err != nil {
		requeue := !d.Redelivered
		log.Error("failed to handle message", sl.Err(err), slog.Bool("requeue", requeue))
		if nackErr := d.Nack(false, requeue); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
