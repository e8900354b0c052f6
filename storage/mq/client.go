package mq

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"kaamtrack/config"
)

var (
	conn     *amqp.Connection
	connOnce sync.Once
	connErr  error
)

const (
	// ReminderExchange 考勤提醒用的延迟交换机（x-delayed-message 插件）
	ReminderExchange = "kaamtrack.reminder.delayed"
	// ReminderQueue 考勤提醒队列
	ReminderQueue = "kaamtrack.reminder"
	// ReminderRoutingKey 考勤提醒路由键
	ReminderRoutingKey = "attendance.reminder"
)

func Init() error {
	connOnce.Do(func() {
		conn, connErr = amqp.Dial(config.Cfg.GetRabbitMQURL())
		if connErr != nil {
			return
		}

		connErr = declareTopology()
	})

	return connErr
}

// declareTopology 声明交换机和队列，幂等
func declareTopology() error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		ReminderExchange,
		"x-delayed-message",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		amqp.Table{"x-delayed-type": "direct"},
	)
	if err != nil {
		return err
	}

	_, err = ch.QueueDeclare(
		ReminderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return err
	}

	return ch.QueueBind(ReminderQueue, ReminderRoutingKey, ReminderExchange, false, nil)
}

func Connection() *amqp.Connection {
	return conn
}

func Close(ctx context.Context) error {
	if conn == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() {
		done <- conn.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
