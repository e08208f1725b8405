package dal

import (
	"log"

	"pay-core-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues
	if err := ch.ExchangeDeclare("pay_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("pay_notify_order", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare pay_notify_order failed: %v", err)
	}
	if err := ch.QueueBind("pay_notify_order", "notify.order", "pay_events", false, nil); err != nil {
		log.Fatalf("queue bind pay_notify_order failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
