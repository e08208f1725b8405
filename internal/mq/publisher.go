package mq

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/streadway/amqp"

	"pay-core-api/internal/dal"
)

// RabbitPublisher 把事件发布到 pay_events 交换机，实现 event.Publisher
type RabbitPublisher struct{}

func NewPublisher() *RabbitPublisher {
	return &RabbitPublisher{}
}

func (p *RabbitPublisher) Publish(routingKey string, msg any) error {
	if dal.RabbitCh == nil {
		return errors.New("rabbitmq channel not initialized")
	}
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	err = dal.RabbitCh.Publish(
		"pay_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}
