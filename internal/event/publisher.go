package event

// Publisher 事件发布能力，按路由键投递消息
type Publisher interface {
	Publish(routingKey string, msg any) error
}
