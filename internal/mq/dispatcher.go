package mq

import (
	"context"

	"pay-core-api/internal/config"
	"pay-core-api/internal/dao"
	"pay-core-api/internal/dto"
	"pay-core-api/internal/event"
	"pay-core-api/internal/idgen"
	paymodel "pay-core-api/internal/model/pay"
)

// NotifyDispatcher 商户通知任务派发：先落任务表，再投递 MQ。
// 实现 service.Dispatcher。
type NotifyDispatcher struct {
	tasks *dao.NotifyTaskDao
	pub   event.Publisher
}

func NewNotifyDispatcher(tasks *dao.NotifyTaskDao, pub event.Publisher) *NotifyDispatcher {
	return &NotifyDispatcher{tasks: tasks, pub: pub}
}

func (d *NotifyDispatcher) Enqueue(ctx context.Context, taskType int8, dataID uint64) error {
	task := &paymodel.PayNotifyTask{
		ID:             idgen.New(),
		Type:           taskType,
		DataID:         dataID,
		Status:         paymodel.NotifyStatusNo,
		MaxNotifyTimes: config.C.Pay.NotifyMaxRetry,
	}
	if err := d.tasks.Insert(ctx, task); err != nil {
		return err
	}
	return d.pub.Publish("notify.order", dto.NotifyTaskMessage{
		TaskID: task.ID,
		Type:   taskType,
		DataID: dataID,
	})
}
