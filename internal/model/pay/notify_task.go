package paymodel

import "time"

// PayNotifyTask 商户回调通知任务，订单支付成功后写入并投递到 MQ。
type PayNotifyTask struct {
	ID             uint64     `gorm:"column:id;primaryKey" json:"id"`                      // 任务ID
	Type           int8       `gorm:"column:type;not null" json:"type"`                    // 任务类型 1:订单
	DataID         uint64     `gorm:"column:data_id;not null;index" json:"dataId"`         // 关联数据ID（订单ID）
	Status         int8       `gorm:"column:status;not null" json:"status"`                // 通知状态
	NotifyTimes    int        `gorm:"column:notify_times;not null" json:"notifyTimes"`     // 已通知次数
	MaxNotifyTimes int        `gorm:"column:max_notify_times;not null" json:"maxNotifyTimes"` // 最大通知次数
	LastNotifyTime *time.Time `gorm:"column:last_notify_time" json:"lastNotifyTime"`       // 最近一次通知时间
	CreateTime     time.Time  `gorm:"column:create_time;autoCreateTime" json:"createTime"` // 创建时间
	UpdateTime     time.Time  `gorm:"column:update_time;autoUpdateTime" json:"updateTime"` // 更新时间
}

func (PayNotifyTask) TableName() string { return "pay_notify_task" }
