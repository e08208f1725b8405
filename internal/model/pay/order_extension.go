package paymodel

import "time"

// PayOrderExtension 支付拓展单，一次具体的支付尝试。
// No 是传给渠道的对外单号，渠道回调凭它定位到本行。
type PayOrderExtension struct {
	ID                uint64    `gorm:"column:id;primaryKey" json:"id"`                                   // 拓展单ID
	No                string    `gorm:"column:no;type:varchar(64);not null;uniqueIndex:uk_no" json:"no"`  // 对外支付单号
	OrderID           uint64    `gorm:"column:order_id;not null;index" json:"orderId"`                    // 关联订单ID
	ChannelID         uint64    `gorm:"column:channel_id;not null" json:"channelId"`                      // 渠道ID
	ChannelCode       string    `gorm:"column:channel_code;type:varchar(32);not null" json:"channelCode"` // 渠道编码
	Status            int8      `gorm:"column:status;not null" json:"status"`                             // 支付状态
	ChannelNotifyData *string   `gorm:"column:channel_notify_data;type:text" json:"channelNotifyData"`    // 渠道回调原始报文，留档可回放
	CreateTime        time.Time `gorm:"column:create_time;autoCreateTime" json:"createTime"`              // 创建时间
	UpdateTime        time.Time `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`              // 更新时间
}

func (PayOrderExtension) TableName() string { return "pay_order_extension" }
