package paymodel

import "time"

// PayOrder 支付订单，每个 (app_id, merchant_order_id) 至多一行。
// 状态字段只由订单状态机的条件更新修改。
type PayOrder struct {
	ID                 uint64     `gorm:"column:id;primaryKey" json:"id"`                                           // 订单ID
	MerchantID         uint64     `gorm:"column:merchant_id;not null" json:"merchantId"`                            // 商户ID
	AppID              uint64     `gorm:"column:app_id;not null;uniqueIndex:uk_app_merchant_order" json:"appId"`    // 应用ID
	MerchantOrderID    string     `gorm:"column:merchant_order_id;type:varchar(64);not null;uniqueIndex:uk_app_merchant_order" json:"merchantOrderId"` // 商户订单号
	Subject            string     `gorm:"column:subject;type:varchar(32);not null" json:"subject"`                  // 商品标题
	Body               string     `gorm:"column:body;type:varchar(128);not null" json:"body"`                       // 商品描述
	NotifyURL          string     `gorm:"column:notify_url;type:varchar(255);not null" json:"notifyUrl"`            // 商户异步通知地址
	NotifyStatus       int8       `gorm:"column:notify_status;not null" json:"notifyStatus"`                        // 商户通知状态
	Amount             int64      `gorm:"column:amount;not null" json:"amount"`                                     // 支付金额，最小货币单位
	ExpireTime         *time.Time `gorm:"column:expire_time" json:"expireTime"`                                     // 订单失效时间
	SuccessTime        *time.Time `gorm:"column:success_time" json:"successTime"`                                   // 支付成功时间
	NotifyTime         *time.Time `gorm:"column:notify_time" json:"notifyTime"`                                     // 收到渠道回调时间
	SuccessExtensionID *uint64    `gorm:"column:success_extension_id" json:"successExtensionId"`                    // 支付成功的拓展单ID
	Status             int8       `gorm:"column:status;not null;index" json:"status"`                               // 支付状态
	RefundStatus       int8       `gorm:"column:refund_status;not null" json:"refundStatus"`                        // 退款状态
	RefundTimes        int        `gorm:"column:refund_times;not null" json:"refundTimes"`                          // 退款次数
	RefundAmount       int64      `gorm:"column:refund_amount;not null" json:"refundAmount"`                        // 累计退款金额
	ChannelID          *uint64    `gorm:"column:channel_id" json:"channelId"`                                       // 支付成功的渠道ID
	ChannelCode        *string    `gorm:"column:channel_code;type:varchar(32)" json:"channelCode"`                  // 支付成功的渠道编码
	ChannelOrderNo     *string    `gorm:"column:channel_order_no;type:varchar(64)" json:"channelOrderNo"`           // 渠道侧订单号
	ChannelUserID      *string    `gorm:"column:channel_user_id;type:varchar(64)" json:"channelUserId"`             // 渠道侧用户标识
	CreateTime         time.Time  `gorm:"column:create_time;autoCreateTime" json:"createTime"`                      // 创建时间
	UpdateTime         time.Time  `gorm:"column:update_time;autoUpdateTime" json:"updateTime"`                      // 更新时间
}

func (PayOrder) TableName() string { return "pay_order" }
