package mainmodel

// PayChannel 应用下绑定的具体支付渠道账号（如某个微信支付商户号）
type PayChannel struct {
	ChannelID  uint64 `gorm:"column:channel_id;primaryKey" json:"channelId"` // 渠道ID
	AppID      uint64 `gorm:"column:app_id" json:"appId"`                    // 所属应用ID
	Code       string `gorm:"column:code" json:"code"`                       // 渠道编码，如 wx_pub / alipay_qr / mock
	Status     int8   `gorm:"column:status" json:"status"`                   // 状态 1:启用 0:禁用
	ConfigJSON string `gorm:"column:config_json" json:"-"`                   // 渠道客户端配置
}

func (PayChannel) TableName() string { return "pay_channel" }
