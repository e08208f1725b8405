package mainmodel

// CommonStatus 应用/渠道启用状态
const (
	StatusEnabled  int8 = 1
	StatusDisabled int8 = 0
)

// PayApp 商户接入应用，携带商户维度的回调配置
type PayApp struct {
	AppID      uint64 `gorm:"column:app_id;primaryKey" json:"appId"`       // 应用ID
	MerchantID uint64 `gorm:"column:merchant_id" json:"merchantId"`        // 所属商户ID
	Name       string `gorm:"column:name" json:"name"`                     // 应用名称
	Status     int8   `gorm:"column:status" json:"status"`                 // 状态 1:启用 0:禁用
	NotifyURL  string `gorm:"column:pay_notify_url" json:"payNotifyUrl"`   // 商户异步通知地址
	ApiSecret  string `gorm:"column:api_secret" json:"-"`                  // 商户通知签名密钥
}

func (PayApp) TableName() string { return "pay_app" }
