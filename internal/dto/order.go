package dto

import "time"

// CreateOrderReq 创建支付订单请求
type CreateOrderReq struct {
	AppID           uint64     `json:"appId" binding:"required"`
	MerchantOrderID string     `json:"merchantOrderId" binding:"required"`
	Subject         string     `json:"subject" binding:"required"`
	Body            string     `json:"body"`
	Amount          int64      `json:"amount" binding:"required"` // 最小货币单位
	ExpireTime      *time.Time `json:"expireTime"`
}

// CreateOrderResp 创建支付订单响应
type CreateOrderResp struct {
	OrderID uint64 `json:"orderId,string"`
}

// SubmitOrderReq 提交支付订单请求
type SubmitOrderReq struct {
	OrderID       uint64            `json:"orderId,string" binding:"required"`
	AppID         uint64            `json:"appId" binding:"required"`
	ChannelCode   string            `json:"channelCode" binding:"required"`
	ChannelExtras map[string]string `json:"channelExtras"`
}

// SubmitOrderResp 提交支付订单响应，携带拉起支付所需的凭据
type SubmitOrderResp struct {
	ExtensionID uint64 `json:"extensionId,string"`
	InvokeType  string `json:"invokeType"`
	InvokeData  string `json:"invokeData"`
}
