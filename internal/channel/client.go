package channel

import (
	"context"
	"time"
)

// UnifiedOrderReq 渠道无关的统一下单请求。
// OutTradeNo 是支付拓展单号，不是订单ID：渠道侧的幂等以拓展单为粒度，
// 同一订单可以多次尝试支付。
type UnifiedOrderReq struct {
	OutTradeNo string            `json:"outTradeNo"` // 对外支付单号（拓展单 no）
	Subject    string            `json:"subject"`
	Body       string            `json:"body"`
	Amount     int64             `json:"amount"` // 最小货币单位
	NotifyURL  string            `json:"notifyUrl"`
	ExpireTime *time.Time        `json:"expireTime"`
	Extras     map[string]string `json:"extras"` // 渠道侧扩展参数，如 openid
}

// UnifiedOrderResp 下单成功后返回给调用方的拉起支付凭据
type UnifiedOrderResp struct {
	InvokeType string `json:"invokeType"` // url / qrcode / form
	InvokeData string `json:"invokeData"`
}

// NotifyResult 渠道回调解析结果
type NotifyResult struct {
	No             string    `json:"no"`             // 对外支付单号（拓展单 no）
	ChannelOrderNo string    `json:"channelOrderNo"` // 渠道侧订单号
	ChannelUserID  string    `json:"channelUserId"`  // 渠道侧用户标识
	SuccessTime    time.Time `json:"successTime"`    // 渠道侧支付成功时间
}

// Client 单个渠道实例的支付能力。状态机只依赖这两个方法，
// 渠道协议细节全部收在实现里。
type Client interface {
	// UnifiedOrder 调用渠道下单。渠道返回业务失败时必须返回 error，
	// 不允许把失败包装成成功响应。
	UnifiedOrder(ctx context.Context, req *UnifiedOrderReq) (*UnifiedOrderResp, error)
	// ParseNotify 把渠道回调原始报文解析为结构化结果
	ParseNotify(ctx context.Context, raw []byte) (*NotifyResult, error)
}
