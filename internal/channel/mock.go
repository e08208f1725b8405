package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// MockClient 沙箱渠道，不发起真实外部调用。
// 下单直接返回收银台链接，回调报文为本服务约定的 JSON。
type MockClient struct {
	cashierURL string
}

type mockConfig struct {
	CashierURL string `json:"cashierUrl"`
}

func NewMockClient(configJSON string) (*MockClient, error) {
	cfg := mockConfig{CashierURL: "https://sandbox-cashier.example.com/pay"}
	if configJSON != "" {
		if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
			return nil, fmt.Errorf("mock channel config invalid: %w", err)
		}
	}
	return &MockClient{cashierURL: cfg.CashierURL}, nil
}

func (c *MockClient) UnifiedOrder(ctx context.Context, req *UnifiedOrderReq) (*UnifiedOrderResp, error) {
	if req.Amount <= 0 {
		return nil, errors.New("mock channel rejected: amount must be positive")
	}
	return &UnifiedOrderResp{
		InvokeType: "url",
		InvokeData: fmt.Sprintf("%s?outTradeNo=%s&amount=%d", c.cashierURL, req.OutTradeNo, req.Amount),
	}, nil
}

// mockNotifyPayload 沙箱回调报文
type mockNotifyPayload struct {
	OutTradeNo     string `json:"outTradeNo"`
	ChannelOrderNo string `json:"channelOrderNo"`
	ChannelUserID  string `json:"channelUserId"`
	Status         string `json:"status"`
	SuccessTime    int64  `json:"successTime"` // Unix 秒
}

func (c *MockClient) ParseNotify(ctx context.Context, raw []byte) (*NotifyResult, error) {
	var p mockNotifyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("mock notify unmarshal failed: %w", err)
	}
	if p.OutTradeNo == "" {
		return nil, errors.New("mock notify missing outTradeNo")
	}
	if p.Status != "SUCCESS" {
		return nil, fmt.Errorf("mock notify unexpected status: %s", p.Status)
	}
	successTime := time.Now()
	if p.SuccessTime > 0 {
		successTime = time.Unix(p.SuccessTime, 0)
	}
	return &NotifyResult{
		No:             p.OutTradeNo,
		ChannelOrderNo: p.ChannelOrderNo,
		ChannelUserID:  p.ChannelUserID,
		SuccessTime:    successTime,
	}, nil
}
