package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"pay-core-api/internal/utils"
)

// GatewayClient 通过统一网关协议对接的真实渠道（微信/支付宝等聚合网关）。
// 网关协议为 JSON over HTTP，code 为 "0" 表示业务成功。
type GatewayClient struct {
	code   string
	apiURL string
	mchNo  string
	apiKey string
	retry  int
}

type gatewayConfig struct {
	ApiURL string `json:"apiUrl"`
	MchNo  string `json:"mchNo"`
	ApiKey string `json:"apiKey"`
	Retry  int    `json:"retry"`
}

func NewGatewayClient(code string, configJSON string) (*GatewayClient, error) {
	var cfg gatewayConfig
	if err := json.Unmarshal([]byte(configJSON), &cfg); err != nil {
		return nil, fmt.Errorf("gateway channel config invalid: %w", err)
	}
	if cfg.ApiURL == "" || cfg.MchNo == "" || cfg.ApiKey == "" {
		return nil, errors.New("gateway channel config missing apiUrl/mchNo/apiKey")
	}
	if cfg.Retry <= 0 {
		cfg.Retry = 2
	}
	return &GatewayClient{
		code:   code,
		apiURL: cfg.ApiURL,
		mchNo:  cfg.MchNo,
		apiKey: cfg.ApiKey,
		retry:  cfg.Retry,
	}, nil
}

func (c *GatewayClient) UnifiedOrder(ctx context.Context, req *UnifiedOrderReq) (*UnifiedOrderResp, error) {
	params := map[string]interface{}{
		"mchNo":      c.mchNo,
		"payType":    c.code,
		"outTradeNo": req.OutTradeNo,
		"subject":    req.Subject,
		"body":       req.Body,
		"amount":     req.Amount,
		"notifyUrl":  req.NotifyURL,
	}
	if req.ExpireTime != nil {
		params["expireTime"] = req.ExpireTime.Unix()
	}
	for k, v := range req.Extras {
		params[k] = v
	}

	var resp string
	err := utils.DoWithRetry(ctx, c.retry, 2*time.Second, func() error {
		r, err := utils.HttpPostJsonWithContext(ctx, c.apiURL, params)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gateway unified order request failed: %w", err)
	}

	var response struct {
		Code utils.StringOrNumber `json:"code"`
		Msg  string               `json:"msg"`
		Data struct {
			InvokeType string `json:"invokeType"`
			PayURL     string `json:"payUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(resp), &response); err != nil {
		return nil, fmt.Errorf("gateway response unmarshal failed: %w", err)
	}
	if string(response.Code) != "0" {
		return nil, fmt.Errorf("gateway business error: code=%s msg=%s", response.Code, response.Msg)
	}
	if response.Data.PayURL == "" {
		return nil, errors.New("gateway returned empty pay url")
	}
	invokeType := response.Data.InvokeType
	if invokeType == "" {
		invokeType = "url"
	}
	return &UnifiedOrderResp{InvokeType: invokeType, InvokeData: response.Data.PayURL}, nil
}

// gatewayNotifyPayload 网关回调报文，sign 为 MD5 参数签名
type gatewayNotifyPayload struct {
	OutTradeNo  string               `json:"outTradeNo"`
	OrderNo     string               `json:"orderNo"`
	UserID      string               `json:"userId"`
	Status      utils.StringOrNumber `json:"status"`
	SuccessTime int64                `json:"successTime"`
	Sign        string               `json:"sign"`
}

func (c *GatewayClient) ParseNotify(ctx context.Context, raw []byte) (*NotifyResult, error) {
	var p gatewayNotifyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("gateway notify unmarshal failed: %w", err)
	}
	if p.OutTradeNo == "" {
		return nil, errors.New("gateway notify missing outTradeNo")
	}

	signParams := map[string]string{
		"outTradeNo":  p.OutTradeNo,
		"orderNo":     p.OrderNo,
		"userId":      p.UserID,
		"status":      string(p.Status),
		"successTime": strconv.FormatInt(p.SuccessTime, 10),
		"sign":        p.Sign,
	}
	if !utils.VerifySign(signParams, c.apiKey) {
		return nil, errors.New("gateway notify sign mismatch")
	}
	if string(p.Status) != "SUCCESS" {
		return nil, fmt.Errorf("gateway notify unexpected status: %s", p.Status)
	}

	successTime := time.Now()
	if p.SuccessTime > 0 {
		successTime = time.Unix(p.SuccessTime, 0)
	}
	return &NotifyResult{
		No:             p.OutTradeNo,
		ChannelOrderNo: p.OrderNo,
		ChannelUserID:  p.UserID,
		SuccessTime:    successTime,
	}, nil
}
