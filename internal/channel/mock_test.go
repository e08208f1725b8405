package channel

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestMockUnifiedOrder(t *testing.T) {
	c, err := NewMockClient("")
	if err != nil {
		t.Fatalf("new mock client: %v", err)
	}

	resp, err := c.UnifiedOrder(context.Background(), &UnifiedOrderReq{
		OutTradeNo: "20240101120000123",
		Subject:    "测试商品",
		Amount:     1000,
	})
	if err != nil {
		t.Fatalf("unified order: %v", err)
	}
	if resp.InvokeType != "url" || !strings.Contains(resp.InvokeData, "20240101120000123") {
		t.Fatalf("invoke data should carry out trade no: %+v", resp)
	}

	if _, err := c.UnifiedOrder(context.Background(), &UnifiedOrderReq{OutTradeNo: "x", Amount: 0}); err == nil {
		t.Fatal("zero amount should be rejected")
	}
}

func TestMockParseNotify(t *testing.T) {
	c, _ := NewMockClient("")

	raw := []byte(`{"outTradeNo":"20240101120000123","channelOrderNo":"4200001","channelUserId":"u1","status":"SUCCESS","successTime":1704100000}`)
	result, err := c.ParseNotify(context.Background(), raw)
	if err != nil {
		t.Fatalf("parse notify: %v", err)
	}
	if result.No != "20240101120000123" || result.ChannelOrderNo != "4200001" {
		t.Fatalf("result wrong: %+v", result)
	}
	if !result.SuccessTime.Equal(time.Unix(1704100000, 0)) {
		t.Fatalf("success time wrong: %v", result.SuccessTime)
	}

	if _, err := c.ParseNotify(context.Background(), []byte(`{"outTradeNo":"x","status":"FAIL"}`)); err == nil {
		t.Fatal("non-success status should be rejected")
	}
	if _, err := c.ParseNotify(context.Background(), []byte(`{"status":"SUCCESS"}`)); err == nil {
		t.Fatal("missing outTradeNo should be rejected")
	}
	if _, err := c.ParseNotify(context.Background(), []byte(`not-json`)); err == nil {
		t.Fatal("bad json should be rejected")
	}
}

func TestMockClientConfig(t *testing.T) {
	c, err := NewMockClient(`{"cashierUrl":"https://pay.example.com/cashier"}`)
	if err != nil {
		t.Fatalf("new mock client with config: %v", err)
	}
	resp, err := c.UnifiedOrder(context.Background(), &UnifiedOrderReq{OutTradeNo: "n1", Amount: 1})
	if err != nil {
		t.Fatalf("unified order: %v", err)
	}
	if !strings.HasPrefix(resp.InvokeData, "https://pay.example.com/cashier") {
		t.Fatalf("cashier url not applied: %s", resp.InvokeData)
	}

	if _, err := NewMockClient(`{bad`); err == nil {
		t.Fatal("invalid config json should fail")
	}
}

func TestRegistry(t *testing.T) {
	if Get(987654) != nil {
		t.Fatal("unregistered channel should return nil")
	}
	c, _ := NewMockClient("")
	Register(987654, c)
	if Get(987654) != c {
		t.Fatal("registered client not returned")
	}
}

func TestNewClientUnsupportedCode(t *testing.T) {
	if _, err := NewClient("union_pay", ""); err == nil {
		t.Fatal("unsupported code should fail")
	}
	if _, err := NewClient("mock", ""); err != nil {
		t.Fatalf("mock client: %v", err)
	}
}
