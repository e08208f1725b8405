package channel

import (
	"fmt"
	"sync"
)

// 渠道客户端注册表，按渠道ID索引。服务启动时根据主库的渠道配置
// 构建客户端并注册，状态机只通过 Get 解析能力。
var clientMap sync.Map // map[uint64]Client

// Register 绑定渠道ID与客户端
func Register(channelID uint64, c Client) {
	clientMap.Store(channelID, c)
}

// Get 获取渠道客户端，未注册时返回 nil
func Get(channelID uint64) Client {
	val, ok := clientMap.Load(channelID)
	if !ok {
		return nil
	}
	return val.(Client)
}

// NewClient 按渠道编码构建客户端
func NewClient(code string, configJSON string) (Client, error) {
	switch code {
	case "mock":
		return NewMockClient(configJSON)
	case "wx_pub", "wx_native", "alipay_qr", "alipay_wap":
		return NewGatewayClient(code, configJSON)
	default:
		return nil, fmt.Errorf("unsupported channel code: %s", code)
	}
}
