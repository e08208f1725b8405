package dto

// NotifyTaskMessage 商户通知任务 MQ 消息
type NotifyTaskMessage struct {
	TaskID     uint64 `json:"task_id"`
	Type       int8   `json:"type"`
	DataID     uint64 `json:"data_id"`
	RetryCount int    `json:"retry_count"`
}

// NotifyMerchantPayload 通知商户的回调报文
type NotifyMerchantPayload struct {
	MerchantOrderID string `json:"merchantOrderId"`
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	Amount          string `json:"amount"` // 主货币单位，两位小数
	SuccessTime     int64  `json:"successTime"`
	Sign            string `json:"sign"`
}
