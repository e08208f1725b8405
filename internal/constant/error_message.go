package constant

// ErrorInfo 错误信息结构
type ErrorInfo struct {
	CN string `json:"cn"` // 中文错误信息
	EN string `json:"en"` // 英文错误信息
}

// ErrorMessages 错误信息映射
var ErrorMessages = map[int]ErrorInfo{
	// 系统错误
	CodeSuccess:            {"操作成功", "Success"},
	CodeSystemError:        {"系统错误", "System error"},
	CodeDatabaseError:      {"数据库错误", "Database error"},
	CodeRedisError:         {"缓存服务错误", "Redis error"},
	CodeInternalError:      {"内部服务错误", "Internal error"},
	CodeServiceUnavailable: {"服务暂时不可用", "Service unavailable"},
	CodeTimeout:            {"请求处理超时", "Timeout"},

	// 参数错误
	CodeInvalidParams:     {"参数格式错误", "Invalid params"},
	CodeMissingParams:     {"缺少必要参数", "Missing params"},
	CodeParamsFormatError: {"参数格式错误", "Params format error"},
	CodeParamsTypeError:   {"参数类型错误", "Params type error"},

	// 认证授权错误
	CodeUnauthorized:   {"未授权访问", "Unauthorized"},
	CodeSignatureError: {"签名验证失败", "Signature error"},

	// 应用相关错误
	CodeAppNotFound: {"支付应用不存在", "Pay app not found"},
	CodeAppDisabled: {"支付应用已禁用", "Pay app disabled"},

	// 订单相关错误
	CodeOrderNotFound:         {"支付订单不存在", "Pay order not found"},
	CodeOrderStatusNotWaiting: {"支付订单不处于待支付状态", "Pay order status is not waiting"},
	CodeOrderAmountInvalid:    {"订单金额无效", "Order amount invalid"},

	// 支付拓展单相关错误
	CodeExtensionNotFound:         {"支付拓展单不存在", "Pay order extension not found"},
	CodeExtensionStatusNotWaiting: {"支付拓展单不处于待支付状态", "Pay order extension status is not waiting"},

	// 支付渠道相关错误
	CodeChannelNotFound:       {"支付渠道不存在", "Pay channel not found"},
	CodeChannelDisabled:       {"支付渠道已禁用", "Pay channel disabled"},
	CodeChannelClientNotFound: {"支付渠道客户端未初始化", "Pay channel client not found"},

	// 渠道调用相关错误
	CodeChannelRequestFailed:    {"渠道下单失败", "Channel unified order failed"},
	CodeChannelNotifyParseError: {"渠道回调数据解析失败", "Channel notify parse error"},

	// 回调通知相关错误
	CodeNotifyTaskFailed: {"商户通知任务处理失败", "Notify task failed"},
}
