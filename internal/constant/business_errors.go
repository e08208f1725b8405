package constant

// 业务级错误码 (2xxx)
//
// 错误码按语义分段：2_0xx 资源不存在，2_1xx 状态冲突（状态机前置状态不满足，
// 含重复/并发回调），2_2xx 渠道配置缺失，2_3xx 渠道调用失败。

// 应用相关错误码
const (
	CodeAppNotFound = 2000 // 支付应用不存在，请检查应用编号是否正确
	CodeAppDisabled = 2001 // 支付应用已禁用，暂时无法发起交易
)

// 订单相关错误码
const (
	CodeOrderNotFound         = 2010 // 支付订单不存在，请检查订单号是否正确
	CodeOrderAmountInvalid    = 2030 // 订单金额无效，金额必须为正整数（最小货币单位）
	CodeOrderStatusNotWaiting = 2100 // 支付订单不处于待支付状态，无法进行当前操作
)

// 支付拓展单（支付尝试）相关错误码
const (
	CodeExtensionNotFound         = 2011 // 支付拓展单不存在，回调携带的交易号无法匹配
	CodeExtensionStatusNotWaiting = 2101 // 支付拓展单不处于待支付状态，可能为重复回调
)

// 支付渠道相关错误码
const (
	CodeChannelNotFound       = 2020 // 支付渠道不存在，请检查渠道编码是否正确
	CodeChannelDisabled       = 2021 // 支付渠道已禁用，暂时无法使用该渠道
	CodeChannelClientNotFound = 2200 // 支付渠道客户端未初始化，属于部署配置缺陷
)

// 渠道调用相关错误码
const (
	CodeChannelRequestFailed    = 2300 // 渠道下单失败，渠道返回业务错误
	CodeChannelNotifyParseError = 2301 // 渠道回调数据解析失败
)

// 回调通知相关错误码
const (
	CodeNotifyTaskFailed = 2700 // 商户通知任务创建或投递失败
)
