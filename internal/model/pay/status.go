package paymodel

// 订单/拓展单状态。CLOSED 与 EXPIRED 为保留值，状态机当前只在
// WAITING -> SUCCESS 之间迁移，且每行至多迁移一次。
const (
	StatusWaiting int8 = 0  // 待支付
	StatusSuccess int8 = 10 // 支付成功
	StatusClosed  int8 = 20 // 已关闭（保留）
	StatusExpired int8 = 30 // 已过期（保留）
)

// 商户回调通知状态
const (
	NotifyStatusNo      int8 = 0  // 未通知
	NotifyStatusSuccess int8 = 10 // 通知成功
	NotifyStatusFailure int8 = 20 // 通知失败
)

// 退款状态。退款流程不在本服务范围内，仅初始化字段。
const (
	RefundStatusNo int8 = 0 // 未退款
)

// 通知任务类型
const (
	NotifyTypeOrder int8 = 1 // 支付订单回调任务
)
