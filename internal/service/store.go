package service

import (
	"context"

	mainmodel "pay-core-api/internal/model/main"
	paymodel "pay-core-api/internal/model/pay"
)

// OrderStore 订单库访问契约。查询方法在记录不存在时返回 (nil, nil)。
//
// 两个 UpdateXxxByIDAndStatus 是状态机唯一的并发控制手段：更新语句的
// WHERE 条件同时带主键和期望的当前状态，由影响行数判断是否抢到迁移，
// 不做读后写检查，也不依赖任何进程内锁（写入方可能是不同进程）。
type OrderStore interface {
	GetOrder(ctx context.Context, id uint64) (*paymodel.PayOrder, error)
	GetOrderByMerchantOrderID(ctx context.Context, appID uint64, merchantOrderID string) (*paymodel.PayOrder, error)
	CreateOrder(ctx context.Context, o *paymodel.PayOrder) error
	UpdateOrderByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrder) (int64, error)

	GetExtensionByNo(ctx context.Context, no string) (*paymodel.PayOrderExtension, error)
	CreateExtension(ctx context.Context, e *paymodel.PayOrderExtension) error
	UpdateExtensionByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrderExtension) (int64, error)

	// Transaction 把 fn 内的所有写操作放进同一个事务，fn 返回错误则整体回滚
	Transaction(ctx context.Context, fn func(OrderStore) error) error
}

// AppStore 主库配置访问契约，查询方法在记录不存在时返回 (nil, nil)
type AppStore interface {
	GetApp(ctx context.Context, appID uint64) (*mainmodel.PayApp, error)
	GetChannel(ctx context.Context, channelID uint64) (*mainmodel.PayChannel, error)
	GetChannelByCode(ctx context.Context, appID uint64, code string) (*mainmodel.PayChannel, error)
}

// Dispatcher 下游通知任务派发，状态机视角 fire-and-forget
type Dispatcher interface {
	Enqueue(ctx context.Context, taskType int8, dataID uint64) error
}
