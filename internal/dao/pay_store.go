package dao

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"pay-core-api/internal/dal"
	paymodel "pay-core-api/internal/model/pay"
	"pay-core-api/internal/service"
)

// PayStore 订单库访问，实现 service.OrderStore
type PayStore struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.OrderDB
func NewPayStore() *PayStore {
	if dal.OrderDB == nil {
		log.Panic("[FATAL] dal.OrderDB is nil - database not initialized")
	}
	return &PayStore{DB: dal.OrderDB}
}

// 支持传入自定义 DB（比如 txDB）
func NewPayStoreWithDB(db *gorm.DB) *PayStore {
	if db == nil {
		log.Panic("[FATAL] db cannot be nil")
	}
	return &PayStore{DB: db}
}

func (r *PayStore) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// 插入订单
func (r *PayStore) CreateOrder(ctx context.Context, o *paymodel.PayOrder) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("create order failed: %w", err)
	}
	return r.DB.WithContext(ctx).Create(o).Error
}

// 按订单ID查询
func (r *PayStore) GetOrder(ctx context.Context, id uint64) (*paymodel.PayOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	var m paymodel.PayOrder
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// 按应用ID + 商户订单号查询，幂等创建靠它和唯一索引兜底
func (r *PayStore) GetOrderByMerchantOrderID(ctx context.Context, appID uint64, merchantOrderID string) (*paymodel.PayOrder, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get order by merchant order id failed: %w", err)
	}

	var m paymodel.PayOrder
	err := r.DB.WithContext(ctx).
		Where("app_id = ? AND merchant_order_id = ?", appID, merchantOrderID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// UpdateOrderByIDAndStatus 条件更新订单：WHERE 同时带主键和期望状态，
// 用影响行数判断是否抢到状态迁移
func (r *PayStore) UpdateOrderByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrder) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("update order failed: %w", err)
	}

	res := r.DB.WithContext(ctx).Model(&paymodel.PayOrder{}).
		Where("id = ? AND status = ?", id, status).
		Updates(upd)
	if res.Error != nil {
		return 0, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// 插入拓展单
func (r *PayStore) CreateExtension(ctx context.Context, e *paymodel.PayOrderExtension) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("create extension failed: %w", err)
	}
	return r.DB.WithContext(ctx).Create(e).Error
}

// 按对外支付单号查询拓展单
func (r *PayStore) GetExtensionByNo(ctx context.Context, no string) (*paymodel.PayOrderExtension, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get extension by no failed: %w", err)
	}

	var m paymodel.PayOrderExtension
	err := r.DB.WithContext(ctx).Where("no = ?", no).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// UpdateExtensionByIDAndStatus 条件更新拓展单，语义同订单侧
func (r *PayStore) UpdateExtensionByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrderExtension) (int64, error) {
	if err := r.checkDB(); err != nil {
		return 0, fmt.Errorf("update extension failed: %w", err)
	}

	res := r.DB.WithContext(ctx).Model(&paymodel.PayOrderExtension{}).
		Where("id = ? AND status = ?", id, status).
		Updates(upd)
	if res.Error != nil {
		return 0, fmt.Errorf("update failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// UpdateOrderNotifyStatus 更新商户通知状态，不参与支付状态机
func (r *PayStore) UpdateOrderNotifyStatus(ctx context.Context, id uint64, status int8) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update order notify status failed: %w", err)
	}
	return r.DB.WithContext(ctx).Model(&paymodel.PayOrder{}).
		Where("id = ?", id).
		Update("notify_status", status).Error
}

// Transaction 把 fn 放进同一个数据库事务执行
func (r *PayStore) Transaction(ctx context.Context, fn func(service.OrderStore) error) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPayStoreWithDB(tx))
	})
}
