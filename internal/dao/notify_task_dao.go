package dao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"pay-core-api/internal/dal"
	paymodel "pay-core-api/internal/model/pay"
)

// NotifyTaskDao 商户通知任务访问
type NotifyTaskDao struct {
	DB *gorm.DB
}

func NewNotifyTaskDao() *NotifyTaskDao {
	if dal.OrderDB == nil {
		log.Panic("[FATAL] dal.OrderDB is nil - database not initialized")
	}
	return &NotifyTaskDao{DB: dal.OrderDB}
}

func (r *NotifyTaskDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// 插入通知任务
func (r *NotifyTaskDao) Insert(ctx context.Context, t *paymodel.PayNotifyTask) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert notify task failed: %w", err)
	}
	return r.DB.WithContext(ctx).Create(t).Error
}

// 按任务ID查询
func (r *NotifyTaskDao) GetByID(ctx context.Context, id uint64) (*paymodel.PayNotifyTask, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get notify task failed: %w", err)
	}

	var m paymodel.PayNotifyTask
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// UpdateResult 记录一次通知结果
func (r *NotifyTaskDao) UpdateResult(ctx context.Context, id uint64, status int8, notifyTimes int) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update notify task failed: %w", err)
	}

	now := time.Now()
	return r.DB.WithContext(ctx).Model(&paymodel.PayNotifyTask{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":           status,
			"notify_times":     notifyTimes,
			"last_notify_time": now,
		}).Error
}
