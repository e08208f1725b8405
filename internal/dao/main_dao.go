package dao

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"pay-core-api/internal/dal"
	mainmodel "pay-core-api/internal/model/main"
)

// MainDao 主库配置访问，实现 service.AppStore
type MainDao struct {
	DB *gorm.DB
}

// 工厂方法：默认使用 dal.MainDB
func NewMainDao() *MainDao {
	if dal.MainDB == nil {
		log.Panic("[FATAL] dal.MainDB is nil - database not initialized")
	}
	return &MainDao{DB: dal.MainDB}
}

func (r *MainDao) checkDB() error {
	if r == nil || r.DB == nil {
		return errors.New("DB connection is nil")
	}
	return nil
}

// GetApp 按应用ID查询应用
func (r *MainDao) GetApp(ctx context.Context, appID uint64) (*mainmodel.PayApp, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get app failed: %w", err)
	}

	var m mainmodel.PayApp
	err := r.DB.WithContext(ctx).Where("app_id = ?", appID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetChannel 按渠道ID查询渠道
func (r *MainDao) GetChannel(ctx context.Context, channelID uint64) (*mainmodel.PayChannel, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get channel failed: %w", err)
	}

	var m mainmodel.PayChannel
	err := r.DB.WithContext(ctx).Where("channel_id = ?", channelID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// GetChannelByCode 按应用ID + 渠道编码查询渠道
func (r *MainDao) GetChannelByCode(ctx context.Context, appID uint64, code string) (*mainmodel.PayChannel, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get channel by code failed: %w", err)
	}

	var m mainmodel.PayChannel
	err := r.DB.WithContext(ctx).Where("app_id = ? AND code = ?", appID, code).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

// ListEnabledChannels 列出所有启用渠道，启动时构建渠道客户端用
func (r *MainDao) ListEnabledChannels(ctx context.Context) ([]mainmodel.PayChannel, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list channels failed: %w", err)
	}

	var out []mainmodel.PayChannel
	err := r.DB.WithContext(ctx).Where("status = ?", mainmodel.StatusEnabled).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}
