package service

import (
	"context"

	"pay-core-api/internal/constant"
	mainmodel "pay-core-api/internal/model/main"
)

// AppService 应用与渠道配置校验
type AppService struct {
	store AppStore
}

func NewAppService(store AppStore) *AppService {
	return &AppService{store: store}
}

// ValidPayApp 校验应用存在且启用
func (s *AppService) ValidPayApp(ctx context.Context, appID uint64) (*mainmodel.PayApp, error) {
	app, err := s.store.GetApp(ctx, appID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if app == nil {
		return nil, constant.NewError(constant.CodeAppNotFound)
	}
	if app.Status != mainmodel.StatusEnabled {
		return nil, constant.NewError(constant.CodeAppDisabled)
	}
	return app, nil
}

// ValidPayChannelByCode 校验应用下的渠道存在且启用
func (s *AppService) ValidPayChannelByCode(ctx context.Context, appID uint64, code string) (*mainmodel.PayChannel, error) {
	ch, err := s.store.GetChannelByCode(ctx, appID, code)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	return validChannel(ch)
}

// ValidPayChannel 按渠道ID校验渠道存在且启用
func (s *AppService) ValidPayChannel(ctx context.Context, channelID uint64) (*mainmodel.PayChannel, error) {
	ch, err := s.store.GetChannel(ctx, channelID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	return validChannel(ch)
}

func validChannel(ch *mainmodel.PayChannel) (*mainmodel.PayChannel, error) {
	if ch == nil {
		return nil, constant.NewError(constant.CodeChannelNotFound)
	}
	if ch.Status != mainmodel.StatusEnabled {
		return nil, constant.NewError(constant.CodeChannelDisabled)
	}
	return ch, nil
}
