package service

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/copier"

	"pay-core-api/internal/channel"
	"pay-core-api/internal/config"
	"pay-core-api/internal/constant"
	"pay-core-api/internal/dal"
	"pay-core-api/internal/dto"
	"pay-core-api/internal/idgen"
	paymodel "pay-core-api/internal/model/pay"
	"pay-core-api/internal/utils"
)

// PayOrderService 支付订单状态机。订单与拓展单的状态字段只在这里迁移，
// 每次迁移都走行级条件更新，多进程并发下不需要额外的锁。
type PayOrderService struct {
	apps       *AppService
	store      OrderStore
	dispatcher Dispatcher
}

func NewPayOrderService(apps *AppService, store OrderStore, dispatcher Dispatcher) *PayOrderService {
	return &PayOrderService{apps: apps, store: store, dispatcher: dispatcher}
}

// Create 创建支付订单。对 (app_id, merchant_order_id) 幂等：
// 已存在时直接返回已有订单ID，不报错也不重复落单。
func (s *PayOrderService) Create(ctx context.Context, req dto.CreateOrderReq) (uint64, error) {
	// 校验应用
	app, err := s.apps.ValidPayApp(ctx, req.AppID)
	if err != nil {
		return 0, err
	}
	if req.Amount <= 0 {
		return 0, constant.NewError(constant.CodeOrderAmountInvalid)
	}

	// 幂等校验：同一 (appId, merchantOrderId) 的订单已存在则直接复用
	exist, err := s.store.GetOrderByMerchantOrderID(ctx, req.AppID, req.MerchantOrderID)
	if err != nil {
		return 0, constant.NewError(constant.CodeDatabaseError)
	}
	if exist != nil {
		log.Printf("[Create] appId(%d) merchantOrderId(%s) 已存在支付订单(%d)，直接返回",
			req.AppID, req.MerchantOrderID, exist.ID)
		return exist.ID, nil
	}

	var order paymodel.PayOrder
	_ = copier.Copy(&order, &req)
	order.ID = idgen.New()
	order.MerchantID = app.MerchantID
	// 商户相关字段
	order.NotifyURL = app.NotifyURL
	order.NotifyStatus = paymodel.NotifyStatusNo
	// 订单相关字段
	order.Status = paymodel.StatusWaiting
	// 退款相关字段
	order.RefundStatus = paymodel.RefundStatusNo
	order.RefundTimes = 0
	order.RefundAmount = 0

	if err := s.store.CreateOrder(ctx, &order); err != nil {
		return 0, constant.NewError(constant.CodeDatabaseError)
	}

	// 缓存到 Redis，查询走读缓存
	cacheOrder(&order)

	return order.ID, nil
}

// Submit 提交支付订单：创建拓展单并调用渠道下单。
// 订单本身不在这里发生任何状态变化。
func (s *PayOrderService) Submit(ctx context.Context, req dto.SubmitOrderReq) (*dto.SubmitOrderResp, error) {
	// 校验应用与渠道
	if _, err := s.apps.ValidPayApp(ctx, req.AppID); err != nil {
		return nil, err
	}
	ch, err := s.apps.ValidPayChannelByCode(ctx, req.AppID, req.ChannelCode)
	if err != nil {
		return nil, err
	}
	// 校验渠道客户端已初始化
	client := channel.Get(ch.ChannelID)
	if client == nil {
		log.Printf("[Submit] 渠道(%d) 找不到对应的支付客户端", ch.ChannelID)
		return nil, constant.NewError(constant.CodeChannelClientNotFound)
	}

	// 校验订单存在且归属当前应用
	order, err := s.store.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil || order.AppID != req.AppID {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}
	if order.Status != paymodel.StatusWaiting {
		return nil, constant.NewError(constant.CodeOrderStatusNotWaiting)
	}

	// 插入拓展单。no 是传给渠道的对外单号，回调凭它定位支付尝试
	extension := &paymodel.PayOrderExtension{
		ID:          idgen.New(),
		No:          idgen.NewExtensionNo(),
		OrderID:     order.ID,
		ChannelID:   ch.ChannelID,
		ChannelCode: ch.Code,
		Status:      paymodel.StatusWaiting,
	}
	if err := s.store.CreateExtension(ctx, extension); err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}

	// 调用渠道统一下单。注意商户侧单号用的是拓展单 no
	unifiedReq := &channel.UnifiedOrderReq{
		OutTradeNo: extension.No,
		Subject:    order.Subject,
		Body:       order.Body,
		Amount:     order.Amount,
		ExpireTime: order.ExpireTime,
		NotifyURL:  genChannelNotifyURL(ch.Code, ch.ChannelID),
		Extras:     req.ChannelExtras,
	}
	ctxTimeout, cancel := context.WithTimeout(ctx, channelTimeout())
	defer cancel()
	invoke, err := client.UnifiedOrder(ctxTimeout, unifiedReq)
	if err != nil {
		// 渠道业务失败按失败传播，拓展单留在 WAITING，由对账任务兜底
		log.Printf("[Submit] 拓展单(%s) 渠道下单失败: %v", extension.No, err)
		return nil, constant.NewErrorf(constant.CodeChannelRequestFailed, "渠道下单失败: %v", err)
	}

	return &dto.SubmitOrderResp{
		ExtensionID: extension.ID,
		InvokeType:  invoke.InvokeType,
		InvokeData:  invoke.InvokeData,
	}, nil
}

// HandleNotify 处理渠道异步回调，整体为一个事务：
// 先迁移拓展单，再迁移订单，两个条件更新有一个没抢到就整体回滚。
// 重复回调会在拓展单屏障上失败，按错误上报给渠道（首回调已应答过成功）。
func (s *PayOrderService) HandleNotify(ctx context.Context, channelID uint64, raw []byte) error {
	log.Printf("[HandleNotify] channelId(%d) 回调数据(%s)", channelID, string(raw))

	// 校验渠道与客户端
	ch, err := s.apps.ValidPayChannel(ctx, channelID)
	if err != nil {
		return err
	}
	client := channel.Get(ch.ChannelID)
	if client == nil {
		log.Printf("[HandleNotify] 渠道(%d) 找不到对应的支付客户端", ch.ChannelID)
		return constant.NewError(constant.CodeChannelClientNotFound)
	}

	// 解析支付结果
	result, err := client.ParseNotify(ctx, raw)
	if err != nil {
		return constant.NewErrorf(constant.CodeChannelNotifyParseError, "渠道回调解析失败: %v", err)
	}

	var orderID uint64
	rawData := string(raw)
	err = s.store.Transaction(ctx, func(tx OrderStore) error {
		// 1.1 查询拓展单
		extension, err := tx.GetExtensionByNo(ctx, result.No)
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if extension == nil {
			return constant.NewError(constant.CodeExtensionNotFound)
		}
		if extension.Status != paymodel.StatusWaiting {
			return constant.NewError(constant.CodeExtensionStatusNotWaiting)
		}
		// 1.2 条件更新拓展单：WAITING -> SUCCESS，并发重复回调只有一个能抢到
		rows, err := tx.UpdateExtensionByIDAndStatus(ctx, extension.ID, paymodel.StatusWaiting,
			&paymodel.PayOrderExtension{
				Status:            paymodel.StatusSuccess,
				ChannelNotifyData: &rawData,
			})
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if rows == 0 {
			return constant.NewError(constant.CodeExtensionStatusNotWaiting)
		}
		log.Printf("[HandleNotify] 拓展单(%d) 更新为已支付", extension.ID)

		// 2.1 查询订单
		order, err := tx.GetOrder(ctx, extension.OrderID)
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if order == nil {
			return constant.NewError(constant.CodeOrderNotFound)
		}
		if order.Status != paymodel.StatusWaiting {
			return constant.NewError(constant.CodeOrderStatusNotWaiting)
		}
		// 2.2 条件更新订单，成功相关字段与状态迁移一并写入
		now := time.Now()
		rows, err = tx.UpdateOrderByIDAndStatus(ctx, order.ID, paymodel.StatusWaiting,
			&paymodel.PayOrder{
				Status:             paymodel.StatusSuccess,
				ChannelID:          &ch.ChannelID,
				ChannelCode:        &ch.Code,
				SuccessTime:        &result.SuccessTime,
				SuccessExtensionID: &extension.ID,
				ChannelOrderNo:     &result.ChannelOrderNo,
				ChannelUserID:      &result.ChannelUserID,
				NotifyTime:         &now,
			})
		if err != nil {
			return constant.NewError(constant.CodeDatabaseError)
		}
		if rows == 0 {
			return constant.NewError(constant.CodeOrderStatusNotWaiting)
		}
		log.Printf("[HandleNotify] 支付订单(%d) 更新为已支付", order.ID)

		orderID = order.ID
		return nil
	})
	if err != nil {
		return err
	}

	// 迁移已提交，读缓存里的 WAITING 快照作废
	dropOrderCache(orderID)

	// 状态迁移已提交，插入商户通知任务。投递失败只记日志，不影响迁移结果
	if err := s.dispatcher.Enqueue(ctx, paymodel.NotifyTypeOrder, orderID); err != nil {
		log.Printf("[HandleNotify] 订单(%d) 通知任务入列失败: %v", orderID, err)
	}
	return nil
}

// Get 查询支付订单，优先走 Redis 读缓存
func (s *PayOrderService) Get(ctx context.Context, id uint64) (*paymodel.PayOrder, error) {
	if cached := cachedOrder(ctx, id); cached != nil {
		return cached, nil
	}
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, constant.NewError(constant.CodeDatabaseError)
	}
	if order == nil {
		return nil, constant.NewError(constant.CodeOrderNotFound)
	}
	return order, nil
}

// genChannelNotifyURL 生成渠道回调地址。URL 统一中划线，渠道编码里的
// 下划线做转换
func genChannelNotifyURL(code string, channelID uint64) string {
	return config.C.Pay.NotifyURLBase + "/" + strings.ReplaceAll(code, "_", "-") +
		"/" + strconv.FormatUint(channelID, 10)
}

func channelTimeout() time.Duration {
	if ms := config.C.Pay.ChannelTimeoutMs; ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return 10 * time.Second
}

func orderCacheKey(id uint64) string {
	return "pay:order:" + strconv.FormatUint(id, 10)
}

func cacheOrder(order *paymodel.PayOrder) {
	if dal.RedisClient == nil {
		return
	}
	ttl := time.Duration(config.C.Pay.OrderCacheSec) * time.Second
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	_ = dal.RedisClient.Set(dal.RedisCtx, orderCacheKey(order.ID), utils.MapToJSON(order), ttl).Err()
}

func dropOrderCache(id uint64) {
	if dal.RedisClient == nil {
		return
	}
	_ = dal.RedisClient.Del(dal.RedisCtx, orderCacheKey(id)).Err()
}

func cachedOrder(ctx context.Context, id uint64) *paymodel.PayOrder {
	if dal.RedisClient == nil {
		return nil
	}
	val, err := dal.RedisClient.Get(ctx, orderCacheKey(id)).Result()
	if err != nil {
		return nil
	}
	var order paymodel.PayOrder
	if err := json.Unmarshal([]byte(val), &order); err != nil {
		return nil
	}
	return &order
}
