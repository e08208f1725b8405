package mq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"

	"pay-core-api/internal/config"
	"pay-core-api/internal/dal"
	"pay-core-api/internal/dao"
	"pay-core-api/internal/dto"
	"pay-core-api/internal/logger"
	paymodel "pay-core-api/internal/model/pay"
	"pay-core-api/internal/utils"
)

var nlog = logger.NewLogger("notify")

// StartConsumers 启动商户通知消费者
func StartConsumers() {
	if dal.RabbitCh == nil {
		nlog.Warn("RabbitMQ channel not initialized")
		return
	}
	msgs, err := dal.RabbitCh.Consume("pay_notify_order", "", false, false, false, false, nil)
	if err != nil {
		nlog.Errorf("consume pay_notify_order failed: %v", err)
		return
	}
	for d := range msgs {
		go handleNotifyTask(d)
	}
}

func handleNotifyTask(d amqp.Delivery) {
	var msg dto.NotifyTaskMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		nlog.Errorf("notify task unmarshal err: %v", err)
		d.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := notifyMerchant(ctx, msg); err != nil {
		nlog.Warnf("notify merchant failed for task %d: %v", msg.TaskID, err)

		maxRetry := config.C.Pay.NotifyMaxRetry
		if msg.RetryCount < maxRetry {
			msg.RetryCount++
			retryBody, _ := json.Marshal(msg)
			_ = dal.RabbitCh.Publish(
				"pay_events", "notify.order", false, false,
				amqp.Publishing{
					ContentType: "application/json",
					Body:        retryBody,
				},
			)
			nlog.Infof("retrying notify for task %d (attempt %d)", msg.TaskID, msg.RetryCount)
		} else {
			nlog.Errorf("max retry reached for task %d", msg.TaskID)
			markTask(ctx, msg, paymodel.NotifyStatusFailure)
		}

		d.Nack(false, false)
		return
	}

	markTask(ctx, msg, paymodel.NotifyStatusSuccess)
	d.Ack(false)
}

func markTask(ctx context.Context, msg dto.NotifyTaskMessage, status int8) {
	tasks := dao.NewNotifyTaskDao()
	if err := tasks.UpdateResult(ctx, msg.TaskID, status, msg.RetryCount+1); err != nil {
		nlog.Errorf("update notify task %d failed: %v", msg.TaskID, err)
	}
	store := dao.NewPayStore()
	if err := store.UpdateOrderNotifyStatus(ctx, msg.DataID, status); err != nil {
		nlog.Errorf("update order %d notify status failed: %v", msg.DataID, err)
	}
}

func notifyMerchant(ctx context.Context, msg dto.NotifyTaskMessage) error {
	store := dao.NewPayStore()
	order, err := store.GetOrder(ctx, msg.DataID)
	if err != nil || order == nil {
		return fmt.Errorf("order not found: %v", err)
	}

	mainDao := dao.NewMainDao()
	app, err := mainDao.GetApp(ctx, order.AppID)
	if err != nil || app == nil {
		return fmt.Errorf("app not found: %v", err)
	}

	var successTime int64
	if order.SuccessTime != nil {
		successTime = order.SuccessTime.Unix()
	}
	payload := dto.NotifyMerchantPayload{
		MerchantOrderID: order.MerchantOrderID,
		OrderID:         strconv.FormatUint(order.ID, 10),
		Status:          "SUCCESS",
		// 最小货币单位转主货币单位
		Amount:      decimal.NewFromInt(order.Amount).Div(decimal.NewFromInt(100)).StringFixed(2),
		SuccessTime: successTime,
	}
	payload.Sign = generateNotifySign(payload, app.ApiSecret)

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, order.NotifyURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("new request error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("notify failed: status code %d", resp.StatusCode)
	}

	nlog.Infof("notify success for order %d", order.ID)
	return nil
}

func generateNotifySign(p dto.NotifyMerchantPayload, apiSecret string) string {
	params := map[string]string{
		"merchant_order_id": p.MerchantOrderID,
		"order_id":          p.OrderID,
		"status":            p.Status,
		"amount":            p.Amount,
		"success_time":      strconv.FormatInt(p.SuccessTime, 10),
	}
	return utils.GenerateSign(params, apiSecret)
}
