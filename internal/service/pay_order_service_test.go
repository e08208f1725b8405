package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pay-core-api/internal/channel"
	"pay-core-api/internal/constant"
	"pay-core-api/internal/dto"
	"pay-core-api/internal/idgen"
	mainmodel "pay-core-api/internal/model/main"
	paymodel "pay-core-api/internal/model/pay"
)

func TestMain(m *testing.M) {
	if err := idgen.InitNode("default", 1); err != nil {
		panic(err)
	}
	m.Run()
}

// ---- 内存实现：OrderStore ----

type memState struct {
	orders map[uint64]paymodel.PayOrder
	exts   map[uint64]paymodel.PayOrderExtension
}

func newMemState() *memState {
	return &memState{
		orders: make(map[uint64]paymodel.PayOrder),
		exts:   make(map[uint64]paymodel.PayOrderExtension),
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.exts {
		c.exts[k] = v
	}
	return c
}

// fakeStore 单机内存版 OrderStore。事务整体串行化，行级条件更新的
// 语义与生产实现一致：先比对当前状态，不匹配返回 0 行。
type fakeStore struct {
	mu sync.Mutex
	st *memState

	failOrderUpdate bool // 注入订单屏障失败，验证事务原子性
}

func newFakeStore() *fakeStore {
	return &fakeStore{st: newMemState()}
}

func (f *fakeStore) GetOrder(ctx context.Context, id uint64) (*paymodel.PayOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.getOrder(id), nil
}

func (f *fakeStore) GetOrderByMerchantOrderID(ctx context.Context, appID uint64, merchantOrderID string) (*paymodel.PayOrder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.getOrderByMerchantOrderID(appID, merchantOrderID), nil
}

func (f *fakeStore) CreateOrder(ctx context.Context, o *paymodel.PayOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.createOrder(o)
}

func (f *fakeStore) UpdateOrderByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrder) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOrderUpdate {
		return 0, errors.New("injected order update failure")
	}
	return f.st.updateOrderByIDAndStatus(id, status, upd), nil
}

func (f *fakeStore) GetExtensionByNo(ctx context.Context, no string) (*paymodel.PayOrderExtension, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.getExtensionByNo(no), nil
}

func (f *fakeStore) CreateExtension(ctx context.Context, e *paymodel.PayOrderExtension) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.st.exts[e.ID] = *e
	return nil
}

func (f *fakeStore) UpdateExtensionByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrderExtension) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.st.updateExtensionByIDAndStatus(id, status, upd), nil
}

// Transaction 串行执行并在失败时恢复快照，模拟数据库事务回滚
func (f *fakeStore) Transaction(ctx context.Context, fn func(OrderStore) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := f.st.clone()
	err := fn(&fakeTx{store: f})
	if err != nil {
		f.st = snapshot
	}
	return err
}

// fakeTx 事务视图，复用状态但不加锁（外层事务已持锁）
type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) GetOrder(ctx context.Context, id uint64) (*paymodel.PayOrder, error) {
	return t.store.st.getOrder(id), nil
}

func (t *fakeTx) GetOrderByMerchantOrderID(ctx context.Context, appID uint64, merchantOrderID string) (*paymodel.PayOrder, error) {
	return t.store.st.getOrderByMerchantOrderID(appID, merchantOrderID), nil
}

func (t *fakeTx) CreateOrder(ctx context.Context, o *paymodel.PayOrder) error {
	return t.store.st.createOrder(o)
}

func (t *fakeTx) UpdateOrderByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrder) (int64, error) {
	if t.store.failOrderUpdate {
		return 0, errors.New("injected order update failure")
	}
	return t.store.st.updateOrderByIDAndStatus(id, status, upd), nil
}

func (t *fakeTx) GetExtensionByNo(ctx context.Context, no string) (*paymodel.PayOrderExtension, error) {
	return t.store.st.getExtensionByNo(no), nil
}

func (t *fakeTx) CreateExtension(ctx context.Context, e *paymodel.PayOrderExtension) error {
	t.store.st.exts[e.ID] = *e
	return nil
}

func (t *fakeTx) UpdateExtensionByIDAndStatus(ctx context.Context, id uint64, status int8, upd *paymodel.PayOrderExtension) (int64, error) {
	return t.store.st.updateExtensionByIDAndStatus(id, status, upd), nil
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(OrderStore) error) error {
	return fn(t)
}

func (s *memState) getOrder(id uint64) *paymodel.PayOrder {
	if o, ok := s.orders[id]; ok {
		cp := o
		return &cp
	}
	return nil
}

func (s *memState) getOrderByMerchantOrderID(appID uint64, merchantOrderID string) *paymodel.PayOrder {
	for _, o := range s.orders {
		if o.AppID == appID && o.MerchantOrderID == merchantOrderID {
			cp := o
			return &cp
		}
	}
	return nil
}

func (s *memState) createOrder(o *paymodel.PayOrder) error {
	if s.getOrderByMerchantOrderID(o.AppID, o.MerchantOrderID) != nil {
		return errors.New("duplicate key uk_app_merchant_order")
	}
	s.orders[o.ID] = *o
	return nil
}

// updateOrderByIDAndStatus 按生产 SQL 的语义应用非零字段
func (s *memState) updateOrderByIDAndStatus(id uint64, status int8, upd *paymodel.PayOrder) int64 {
	row, ok := s.orders[id]
	if !ok || row.Status != status {
		return 0
	}
	if upd.Status != 0 {
		row.Status = upd.Status
	}
	if upd.ChannelID != nil {
		row.ChannelID = upd.ChannelID
	}
	if upd.ChannelCode != nil {
		row.ChannelCode = upd.ChannelCode
	}
	if upd.SuccessTime != nil {
		row.SuccessTime = upd.SuccessTime
	}
	if upd.SuccessExtensionID != nil {
		row.SuccessExtensionID = upd.SuccessExtensionID
	}
	if upd.ChannelOrderNo != nil {
		row.ChannelOrderNo = upd.ChannelOrderNo
	}
	if upd.ChannelUserID != nil {
		row.ChannelUserID = upd.ChannelUserID
	}
	if upd.NotifyTime != nil {
		row.NotifyTime = upd.NotifyTime
	}
	s.orders[id] = row
	return 1
}

func (s *memState) getExtensionByNo(no string) *paymodel.PayOrderExtension {
	for _, e := range s.exts {
		if e.No == no {
			cp := e
			return &cp
		}
	}
	return nil
}

func (s *memState) updateExtensionByIDAndStatus(id uint64, status int8, upd *paymodel.PayOrderExtension) int64 {
	row, ok := s.exts[id]
	if !ok || row.Status != status {
		return 0
	}
	if upd.Status != 0 {
		row.Status = upd.Status
	}
	if upd.ChannelNotifyData != nil {
		row.ChannelNotifyData = upd.ChannelNotifyData
	}
	s.exts[id] = row
	return 1
}

// ---- 内存实现：AppStore ----

type fakeAppStore struct {
	apps     map[uint64]mainmodel.PayApp
	channels map[uint64]mainmodel.PayChannel
}

func (f *fakeAppStore) GetApp(ctx context.Context, appID uint64) (*mainmodel.PayApp, error) {
	if a, ok := f.apps[appID]; ok {
		cp := a
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAppStore) GetChannel(ctx context.Context, channelID uint64) (*mainmodel.PayChannel, error) {
	if c, ok := f.channels[channelID]; ok {
		cp := c
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAppStore) GetChannelByCode(ctx context.Context, appID uint64, code string) (*mainmodel.PayChannel, error) {
	for _, c := range f.channels {
		if c.AppID == appID && c.Code == code {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

// ---- 内存实现：Dispatcher ----

type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []uint64
}

func (f *fakeDispatcher) Enqueue(ctx context.Context, taskType int8, dataID uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, dataID)
	return nil
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tasks)
}

// ---- 渠道客户端桩 ----

type stubClient struct {
	mu       sync.Mutex
	lastReq  *channel.UnifiedOrderReq
	orderErr error
}

func (c *stubClient) UnifiedOrder(ctx context.Context, req *channel.UnifiedOrderReq) (*channel.UnifiedOrderResp, error) {
	c.mu.Lock()
	c.lastReq = req
	c.mu.Unlock()
	if c.orderErr != nil {
		return nil, c.orderErr
	}
	return &channel.UnifiedOrderResp{
		InvokeType: "url",
		InvokeData: "https://cashier.example.com/pay?no=" + req.OutTradeNo,
	}, nil
}

type stubNotifyPayload struct {
	No             string `json:"no"`
	ChannelOrderNo string `json:"channelOrderNo"`
	ChannelUserID  string `json:"channelUserId"`
	SuccessTime    int64  `json:"successTime"`
}

func (c *stubClient) ParseNotify(ctx context.Context, raw []byte) (*channel.NotifyResult, error) {
	var p stubNotifyPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	if p.No == "" {
		return nil, errors.New("missing no")
	}
	return &channel.NotifyResult{
		No:             p.No,
		ChannelOrderNo: p.ChannelOrderNo,
		ChannelUserID:  p.ChannelUserID,
		SuccessTime:    time.Unix(p.SuccessTime, 0),
	}, nil
}

// ---- 测试环境 ----

var channelIDSeq uint64 = 1000

type testEnv struct {
	svc        *PayOrderService
	store      *fakeStore
	dispatcher *fakeDispatcher
	client     *stubClient
	appID      uint64
	channelID  uint64
}

// 每个用例分配独立渠道ID，避免全局注册表串台
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	channelID := atomic.AddUint64(&channelIDSeq, 1)
	appID := uint64(1)

	apps := &fakeAppStore{
		apps: map[uint64]mainmodel.PayApp{
			appID: {
				AppID:      appID,
				MerchantID: 100,
				Name:       "demo-app",
				Status:     mainmodel.StatusEnabled,
				NotifyURL:  "https://merchant.example.com/pay/callback",
				ApiSecret:  "secret",
			},
		},
		channels: map[uint64]mainmodel.PayChannel{
			channelID: {
				ChannelID: channelID,
				AppID:     appID,
				Code:      "wx_pub",
				Status:    mainmodel.StatusEnabled,
			},
		},
	}
	client := &stubClient{}
	channel.Register(channelID, client)

	store := newFakeStore()
	dispatcher := &fakeDispatcher{}
	svc := NewPayOrderService(NewAppService(apps), store, dispatcher)
	return &testEnv{
		svc:        svc,
		store:      store,
		dispatcher: dispatcher,
		client:     client,
		appID:      appID,
		channelID:  channelID,
	}
}

func (e *testEnv) createOrder(t *testing.T, merchantOrderID string) uint64 {
	t.Helper()
	id, err := e.svc.Create(context.Background(), dto.CreateOrderReq{
		AppID:           e.appID,
		MerchantOrderID: merchantOrderID,
		Subject:         "会员充值",
		Body:            "月度会员",
		Amount:          1000,
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return id
}

func (e *testEnv) submitOrder(t *testing.T, orderID uint64) (*dto.SubmitOrderResp, string) {
	t.Helper()
	resp, err := e.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID:     orderID,
		AppID:       e.appID,
		ChannelCode: "wx_pub",
	})
	if err != nil {
		t.Fatalf("submit order failed: %v", err)
	}
	e.client.mu.Lock()
	no := e.client.lastReq.OutTradeNo
	e.client.mu.Unlock()
	return resp, no
}

func (e *testEnv) notifyPayload(no string) []byte {
	b, _ := json.Marshal(stubNotifyPayload{
		No:             no,
		ChannelOrderNo: "4200001234",
		ChannelUserID:  "oUpF8uMuAJO_M2pxb1Q9zNjWeS6o",
		SuccessTime:    time.Now().Unix(),
	})
	return b
}

// ---- 用例 ----

func TestCreateOrderIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first := env.createOrder(t, "M1")
	second := env.createOrder(t, "M1")

	if first != second {
		t.Fatalf("duplicate create returned different ids: %d vs %d", first, second)
	}
	if n := len(env.store.st.orders); n != 1 {
		t.Fatalf("expected exactly 1 order row, got %d", n)
	}

	order, _ := env.store.GetOrder(context.Background(), first)
	if order.Status != paymodel.StatusWaiting {
		t.Fatalf("new order status = %d, want WAITING", order.Status)
	}
	if order.NotifyStatus != paymodel.NotifyStatusNo || order.RefundStatus != paymodel.RefundStatusNo {
		t.Fatalf("order init fields wrong: %+v", order)
	}
	if order.NotifyURL != "https://merchant.example.com/pay/callback" {
		t.Fatalf("notify url not copied from app: %s", order.NotifyURL)
	}
	if order.MerchantID != 100 {
		t.Fatalf("merchant id = %d, want 100", order.MerchantID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.Create(context.Background(), dto.CreateOrderReq{
		AppID: 999, MerchantOrderID: "M1", Subject: "s", Amount: 1000,
	})
	if !constant.IsCode(err, constant.CodeAppNotFound) {
		t.Fatalf("unknown app: got %v, want CodeAppNotFound", err)
	}

	_, err = env.svc.Create(context.Background(), dto.CreateOrderReq{
		AppID: env.appID, MerchantOrderID: "M1", Subject: "s", Amount: 0,
	})
	if !constant.IsCode(err, constant.CodeOrderAmountInvalid) {
		t.Fatalf("zero amount: got %v, want CodeOrderAmountInvalid", err)
	}
}

func TestSubmitOrder(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")

	resp, no := env.submitOrder(t, orderID)

	if resp.ExtensionID == 0 || resp.InvokeData == "" {
		t.Fatalf("submit resp incomplete: %+v", resp)
	}
	// 渠道侧商户单号必须是拓展单 no，不能是内部订单ID
	if no == "" || no == fmt.Sprintf("%d", orderID) {
		t.Fatalf("channel correlation id should be extension no, got %q", no)
	}

	ext, _ := env.store.GetExtensionByNo(context.Background(), no)
	if ext == nil {
		t.Fatal("extension row not persisted")
	}
	if ext.Status != paymodel.StatusWaiting || ext.OrderID != orderID {
		t.Fatalf("extension row wrong: %+v", ext)
	}

	// 提交不改变订单状态
	order, _ := env.store.GetOrder(context.Background(), orderID)
	if order.Status != paymodel.StatusWaiting {
		t.Fatalf("submit must not mutate order status, got %d", order.Status)
	}

	// 回调地址带中划线渠道编码和渠道ID
	env.client.mu.Lock()
	notifyURL := env.client.lastReq.NotifyURL
	env.client.mu.Unlock()
	want := fmt.Sprintf("/wx-pub/%d", env.channelID)
	if !strings.HasSuffix(notifyURL, want) {
		t.Fatalf("channel notify url = %q, want suffix %q", notifyURL, want)
	}
}

func TestSubmitOrderPreconditions(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")

	// 租户隔离：订单不属于请求的应用时按不存在处理
	_, err := env.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID: orderID, AppID: 999, ChannelCode: "wx_pub",
	})
	if !constant.IsCode(err, constant.CodeAppNotFound) {
		t.Fatalf("unknown app: got %v", err)
	}

	env.store.mu.Lock()
	other := env.store.st.orders[orderID]
	other.AppID = 2
	env.store.st.orders[orderID] = other
	env.store.mu.Unlock()
	_, err = env.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID: orderID, AppID: env.appID, ChannelCode: "wx_pub",
	})
	if !constant.IsCode(err, constant.CodeOrderNotFound) {
		t.Fatalf("foreign order: got %v, want CodeOrderNotFound", err)
	}

	// 非 WAITING 状态拒绝提交，且不产生拓展单
	env.store.mu.Lock()
	row := env.store.st.orders[orderID]
	row.AppID = env.appID
	row.Status = paymodel.StatusSuccess
	env.store.st.orders[orderID] = row
	env.store.mu.Unlock()
	_, err = env.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID: orderID, AppID: env.appID, ChannelCode: "wx_pub",
	})
	if !constant.IsCode(err, constant.CodeOrderStatusNotWaiting) {
		t.Fatalf("settled order: got %v, want CodeOrderStatusNotWaiting", err)
	}
	if n := len(env.store.st.exts); n != 0 {
		t.Fatalf("no extension row expected, got %d", n)
	}
}

func TestSubmitOrderChannelError(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")

	env.client.orderErr = errors.New("balance limit exceeded")
	_, err := env.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID: orderID, AppID: env.appID, ChannelCode: "wx_pub",
	})
	if !constant.IsCode(err, constant.CodeChannelRequestFailed) {
		t.Fatalf("channel error: got %v, want CodeChannelRequestFailed", err)
	}

	// 渠道失败时拓展单保留在 WAITING，由对账任务兜底
	env.store.mu.Lock()
	n := len(env.store.st.exts)
	var ext paymodel.PayOrderExtension
	for _, e := range env.store.st.exts {
		ext = e
	}
	env.store.mu.Unlock()
	if n != 1 || ext.Status != paymodel.StatusWaiting {
		t.Fatalf("extension should stay WAITING after channel failure: n=%d ext=%+v", n, ext)
	}
}

func TestSubmitOrderClientNotFound(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")

	// 注册表里没有这个渠道的客户端
	unbound := atomic.AddUint64(&channelIDSeq, 1)
	env.svc.apps.store.(*fakeAppStore).channels[unbound] = mainmodel.PayChannel{
		ChannelID: unbound, AppID: env.appID, Code: "alipay_qr", Status: mainmodel.StatusEnabled,
	}
	_, err := env.svc.Submit(context.Background(), dto.SubmitOrderReq{
		OrderID: orderID, AppID: env.appID, ChannelCode: "alipay_qr",
	})
	if !constant.IsCode(err, constant.CodeChannelClientNotFound) {
		t.Fatalf("missing client: got %v, want CodeChannelClientNotFound", err)
	}
}

func TestHandleNotifySuccess(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")
	resp, no := env.submitOrder(t, orderID)

	payload := env.notifyPayload(no)
	if err := env.svc.HandleNotify(context.Background(), env.channelID, payload); err != nil {
		t.Fatalf("handle notify failed: %v", err)
	}

	ext, _ := env.store.GetExtensionByNo(context.Background(), no)
	if ext.Status != paymodel.StatusSuccess {
		t.Fatalf("extension status = %d, want SUCCESS", ext.Status)
	}
	if ext.ChannelNotifyData == nil || *ext.ChannelNotifyData != string(payload) {
		t.Fatal("raw notify payload not stored on extension")
	}

	order, _ := env.store.GetOrder(context.Background(), orderID)
	if order.Status != paymodel.StatusSuccess {
		t.Fatalf("order status = %d, want SUCCESS", order.Status)
	}
	if order.SuccessExtensionID == nil || *order.SuccessExtensionID != resp.ExtensionID {
		t.Fatalf("success extension id not recorded: %+v", order.SuccessExtensionID)
	}
	if order.ChannelID == nil || *order.ChannelID != env.channelID {
		t.Fatal("channel id not recorded on order")
	}
	if order.ChannelOrderNo == nil || *order.ChannelOrderNo != "4200001234" {
		t.Fatal("channel order no not recorded on order")
	}
	if order.SuccessTime == nil || order.NotifyTime == nil {
		t.Fatal("success/notify time not recorded on order")
	}
	if env.dispatcher.count() != 1 {
		t.Fatalf("expected 1 notify task, got %d", env.dispatcher.count())
	}

	// 渠道重复投递：拓展单屏障报状态冲突，状态与任务数不变
	err := env.svc.HandleNotify(context.Background(), env.channelID, payload)
	if !constant.IsCode(err, constant.CodeExtensionStatusNotWaiting) {
		t.Fatalf("redelivery: got %v, want CodeExtensionStatusNotWaiting", err)
	}
	if env.dispatcher.count() != 1 {
		t.Fatalf("redelivery must not enqueue again, got %d", env.dispatcher.count())
	}
}

func TestHandleNotifyUnknownExtension(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.HandleNotify(context.Background(), env.channelID, env.notifyPayload("20240101120000999"))
	if !constant.IsCode(err, constant.CodeExtensionNotFound) {
		t.Fatalf("unknown no: got %v, want CodeExtensionNotFound", err)
	}
}

func TestHandleNotifyParseError(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.HandleNotify(context.Background(), env.channelID, []byte(`{"channelOrderNo":"x"}`))
	if !constant.IsCode(err, constant.CodeChannelNotifyParseError) {
		t.Fatalf("bad payload: got %v, want CodeChannelNotifyParseError", err)
	}
}

func TestHandleNotifySingleWinner(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")
	_, no := env.submitOrder(t, orderID)
	payload := env.notifyPayload(no)

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.svc.HandleNotify(context.Background(), env.channelID, payload)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case constant.IsCode(err, constant.CodeExtensionStatusNotWaiting):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != n-1 {
		t.Fatalf("wins=%d conflicts=%d, want 1/%d", wins, conflicts, n-1)
	}

	order, _ := env.store.GetOrder(context.Background(), orderID)
	if order.Status != paymodel.StatusSuccess {
		t.Fatalf("order status = %d, want SUCCESS", order.Status)
	}
	if env.dispatcher.count() != 1 {
		t.Fatalf("expected exactly 1 notify task, got %d", env.dispatcher.count())
	}
}

func TestHandleNotifyAtomicity(t *testing.T) {
	env := newTestEnv(t)
	orderID := env.createOrder(t, "M1")
	_, no := env.submitOrder(t, orderID)

	// 拓展单屏障成功后订单屏障失败，整个事务必须回滚
	env.store.failOrderUpdate = true
	err := env.svc.HandleNotify(context.Background(), env.channelID, env.notifyPayload(no))
	if err == nil {
		t.Fatal("expected error when order barrier fails")
	}

	ext, _ := env.store.GetExtensionByNo(context.Background(), no)
	if ext.Status != paymodel.StatusWaiting {
		t.Fatalf("extension must roll back to WAITING, got %d", ext.Status)
	}
	order, _ := env.store.GetOrder(context.Background(), orderID)
	if order.Status != paymodel.StatusWaiting {
		t.Fatalf("order must stay WAITING, got %d", order.Status)
	}
	if env.dispatcher.count() != 0 {
		t.Fatalf("no notify task expected after rollback, got %d", env.dispatcher.count())
	}

	// 恢复后同一回调可以正常完成
	env.store.failOrderUpdate = false
	if err := env.svc.HandleNotify(context.Background(), env.channelID, env.notifyPayload(no)); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
	if env.dispatcher.count() != 1 {
		t.Fatalf("expected 1 notify task after retry, got %d", env.dispatcher.count())
	}
}

func TestHandleNotifyChannelValidation(t *testing.T) {
	env := newTestEnv(t)

	err := env.svc.HandleNotify(context.Background(), 424242, env.notifyPayload("x"))
	if !constant.IsCode(err, constant.CodeChannelNotFound) {
		t.Fatalf("unknown channel: got %v, want CodeChannelNotFound", err)
	}
}
