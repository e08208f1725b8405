package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pay-core-api/internal/constant"
	"pay-core-api/internal/dao"
	"pay-core-api/internal/dto"
	"pay-core-api/internal/mq"
	"pay-core-api/internal/service"
	"pay-core-api/internal/utils"
)

// OrderHandler 支付订单处理器
type OrderHandler struct{ svc *service.PayOrderService }

func NewOrderHandler() *OrderHandler {
	apps := service.NewAppService(dao.NewMainDao())
	dispatcher := mq.NewNotifyDispatcher(dao.NewNotifyTaskDao(), mq.NewPublisher())
	return &OrderHandler{svc: service.NewPayOrderService(apps, dao.NewPayStore(), dispatcher)}
}

// Create 创建支付订单
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeInvalidParams))
		return
	}

	orderID, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusOK, utils.ErrorOf(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(dto.CreateOrderResp{OrderID: orderID}))
}

// Submit 提交支付订单，返回拉起支付的凭据
func (h *OrderHandler) Submit(c *gin.Context) {
	var req dto.SubmitOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeInvalidParams))
		return
	}

	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusOK, utils.ErrorOf(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(resp))
}

// Get 查询支付订单
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeParamsFormatError))
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, utils.ErrorOf(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(order))
}
