package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pay-core-api/internal/constant"
	"pay-core-api/internal/dao"
	"pay-core-api/internal/mq"
	"pay-core-api/internal/service"
	"pay-core-api/internal/utils"
)

// NotifyHandler 渠道异步回调入口
type NotifyHandler struct{ svc *service.PayOrderService }

func NewNotifyHandler() *NotifyHandler {
	apps := service.NewAppService(dao.NewMainDao())
	dispatcher := mq.NewNotifyDispatcher(dao.NewNotifyTaskDao(), mq.NewPublisher())
	return &NotifyHandler{svc: service.NewPayOrderService(apps, dao.NewPayStore(), dispatcher)}
}

// ChannelNotify 接收渠道回调。路由形如
// /pay/notify/:channelCode/:channelId，渠道按配置好的地址确定性回调。
// 重复回调会返回状态冲突错误码，渠道侧据此停止重试。
func (h *NotifyHandler) ChannelNotify(c *gin.Context) {
	channelID, err := strconv.ParseUint(c.Param("channelId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusOK, utils.Error(constant.CodeParamsFormatError))
		return
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		c.JSON(http.StatusOK, utils.Error(constant.CodeMissingParams))
		return
	}

	if err := h.svc.HandleNotify(c.Request.Context(), channelID, raw); err != nil {
		c.JSON(http.StatusOK, utils.ErrorOf(err))
		return
	}
	c.JSON(http.StatusOK, utils.Success(nil))
}
