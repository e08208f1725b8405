package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"pay-core-api/internal/channel"
	"pay-core-api/internal/config"
	"pay-core-api/internal/dal"
	"pay-core-api/internal/dao"
	"pay-core-api/internal/handler"
	"pay-core-api/internal/idgen"
	"pay-core-api/internal/middleware"
	"pay-core-api/internal/mq"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitOrderDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// channel clients
	initChannelClients()

	// start consumers
	go mq.StartConsumers()

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())

	v1 := r.Group("/api/v1")
	{
		oh := handler.NewOrderHandler()
		v1.POST("/pay/orders", middleware.AuthHMAC(), oh.Create)
		v1.POST("/pay/orders/submit", middleware.AuthHMAC(), oh.Submit)
		v1.GET("/pay/orders/:id", oh.Get)

		nh := handler.NewNotifyHandler()
		v1.POST("/pay/notify/:channelCode/:channelId", nh.ChannelNotify)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

// initChannelClients 根据主库渠道配置构建并注册渠道客户端。
// 单个渠道构建失败只告警跳过，该渠道后续请求会以客户端未初始化报错。
func initChannelClients() {
	mainDao := dao.NewMainDao()
	channels, err := mainDao.ListEnabledChannels(context.Background())
	if err != nil {
		log.Fatalf("load pay channels failed: %v", err)
	}
	for _, ch := range channels {
		client, err := channel.NewClient(ch.Code, ch.ConfigJSON)
		if err != nil {
			log.Printf("build channel client failed: channelId=%d code=%s err=%v",
				ch.ChannelID, ch.Code, err)
			continue
		}
		channel.Register(ch.ChannelID, client)
		log.Printf("channel client registered: channelId=%d code=%s", ch.ChannelID, ch.Code)
	}
}
