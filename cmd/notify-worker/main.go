package main

import (
	"encoding/json"
	"log"

	"go.uber.org/zap"

	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/config"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/infra/mq"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/logging"
	"github.com/VladimirZHC/Simple-e-commerce-hockey-app/internal/service"
)

// 订单通知 worker：消费下单事件并记录通知日志。
// 核心下单流程不依赖本进程，事件只做售后提醒用途。
func main() {
	logging.Init()

	cfg, err := config.Load("./config")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	mqConn := mq.Init(&cfg.RabbitMQ)

	ch, err := mqConn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(service.OrderEventsQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	// 手动确认模式（auto-ack=false）
	msgs, err := ch.Consume(service.OrderEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to consume: %v", err)
	}

	zap.L().Info("notify worker started, waiting for order events")

	for d := range msgs {
		var ev service.OrderCreatedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			zap.L().Warn("invalid order event", zap.Error(err))
			// 消息格式错误，拒绝并丢弃
			_ = d.Nack(false, false)
			continue
		}

		zap.L().Info("order created",
			zap.Int64("order_id", ev.OrderID),
			zap.Int64("customer_id", ev.CustomerID),
			zap.Int64("total_price", ev.TotalPrice),
			zap.String("buying_type", ev.BuyingType))

		if err := d.Ack(false); err != nil {
			zap.L().Warn("failed to ack message", zap.Error(err))
		}
	}
}
