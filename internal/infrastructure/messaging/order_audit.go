package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/mq"
)

// AuditRoutingKeys 审计队列订阅的路由键
var AuditRoutingKeys = []string{"order.*"}

// NewOrderAuditHandler 订单事件审计：解析事件并写入结构化日志
// 无法解析的消息重投也无法处理，包装mq.ErrDiscard直接丢弃
func NewOrderAuditHandler(queue string, logger *zap.Logger) mq.Handler {
	return func(ctx context.Context, d mq.Delivery) error {
		start := time.Now()
		err := audit(logger, d)

		metrics.ObserveHistogram(metrics.MessageProcessingDuration, time.Since(start).Seconds())
		metrics.IncCounterVec(metrics.MessagesConsumedTotal, map[string]string{
			"queue":  queue,
			"result": metrics.Result(err),
		})
		return err
	}
}

func audit(logger *zap.Logger, d mq.Delivery) error {
	var evt order.Event
	if err := json.Unmarshal(d.Body, &evt); err != nil {
		return fmt.Errorf("decode order event: %w: %w", err, mq.ErrDiscard)
	}
	if evt.OrderID == "" {
		return fmt.Errorf("order event without order id (routing key %q): %w", d.RoutingKey, mq.ErrDiscard)
	}

	logger.Info("订单审计",
		zap.String("type", evt.Type),
		zap.String("order_id", evt.OrderID),
		zap.String("sale_date", evt.SaleDate),
		zap.Int("item_count", evt.ItemCount),
		zap.Int("total_items", evt.TotalItems),
		zap.Strings("isbns", evt.ISBNs),
		zap.Uint("actor_id", evt.ActorID),
		zap.String("occurred_at", evt.OccurredAt),
	)
	return nil
}
