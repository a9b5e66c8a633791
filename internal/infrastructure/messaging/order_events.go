package messaging

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// publishTimeout 单次发布的超时时间
const publishTimeout = 3 * time.Second

// MessagePublisher 底层消息发布（pkg/mq.Publisher实现）
type MessagePublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// OrderEventPublisher 订单事件发布器
// 1. 路由键即事件类型（order.created/order.updated/order.deleted）
// 2. 经过熔断器调用，MQ不可用时快速失败，不拖慢请求
// 3. 事件在事务提交后发布，请求取消不影响发布
type OrderEventPublisher struct {
	pub     MessagePublisher
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewOrderEventPublisher 创建订单事件发布器
func NewOrderEventPublisher(pub MessagePublisher, logger *zap.Logger) *OrderEventPublisher {
	breaker := circuitbreaker.New("order-events", circuitbreaker.Config{
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: circuitbreaker.ConsecutiveFailures(3),
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
			logger.Warn("熔断器状态变化",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &OrderEventPublisher{pub: pub, breaker: breaker, logger: logger}
}

// Publish 发布事件，返回的错误只用于记录日志
func (p *OrderEventPublisher) Publish(ctx context.Context, evt order.Event) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := p.breaker.Execute(ctx, func(ctx context.Context) error {
		return p.pub.Publish(ctx, evt.Type, evt)
	})

	result := metrics.Result(err)
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		result = "rejected"
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{
		"name":   p.breaker.Name(),
		"result": result,
	})
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.pub.Exchange(),
		"routing_key": evt.Type,
		"result":      result,
	})

	if err != nil {
		p.logger.Warn("订单事件发布失败",
			zap.String("type", evt.Type),
			zap.String("order_id", evt.OrderID),
			zap.Error(err),
		)
		return err
	}
	p.logger.Debug("订单事件已发布", zap.String("type", evt.Type), zap.String("order_id", evt.OrderID))
	return nil
}

// NoopEventPublisher 未启用MQ时使用，只记录日志
type NoopEventPublisher struct {
	logger *zap.Logger
}

// NewNoopEventPublisher 创建空发布器
func NewNoopEventPublisher(logger *zap.Logger) *NoopEventPublisher {
	return &NoopEventPublisher{logger: logger}
}

func (p *NoopEventPublisher) Publish(_ context.Context, evt order.Event) error {
	p.logger.Debug("MQ未启用，跳过订单事件", zap.String("type", evt.Type), zap.String("order_id", evt.OrderID))
	return nil
}
