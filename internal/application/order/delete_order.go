package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// DeleteOrderUseCase 删除订单用例（管理员），先删明细再删订单头
type DeleteOrderUseCase struct {
	orders order.Repository
	tx     application.Transactor
	events order.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(
	orders order.Repository,
	tx application.Transactor,
	events order.EventPublisher,
	logger *zap.Logger,
) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{
		orders: orders,
		tx:     tx,
		events: events,
		logger: logger,
		now:    time.Now,
	}
}

// Execute 执行删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, orderID string, actorID uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, "order.Delete")
	span.SetAttributes(attribute.String("order.id", orderID))
	start := time.Now()
	defer func() {
		observe("delete", start, err)
		tracing.End(span, err)
	}()

	var deleted *order.Order
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orders.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if err := uc.orders.Delete(txCtx, orderID); err != nil {
			return err
		}
		deleted = o
		return nil
	})
	if err != nil {
		return err
	}

	publish(ctx, uc.events, uc.logger, newEvent(order.EventDeleted, deleted, actorID, uc.now()))
	return nil
}
