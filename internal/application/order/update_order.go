package order

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// UpdateOrderUseCase 修改订单用例（管理员）
// SaleDate为nil时保持不变；Items为nil时保留原明细，非nil时整体替换
type UpdateOrderUseCase struct {
	orders   order.Repository
	editions book.EditionRepository
	tx       application.Transactor
	events   order.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewUpdateOrderUseCase 创建修改订单用例
func NewUpdateOrderUseCase(
	orders order.Repository,
	editions book.EditionRepository,
	tx application.Transactor,
	events order.EventPublisher,
	logger *zap.Logger,
) *UpdateOrderUseCase {
	return &UpdateOrderUseCase{
		orders:   orders,
		editions: editions,
		tx:       tx,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// UpdateOrderRequest 修改订单请求
type UpdateOrderRequest struct {
	OrderID  string
	SaleDate *string
	Items    []ItemInput
	ActorID  uint
}

// Execute 执行修改
func (uc *UpdateOrderUseCase) Execute(ctx context.Context, req UpdateOrderRequest) (o *order.Order, err error) {
	var saleDate *time.Time
	if req.SaleDate != nil {
		if saleDate, err = parseSaleDate(*req.SaleDate); err != nil {
			return nil, err
		}
	}
	var details []*order.Detail
	if req.Items != nil {
		if details, err = buildDetails(req.OrderID, req.Items); err != nil {
			return nil, err
		}
	}

	ctx, span := tracing.StartSpan(ctx, "order.Update")
	span.SetAttributes(attribute.String("order.id", req.OrderID))
	start := time.Now()
	defer func() {
		observe("update", start, err)
		tracing.End(span, err)
	}()

	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		current, err := uc.orders.FindByID(txCtx, req.OrderID)
		if err != nil {
			return err
		}

		if saleDate != nil {
			current.SaleDate = saleDate
			if err := uc.orders.UpdateSaleDate(txCtx, current); err != nil {
				return err
			}
		}

		if req.Items != nil {
			replacement := &order.Order{OrderID: req.OrderID, Details: details}
			if err := checkISBNs(txCtx, uc.editions, replacement.ISBNs()); err != nil {
				return err
			}
			if err := uc.orders.ReplaceDetails(txCtx, req.OrderID, details); err != nil {
				return err
			}
			current.Details = details
		}
		o = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	publish(ctx, uc.events, uc.logger, newEvent(order.EventUpdated, o, req.ActorID, uc.now()))

	updated, findErr := uc.orders.FindByID(ctx, req.OrderID)
	if findErr != nil {
		uc.logger.Warn("reload updated order failed", zap.String("order_id", req.OrderID), zap.Error(findErr))
		return o, nil
	}
	return updated, nil
}
