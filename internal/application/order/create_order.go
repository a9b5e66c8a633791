package order

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
	"github.com/xiebiao/bookstore-api/pkg/tracing"
)

// CreateOrderUseCase 创建订单用例
// 订单头和全部明细在同一个事务中写入：
// 任何一个ISBN不存在都不会留下订单行
type CreateOrderUseCase struct {
	orders   order.Repository
	editions book.EditionRepository
	tx       application.Transactor
	events   order.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orders order.Repository,
	editions book.EditionRepository,
	tx application.Transactor,
	events order.EventPublisher,
	logger *zap.Logger,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orders:   orders,
		editions: editions,
		tx:       tx,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	OrderID  string
	SaleDate string // YYYY-MM-DD，缺省为当天
	Items    []ItemInput
	ActorID  uint // 当前登录用户，只用于事件
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (o *order.Order, err error) {
	// 1. 参数校验（不访问数据库）
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		return nil, apperrors.MissingFields("OrderID")
	}
	saleDate, err := parseSaleDate(req.SaleDate)
	if err != nil {
		return nil, err
	}
	if saleDate == nil {
		saleDate = today(uc.now())
	}
	details, err := buildDetails(orderID, req.Items)
	if err != nil {
		return nil, err
	}
	o = &order.Order{OrderID: orderID, SaleDate: saleDate, Details: details}

	ctx, span := tracing.StartSpan(ctx, "order.Create")
	span.SetAttributes(
		attribute.String("order.id", orderID),
		attribute.Int("order.items", len(details)),
	)
	start := time.Now()
	defer func() {
		observe("create", start, err)
		tracing.End(span, err)
	}()

	// 2. 事务：查重 → 校验ISBN → 写订单头和明细
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		exists, err := uc.orders.Exists(txCtx, orderID)
		if err != nil {
			return err
		}
		if exists {
			return order.ErrOrderDuplicate
		}
		if err := checkISBNs(txCtx, uc.editions, o.ISBNs()); err != nil {
			return err
		}
		return uc.orders.Create(txCtx, o)
	})
	if err != nil {
		metrics.IncCounter(metrics.OrdersFailedTotal)
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.AddCounter(metrics.OrderItemsTotal, float64(o.TotalItems()))
	publish(ctx, uc.events, uc.logger, newEvent(order.EventCreated, o, req.ActorID, uc.now()))

	// 3. 重新加载，带上价格和书名
	created, findErr := uc.orders.FindByID(ctx, orderID)
	if findErr != nil {
		uc.logger.Warn("reload created order failed", zap.String("order_id", orderID), zap.Error(findErr))
		return o, nil
	}
	return created, nil
}
