package order

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-api/internal/application"
	"github.com/xiebiao/bookstore-api/internal/domain/book"
	"github.com/xiebiao/bookstore-api/internal/domain/order"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
	"github.com/xiebiao/bookstore-api/pkg/metrics"
)

// ItemInput 请求中的一行明细，ItemID缺省为序号（从1开始），Quantity缺省为1
type ItemInput struct {
	ItemID   string
	ISBN     string
	Quantity *int
}

// buildDetails 明细校验与默认值填充
func buildDetails(orderID string, items []ItemInput) ([]*order.Detail, error) {
	details := make([]*order.Detail, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, item := range items {
		isbn := strings.TrimSpace(item.ISBN)
		if isbn == "" {
			return nil, apperrors.Validation("ISBN is required for item " + strconv.Itoa(i+1))
		}

		itemID := strings.TrimSpace(item.ItemID)
		if itemID == "" {
			itemID = strconv.Itoa(i + 1)
		}
		if _, dup := seen[itemID]; dup {
			return nil, order.ErrDuplicateItemID
		}
		seen[itemID] = struct{}{}

		qty := order.DefaultQuantity
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		if qty < 1 {
			return nil, order.ErrInvalidQuantity
		}

		details = append(details, &order.Detail{
			OrderID:  orderID,
			ItemID:   itemID,
			ISBN:     isbn,
			Quantity: qty,
		})
	}
	return details, nil
}

// parseSaleDate 空串返回nil，由调用方决定默认值
func parseSaleDate(s string) (*time.Time, error) {
	return application.ParseDate("SaleDate", s)
}

// today 当天零点（UTC），与DATE列比较时不受时区影响
func today(now time.Time) *time.Time {
	y, m, d := now.Date()
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// checkISBNs 所有ISBN都必须存在，否则返回UnknownISBNs（按请求顺序列出）
func checkISBNs(ctx context.Context, editions book.EditionRepository, isbns []string) error {
	if len(isbns) == 0 {
		return nil
	}
	found, err := editions.FindByISBNs(ctx, isbns)
	if err != nil {
		return err
	}
	var missing []string
	for _, isbn := range isbns {
		if _, ok := found[isbn]; !ok {
			missing = append(missing, isbn)
		}
	}
	if len(missing) > 0 {
		return order.UnknownISBNs(missing)
	}
	return nil
}

// newEvent 根据订单生成事件
func newEvent(eventType string, o *order.Order, actorID uint, now time.Time) order.Event {
	evt := order.Event{
		Type:       eventType,
		OrderID:    o.OrderID,
		ItemCount:  len(o.Details),
		TotalItems: o.TotalItems(),
		ISBNs:      o.ISBNs(),
		ActorID:    actorID,
		OccurredAt: now.UTC().Format(time.RFC3339),
	}
	if o.SaleDate != nil {
		evt.SaleDate = o.SaleDate.Format(query.DateLayout)
	}
	return evt
}

// publish 事件发布失败只记录日志，已提交的事务不回滚
func publish(ctx context.Context, events order.EventPublisher, logger *zap.Logger, evt order.Event) {
	if err := events.Publish(ctx, evt); err != nil {
		logger.Warn("publish order event failed",
			zap.String("type", evt.Type),
			zap.String("order_id", evt.OrderID),
			zap.Error(err),
		)
	}
}

// observe 记录订单写操作的次数和耗时
func observe(action string, start time.Time, err error) {
	metrics.IncCounterVec(metrics.OrderMutationsTotal, map[string]string{
		"action": action,
		"result": metrics.Result(err),
	})
	metrics.ObserveHistogramVec(metrics.OrderMutationDuration, map[string]string{"action": action}, time.Since(start).Seconds())
}
