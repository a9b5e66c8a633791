// Package metrics 基于Prometheus的指标收集
//
// 指标分三类：
//   - HTTP指标：请求数、耗时、处理中的请求数（由metrics中间件记录）
//   - 业务指标：订单写操作、登录失败、限流拒绝
//   - 基础设施指标：事件发布、事件消费、熔断器状态
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds）。
// 标签只使用有限取值（method、路由模板、status），不使用订单号、用户ID等高基数字段。
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// HTTPRequestsTotal HTTP请求总数
	// 标签：method、path（路由模板，如/api/v1/books/:id）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// OrdersCreatedTotal 订单创建成功总数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 订单创建失败总数
	OrdersFailedTotal prometheus.Counter

	// OrderMutationsTotal 订单写操作总数
	// 标签：action（create/update/delete）、result（success/failure）
	OrderMutationsTotal *prometheus.CounterVec

	// OrderMutationDuration 订单事务耗时
	OrderMutationDuration *prometheus.HistogramVec

	// OrderItemsTotal 已售出册数（订单明细Quantity之和）
	OrderItemsTotal prometheus.Counter

	// AuthFailuresTotal 认证失败总数
	// 标签：reason（missing_token/invalid_token/revoked/bad_credentials/forbidden）
	AuthFailuresTotal *prometheus.CounterVec

	// RateLimitedTotal 被限流拒绝的请求数
	RateLimitedTotal prometheus.Counter

	// CircuitBreakerState 熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求总数
	// 标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 事件发布总数
	// 标签：exchange、routing_key、result
	MessagesPublishedTotal *prometheus.CounterVec

	// MessagesConsumedTotal 事件消费总数
	// 标签：queue、result
	MessagesConsumedTotal *prometheus.CounterVec

	// MessageProcessingDuration 事件处理耗时
	MessageProcessingDuration prometheus.Histogram
)

// InitMetrics 注册所有指标到默认Registry，重复调用无副作用
func InitMetrics() {
	once.Do(register)
}

func register() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "订单创建成功总数",
		},
	)

	OrdersFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "订单创建失败总数",
		},
	)

	OrderMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_mutations_total",
			Help: "订单写操作总数",
		},
		[]string{"action", "result"},
	)

	// 订单事务包含多条明细写入，桶比HTTP略宽
	OrderMutationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_mutation_duration_seconds",
			Help:    "订单事务耗时（秒）",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"action"},
	)

	OrderItemsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_items_sold_total",
			Help: "订单明细售出册数",
		},
	)

	AuthFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_failures_total",
			Help: "认证/授权失败总数",
		},
		[]string{"reason"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "被限流拒绝的请求数",
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "熔断器请求总数",
		},
		[]string{"name", "result"},
	)

	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "事件发布总数",
		},
		[]string{"exchange", "routing_key", "result"},
	)

	MessagesConsumedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_consumed_total",
			Help: "事件消费总数",
		},
		[]string{"queue", "result"},
	)

	MessageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "message_processing_duration_seconds",
			Help:    "事件处理耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
	)
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// AddCounter Counter增加指定值
func AddCounter(counter prometheus.Counter, value float64) {
	counter.Add(value)
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGaugeVec 设置GaugeVec值（带标签）
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}

// Result 把错误转换为result标签值
func Result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
