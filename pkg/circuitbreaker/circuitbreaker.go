// Package circuitbreaker 熔断器
//
// 用于保护旁路依赖（事件总线等）：连续失败达到阈值后进入OPEN，
// 在Timeout内直接拒绝调用；超时后进入HALF_OPEN放行少量探测请求，
// 探测成功回到CLOSED，失败重新OPEN。
//
//	CLOSED --失败达到阈值--> OPEN --Timeout--> HALF_OPEN --成功--> CLOSED
//	                                             └--失败--> OPEN
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrOpenState 熔断器打开时拒绝请求
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// MaxRequests 半开状态允许的探测请求数，0视为1
	MaxRequests uint32
	// Interval 关闭状态下统计窗口长度，0表示不按时间重置
	Interval time.Duration
	// Timeout 打开状态持续时间，0视为60秒
	Timeout time.Duration
	// ReadyToTrip 关闭状态下每次失败后调用，返回true则熔断；nil时连续失败5次熔断
	ReadyToTrip func(counts Counts) bool
	// OnStateChange 状态变化回调（在锁内调用，不能回调熔断器自身）
	OnStateChange func(name string, from, to State)
}

// Counts 当前统计窗口内的计数
type Counts struct {
	Requests             uint32
	TotalSuccesses       uint32
	TotalFailures        uint32
	ConsecutiveSuccesses uint32
	ConsecutiveFailures  uint32
}

// FailureRate 失败率
func (c Counts) FailureRate() float64 {
	if c.Requests == 0 {
		return 0
	}
	return float64(c.TotalFailures) / float64(c.Requests)
}

func (c *Counts) onSuccess() {
	c.TotalSuccesses++
	c.ConsecutiveSuccesses++
	c.ConsecutiveFailures = 0
}

func (c *Counts) onFailure() {
	c.TotalFailures++
	c.ConsecutiveFailures++
	c.ConsecutiveSuccesses = 0
}

// ConsecutiveFailures 连续失败n次熔断
func ConsecutiveFailures(n uint32) func(Counts) bool {
	return func(c Counts) bool { return c.ConsecutiveFailures >= n }
}

// CircuitBreaker 并发安全的熔断器
type CircuitBreaker struct {
	name          string
	maxRequests   uint32
	interval      time.Duration
	timeout       time.Duration
	readyToTrip   func(Counts) bool
	onStateChange func(name string, from, to State)
	now           func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃跨代的请求结果
	counts     Counts
	expiry     time.Time
}

// New 创建熔断器
func New(name string, cfg Config) *CircuitBreaker {
	cb := &CircuitBreaker{
		name:          name,
		maxRequests:   cfg.MaxRequests,
		interval:      cfg.Interval,
		timeout:       cfg.Timeout,
		readyToTrip:   cfg.ReadyToTrip,
		onStateChange: cfg.OnStateChange,
		now:           time.Now,
	}
	if cb.maxRequests == 0 {
		cb.maxRequests = 1
	}
	if cb.timeout <= 0 {
		cb.timeout = 60 * time.Second
	}
	if cb.readyToTrip == nil {
		cb.readyToTrip = ConsecutiveFailures(5)
	}
	cb.toNewGeneration(cb.now())
	return cb
}

// Name 熔断器名称
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// Execute 在熔断器保护下执行fn
// 熔断时直接返回ErrOpenState；ctx已取消时不计入失败
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	generation, err := cb.beforeRequest()
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			cb.afterRequest(generation, false)
			panic(r)
		}
	}()

	err = fn(ctx)
	if err != nil && ctx.Err() != nil {
		// 调用方主动取消，不代表依赖故障
		cb.release(generation)
		return err
	}
	cb.afterRequest(generation, err == nil)
	return err
}

// State 当前状态
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	state, _ := cb.currentState(cb.now())
	return state
}

// Counts 当前统计
func (cb *CircuitBreaker) Counts() Counts {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.counts
}

func (cb *CircuitBreaker) beforeRequest() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state, generation := cb.currentState(cb.now())
	switch {
	case state == StateOpen:
		return generation, ErrOpenState
	case state == StateHalfOpen && cb.counts.Requests >= cb.maxRequests:
		return generation, ErrOpenState
	}

	cb.counts.Requests++
	return generation, nil
}

func (cb *CircuitBreaker) afterRequest(before uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	now := cb.now()
	state, generation := cb.currentState(now)
	if generation != before {
		return
	}

	if success {
		cb.counts.onSuccess()
		if state == StateHalfOpen && cb.counts.ConsecutiveSuccesses >= cb.maxRequests {
			cb.setState(StateClosed, now)
		}
		return
	}

	cb.counts.onFailure()
	switch state {
	case StateClosed:
		if cb.readyToTrip(cb.counts) {
			cb.setState(StateOpen, now)
		}
	case StateHalfOpen:
		cb.setState(StateOpen, now)
	}
}

func (cb *CircuitBreaker) release(before uint64) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if _, generation := cb.currentState(cb.now()); generation == before && cb.counts.Requests > 0 {
		cb.counts.Requests--
	}
}

func (cb *CircuitBreaker) currentState(now time.Time) (State, uint64) {
	switch cb.state {
	case StateClosed:
		if !cb.expiry.IsZero() && cb.expiry.Before(now) {
			cb.toNewGeneration(now)
		}
	case StateOpen:
		if cb.expiry.Before(now) {
			cb.setState(StateHalfOpen, now)
		}
	}
	return cb.state, cb.generation
}

func (cb *CircuitBreaker) setState(state State, now time.Time) {
	if cb.state == state {
		return
	}
	prev := cb.state
	cb.state = state
	cb.toNewGeneration(now)

	if cb.onStateChange != nil {
		cb.onStateChange(cb.name, prev, state)
	}
}

func (cb *CircuitBreaker) toNewGeneration(now time.Time) {
	cb.generation++
	cb.counts = Counts{}

	switch cb.state {
	case StateClosed:
		if cb.interval > 0 {
			cb.expiry = now.Add(cb.interval)
		} else {
			cb.expiry = time.Time{}
		}
	case StateOpen:
		cb.expiry = now.Add(cb.timeout)
	default:
		cb.expiry = time.Time{}
	}
}
