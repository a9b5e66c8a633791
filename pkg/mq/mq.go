// Package mq RabbitMQ发布/订阅封装
//
// 使用Topic Exchange：发布方按routing key（如order.created）投递，
// 消费方用通配符绑定队列（order.* 匹配所有订单事件）。
// 消息体统一为JSON，持久化投递，消费端手动Ack。
package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// ErrChannelClosed 消费过程中Channel被服务端关闭
var ErrChannelClosed = errors.New("mq: delivery channel closed")

// ErrDiscard Handler返回包装了它的错误时消息直接丢弃，不再重新入队
var ErrDiscard = errors.New("mq: discard message")

// Publisher 消息发布者
// amqp.Channel不是并发安全的，发布时加锁
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher 连接RabbitMQ并声明持久化Exchange
func NewPublisher(url, exchange, exchangeType string, logger *zap.Logger) (*Publisher, error) {
	conn, channel, err := open(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	logger.Info("mq publisher ready", zap.String("exchange", exchange), zap.String("type", exchangeType))
	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

// Publish 序列化为JSON并持久化投递
func (p *Publisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	p.logger.Debug("message published", zap.String("routing_key", routingKey), zap.Int("bytes", len(body)))
	return nil
}

// Exchange 发布目标Exchange名称
func (p *Publisher) Exchange() string {
	return p.exchange
}

// Close 关闭Channel和连接
func (p *Publisher) Close() error {
	return closeAll(p.channel, p.conn)
}

// Delivery 交给处理函数的消息
type Delivery struct {
	RoutingKey string
	Body       []byte
	Timestamp  time.Time
}

// Handler 消息处理函数，返回错误时消息重新入队（ErrDiscard除外）
type Handler func(ctx context.Context, d Delivery) error

// Consumer 消息消费者
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	logger  *zap.Logger
}

// NewConsumer 声明Exchange与持久化Queue，并按routingKeys绑定
func NewConsumer(url, exchange, exchangeType, queue string, routingKeys []string, logger *zap.Logger) (*Consumer, error) {
	conn, channel, err := open(url, exchange, exchangeType)
	if err != nil {
		return nil, err
	}

	q, err := channel.QueueDeclare(queue, true, false, false, false, nil)
	if err != nil {
		_ = closeAll(channel, conn)
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	for _, key := range routingKeys {
		if err := channel.QueueBind(q.Name, key, exchange, false, nil); err != nil {
			_ = closeAll(channel, conn)
			return nil, fmt.Errorf("bind queue %s to %s: %w", q.Name, key, err)
		}
	}

	logger.Info("mq consumer ready", zap.String("queue", q.Name), zap.Strings("routing_keys", routingKeys))
	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   q.Name,
		logger:  logger,
	}, nil
}

// Consume 阻塞消费直到ctx取消
// PrefetchCount=1，处理完一条才取下一条；处理失败Nack并重新入队
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}

	c.logger.Info("consuming", zap.String("queue", c.queue))
	for {
		select {
		case <-ctx.Done():
			c.logger.Info("consumer stopped", zap.String("queue", c.queue))
			return nil

		case msg, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}

			d := Delivery{RoutingKey: msg.RoutingKey, Body: msg.Body, Timestamp: msg.Timestamp}
			if err := handler(ctx, d); err != nil {
				requeue := !errors.Is(err, ErrDiscard)
				c.logger.Warn("message handling failed",
					zap.String("routing_key", msg.RoutingKey), zap.Bool("requeue", requeue), zap.Error(err))
				_ = msg.Nack(false, requeue)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

// Queue 实际绑定的队列名
func (c *Consumer) Queue() string {
	return c.queue
}

// Close 关闭Channel和连接
func (c *Consumer) Close() error {
	return closeAll(c.channel, c.conn)
}

func open(url, exchange, exchangeType string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = closeAll(channel, conn)
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return conn, channel, nil
}

func closeAll(channel *amqp.Channel, conn *amqp.Connection) error {
	var errs []error
	if channel != nil {
		if err := channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
