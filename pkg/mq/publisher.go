package mq

import (
	"context"
	"encoding/json"

	"github.com/wyfcoding/storefront/pkg/logger"
)

// Publisher 领域事件发布接口，各上下文的 domain.EventPublisher 与之同形
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

// TopicPublisher 在主题前加上统一前缀后写入 Kafka
type TopicPublisher struct {
	producer *KafkaProducer
	prefix   string
	source   string
}

// NewTopicPublisher 创建 Kafka 事件发布者，source 写入消息头用于区分来源服务
func NewTopicPublisher(producer *KafkaProducer, prefix, source string) *TopicPublisher {
	return &TopicPublisher{producer: producer, prefix: prefix, source: source}
}

// Publish 发布事件
func (p *TopicPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	headers := map[string]string{"event_type": topic}
	if p.source != "" {
		headers["source"] = p.source
	}
	return p.producer.SendMessage(ctx, p.prefix+topic, key, event, headers)
}

// LogPublisher 未配置 Kafka 时使用，只把事件写入日志
type LogPublisher struct{}

// NewLogPublisher 创建日志事件发布者
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

// Publish 以 debug 级别记录事件
func (LogPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	logger.Debug(ctx, "Event published", "topic", topic, "key", key, "payload", string(data))
	return nil
}
