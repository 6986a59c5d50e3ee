package kafka

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"Fandium/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	likeConsumer sarama.ConsumerGroup
	likeHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, likeRepo repository.LikeRepo) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	likeConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		likeConsumer: likeConsumer,
		likeHandler:  NewLikeEventsHandler(likeRepo),
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context) error {
	topics := make([]string, 0, 2)
	for _, d := range model.Domains() {
		topics = append(topics, d.Topic())
	}

	go func() {
		log.Info("Like events consumer started", "topics", topics)
		for {
			if err := m.likeConsumer.Consume(ctx, topics, m.likeHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.likeConsumer.Close(); err != nil {
		log.Error("Failed to close like events consumer", "err", err)
	}

	return nil
}
