package kafka

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"context"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// LikeEventProducer 把点赞状态变更镜像到事件通道
type LikeEventProducer struct {
	producer sarama.SyncProducer
}

func NewLikeEventProducer(cfg *config.Config) (*LikeEventProducer, error) {
	p, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
	if err != nil {
		return nil, err
	}
	return &LikeEventProducer{producer: p}, nil
}

// PublishLikeState 发送绝对点赞状态。
// 按 (content, user) 作为消息 Key，同一对主体的事件落入同一分区保持发射顺序
func (p *LikeEventProducer) PublishLikeState(ctx context.Context, domain model.ContentDomain, contentID, userID uint64, liked bool) error {
	ev := &LikeEvent{
		Domain:     domain.Key(),
		ContentID:  contentID,
		UserID:     userID,
		Liked:      liked,
		OccurredAt: time.Now().UnixMilli(),
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: domain.Topic(),
		Key:   sarama.StringEncoder(strconv.FormatUint(contentID, 10) + ":" + strconv.FormatUint(userID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = p.producer.SendMessage(msg)
	return err
}

func (p *LikeEventProducer) Close() error {
	return p.producer.Close()
}
