package kafka

import (
	"Fandium/internal/model"
	"Fandium/internal/repository"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// LikeEventsHandler 把点赞事件物化为持久层点赞记录。
// 事件携带绝对目标状态，重复投递和乱序投递都会收敛到同一结果
type LikeEventsHandler struct {
	likeRepo repository.LikeRepo
}

func NewLikeEventsHandler(likeRepo repository.LikeRepo) *LikeEventsHandler {
	return &LikeEventsHandler{likeRepo: likeRepo}
}

func (s *LikeEventsHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("like events consumer setup")
	return nil
}

func (s *LikeEventsHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("like events consumer cleanup")
	return nil
}

func (s *LikeEventsHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("like events process batch error", "err", err)
		return err
	}
	return nil
}

func (s *LikeEventsHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var ev LikeEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		// 解析失败的消息重试也不会成功，记录后丢弃
		log.ErrorContext(ctx, "unmarshal like event error", "err", err, "topic", msg.Topic)
		return nil
	}

	domain, err := model.ParseDomain(ev.Domain)
	if err != nil {
		log.ErrorContext(ctx, "like event with unknown domain dropped", "domain", ev.Domain)
		return nil
	}

	if ev.Liked {
		err = s.likeRepo.EnsureLiked(ctx, domain, ev.ContentID, ev.UserID)
	} else {
		err = s.likeRepo.EnsureUnliked(ctx, domain, ev.ContentID, ev.UserID)
	}
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "like event applied",
		"domain", ev.Domain, "contentID", ev.ContentID, "userID", ev.UserID, "liked", ev.Liked)
	return nil
}
