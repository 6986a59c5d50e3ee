package service

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"Fandium/internal/pkg/consts"
	"Fandium/internal/pkg/redis"
	"Fandium/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type CounterService interface {
	// IncrementViewCount 记录一次浏览。同一身份在冷却窗口内只计一次
	IncrementViewCount(ctx context.Context, domain model.ContentDomain, contentID, userID uint64, remoteAddr string) error
	// GetViewCount 返回持久化总数与未折算增量之和
	GetViewCount(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error)
}

type counterServiceImpl struct {
	contentRepo repository.ContentRepo
	statRepo    repository.StatRepo
}

func NewCounterService(contentRepo repository.ContentRepo, statRepo repository.StatRepo) CounterService {
	return &counterServiceImpl{
		contentRepo: contentRepo,
		statRepo:    statRepo,
	}
}

func (s *counterServiceImpl) IncrementViewCount(ctx context.Context, domain model.ContentDomain, contentID, userID uint64, remoteAddr string) error {
	exists, err := s.contentRepo.Exists(ctx, domain, contentID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrContentNotFound
	}

	identity := effectiveIdentity(userID, remoteAddr)
	cooldown := time.Duration(config.Cfg.Counter.ViewCooldownSeconds) * time.Second

	// SETNX 建去重标记；建成功才是冷却窗口内的首次浏览
	first, err := redis.SetNX(ctx, consts.ViewLogKey(domain.Key(), contentID, identity), "1", cooldown)
	if err != nil {
		return err
	}
	if !first {
		return nil
	}

	if _, err = redis.Incr(ctx, consts.ViewCountKey(domain.Key(), contentID)); err != nil {
		return err
	}

	log.InfoContext(ctx, "view counted", "domain", domain.Key(), "contentID", contentID, "identity", identity)
	return nil
}

func (s *counterServiceImpl) GetViewCount(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error) {
	stat, err := s.statRepo.Get(ctx, domain, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrStatNotFound) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}

	pending, err := redis.GetInt64(ctx, consts.ViewCountKey(domain.Key(), contentID))
	if err != nil {
		if !errors.Is(err, redisv9.Nil) {
			// 快路径不可用时退化为只报持久化总数
			log.WarnContext(ctx, "read pending view delta failed", "err", err)
		}
		pending = 0
	}

	return stat.ViewCount + pending, nil
}

// effectiveIdentity 登录用户按 UID 去重，匿名用户退化为按来源地址去重
func effectiveIdentity(userID uint64, remoteAddr string) string {
	if userID > 0 {
		return strconv.FormatUint(userID, 10)
	}
	return remoteAddr
}
