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
	"time"

	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
)

// LikeEventPublisher 把点赞状态变更异步镜像到事件通道
type LikeEventPublisher interface {
	PublishLikeState(ctx context.Context, domain model.ContentDomain, contentID, userID uint64, liked bool) error
}

type LikeService interface {
	// ToggleLike 翻转点赞状态，返回新状态和当前点赞数
	ToggleLike(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, int64, error)
	// GetCount 返回持久化总数与未折算增量之和
	GetCount(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error)
	IsLiked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error)
}

type likeServiceImpl struct {
	contentRepo repository.ContentRepo
	likeRepo    repository.LikeRepo
	statRepo    repository.StatRepo
	publisher   LikeEventPublisher
}

func NewLikeService(
	contentRepo repository.ContentRepo,
	likeRepo repository.LikeRepo,
	statRepo repository.StatRepo,
	publisher LikeEventPublisher,
) LikeService {
	return &likeServiceImpl{
		contentRepo: contentRepo,
		likeRepo:    likeRepo,
		statRepo:    statRepo,
		publisher:   publisher,
	}
}

func (s *likeServiceImpl) ToggleLike(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, int64, error) {
	if userID == 0 {
		return false, 0, UnauthorizedError
	}

	exists, err := s.contentRepo.Exists(ctx, domain, contentID)
	if err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, ErrContentNotFound
	}

	ready, err := s.ensureLikeSet(ctx, domain, contentID)
	if err != nil {
		return false, 0, err
	}

	var newState bool
	if ready {
		newState, err = s.flipMembership(ctx, domain, contentID, userID)
	} else {
		newState, err = s.flipDegraded(ctx, domain, contentID, userID)
	}
	if err != nil {
		return false, 0, err
	}

	// 入队失败不回滚：计数面向 UI，点赞记录由事件消费者独立收敛
	if err = s.publisher.PublishLikeState(ctx, domain, contentID, userID, newState); err != nil {
		log.ErrorContext(ctx, "publish like event failed",
			"domain", domain.Key(), "contentID", contentID, "userID", userID, "err", err)
	}

	count, err := s.GetCount(ctx, domain, contentID)
	if err != nil {
		return false, 0, err
	}
	return newState, count, nil
}

func (s *likeServiceImpl) GetCount(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error) {
	stat, err := s.statRepo.Get(ctx, domain, contentID)
	if err != nil {
		if errors.Is(err, repository.ErrStatNotFound) {
			return 0, ErrContentNotFound
		}
		return 0, err
	}

	pending, err := redis.GetInt64(ctx, consts.LikeCountKey(domain.Key(), contentID))
	if err != nil {
		if !errors.Is(err, redisv9.Nil) {
			log.WarnContext(ctx, "read pending like delta failed", "err", err)
		}
		pending = 0
	}

	count := stat.LikeCount + pending
	if count < 0 {
		count = 0
	}
	return count, nil
}

func (s *likeServiceImpl) IsLiked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	if userID == 0 {
		return false, nil
	}

	setKey := consts.LikeSetKey(domain.Key(), contentID)
	ready, err := redis.Exists(ctx, setKey)
	if err == nil && ready {
		return redis.SIsMember(ctx, setKey, userID)
	}
	return s.likeRepo.Exists(ctx, domain, contentID, userID)
}

// flipMembership 由 SADD 的返回值决定翻转方向：新加入即点赞，已是成员转为取消。
// 集合操作在服务端原子执行，同一用户的并发翻转各自独占一次状态迁移，
// 计数增量只跟随真实发生的迁移，不会与集合状态漂移
func (s *likeServiceImpl) flipMembership(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	setKey := consts.LikeSetKey(domain.Key(), contentID)
	countKey := consts.LikeCountKey(domain.Key(), contentID)

	added, err := redis.SAddMember(ctx, setKey, userID)
	if err != nil {
		return false, err
	}
	if added {
		_, err = redis.Incr(ctx, countKey)
		return true, err
	}

	removed, err := redis.SRemMember(ctx, setKey, userID)
	if err != nil {
		return false, err
	}
	// removed 为假说明并发的取消已经迁移过状态，这里不再重复扣减
	if removed {
		if _, err = redis.Decr(ctx, countKey); err != nil {
			return false, err
		}
	}
	return false, nil
}

// flipDegraded 集合缓存不可用时的降级翻转：直查持久层定方向，只推计数增量
func (s *likeServiceImpl) flipDegraded(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	liked, err := s.likeRepo.Exists(ctx, domain, contentID, userID)
	if err != nil {
		return false, err
	}
	newState := !liked

	countKey := consts.LikeCountKey(domain.Key(), contentID)
	if newState {
		_, err = redis.Incr(ctx, countKey)
	} else {
		_, err = redis.Decr(ctx, countKey)
	}
	if err != nil {
		return false, err
	}
	return newState, nil
}

// ensureLikeSet 保证点赞集合缓存可用，冷缓存由持锁者做一次性预热。
// 抢锁失败说明预热已在进行，返回不可用让调用方走降级路径，
// 避免整批请求都阻塞在预热上
func (s *likeServiceImpl) ensureLikeSet(ctx context.Context, domain model.ContentDomain, contentID uint64) (bool, error) {
	setKey := consts.LikeSetKey(domain.Key(), contentID)

	ready, err := redis.Exists(ctx, setKey)
	if err != nil || ready {
		return ready, err
	}

	cfg := config.Cfg.Counter
	lockKey := consts.LikeWarmLockKey(domain.Key(), contentID)
	lockVal := uuid.NewString()

	locked, err := redis.TryLock(ctx, lockKey, lockVal,
		time.Duration(cfg.WarmLockTTLSeconds)*time.Second, cfg.WarmLockRetries)
	if err != nil {
		return false, err
	}
	if !locked {
		return false, nil
	}
	defer redis.UnLock(ctx, lockKey, lockVal)

	// 等锁期间可能已被上一个持有者预热完
	ready, err = redis.Exists(ctx, setKey)
	if err != nil || ready {
		return ready, err
	}
	if err = s.warmLikeSet(ctx, domain, contentID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *likeServiceImpl) warmLikeSet(ctx context.Context, domain model.ContentDomain, contentID uint64) error {
	ids, err := s.likeRepo.ListLikerIDs(ctx, domain, contentID)
	if err != nil {
		return err
	}

	members := make([]interface{}, 0, len(ids)+1)
	members = append(members, consts.LikeSetGuardMember)
	for _, id := range ids {
		members = append(members, id)
	}

	setKey := consts.LikeSetKey(domain.Key(), contentID)
	if err = redis.SAdd(ctx, setKey, members...); err != nil {
		return err
	}
	ttl := time.Duration(config.Cfg.Counter.CountCacheHours) * time.Hour
	if err = redis.Expire(ctx, setKey, ttl); err != nil {
		return err
	}

	log.InfoContext(ctx, "like set warmed", "domain", domain.Key(), "contentID", contentID, "likers", len(ids))
	return nil
}
