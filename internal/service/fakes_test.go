package service

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"Fandium/internal/pkg/consts"
	"Fandium/internal/pkg/redis"
	"Fandium/internal/repository"
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

// setupTestEnv 起一个 miniredis 并注入测试配置
func setupTestEnv(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	if err := redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}); err != nil {
		t.Fatalf("init redis: %v", err)
	}

	config.Cfg = &config.Config{
		Counter: config.CounterConfig{
			ViewCooldownSeconds: 600,
			WarmLockTTLSeconds:  3,
			WarmLockRetries:     1,
			CountCacheHours:     168,
		},
		Sync: config.SyncConfig{BatchLimit: 100},
	}
	return mr
}

type fakeContentRepo struct {
	existing map[uint64]bool
}

func (r *fakeContentRepo) Exists(_ context.Context, _ model.ContentDomain, contentID uint64) (bool, error) {
	return r.existing[contentID], nil
}

func statMapKey(domain model.ContentDomain, contentID uint64) string {
	return domain.Key() + ":" + strconv.FormatUint(contentID, 10)
}

type fakeStatRepo struct {
	mu    sync.Mutex
	stats map[string]*model.ContentStat
}

func newFakeStatRepo() *fakeStatRepo {
	return &fakeStatRepo{stats: make(map[string]*model.ContentStat)}
}

func (r *fakeStatRepo) put(stat *model.ContentStat) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, _ := model.ParseDomain(stat.Domain)
	r.stats[statMapKey(d, stat.ContentID)] = stat
}

func (r *fakeStatRepo) Get(_ context.Context, domain model.ContentDomain, contentID uint64) (*model.ContentStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stat, ok := r.stats[statMapKey(domain, contentID)]
	if !ok {
		return nil, repository.ErrStatNotFound
	}
	cp := *stat
	return &cp, nil
}

func (r *fakeStatRepo) ApplyCountDelta(_ context.Context, domain model.ContentDomain, contentID uint64, metric model.Metric, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stat, ok := r.stats[statMapKey(domain, contentID)]
	if !ok {
		return repository.ErrStatNotFound
	}
	if metric == model.MetricView {
		stat.ViewCount += delta
	} else {
		stat.LikeCount += delta
	}
	return nil
}

func (r *fakeStatRepo) ListRankable(_ context.Context, domain model.ContentDomain, afterID uint64, limit int) ([]*model.ContentStat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.ContentStat, 0)
	for _, stat := range r.stats {
		if stat.Domain != domain.Key() || stat.Visibility != consts.VisibilityPublic || stat.ContentID <= afterID {
			continue
		}
		cp := *stat
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentID < out[j].ContentID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStatRepo) BulkUpdateHotScores(_ context.Context, domain model.ContentDomain, updates []model.HotScoreUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range updates {
		if stat, ok := r.stats[statMapKey(domain, u.ContentID)]; ok {
			stat.HotScore = u.Score
		}
	}
	return nil
}

type fakeLikeRepo struct {
	mu    sync.Mutex
	likes map[string]map[uint64]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: make(map[string]map[uint64]bool)}
}

func (r *fakeLikeRepo) EnsureLiked(_ context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := statMapKey(domain, contentID)
	if r.likes[key] == nil {
		r.likes[key] = make(map[uint64]bool)
	}
	r.likes[key][userID] = true
	return nil
}

func (r *fakeLikeRepo) EnsureUnliked(_ context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.likes[statMapKey(domain, contentID)], userID)
	return nil
}

func (r *fakeLikeRepo) Exists(_ context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.likes[statMapKey(domain, contentID)][userID], nil
}

func (r *fakeLikeRepo) CountByContent(_ context.Context, domain model.ContentDomain, contentID uint64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.likes[statMapKey(domain, contentID)])), nil
}

func (r *fakeLikeRepo) ListLikerIDs(_ context.Context, domain model.ContentDomain, contentID uint64) ([]uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]uint64, 0)
	for id := range r.likes[statMapKey(domain, contentID)] {
		ids = append(ids, id)
	}
	return ids, nil
}

type publishedEvent struct {
	domain    model.ContentDomain
	contentID uint64
	userID    uint64
	liked     bool
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) PublishLikeState(_ context.Context, domain model.ContentDomain, contentID, userID uint64, liked bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{domain: domain, contentID: contentID, userID: userID, liked: liked})
	return nil
}
