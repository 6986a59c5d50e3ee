package job

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

func setupTestEnv(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	if err := redis.InitRedis(config.RedisConfig{Addr: mr.Addr()}); err != nil {
		t.Fatalf("init redis: %v", err)
	}

	config.Cfg = &config.Config{
		Sync: config.SyncConfig{BatchLimit: 100},
		Rank: config.RankConfig{BatchSize: 2},
	}
	return mr
}

func statMapKey(domain model.ContentDomain, contentID uint64) string {
	return domain.Key() + ":" + strconv.FormatUint(contentID, 10)
}

// fakeStatRepo 的 onApplyDelta 钩子在持久化累加时触发，
// 用来在折算中途注入并发写
type fakeStatRepo struct {
	mu           sync.Mutex
	stats        map[string]*model.ContentStat
	onApplyDelta func()
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

func (r *fakeStatRepo) get(domain model.ContentDomain, contentID uint64) *model.ContentStat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats[statMapKey(domain, contentID)]
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
	if r.onApplyDelta != nil {
		r.onApplyDelta()
	}
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
