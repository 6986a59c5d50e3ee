package job

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"Fandium/internal/pkg/consts"
	"Fandium/internal/pkg/logger"
	"Fandium/internal/pkg/redis"
	"Fandium/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// CountSyncJob 把快路径计数器的增量折算进持久化聚合总数。
// 同一套流程按 metric 实例化为 View-Sync 和 Like-Sync 两个任务。
//
// 单个 Key 的处理顺序：读增量 -> 持久化累加 -> DECRBY 已折算部分 -> 原子删零。
// 读与删之间落入的并发增量会留在余量里，下一轮继续折算，任何交错都不丢计数
type CountSyncJob struct {
	metric   model.Metric
	statRepo repository.StatRepo
}

func NewViewSyncJob(statRepo repository.StatRepo) *CountSyncJob {
	return &CountSyncJob{metric: model.MetricView, statRepo: statRepo}
}

func NewLikeSyncJob(statRepo repository.StatRepo) *CountSyncJob {
	return &CountSyncJob{metric: model.MetricLike, statRepo: statRepo}
}

// Run 实现 cron.Job
func (j *CountSyncJob) Run() {
	traceID := "job-" + string(j.metric) + "-sync-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := j.Sync(ctx); err != nil {
		log.ErrorContext(ctx, "count sync pass error", "metric", j.metric, "err", err)
	}
}

// Sync 同步执行一轮折算，也是运维触发入口
func (j *CountSyncJob) Sync(ctx context.Context) error {
	limit := config.Cfg.Sync.BatchLimit

	var synced, skipped int
	for _, domain := range model.Domains() {
		keys, err := redis.ScanKeys(ctx, j.scanPattern(domain), limit)
		if err != nil {
			return err
		}

		for _, key := range keys {
			ok := j.syncKey(ctx, domain, key)
			if ok {
				synced++
			} else {
				skipped++
			}
		}
	}

	log.InfoContext(ctx, "count sync pass finished", "metric", j.metric, "synced", synced, "skipped", skipped)
	return nil
}

// syncKey 处理单个计数 Key，失败只影响自身
func (j *CountSyncJob) syncKey(ctx context.Context, domain model.ContentDomain, key string) bool {
	raw, err := redis.GetValue(ctx, key)
	if err != nil {
		log.ErrorContext(ctx, "read counter key error", "key", key, "err", err)
		return false
	}
	if raw == "" {
		// 扫描后已被并发清理
		return false
	}

	delta, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || (j.metric == model.MetricView && delta < 0) {
		// 脏数据不折算、不删除、不当零处理，留待人工排查
		log.WarnContext(ctx, "corrupted counter key skipped", "key", key, "raw", raw)
		return false
	}

	if delta == 0 {
		// 僵尸 Key：已被榨干，只做清理，不碰持久层
		if _, err = redis.DeleteIfZero(ctx, key); err != nil {
			log.ErrorContext(ctx, "delete zombie key error", "key", key, "err", err)
		}
		return true
	}

	contentID, ok := contentIDFromKey(key)
	if !ok {
		log.WarnContext(ctx, "malformed counter key skipped", "key", key)
		return false
	}

	if err = j.statRepo.ApplyCountDelta(ctx, domain, contentID, j.metric, delta); err != nil {
		// 典型场景：内容行被并发删除。本 Key 留到下一轮，批次继续
		log.ErrorContext(ctx, "apply count delta error", "key", key, "delta", delta, "err", err)
		return false
	}

	if _, err = redis.DecrBy(ctx, key, delta); err != nil {
		log.ErrorContext(ctx, "drain counter key error", "key", key, "err", err)
		return false
	}
	if _, err = redis.DeleteIfZero(ctx, key); err != nil {
		log.ErrorContext(ctx, "delete drained key error", "key", key, "err", err)
	}
	return true
}

func (j *CountSyncJob) scanPattern(domain model.ContentDomain) string {
	if j.metric == model.MetricView {
		return consts.ViewCountScanPattern(domain.Key())
	}
	return consts.LikeCountScanPattern(domain.Key())
}

// contentIDFromKey 取 Key 的最后一段作为内容 ID
func contentIDFromKey(key string) (uint64, bool) {
	idx := strings.LastIndexByte(key, ':')
	if idx < 0 || idx == len(key)-1 {
		return 0, false
	}
	id, err := strconv.ParseUint(key[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
