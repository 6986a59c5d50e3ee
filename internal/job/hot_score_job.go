package job

import (
	"Fandium/internal/api/config"
	"Fandium/internal/model"
	"Fandium/internal/pkg/logger"
	"Fandium/internal/pkg/rank"
	"Fandium/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// HotScoreJob 周期性整表重算公开内容的热度分。
// 非公开内容不参与排序，分数保持上一次的值不动
type HotScoreJob struct {
	statRepo repository.StatRepo
}

func NewHotScoreJob(statRepo repository.StatRepo) *HotScoreJob {
	return &HotScoreJob{statRepo: statRepo}
}

// Run 实现 cron.Job
func (j *HotScoreJob) Run() {
	traceID := "job-hot-score-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	if err := j.Recompute(ctx); err != nil {
		log.ErrorContext(ctx, "hot score pass error", "err", err)
	}
}

// Recompute 同步执行一轮评分，也是运维触发入口。
// 年龄锚点统一取本轮开始时刻，而不是逐行取当前时间
func (j *HotScoreJob) Recompute(ctx context.Context) error {
	now := time.Now()
	batchSize := config.Cfg.Rank.BatchSize

	var total int
	for _, domain := range model.Domains() {
		var afterID uint64
		for {
			stats, err := j.statRepo.ListRankable(ctx, domain, afterID, batchSize)
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				break
			}

			updates := make([]model.HotScoreUpdate, 0, len(stats))
			for _, stat := range stats {
				ageHours := now.Sub(stat.CreatedAt).Hours()
				updates = append(updates, model.HotScoreUpdate{
					ContentID: stat.ContentID,
					Score:     rank.HotScore(stat.LikeCount, stat.ViewCount, ageHours),
				})
			}

			if err = j.statRepo.BulkUpdateHotScores(ctx, domain, updates); err != nil {
				return err
			}

			total += len(updates)
			afterID = stats[len(stats)-1].ContentID
		}
	}

	log.InfoContext(ctx, "hot score pass finished", "scored", total, "elapsed", time.Since(now))
	return nil
}
