package repository

import (
	"Fandium/internal/model"
	"Fandium/internal/pkg/consts"
	"context"
	"errors"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// ErrStatNotFound 聚合统计行不存在（通常是内容已被并发删除）
var ErrStatNotFound = errors.New("content stat not found")

type StatRepo interface {
	Get(ctx context.Context, domain model.ContentDomain, contentID uint64) (*model.ContentStat, error)
	// ApplyCountDelta 原子累加计数列，行不存在返回 ErrStatNotFound
	ApplyCountDelta(ctx context.Context, domain model.ContentDomain, contentID uint64, metric model.Metric, delta int64) error
	// ListRankable 按主键游标分页拉取可参与排序（公开可见）的统计行
	ListRankable(ctx context.Context, domain model.ContentDomain, afterID uint64, limit int) ([]*model.ContentStat, error)
	// BulkUpdateHotScores 单条 SQL 批量写入一批热度分
	BulkUpdateHotScores(ctx context.Context, domain model.ContentDomain, updates []model.HotScoreUpdate) error
}

type statRepoImpl struct {
	db *gorm.DB
}

func NewStatRepo(db *gorm.DB) StatRepo {
	return &statRepoImpl{db: db}
}

func (r *statRepoImpl) Get(ctx context.Context, domain model.ContentDomain, contentID uint64) (*model.ContentStat, error) {
	var stat model.ContentStat
	err := r.db.WithContext(ctx).
		Where("domain = ? AND content_id = ?", domain.Key(), contentID).
		First(&stat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStatNotFound
		}
		return nil, err
	}
	return &stat, nil
}

func (r *statRepoImpl) ApplyCountDelta(ctx context.Context, domain model.ContentDomain, contentID uint64, metric model.Metric, delta int64) error {
	var column string
	switch metric {
	case model.MetricView:
		column = "view_count"
	case model.MetricLike:
		column = "like_count"
	default:
		return errors.New("unknown metric: " + string(metric))
	}

	res := r.db.WithContext(ctx).Model(&model.ContentStat{}).
		Where("domain = ? AND content_id = ?", domain.Key(), contentID).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatNotFound
	}
	return nil
}

func (r *statRepoImpl) ListRankable(ctx context.Context, domain model.ContentDomain, afterID uint64, limit int) ([]*model.ContentStat, error) {
	stats := make([]*model.ContentStat, 0, limit)
	err := r.db.WithContext(ctx).
		Where("domain = ? AND visibility = ? AND content_id > ?", domain.Key(), consts.VisibilityPublic, afterID).
		Order("content_id ASC").
		Limit(limit).
		Find(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *statRepoImpl) BulkUpdateHotScores(ctx context.Context, domain model.ContentDomain, updates []model.HotScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(updates)*3+1)

	sb.WriteString("UPDATE content_stats SET hot_score = CASE content_id ")
	for _, u := range updates {
		sb.WriteString("WHEN ? THEN ? ")
		args = append(args, u.ContentID, u.Score)
	}
	sb.WriteString("END WHERE domain = ? AND content_id IN (")
	args = append(args, domain.Key())
	for i, u := range updates {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(u.ContentID, 10))
	}
	sb.WriteByte(')')

	return r.db.WithContext(ctx).Exec(sb.String(), args...).Error
}
