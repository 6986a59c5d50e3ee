package repository

import (
	"Fandium/internal/model"
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type LikeRepo interface {
	// EnsureLiked 幂等写入点赞记录，已存在时不报错
	EnsureLiked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) error
	// EnsureUnliked 幂等删除点赞记录，不存在时不报错
	EnsureUnliked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) error
	Exists(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error)
	CountByContent(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error)
	ListLikerIDs(ctx context.Context, domain model.ContentDomain, contentID uint64) ([]uint64, error)
}

type likeRepoImpl struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) LikeRepo {
	return &likeRepoImpl{db: db}
}

func (r *likeRepoImpl) EnsureLiked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	like := &model.Like{
		Domain:    domain.Key(),
		ContentID: contentID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Create(like).Error
	if err != nil && isDuplicateError(err) {
		// 重复投递的点赞事件，记录已存在
		return nil
	}
	return err
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (r *likeRepoImpl) EnsureUnliked(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("domain = ? AND content_id = ? AND user_id = ?", domain.Key(), contentID, userID).
		Delete(&model.Like{}).Error
}

func (r *likeRepoImpl) Exists(ctx context.Context, domain model.ContentDomain, contentID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("domain = ? AND content_id = ? AND user_id = ?", domain.Key(), contentID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepoImpl) CountByContent(ctx context.Context, domain model.ContentDomain, contentID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("domain = ? AND content_id = ?", domain.Key(), contentID).
		Count(&count).Error
	return count, err
}

func (r *likeRepoImpl) ListLikerIDs(ctx context.Context, domain model.ContentDomain, contentID uint64) ([]uint64, error) {
	ids := make([]uint64, 0)
	err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("domain = ? AND content_id = ?", domain.Key(), contentID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
