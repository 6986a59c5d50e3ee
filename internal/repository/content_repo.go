package repository

import (
	"Fandium/internal/model"
	"context"

	"gorm.io/gorm"
)

// ContentRepo 只回答"内容是否存在"。内容本身的增删改查由内容模块负责
type ContentRepo interface {
	Exists(ctx context.Context, domain model.ContentDomain, contentID uint64) (bool, error)
}

type contentRepoImpl struct {
	db *gorm.DB
}

func NewContentRepo(db *gorm.DB) ContentRepo {
	return &contentRepoImpl{db: db}
}

func (r *contentRepoImpl) Exists(ctx context.Context, domain model.ContentDomain, contentID uint64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx)

	switch domain {
	case model.DomainPost:
		query = query.Model(&model.Post{})
	case model.DomainArchive:
		query = query.Model(&model.Archive{})
	default:
		return false, model.ErrUnknownDomain
	}

	err := query.Where("id = ? AND is_deleted = 0", contentID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
