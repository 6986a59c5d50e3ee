package model

import (
	"time"
)

// ContentStat 内容聚合统计，随内容创建时以零值落库。
// view_count / like_count 只由同步任务推进，hot_score 只由评分任务整表重算。
type ContentStat struct {
	Domain     string    `gorm:"primaryKey;size:16" json:"domain"`
	ContentID  uint64    `gorm:"primaryKey" json:"contentId"`
	ViewCount  int64     `gorm:"not null;default:0" json:"viewCount"`
	LikeCount  int64     `gorm:"not null;default:0" json:"likeCount"`
	HotScore   float64   `gorm:"not null;default:0" json:"hotScore"`
	Visibility int8      `gorm:"not null;default:0;index:idx_visibility" json:"visibility"`
	Category   string    `gorm:"type:varchar(32)" json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (ContentStat) TableName() string {
	return "content_stats"
}
