package model

import (
	"time"
)

type Post struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	Content    string    `gorm:"not null" json:"content"`
	Visibility int8      `gorm:"not null;default:0" json:"visibility"` // 0:公开, 1:仅好友, 2:私密
	Category   string    `gorm:"type:varchar(32)" json:"category"`
	IsDeleted  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
