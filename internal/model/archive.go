package model

import (
	"time"
)

// Archive 资料归档（应援物、场刊等），与帖子共用一套计数与排序逻辑
type Archive struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	Visibility int8      `gorm:"not null;default:0" json:"visibility"`
	Category   string    `gorm:"type:varchar(32)" json:"category"`
	IsDeleted  bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Archive) TableName() string {
	return "archives"
}
