package model

import (
	"time"
)

// Like 持久化点赞记录，(domain, content_id, user_id) 唯一。
// 存在即表示该用户当前点赞该内容，由事件消费者幂等维护。
type Like struct {
	Domain    string    `gorm:"primaryKey;size:16" json:"domain"`
	ContentID uint64    `gorm:"primaryKey;index:idx_content" json:"contentId"`
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Like) TableName() string {
	return "likes"
}
