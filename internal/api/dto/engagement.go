package dto

// LikeStateDTO 点赞翻转后的最新状态
type LikeStateDTO struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

// ContentStatsDTO 内容详情页的计数快照
type ContentStatsDTO struct {
	ViewCount int64 `json:"viewCount"`
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}
