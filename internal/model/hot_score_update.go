package model

// HotScoreUpdate 热度评分任务的一条批量写入项
type HotScoreUpdate struct {
	ContentID uint64
	Score     float64
}
