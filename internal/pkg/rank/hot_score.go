package rank

import "math"

// 热度评分常量。权重与衰减率来自线上调参结果
const (
	LikeWeight       = 20.0
	ViewWeight       = 3.0
	DecayRate        = 0.004 // 每小时衰减率
	FreshWindowHours = 168.0 // 7 天新鲜窗口
	staleFactor      = 0.5
)

// HotScore 计算内容的时间衰减热度分。
// 超过新鲜窗口的内容不再随时间继续衰减，而是固定在窗口边界衰减值的一半。
// 这是刻意的陈旧内容惩罚：跨过窗口时分数斜率不连续（数值连续性只在窗口内保证）。
func HotScore(likeCount, viewCount int64, ageHours float64) float64 {
	if ageHours < 0 {
		ageHours = 0
	}

	base := LikeWeight*math.Log1p(float64(likeCount)) + ViewWeight*math.Log1p(float64(viewCount))

	if ageHours <= FreshWindowHours {
		return base * math.Exp(-DecayRate*ageHours)
	}
	return base * math.Exp(-DecayRate*FreshWindowHours) * staleFactor
}
