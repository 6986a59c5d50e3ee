package kafka

// LikeEvent 点赞状态变更事件。
// Liked 是目标绝对状态而非翻转指令，消费端因此天然幂等、对乱序不敏感。
type LikeEvent struct {
	Domain     string `json:"domain"`
	ContentID  uint64 `json:"content_id"`
	UserID     uint64 `json:"user_id"`
	Liked      bool   `json:"liked"`
	OccurredAt int64  `json:"occurred_at"` // Unix 毫秒
}
