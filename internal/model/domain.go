package model

import "errors"

// ContentDomain 是可计数内容域的封闭枚举。
// 每个域携带自己的 Redis Key 片段和点赞事件 Topic。
type ContentDomain struct {
	key   string
	topic string
}

var (
	DomainPost    = ContentDomain{key: "post", topic: "engagement-post-likes"}
	DomainArchive = ContentDomain{key: "archive", topic: "engagement-archive-likes"}
)

var ErrUnknownDomain = errors.New("unknown content domain")

// Key 返回该域在 Redis Key 中使用的片段
func (d ContentDomain) Key() string {
	return d.key
}

// Topic 返回该域的点赞事件 Kafka Topic
func (d ContentDomain) Topic() string {
	return d.topic
}

func (d ContentDomain) IsZero() bool {
	return d.key == ""
}

// ParseDomain 解析路径参数中的域标识
func ParseDomain(s string) (ContentDomain, error) {
	switch s {
	case DomainPost.key:
		return DomainPost, nil
	case DomainArchive.key:
		return DomainArchive, nil
	default:
		return ContentDomain{}, ErrUnknownDomain
	}
}

// Domains 返回所有内容域，供同步任务遍历
func Domains() []ContentDomain {
	return []ContentDomain{DomainPost, DomainArchive}
}
