package consts

import "strconv"

// 计数引擎的 Key 布局：
//
//	view:count:{domain}:{id}                 浏览量快路径计数器
//	view:log:{domain}:{id}:user:{identity}   浏览去重标记（带冷却 TTL）
//	like:{domain}:count:{id}                 点赞数计数器
//	like:{domain}:set:{id}                   点赞用户集合缓存
const (
	ViewCountPrefix = "view:count:"
	ViewLogPrefix   = "view:log:"
	LikePrefix      = "like:"
)

const (
	LikeWarmLock = "lock:like:warm:"
)

// LikeSetGuardMember 集合预热时写入的哨兵成员，保证空集合的 Key 依然存在。
// 0 不会是真实用户 ID（0 表示匿名）。
const LikeSetGuardMember = "0"

func ViewCountKey(domain string, contentID uint64) string {
	return ViewCountPrefix + domain + ":" + strconv.FormatUint(contentID, 10)
}

func ViewCountScanPattern(domain string) string {
	return ViewCountPrefix + domain + ":*"
}

func ViewLogKey(domain string, contentID uint64, identity string) string {
	return ViewLogPrefix + domain + ":" + strconv.FormatUint(contentID, 10) + ":user:" + identity
}

func LikeCountKey(domain string, contentID uint64) string {
	return LikePrefix + domain + ":count:" + strconv.FormatUint(contentID, 10)
}

func LikeCountScanPattern(domain string) string {
	return LikePrefix + domain + ":count:*"
}

func LikeSetKey(domain string, contentID uint64) string {
	return LikePrefix + domain + ":set:" + strconv.FormatUint(contentID, 10)
}

func LikeWarmLockKey(domain string, contentID uint64) string {
	return LikeWarmLock + domain + ":" + strconv.FormatUint(contentID, 10)
}
