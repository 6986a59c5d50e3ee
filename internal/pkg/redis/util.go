package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// 删除值为 0 的计数 Key；判断与删除在服务端原子完成，
// 避免判零与删除之间落入的增量被一并删掉
const deleteIfZeroScript = "if redis.call('get', KEYS[1]) == '0' then return redis.call('del', KEYS[1]) else return 0 end"

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// SetNX 不存在时设置键值对，返回是否设置成功
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return Rdb.SetNX(ctx, key, value, expiration).Result()
}

// GetValue 获取字符串类型的值
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// GetInt64 获取整数值；Key 不存在返回 redis.Nil 错误
func GetInt64(ctx context.Context, key string) (int64, error) {
	return Rdb.Get(ctx, key).Int64()
}

// Incr 自增计数器
func Incr(ctx context.Context, key string) (int64, error) {
	return Rdb.Incr(ctx, key).Result()
}

// Decr 自减计数器
func Decr(ctx context.Context, key string) (int64, error) {
	return Rdb.Decr(ctx, key).Result()
}

// DecrBy 按增量自减计数器
func DecrBy(ctx context.Context, key string, decrement int64) (int64, error) {
	return Rdb.DecrBy(ctx, key, decrement).Result()
}

// DeleteIfZero 原子删除值为 0 的计数 Key，返回是否删除
func DeleteIfZero(ctx context.Context, key string) (bool, error) {
	res, err := Rdb.Eval(ctx, deleteIfZeroScript, []string{key}).Int64()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

// TryLock 尝试获取分布式锁，重试耗尽返回 false
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// Exists 判断键是否存在
func Exists(ctx context.Context, key string) (bool, error) {
	n, err := Rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SAdd 向集合添加成员
func SAdd(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SAdd(ctx, key, members...).Err()
}

// SAddMember 向集合添加单个成员，返回该成员是否为新加入
func SAddMember(ctx context.Context, key string, member interface{}) (bool, error) {
	n, err := Rdb.SAdd(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SRemMember 从集合移除单个成员，返回是否确实移除
func SRemMember(ctx context.Context, key string, member interface{}) (bool, error) {
	n, err := Rdb.SRem(ctx, key, member).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// SRem 从集合移除成员
func SRem(ctx context.Context, key string, members ...interface{}) error {
	return Rdb.SRem(ctx, key, members...).Err()
}

// SIsMember 判断成员是否在集合中
func SIsMember(ctx context.Context, key string, member interface{}) (bool, error) {
	return Rdb.SIsMember(ctx, key, member).Result()
}

// Expire 设置键的过期时间
func Expire(ctx context.Context, key string, expiration time.Duration) error {
	return Rdb.Expire(ctx, key, expiration).Err()
}

// GetSet 获取集合
func GetSet(ctx context.Context, key string) ([]string, error) {
	value, err := Rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return value, nil
}

// ScanKeys 按模式扫描 Key，最多返回 limit 个
func ScanKeys(ctx context.Context, pattern string, limit int) ([]string, error) {
	var (
		keys   []string
		cursor uint64
	)
	for {
		batch, next, err := Rdb.Scan(ctx, cursor, pattern, int64(limit)).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		if len(keys) >= limit || next == 0 {
			break
		}
		cursor = next
	}
	if len(keys) > limit {
		keys = keys[:limit]
	}
	return keys, nil
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}
