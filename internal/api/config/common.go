package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaLikeConsumer KafkaLikeConsumer `mapstructure:"kafka_like_consumer"`
	Counter           CounterConfig     `mapstructure:"counter"`
	Sync              SyncConfig        `mapstructure:"sync"`
	Rank              RankConfig        `mapstructure:"rank"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaLikeConsumer struct {
	GroupID string `mapstructure:"group_id"`
}

// CounterConfig 计数引擎配置。冷却窗口与锁参数都是运维可调值，不是硬编码契约
type CounterConfig struct {
	ViewCooldownSeconds int `mapstructure:"view_cooldown_seconds"`
	WarmLockTTLSeconds  int `mapstructure:"warm_lock_ttl_seconds"`
	WarmLockRetries     int `mapstructure:"warm_lock_retries"`
	CountCacheHours     int `mapstructure:"count_cache_hours"`
}

// SyncConfig 计数折算任务配置
type SyncConfig struct {
	ViewSpec   string `mapstructure:"view_spec"`
	LikeSpec   string `mapstructure:"like_spec"`
	BatchLimit int    `mapstructure:"batch_limit"`
}

// RankConfig 热度评分任务配置
type RankConfig struct {
	Spec      string `mapstructure:"spec"`
	BatchSize int    `mapstructure:"batch_size"`
}
