package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults() {
	viper.SetDefault("counter.view_cooldown_seconds", 600)
	viper.SetDefault("counter.warm_lock_ttl_seconds", 3)
	viper.SetDefault("counter.warm_lock_retries", 3)
	viper.SetDefault("counter.count_cache_hours", 168)
	viper.SetDefault("sync.view_spec", "@every 1m")
	viper.SetDefault("sync.like_spec", "@every 1m")
	viper.SetDefault("sync.batch_limit", 500)
	viper.SetDefault("rank.spec", "@every 10m")
	viper.SetDefault("rank.batch_size", 1000)
}
