package ksuid

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
)

// configValidator 配置结构体校验器（全局复用，并发安全）
var configValidator = validator.New()

// Config 生成器配置
type Config struct {
	// Environment 环境前缀，空值表示prod
	Environment string `json:"environment" mapstructure:"environment" validate:"omitempty,lowercase,alphanum"`

	// Instance 实例标识，nil表示创建时自动发现
	Instance *instance.Instance `json:"-" mapstructure:"-"`

	// SequenceOverflowStrategy 序列号耗尽策略（缺省等待下一秒）
	SequenceOverflowStrategy core.SequenceOverflowStrategy `json:"sequence_overflow_strategy" mapstructure:"sequence_overflow_strategy" validate:"min=0,max=1"`

	// EnableMetrics 是否启用运行指标
	EnableMetrics bool `json:"enable_metrics" mapstructure:"enable_metrics"`
}

// DefaultConfig 创建默认配置（prod环境、自动发现实例、等待策略）
func DefaultConfig() *Config {
	return &Config{
		Environment:              DefaultEnvironment,
		SequenceOverflowStrategy: core.StrategyWait,
	}
}

// SetDefaults 补全缺省字段
// 说明：实例缺省时走发现链（docker容器ID -> MAC+PID -> 加密随机）
func (c *Config) SetDefaults() error {
	if c.Environment == "" {
		c.Environment = DefaultEnvironment
	}
	if c.Instance == nil {
		inst, err := instance.Discover()
		if err != nil {
			return fmt.Errorf("实例发现失败: %w", err)
		}
		c.Instance = &inst
	}
	return nil
}

// Validate 校验配置合法性
func (c *Config) Validate() error {
	// 前缀检查先行，给出更精确的哨兵错误
	if c.Environment != "" {
		if err := core.CheckPrefix("environment", c.Environment); err != nil {
			return err
		}
	}
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", core.ErrValidation, err)
	}
	return nil
}

// Clone 深拷贝配置
func (c *Config) Clone() *Config {
	clone := *c
	if c.Instance != nil {
		inst := *c.Instance
		clone.Instance = &inst
	}
	return &clone
}

// LoadConfig 从viper加载配置
//
// 支持环境变量覆盖（前缀KSUID_，如KSUID_ENVIRONMENT=dev），
// path为空时只读环境变量。
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("environment", DefaultEnvironment)
	v.SetDefault("sequence_overflow_strategy", int(core.StrategyWait))
	v.SetDefault("enable_metrics", false)

	v.SetEnvPrefix("KSUID")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
