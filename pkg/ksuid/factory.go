package ksuid

import (
	"fmt"

	"katydid-common-ksuid/pkg/ksuid/core"
)

// Factory KSUID生成器工厂（实现core.IGeneratorFactory接口）
type Factory struct{}

// NewFactory 创建工厂
func NewFactory() *Factory {
	return &Factory{}
}

// Create 按配置创建生成器
//
// 参数:
//
//	config: 必须是*Config或nil（nil使用默认配置）
func (f *Factory) Create(config any) (core.IKsuidGenerator, error) {
	if config == nil {
		return NewNode(DefaultConfig())
	}
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("%w: 期望*ksuid.Config，实际%T", core.ErrInvalidGeneratorType, config)
	}
	return NewNode(cfg)
}
