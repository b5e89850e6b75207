package registry

import (
	"sync"

	"katydid-common-ksuid/pkg/ksuid"
	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
)

const (
	// DefaultGeneratorKey 默认生成器的键
	DefaultGeneratorKey = "default"
)

var (
	// 默认生成器实例（进程级单例，惰性创建）
	defaultNode     *ksuid.Node
	defaultNodeOnce sync.Once
	defaultNodeErr  error
)

// GetDefaultNode 获取默认的KSUID生成器（单例模式）
// 使用默认配置：prod环境、自动发现实例、等待策略
func GetDefaultNode() (*ksuid.Node, error) {
	defaultNodeOnce.Do(func() {
		defaultNode, defaultNodeErr = ksuid.NewNode(ksuid.DefaultConfig())
	})
	return defaultNode, defaultNodeErr
}

// GetOrCreateDefaultGenerator 获取或创建默认生成器（优先从注册表获取）
func GetOrCreateDefaultGenerator() (core.IKsuidGenerator, error) {
	r := GetRegistry()

	if r.Has(DefaultGeneratorKey) {
		return r.Get(DefaultGeneratorKey)
	}

	return r.GetOrCreate(DefaultGeneratorKey, core.GeneratorTypeKsuid, ksuid.DefaultConfig())
}

// ResetDefaultNode 重置默认生成器（仅用于测试）
func ResetDefaultNode() {
	defaultNodeOnce = sync.Once{}
	defaultNode = nil
	defaultNodeErr = nil
}

// Generate 使用默认生成器为指定资源生成KSUID
func Generate(resource string) (*ksuid.Ksuid, error) {
	node, err := GetDefaultNode()
	if err != nil {
		return nil, err
	}
	return node.Generate(resource)
}

// NextID 使用默认生成器生成KSUID的文本形式
func NextID(resource string) (string, error) {
	node, err := GetDefaultNode()
	if err != nil {
		return "", err
	}
	return node.NextID(resource)
}

// Parse 解析KSUID文本形式
func Parse(id string) (*ksuid.Ksuid, error) {
	return ksuid.Parse(id)
}

// SetEnvironment 设置默认生成器的环境
func SetEnvironment(environment string) error {
	node, err := GetDefaultNode()
	if err != nil {
		return err
	}
	return node.SetEnvironment(environment)
}

// SetInstance 设置默认生成器的实例标识
func SetInstance(inst *instance.Instance) error {
	node, err := GetDefaultNode()
	if err != nil {
		return err
	}
	return node.SetInstance(inst)
}
