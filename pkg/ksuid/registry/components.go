package registry

import (
	"fmt"
	"sync"

	"katydid-common-ksuid/pkg/ksuid"
	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/logger"
)

// init 初始化全局组件注册表
// 说明：在包加载时自动执行，注册默认的工厂、解析器和验证器
func init() {
	_ = GetFactoryRegistry().Register(core.GeneratorTypeKsuid, ksuid.NewFactory())
	_ = GetParserRegistry().Register(core.GeneratorTypeKsuid, ksuid.NewParser())
	_ = GetValidatorRegistry().Register(core.GeneratorTypeKsuid, ksuid.NewValidator())

	logger.Debug("KSUID组件注册完成", "registered_types", []string{string(core.GeneratorTypeKsuid)})
}

// FactoryRegistry 工厂注册表
type FactoryRegistry struct {
	factories map[core.GeneratorType]core.IGeneratorFactory // 工厂映射表
	mu        sync.RWMutex                                  // 读写锁，保护并发访问
}

// ParserRegistry 解析器注册表
type ParserRegistry struct {
	parsers map[core.GeneratorType]core.IKsuidParser // 解析器映射表
	mu      sync.RWMutex                             // 读写锁，保护并发访问
}

// ValidatorRegistry 验证器注册表
type ValidatorRegistry struct {
	validators map[core.GeneratorType]core.IKsuidValidator // 验证器映射表
	mu         sync.RWMutex                                // 读写锁，保护并发访问
}

var (
	// globalFactoryRegistry 全局工厂注册表实例（单例）
	globalFactoryRegistry *FactoryRegistry
	factoryRegistryOnce   sync.Once

	// globalParserRegistry 全局解析器注册表实例（单例）
	globalParserRegistry *ParserRegistry
	parserRegistryOnce   sync.Once

	// globalValidatorRegistry 全局验证器注册表实例（单例）
	globalValidatorRegistry *ValidatorRegistry
	validatorRegistryOnce   sync.Once
)

// GetFactoryRegistry 获取全局工厂注册表
func GetFactoryRegistry() *FactoryRegistry {
	factoryRegistryOnce.Do(func() {
		globalFactoryRegistry = &FactoryRegistry{
			factories: make(map[core.GeneratorType]core.IGeneratorFactory),
		}
	})
	return globalFactoryRegistry
}

// Register 注册工厂（允许覆盖已有工厂）
func (r *FactoryRegistry) Register(generatorType core.GeneratorType, factory core.IGeneratorFactory) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[generatorType] = factory
	return nil
}

// Get 获取工厂
func (r *FactoryRegistry) Get(generatorType core.GeneratorType) (core.IGeneratorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[generatorType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrFactoryNotFound, generatorType)
	}
	return factory, nil
}

// Has 检查工厂是否存在
func (r *FactoryRegistry) Has(generatorType core.GeneratorType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[generatorType]
	return exists
}

// List 列出所有已注册的工厂类型
func (r *FactoryRegistry) List() []core.GeneratorType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]core.GeneratorType, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	return types
}

// GetParserRegistry 获取全局解析器注册表
func GetParserRegistry() *ParserRegistry {
	parserRegistryOnce.Do(func() {
		globalParserRegistry = &ParserRegistry{
			parsers: make(map[core.GeneratorType]core.IKsuidParser),
		}
	})
	return globalParserRegistry
}

// Register 注册解析器（允许覆盖已有解析器）
func (r *ParserRegistry) Register(generatorType core.GeneratorType, parser core.IKsuidParser) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}
	if parser == nil {
		return fmt.Errorf("parser cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.parsers[generatorType] = parser
	return nil
}

// Get 获取解析器
func (r *ParserRegistry) Get(generatorType core.GeneratorType) (core.IKsuidParser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parser, exists := r.parsers[generatorType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrParserNotFound, generatorType)
	}
	return parser, nil
}

// Has 检查解析器是否存在
func (r *ParserRegistry) Has(generatorType core.GeneratorType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.parsers[generatorType]
	return exists
}

// GetValidatorRegistry 获取全局验证器注册表
func GetValidatorRegistry() *ValidatorRegistry {
	validatorRegistryOnce.Do(func() {
		globalValidatorRegistry = &ValidatorRegistry{
			validators: make(map[core.GeneratorType]core.IKsuidValidator),
		}
	})
	return globalValidatorRegistry
}

// Register 注册验证器（允许覆盖已有验证器）
func (r *ValidatorRegistry) Register(generatorType core.GeneratorType, validator core.IKsuidValidator) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}
	if validator == nil {
		return fmt.Errorf("validator cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.validators[generatorType] = validator
	return nil
}

// Get 获取验证器
func (r *ValidatorRegistry) Get(generatorType core.GeneratorType) (core.IKsuidValidator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	validator, exists := r.validators[generatorType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", core.ErrValidatorNotFound, generatorType)
	}
	return validator, nil
}

// Has 检查验证器是否存在
func (r *ValidatorRegistry) Has(generatorType core.GeneratorType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.validators[generatorType]
	return exists
}
