// Package registry 提供KSUID生成器的命名注册表与全局默认生成器。
//
// 典型用法是每个业务域一个命名生成器（如"user"、"order"分属不同
// 环境），或直接使用包级的默认生成器。
package registry

import (
	"fmt"
	"regexp"
	"sync"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/logger"
)

const (
	// defaultMaxGenerators 默认最大生成器数量，防止无界增长
	defaultMaxGenerators = 100

	// absoluteMaxGenerators 硬性上限，SetMaxGenerators也不能超过
	absoluteMaxGenerators = 100_000

	// maxKeyLength 键的最大长度
	maxKeyLength = 256
)

// keyFormatRegex 键只允许字母、数字、下划线、连字符和点
var keyFormatRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]+$`)

// Registry 生成器注册表
type Registry struct {
	generators    map[string]core.IKsuidGenerator // 生成器映射表
	maxGenerators int                             // 最大生成器数量限制
	mu            sync.RWMutex                    // 读写锁，保护并发访问
}

var (
	// globalRegistry 全局生成器注册表实例（单例）
	globalRegistry *Registry

	// registryOnce 确保注册表只初始化一次
	registryOnce sync.Once
)

// GetRegistry 获取全局生成器注册表
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		globalRegistry = &Registry{
			generators:    make(map[string]core.IKsuidGenerator),
			maxGenerators: defaultMaxGenerators,
		}
	})
	return globalRegistry
}

// Create 创建并注册一个新的生成器，key已存在时报错
func (r *Registry) Create(key string, generatorType core.GeneratorType, config any) (core.IKsuidGenerator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[key]; exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorAlreadyExists, key)
	}

	return r.createLocked(key, generatorType, config)
}

// GetOrCreate 获取生成器，不存在则创建（幂等）
func (r *Registry) GetOrCreate(key string, generatorType core.GeneratorType, config any) (core.IKsuidGenerator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if generator, exists := r.generators[key]; exists {
		return generator, nil
	}

	return r.createLocked(key, generatorType, config)
}

// createLocked 创建并登记生成器
// 调用方必须持有写锁，且已确认key不存在
func (r *Registry) createLocked(key string, generatorType core.GeneratorType, config any) (core.IKsuidGenerator, error) {
	if len(r.generators) >= r.maxGenerators {
		return nil, fmt.Errorf("%w: current %d, max %d",
			core.ErrMaxGeneratorsReached, len(r.generators), r.maxGenerators)
	}

	factory, err := GetFactoryRegistry().Get(generatorType)
	if err != nil {
		return nil, err
	}

	generator, err := factory.Create(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	r.generators[key] = generator

	logger.Info("生成器创建成功", "key", key, "type", generatorType)

	return generator, nil
}

// Get 获取已注册的生成器
func (r *Registry) Get(key string) (core.IKsuidGenerator, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	generator, exists := r.generators[key]
	if !exists {
		return nil, fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}

	return generator, nil
}

// Has 检查生成器是否存在
func (r *Registry) Has(key string) bool {
	// 验证失败直接返回false
	if err := validateKey(key); err != nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.generators[key]
	return exists
}

// Remove 移除生成器
func (r *Registry) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.generators[key]; !exists {
		return fmt.Errorf("%w: key '%s'", core.ErrGeneratorNotFound, key)
	}

	delete(r.generators, key)

	logger.Info("生成器已移除", "key", key)

	return nil
}

// Clear 清空所有生成器
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 创建新的map，让GC回收旧的map
	r.generators = make(map[string]core.IKsuidGenerator)

	logger.Info("注册表已清空")
}

// Count 获取生成器数量
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.generators)
}

// ListKeys 列出所有生成器的键
func (r *Registry) ListKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.generators))
	for key := range r.generators {
		keys = append(keys, key)
	}
	return keys
}

// SetMaxGenerators 设置最大生成器数量
// 新上限必须为正、不超过硬性上限、且不低于当前已注册数量
func (r *Registry) SetMaxGenerators(max int) error {
	if max <= 0 {
		return fmt.Errorf("max generators must be positive, got %d", max)
	}
	if max > absoluteMaxGenerators {
		return fmt.Errorf("max generators cannot exceed absolute limit %d, got %d",
			absoluteMaxGenerators, max)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.generators) > max {
		return fmt.Errorf("current generator count %d exceeds new max %d",
			len(r.generators), max)
	}

	r.maxGenerators = max

	logger.Info("注册表容量已调整", "new_max", max, "current_count", len(r.generators))

	return nil
}

// GetMaxGenerators 获取最大生成器数量
func (r *Registry) GetMaxGenerators() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.maxGenerators
}

// validateKey 验证键的有效性（非空、限长、仅安全字符）
func validateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("%w: key cannot be empty", core.ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: key too long (max %d), got %d",
			core.ErrInvalidKey, maxKeyLength, len(key))
	}
	if !keyFormatRegex.MatchString(key) {
		return fmt.Errorf("%w: key '%s' contains invalid characters",
			core.ErrInvalidKey, key)
	}
	return nil
}
