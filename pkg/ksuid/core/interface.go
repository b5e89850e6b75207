package core

// IKsuidGenerator KSUID生成器基础接口
type IKsuidGenerator interface {
	// NextID 为指定资源类型生成下一个KSUID的文本形式（线程安全）
	NextID(resource string) (string, error)
}

// IConfigurableGenerator 可配置的生成器接口
type IConfigurableGenerator interface {
	// Environment 获取当前默认环境
	Environment() string

	// SetEnvironment 设置后续生成所用的默认环境
	SetEnvironment(environment string) error
}

// IMonitorableGenerator 可监控的生成器接口
type IMonitorableGenerator interface {
	// GetMetrics 获取性能监控指标（未启用时返回nil）
	GetMetrics() map[string]any

	// ResetMetrics 重置性能监控指标
	ResetMetrics()
}

// IKsuidParser KSUID文本解析器接口
type IKsuidParser interface {
	// Parse 解析完整文本形式，提取全部元信息
	Parse(id string) (*KsuidInfo, error)

	// ExtractEnvironment 仅提取环境前缀（无环境段时返回prod）
	ExtractEnvironment(id string) (string, error)

	// ExtractResource 仅提取资源前缀
	ExtractResource(id string) (string, error)

	// ExtractTimestamp 提取时间戳（Unix秒）
	ExtractTimestamp(id string) (uint64, error)
}

// IKsuidValidator KSUID验证器接口
type IKsuidValidator interface {
	// Validate 验证单个KSUID文本形式的有效性
	Validate(id string) error

	// ValidateBatch 批量验证，返回第一个非法ID的下标和错误，
	// 全部合法时返回(-1, nil)
	ValidateBatch(ids []string) (int, error)
}

// IGeneratorFactory 生成器工厂接口
type IGeneratorFactory interface {
	// Create 根据配置创建生成器实例
	Create(config any) (IKsuidGenerator, error)
}
