package core

import "time"

// GeneratorType 生成器类型枚举
type GeneratorType string

const (
	// GeneratorTypeKsuid KSUID生成器
	GeneratorTypeKsuid GeneratorType = "ksuid"
	// GeneratorTypeCustom 自定义生成器（预留，便于扩展）
	GeneratorTypeCustom GeneratorType = "custom"
)

// String 实现Stringer接口
func (t GeneratorType) String() string {
	return string(t)
}

// IsValid 验证生成器类型是否有效
func (t GeneratorType) IsValid() bool {
	switch t {
	case GeneratorTypeKsuid, GeneratorTypeCustom:
		return true
	default:
		return false
	}
}

// InstanceScheme 实例标识方案
// 取值刻意选择了可打印ASCII字符，便于在二进制转储中肉眼识别
type InstanceScheme uint8

const (
	// SchemeRandom 随机标识（82 = 'R'）
	SchemeRandom InstanceScheme = 82
	// SchemeMACAndPID 网卡MAC地址+进程PID标识（72 = 'H'）
	SchemeMACAndPID InstanceScheme = 72
	// SchemeDockerCont Docker容器标识（68 = 'D'）
	SchemeDockerCont InstanceScheme = 68
)

// String 实现Stringer接口
func (s InstanceScheme) String() string {
	switch s {
	case SchemeRandom:
		return "Random"
	case SchemeMACAndPID:
		return "MacAndPid"
	case SchemeDockerCont:
		return "DockerContainer"
	default:
		return "Unknown"
	}
}

// IsKnown 是否为本库生成的三种已知方案之一
// 注意：未知方案依然可以往返序列化（向前兼容），只是无法识别含义
func (s InstanceScheme) IsKnown() bool {
	switch s {
	case SchemeRandom, SchemeMACAndPID, SchemeDockerCont:
		return true
	default:
		return false
	}
}

// SequenceOverflowStrategy 同一秒内序列号耗尽时的处理策略
type SequenceOverflowStrategy int

const (
	// StrategyWait 等待下一秒（默认，保持单调排序性质）
	StrategyWait SequenceOverflowStrategy = iota

	// StrategyError 直接返回错误（不阻塞调用方）
	StrategyError
)

// String 实现Stringer接口
func (s SequenceOverflowStrategy) String() string {
	switch s {
	case StrategyWait:
		return "Wait"
	case StrategyError:
		return "Error"
	default:
		return "Unknown"
	}
}

// KsuidInfo KSUID解析后的元信息结构
type KsuidInfo struct {
	ID          string    `json:"id"`          // 完整文本形式
	Environment string    `json:"environment"` // 环境（缺省为prod）
	Resource    string    `json:"resource"`    // 资源类型
	Timestamp   uint64    `json:"timestamp"`   // Unix时间戳（秒）
	Time        time.Time `json:"time"`        // 时间对象（UTC）
	Scheme      uint8     `json:"scheme"`      // 实例方案字节
	Identifier  []byte    `json:"identifier"`  // 实例标识（8字节）
	SequenceID  uint32    `json:"sequence_id"` // 序列号
}
