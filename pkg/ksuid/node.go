package ksuid

import (
	"fmt"
	"sync"
	"time"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
	"katydid-common-ksuid/pkg/logger"
)

// 接口实现检查
var (
	_ core.IKsuidGenerator        = (*Node)(nil)
	_ core.IConfigurableGenerator = (*Node)(nil)
	_ core.IMonitorableGenerator  = (*Node)(nil)
	_ core.IKsuidParser           = (*Parser)(nil)
	_ core.IKsuidValidator        = (*Validator)(nil)
	_ core.IGeneratorFactory      = (*Factory)(nil)
)

// Node 有状态的KSUID生成器
//
// 并发模型：单把互斥锁串行化所有状态读写
// （environment、instance、lastTimestamp、sequence），
// 并发调用Generate绝不会产出重复ID。指标使用原子计数，不占锁。
type Node struct {
	mu sync.Mutex

	// environment 环境前缀（受锁保护，可在运行时切换）
	environment string
	// instance 实例标识（受锁保护）
	instance instance.Instance
	// lastTimestamp 上次生成的时间戳（秒）
	lastTimestamp uint64
	// sequence 当前秒内的序列号
	sequence uint32

	// overflowStrategy 序列号耗尽时的处置策略
	overflowStrategy core.SequenceOverflowStrategy
	// metrics 运行指标（nil表示未启用）
	metrics *Metrics

	// nowFunc 时钟源（测试中可替换）
	nowFunc func() time.Time
}

// NewNode 创建生成器
//
// 参数:
//
//	config: 生成器配置，nil返回ErrNilConfig；
//	        配置先补默认值再校验，实例缺省时自动发现
func NewNode(config *Config) (*Node, error) {
	if config == nil {
		return nil, core.ErrNilConfig
	}

	// 不修改调用方的配置对象
	cfg := config.Clone()
	if err := cfg.SetDefaults(); err != nil {
		return nil, fmt.Errorf("ksuid节点初始化失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ksuid节点配置无效: %w", err)
	}

	node := &Node{
		environment:      cfg.Environment,
		instance:         *cfg.Instance,
		overflowStrategy: cfg.SequenceOverflowStrategy,
		nowFunc:          time.Now,
	}
	if cfg.EnableMetrics {
		node.metrics = NewMetrics()
	}

	logger.Debug("KSUID生成器已创建",
		"environment", node.environment,
		"instance", node.instance.String(),
		"overflow_strategy", node.overflowStrategy.String(),
		"metrics", cfg.EnableMetrics)

	return node, nil
}

// Generate 生成下一个KSUID
//
// 生成流程：
//  1. 资源前缀快速校验（不占锁）
//  2. 锁内推进时间戳/序列号状态机：
//     同一秒内序列号递增，进入新的一秒时序列号归零；
//     时钟回拨按新的一秒处理（重置基准，不等待）
//  3. 序列号回绕到0视为耗尽，按策略等待下一秒或直接报错
//  4. 锁内拷贝全部五个输入，锁外构造KSUID
func (n *Node) Generate(resource string) (*Ksuid, error) {
	if err := core.CheckNonEmpty("resource", resource); err != nil {
		return nil, err
	}
	if err := core.CheckPrefix("resource", resource); err != nil {
		return nil, err
	}

	n.mu.Lock()

	now := n.currentTimestamp()
	if now == n.lastTimestamp {
		n.sequence++
		if n.sequence == 0 {
			// 单秒内第2^32次生成，序列号耗尽
			if n.metrics != nil {
				n.metrics.IncrementSequenceRollover()
			}
			switch n.overflowStrategy {
			case core.StrategyError:
				// 回绕不可用：保持耗尽态，同一秒内的后续调用同样报错
				n.sequence = ^uint32(0)
				n.mu.Unlock()
				return nil, fmt.Errorf("%w: timestamp=%d", core.ErrSequenceOverflow, now)
			default:
				now = n.waitNextSecond(now)
				n.lastTimestamp = now
			}
		}
	} else {
		n.lastTimestamp = now
		n.sequence = 0
	}

	environment := n.environment
	inst := n.instance
	timestamp := n.lastTimestamp
	sequenceID := n.sequence

	n.mu.Unlock()

	if n.metrics != nil {
		n.metrics.IncrementIDCount()
	}
	return New(environment, resource, timestamp, inst, sequenceID)
}

// NextID 生成下一个ID的文本形式（实现core.IKsuidGenerator接口）
func (n *Node) NextID(resource string) (string, error) {
	id, err := n.Generate(resource)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// currentTimestamp 读取当前Unix时间戳（秒）
func (n *Node) currentTimestamp() uint64 {
	return uint64(n.nowFunc().Unix())
}

// waitNextSecond 自旋等待时钟进入下一秒
// 调用方必须持有锁；返回时序列号已隐式归零（sequence==0）
func (n *Node) waitNextSecond(last uint64) uint64 {
	start := time.Now()
	now := n.currentTimestamp()
	for now <= last {
		time.Sleep(waitSleepDuration)
		now = n.currentTimestamp()
	}
	if n.metrics != nil {
		n.metrics.AddWaitTime(uint64(time.Since(start).Nanoseconds()))
	}
	return now
}

// Environment 获取当前环境前缀（实现core.IConfigurableGenerator接口）
func (n *Node) Environment() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.environment
}

// SetEnvironment 切换环境前缀
// 说明：只校验不重置序列状态，切换后的ID仍全局有序
func (n *Node) SetEnvironment(environment string) error {
	if err := core.CheckPrefix("environment", environment); err != nil {
		return err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.environment = environment
	return nil
}

// Instance 获取当前实例标识
func (n *Node) Instance() instance.Instance {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.instance
}

// SetInstance 切换实例标识
func (n *Node) SetInstance(inst *instance.Instance) error {
	if inst == nil {
		return core.ErrNilInstance
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.instance = *inst
	return nil
}

// GetMetrics 获取指标快照（实现core.IMonitorableGenerator接口）
// 未启用指标时返回nil
func (n *Node) GetMetrics() map[string]any {
	if n.metrics == nil {
		return nil
	}
	return n.metrics.ToMap()
}

// ResetMetrics 重置指标
func (n *Node) ResetMetrics() {
	if n.metrics != nil {
		n.metrics.Reset()
	}
}
