package ksuid

import "sync/atomic"

// Metrics 生成器运行指标（全部使用原子操作，读写无锁）
type Metrics struct {
	// idCount 生成的ID总数
	idCount atomic.Uint64
	// sequenceRollover 序列号溢出次数
	sequenceRollover atomic.Uint64
	// waitCount 等待下一秒的次数
	waitCount atomic.Uint64
	// totalWaitTimeNs 累计等待时间（纳秒）
	totalWaitTimeNs atomic.Uint64
}

// NewMetrics 创建指标收集器
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncrementIDCount 增加ID计数
func (m *Metrics) IncrementIDCount() {
	m.idCount.Add(1)
}

// IncrementSequenceRollover 增加序列溢出计数
func (m *Metrics) IncrementSequenceRollover() {
	m.sequenceRollover.Add(1)
}

// AddWaitTime 记录一次等待
func (m *Metrics) AddWaitTime(ns uint64) {
	m.waitCount.Add(1)
	m.totalWaitTimeNs.Add(ns)
}

// Reset 重置所有指标
func (m *Metrics) Reset() {
	m.idCount.Store(0)
	m.sequenceRollover.Store(0)
	m.waitCount.Store(0)
	m.totalWaitTimeNs.Store(0)
}

// ToMap 导出指标快照
func (m *Metrics) ToMap() map[string]any {
	return map[string]any{
		"id_count":           m.idCount.Load(),
		"sequence_rollover":  m.sequenceRollover.Load(),
		"wait_count":         m.waitCount.Load(),
		"total_wait_time_ns": m.totalWaitTimeNs.Load(),
	}
}
