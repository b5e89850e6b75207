package ksuid

import (
	"regexp"
	"time"
)

const (
	// DecodedLen 二进制载荷的固定字节长度
	// 布局：2字节保留(恒为0) + 6字节时间戳 + 9字节实例 + 4字节序列号
	DecodedLen = 21

	// EncodedLen base62编码后的固定字符长度
	// 说明：21字节载荷的base62最坏情况需要29个数字，编码结果左补'0'到此宽度
	EncodedLen = 29

	// MaxTimestamp 时间戳最大值（48位）
	// 对应日期：8921556-12-07T10:44:16Z
	MaxTimestamp uint64 = 1<<48 - 1

	// DefaultEnvironment 默认环境
	// 说明：序列化时prod环境前缀会被省略，解析时缺省即为prod
	DefaultEnvironment = "prod"

	// 载荷内各字段的字节偏移
	timestampOffset = 2  // 时间戳起始（前2字节保留）
	instanceOffset  = 8  // 实例标识起始
	sequenceOffset  = 17 // 序列号起始

	// timestampLen 时间戳字段字节宽度（48位）
	timestampLen = 6

	// sequenceLen 序列号字段字节宽度（32位）
	sequenceLen = 4

	// waitSleepDuration 等待下一秒时的休眠时间
	// 说明：秒级时钟下序列号耗尽时轮询等待，休眠避免CPU空转
	waitSleepDuration = 5 * time.Millisecond
)

// ksuidRegex 完整文本形式的格式：(环境_)?资源_29位base62载荷
var ksuidRegex = regexp.MustCompile(`^(?:([a-z0-9]+)_)?([a-z0-9]+)_([a-zA-Z0-9]{29})$`)
