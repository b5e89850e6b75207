// Package instance 提供机器/容器/进程级的实例标识。
//
// 实例标识用于在多台机器同时生成KSUID时保障唯一性：
// 序列化形式固定为9字节（1字节方案 + 8字节标识），
// 方案字节说明8字节标识的来源（随机、MAC+PID或Docker容器）。
package instance

import (
	"fmt"

	"katydid-common-ksuid/pkg/ksuid/core"
)

const (
	// IdentifierLen 标识部分的固定字节长度
	IdentifierLen = 8

	// BufferLen 序列化形式的固定字节长度（1方案 + 8标识）
	BufferLen = 9
)

// Instance 实例标识值对象
// 说明：标识使用定长数组存储，整个值按值复制，构造后不可变；
// 相等性为结构相等（方案 + 8字节逐一比较）
type Instance struct {
	scheme     core.InstanceScheme
	identifier [IdentifierLen]byte
}

// New 创建实例标识
//
// 参数:
//
//	scheme: 方案字节（0-255均可往返，本库只产生三种已知方案）
//	identifier: 必须恰好8字节
//
// 返回:
//
//	Instance: 实例标识值
//	error: identifier长度不为8时返回校验错误
func New(scheme core.InstanceScheme, identifier []byte) (Instance, error) {
	if err := core.CheckBytes("identifier", identifier, IdentifierLen); err != nil {
		return Instance{}, err
	}

	var inst Instance
	inst.scheme = scheme
	copy(inst.identifier[:], identifier)
	return inst, nil
}

// FromBuffer 从9字节序列化形式还原实例标识
//
// 参数:
//
//	buffer: 必须恰好9字节（方案字节 + 8字节标识）
func FromBuffer(buffer []byte) (Instance, error) {
	if err := core.CheckBytes("buffer", buffer, BufferLen); err != nil {
		return Instance{}, err
	}
	return New(core.InstanceScheme(buffer[0]), buffer[1:])
}

// Scheme 获取方案字节
func (i Instance) Scheme() core.InstanceScheme {
	return i.scheme
}

// Identifier 获取8字节标识的副本
// 说明：每次调用返回新切片，调用方无法通过返回值篡改内部状态
func (i Instance) Identifier() []byte {
	out := make([]byte, IdentifierLen)
	copy(out, i.identifier[:])
	return out
}

// ToBuffer 序列化为9字节形式（方案字节在前）
// 说明：每次调用返回新切片（不可变性保障）
func (i Instance) ToBuffer() []byte {
	buf := make([]byte, BufferLen)
	buf[0] = byte(i.scheme)
	copy(buf[1:], i.identifier[:])
	return buf
}

// Equals 结构相等比较
func (i Instance) Equals(other Instance) bool {
	return i.scheme == other.scheme && i.identifier == other.identifier
}

// String 实现Stringer接口，便于日志输出
func (i Instance) String() string {
	return fmt.Sprintf("Instance(scheme=%s, identifier=%x)", i.scheme, i.identifier)
}
