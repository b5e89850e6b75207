// Package ksuid 提供带前缀的K-Sortable全局唯一标识符（KSUID）。
//
// KSUID由以下部分组成：
//   - 环境前缀（可选，缺省为prod，prod在文本形式中省略）
//   - 资源类型前缀（如user、order）
//   - 48位Unix秒级时间戳
//   - 9字节实例标识（1字节方案 + 8字节标识）
//   - 32位序列号（同一秒内的碰撞消解）
//
// 文本形式为 [environment_]resource_<29位base62>，同一环境+资源下
// 按字典序排序即按生成时间排序。
//
// 使用示例：
//
//	node, _ := ksuid.NewNode(&ksuid.Config{Environment: "dev"})
//	id, _ := node.Generate("user")
//	fmt.Println(id) // dev_user_000AB1cD...
package ksuid

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"katydid-common-ksuid/pkg/ksuid/base62"
	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
)

// Ksuid KSUID值对象
// 说明：构造后不可变；文本形式在首次计算后缓存
// （纯缓存，不是独立状态——所有输入都不可变，因此永不失效）
type Ksuid struct {
	environment string
	resource    string
	timestamp   uint64
	instance    instance.Instance
	sequenceID  uint32

	// 文本形式的惰性缓存
	strOnce sync.Once
	str     string
}

// New 创建KSUID（唯一的校验入口，所有构造路径都经过这里）
//
// 参数:
//
//	environment: 环境前缀，格式 ^[a-z0-9]+$
//	resource: 资源类型前缀，格式 ^[a-z0-9]+$
//	timestamp: Unix时间戳（秒），范围 [0, 2^48-1]
//	inst: 实例标识（按值复制进KSUID）
//	sequenceID: 序列号（uint32全域合法）
//
// 返回:
//
//	*Ksuid: 校验通过的KSUID
//	error: 任一字段违规时返回校验错误（绝不产生部分构造的对象）
func New(environment, resource string, timestamp uint64, inst instance.Instance, sequenceID uint32) (*Ksuid, error) {
	if err := core.CheckPrefix("environment", environment); err != nil {
		return nil, err
	}
	if err := core.CheckPrefix("resource", resource); err != nil {
		return nil, err
	}
	if err := core.CheckUint("timestamp", timestamp, timestampLen); err != nil {
		return nil, err
	}

	return &Ksuid{
		environment: environment,
		resource:    resource,
		timestamp:   timestamp,
		instance:    inst,
		sequenceID:  sequenceID,
	}, nil
}

// Parse 解析文本形式并重建KSUID
//
// 解析流程：
//  1. 空输入直接拒绝（区别于一般格式错误的专用错误）
//  2. 正则匹配复合格式，任何不匹配统一返回ErrInvalidID
//  3. 显式的prod_前缀是硬错误（规范形式绝不会写出它）
//  4. base62解码后左补零到21字节再提取字段
//  5. 保留字节非零视为时间戳超出48位表示范围
//  6. 最终仍通过New的校验构造，解析绝不产生违规值
func Parse(input string) (*Ksuid, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: input", core.ErrEmptyInput)
	}

	match := ksuidRegex.FindStringSubmatch(input)
	if match == nil {
		return nil, core.ErrInvalidID
	}

	environment, resource, encoded := match[1], match[2], match[3]
	if environment == DefaultEnvironment {
		return nil, core.ErrProdImplied
	}
	if environment == "" {
		environment = DefaultEnvironment
	}

	decoded, err := base62.DecodeWithLength(encoded, DecodedLen)
	if err != nil {
		return nil, err
	}

	// 29位base62最多可携带22字节的数值：超过21字节，或保留
	// 高位字节非零，都意味着时间戳字段溢出了48位
	if len(decoded) > DecodedLen || decoded[0] != 0 || decoded[1] != 0 {
		return nil, core.ErrTimestampOverflow
	}

	timestamp := beUint48(decoded[timestampOffset : timestampOffset+timestampLen])

	inst, err := instance.FromBuffer(decoded[instanceOffset : instanceOffset+instance.BufferLen])
	if err != nil {
		return nil, err
	}

	sequenceID := binary.BigEndian.Uint32(decoded[sequenceOffset : sequenceOffset+sequenceLen])

	return New(environment, resource, timestamp, inst, sequenceID)
}

// Environment 获取环境前缀
func (k *Ksuid) Environment() string {
	return k.environment
}

// Resource 获取资源类型前缀
func (k *Ksuid) Resource() string {
	return k.resource
}

// Timestamp 获取Unix时间戳（秒）
func (k *Ksuid) Timestamp() uint64 {
	return k.timestamp
}

// Instance 获取实例标识（值拷贝）
func (k *Ksuid) Instance() instance.Instance {
	return k.instance
}

// SequenceID 获取序列号
func (k *Ksuid) SequenceID() uint32 {
	return k.sequenceID
}

// Time 获取创建时间（UTC）
func (k *Ksuid) Time() time.Time {
	return time.Unix(int64(k.timestamp), 0).UTC()
}

// String 序列化为规范文本形式（实现fmt.Stringer接口）
//
// 格式：[environment_]resource_<29位base62>，
// prod环境的前缀被省略（规范形式与二进制形式一一对应）。
// 结果在首次计算后缓存，后续调用直接返回。
func (k *Ksuid) String() string {
	k.strOnce.Do(func() {
		encoded := base62.Encode(k.payload())

		// 左补'0'到固定29位
		prefixLen := len(k.resource) + 1
		if k.environment != DefaultEnvironment {
			prefixLen += len(k.environment) + 1
		}
		b := make([]byte, 0, prefixLen+EncodedLen)
		if k.environment != DefaultEnvironment {
			b = append(b, k.environment...)
			b = append(b, '_')
		}
		b = append(b, k.resource...)
		b = append(b, '_')
		for i := len(encoded); i < EncodedLen; i++ {
			b = append(b, '0')
		}
		b = append(b, encoded...)
		k.str = string(b)
	})
	return k.str
}

// payload 组装21字节二进制载荷
// 布局（全部大端序）：
//
//	[0..1]   保留，恒为0（48位时间戳只使用6字节）
//	[2..7]   时间戳
//	[8..16]  实例标识（方案字节 + 8字节标识）
//	[17..20] 序列号
func (k *Ksuid) payload() []byte {
	buf := make([]byte, DecodedLen)
	putBEUint48(buf[timestampOffset:timestampOffset+timestampLen], k.timestamp)
	copy(buf[instanceOffset:], k.instance.ToBuffer())
	binary.BigEndian.PutUint32(buf[sequenceOffset:], k.sequenceID)
	return buf
}

// Equals 结构相等比较（五个字段全部相等）
// 说明：与nil比较返回false而非报错
func (k *Ksuid) Equals(other *Ksuid) bool {
	if other == nil {
		return false
	}
	return k.environment == other.environment &&
		k.resource == other.resource &&
		k.timestamp == other.timestamp &&
		k.instance.Equals(other.instance) &&
		k.sequenceID == other.sequenceID
}

// Info 导出全部元信息（只读投影，不做新的校验）
func (k *Ksuid) Info() *core.KsuidInfo {
	return &core.KsuidInfo{
		ID:          k.String(),
		Environment: k.environment,
		Resource:    k.resource,
		Timestamp:   k.timestamp,
		Time:        k.Time(),
		Scheme:      uint8(k.instance.Scheme()),
		Identifier:  k.instance.Identifier(),
		SequenceID:  k.sequenceID,
	}
}

// ToJSON 导出为与文本形式互补的调试对象
//
// 字段：environment、resource、timestamp、date（RFC3339 UTC）、
// instance{scheme, identifier字节列表}、sequence_id、string
func (k *Ksuid) ToJSON() map[string]any {
	identifier := k.instance.Identifier()
	identifierList := make([]int, len(identifier))
	for i, b := range identifier {
		identifierList[i] = int(b)
	}

	return map[string]any{
		"environment": k.environment,
		"resource":    k.resource,
		"timestamp":   k.timestamp,
		"date":        k.Time().Format(time.RFC3339),
		"instance": map[string]any{
			"scheme":     uint8(k.instance.Scheme()),
			"identifier": identifierList,
		},
		"sequence_id": k.sequenceID,
		"string":      k.String(),
	}
}

// MarshalJSON 实现JSON序列化（序列化为文本形式字符串）
func (k *Ksuid) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// beUint48 读取6字节大端序无符号整数
func beUint48(b []byte) uint64 {
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

// putBEUint48 写入6字节大端序无符号整数
func putBEUint48(b []byte, v uint64) {
	b[0] = byte(v >> 40)
	b[1] = byte(v >> 32)
	b[2] = byte(v >> 24)
	b[3] = byte(v >> 16)
	b[4] = byte(v >> 8)
	b[5] = byte(v)
}
