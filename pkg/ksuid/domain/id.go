// Package domain 提供业务层使用的KSUID类型封装。
//
// ID是字符串的轻量包装，携带校验、解析、字段提取等便捷方法，
// 业务代码可以直接把它用作实体主键类型。
package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/registry"
)

const (
	// maxIDStringLength ID字符串的最大长度
	// 说明：环境+资源前缀加29位编码部分，256字符的上限绰绰有余，
	// 同时防止超长输入导致的资源消耗
	maxIDStringLength = 256

	// defaultGeneratorType 默认使用的生成器类型
	defaultGeneratorType = core.GeneratorTypeKsuid
)

// ID KSUID文本形式的业务类型
type ID string

// NewID 创建新的ID（不做校验，校验用Validate）
func NewID(val string) ID {
	return ID(val)
}

// GenerateID 使用默认生成器创建新的ID
func GenerateID(resource string) (ID, error) {
	id, err := registry.NextID(resource)
	if err != nil {
		return "", err
	}
	return ID(id), nil
}

// String 实现Stringer接口
func (id ID) String() string {
	return string(id)
}

// IsZero 检查ID是否为零值
func (id ID) IsZero() bool {
	return id == ""
}

// Validate 验证ID的有效性
// 说明：使用默认生成器类型（KSUID）进行验证
func (id ID) Validate() error {
	return id.ValidateWithType(defaultGeneratorType)
}

// ValidateWithType 使用指定生成器类型验证ID
func (id ID) ValidateWithType(generatorType core.GeneratorType) error {
	if !generatorType.IsValid() {
		return fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	validator, err := registry.GetValidatorRegistry().Get(generatorType)
	if err != nil {
		return fmt.Errorf("failed to get validator: %w", err)
	}
	return validator.Validate(string(id))
}

// Parse 解析ID，提取元信息
// 说明：使用默认生成器类型（KSUID）进行解析
func (id ID) Parse() (*core.KsuidInfo, error) {
	return id.ParseWithType(defaultGeneratorType)
}

// ParseWithType 使用指定生成器类型解析ID
func (id ID) ParseWithType(generatorType core.GeneratorType) (*core.KsuidInfo, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: id", core.ErrEmptyInput)
	}

	if !generatorType.IsValid() {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidGeneratorType, generatorType)
	}

	parser, err := registry.GetParserRegistry().Get(generatorType)
	if err != nil {
		return nil, fmt.Errorf("failed to get parser: %w", err)
	}

	return parser.Parse(string(id))
}

// Environment 提取环境前缀，解析失败返回空字符串
func (id ID) Environment() string {
	info, err := id.Parse()
	if err != nil {
		return ""
	}
	return info.Environment
}

// Resource 提取资源类型前缀，解析失败返回空字符串
func (id ID) Resource() string {
	info, err := id.Parse()
	if err != nil {
		return ""
	}
	return info.Resource
}

// ExtractTime 提取创建时间，解析失败返回零值
func (id ID) ExtractTime() time.Time {
	info, err := id.Parse()
	if err != nil {
		return time.Time{}
	}
	return info.Time
}

// MarshalJSON 实现JSON序列化
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// UnmarshalJSON 实现JSON反序列化
// 说明：只接受字符串，并做长度与合法性校验
func (id *ID) UnmarshalJSON(data []byte) error {
	// 验证1：防止空数据
	if len(data) == 0 {
		return fmt.Errorf("empty JSON data")
	}

	// 验证2：防止过大的JSON数据
	if len(data) > maxIDStringLength+2 {
		return fmt.Errorf("JSON data too large: max %d bytes, got %d",
			maxIDStringLength+2, len(data))
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("invalid ID format: expected string, got %s", string(data))
	}

	candidate := ID(str)
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("invalid ID %q: %w", str, err)
	}

	*id = candidate
	return nil
}
