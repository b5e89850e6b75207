package core

import (
	"fmt"
	"regexp"
)

// prefixRegex 前缀（environment/resource）的合法格式
// 只允许小写字母和数字：这些前缀会成为可打印、可grep、URL安全的
// 复合token的一部分，因此刻意不支持大小写混合和Unicode
var prefixRegex = regexp.MustCompile(`^[a-z0-9]+$`)

// CheckPrefix 验证值是否为合法的前缀字符串
//
// 参数:
//
//	field: 字段名（用于错误信息）
//	value: 待验证的值
func CheckPrefix(field, value string) error {
	if !prefixRegex.MatchString(value) {
		return fmt.Errorf("%w: %s", ErrInvalidPrefix, field)
	}
	return nil
}

// CheckUint 验证无符号整数是否在指定字节宽度允许的范围内
//
// 参数:
//
//	field: 字段名（用于错误信息）
//	value: 待验证的值
//	byteLength: 字段字节宽度（决定最大值 2^(byteLength*8)-1）
func CheckUint(field string, value uint64, byteLength int) error {
	// 8字节宽度时uint64本身就是上限，无需检查
	if byteLength >= 8 {
		return nil
	}
	maxValue := uint64(1)<<(byteLength*8) - 1
	if value > maxValue {
		return fmt.Errorf("%w: %s must be a uint%d, got %d",
			ErrValueOutOfRange, field, byteLength*8, value)
	}
	return nil
}

// CheckBytes 验证字节序列长度是否精确匹配
//
// 参数:
//
//	field: 字段名（用于错误信息）
//	value: 待验证的字节序列
//	byteLength: 期望的字节长度
func CheckBytes(field string, value []byte, byteLength int) error {
	if len(value) != byteLength {
		return fmt.Errorf("%w: %s must be %d bytes, got %d",
			ErrInvalidByteLength, field, byteLength, len(value))
	}
	return nil
}

// CheckNonEmpty 验证字符串非空
//
// 参数:
//
//	field: 字段名（用于错误信息）
//	value: 待验证的值
func CheckNonEmpty(field, value string) error {
	if len(value) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyInput, field)
	}
	return nil
}
