package domain

import (
	"fmt"
	"sort"
)

const (
	// maxSliceLength 最大切片长度
	// 说明：限制切片大小，防止内存耗尽
	maxSliceLength = 1_000_000
)

// IDSlice ID切片类型
//
// 特性：
//   - 支持类型转换（字符串切片）
//   - 支持集合操作（包含、去重、过滤）
//   - 支持批量验证
//   - 排序即按创建时间排序（同一环境+资源下字典序等价于时间序）
type IDSlice []ID

// NewIDSlice 创建新的ID切片
// 说明：创建切片的副本，避免外部修改影响
func NewIDSlice(ids ...ID) IDSlice {
	if ids == nil {
		return IDSlice{}
	}
	// 长度限制：防止内存耗尽
	if len(ids) > maxSliceLength {
		ids = ids[:maxSliceLength]
	}
	result := make(IDSlice, len(ids))
	copy(result, ids)
	return result
}

// StringSlice 转换为字符串切片
func (ids IDSlice) StringSlice() []string {
	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = id.String()
	}
	return result
}

// Contains 检查是否包含指定ID
// 说明：线性查找，时间复杂度O(n)
func (ids IDSlice) Contains(id ID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len 返回切片长度
func (ids IDSlice) Len() int {
	return len(ids)
}

// IsEmpty 检查切片是否为空
func (ids IDSlice) IsEmpty() bool {
	return len(ids) == 0
}

// First 获取第一个元素
func (ids IDSlice) First() (ID, bool) {
	if len(ids) == 0 {
		return "", false
	}
	return ids[0], true
}

// Last 获取最后一个元素
func (ids IDSlice) Last() (ID, bool) {
	if len(ids) == 0 {
		return "", false
	}
	return ids[len(ids)-1], true
}

// Deduplicate 去重，保持首次出现的顺序
func (ids IDSlice) Deduplicate() IDSlice {
	seen := make(map[ID]struct{}, len(ids))
	result := make(IDSlice, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

// Filter 按条件过滤，返回新切片
func (ids IDSlice) Filter(keep func(ID) bool) IDSlice {
	result := make(IDSlice, 0, len(ids))
	for _, id := range ids {
		if keep(id) {
			result = append(result, id)
		}
	}
	return result
}

// Sort 按字典序排序（同一环境+资源下即按创建时间排序），返回新切片
func (ids IDSlice) Sort() IDSlice {
	result := make(IDSlice, len(ids))
	copy(result, ids)
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

// Validate 批量验证，返回第一个无效ID的错误
func (ids IDSlice) Validate() error {
	for i, id := range ids {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("invalid ID at index %d: %w", i, err)
		}
	}
	return nil
}

// ToSet 转换为集合（自动去重）
func (ids IDSlice) ToSet() IDSet {
	return NewIDSet(ids...)
}
