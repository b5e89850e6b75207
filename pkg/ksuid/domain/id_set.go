package domain

// IDSet ID集合类型
//
// 特性：
//   - 自动去重（map的天然特性）
//   - 高效查找（O(1)时间复杂度）
//   - 支持标准集合操作（并集、交集、差集）
type IDSet map[ID]struct{}

// NewIDSet 创建新的ID集合
// 说明：从可变参数列表创建集合，自动去重
func NewIDSet(ids ...ID) IDSet {
	if ids == nil {
		return make(IDSet)
	}

	// 长度限制：防止内存耗尽
	if len(ids) > maxSliceLength {
		ids = ids[:maxSliceLength]
	}

	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Add 添加ID到集合
func (s IDSet) Add(id ID) {
	// 容量限制：防止内存耗尽
	if len(s) >= maxSliceLength {
		return
	}
	s[id] = struct{}{}
}

// Remove 从集合中移除ID
func (s IDSet) Remove(id ID) {
	delete(s, id)
}

// Contains 检查集合是否包含指定ID
func (s IDSet) Contains(id ID) bool {
	_, exists := s[id]
	return exists
}

// Size 获取集合大小
func (s IDSet) Size() int {
	return len(s)
}

// IsEmpty 检查集合是否为空
func (s IDSet) IsEmpty() bool {
	return len(s) == 0
}

// Union 并集，返回新集合
func (s IDSet) Union(other IDSet) IDSet {
	result := make(IDSet, len(s)+len(other))
	for id := range s {
		result[id] = struct{}{}
	}
	for id := range other {
		result[id] = struct{}{}
	}
	return result
}

// Intersect 交集，返回新集合
func (s IDSet) Intersect(other IDSet) IDSet {
	// 遍历较小的集合
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}

	result := make(IDSet)
	for id := range small {
		if large.Contains(id) {
			result[id] = struct{}{}
		}
	}
	return result
}

// Difference 差集（在s中但不在other中），返回新集合
func (s IDSet) Difference(other IDSet) IDSet {
	result := make(IDSet)
	for id := range s {
		if !other.Contains(id) {
			result[id] = struct{}{}
		}
	}
	return result
}

// ToSlice 转换为切片（顺序不保证，需要有序时调用Sort）
func (s IDSet) ToSlice() IDSlice {
	result := make(IDSlice, 0, len(s))
	for id := range s {
		result = append(result, id)
	}
	return result
}
