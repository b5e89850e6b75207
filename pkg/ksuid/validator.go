package ksuid

import "fmt"

// Validator KSUID合法性校验器（无状态，并发安全）
type Validator struct{}

// NewValidator 创建校验器
func NewValidator() *Validator {
	return &Validator{}
}

// Validate 校验单个ID（实现core.IKsuidValidator接口）
func (v *Validator) Validate(id string) error {
	_, err := Parse(id)
	return err
}

// ValidateBatch 批量校验，返回首个非法ID的下标和错误
// 全部合法时返回(-1, nil)
func (v *Validator) ValidateBatch(ids []string) (int, error) {
	for i, id := range ids {
		if err := v.Validate(id); err != nil {
			return i, fmt.Errorf("第%d个ID非法: %w", i, err)
		}
	}
	return -1, nil
}
