package ksuid

import (
	"katydid-common-ksuid/pkg/ksuid/core"
)

// Parser KSUID解析器（无状态，并发安全）
type Parser struct{}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{}
}

// Parse 解析ID并提取元信息（实现core.IKsuidParser接口）
func (p *Parser) Parse(id string) (*core.KsuidInfo, error) {
	k, err := Parse(id)
	if err != nil {
		return nil, err
	}
	return k.Info(), nil
}

// ExtractEnvironment 提取环境前缀
func (p *Parser) ExtractEnvironment(id string) (string, error) {
	k, err := Parse(id)
	if err != nil {
		return "", err
	}
	return k.Environment(), nil
}

// ExtractResource 提取资源类型前缀
func (p *Parser) ExtractResource(id string) (string, error) {
	k, err := Parse(id)
	if err != nil {
		return "", err
	}
	return k.Resource(), nil
}

// ExtractTimestamp 提取时间戳（Unix秒）
func (p *Parser) ExtractTimestamp(id string) (uint64, error) {
	k, err := Parse(id)
	if err != nil {
		return 0, err
	}
	return k.Timestamp(), nil
}
