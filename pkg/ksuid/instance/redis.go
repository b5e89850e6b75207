package instance

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// defaultClaimPrefix 实例占用键的默认前缀
	defaultClaimPrefix = "ksuid:instance:"

	// defaultClaimTTL 占用键的默认过期时间
	// 说明：持有方需周期性Refresh续期；进程异常退出后键会自行过期，
	// 该标识即可被其他进程重新占用
	defaultClaimTTL = 30 * time.Minute

	// defaultClaimRetries 随机标识碰撞时的最大重试次数
	// 说明：8字节随机空间下碰撞概率极低，重试多次仍失败
	// 基本可断定是配置或网络问题而非真实碰撞
	defaultClaimRetries = 3
)

// ErrClaimExhausted 重试后仍未能占用到唯一实例标识
var ErrClaimExhausted = errors.New("failed to claim a unique instance identifier")

// CoordinatedProvider 基于Redis协调的实例标识提供者
//
// KSUID的全局唯一性依赖实例标识的互异性：两个进程若持有相同的
// 实例标识且在同一秒生成ID，就可能产生重复。本提供者在随机方案
// 的基础上增加一层协调——随机生成的标识先到Redis用SETNX登记，
// 登记成功才投入使用，从而保证同一Redis可达范围内存活进程之间
// 的实例标识互不相同。
type CoordinatedProvider struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	retries   int
}

// CoordinatedOption 提供者配置选项
type CoordinatedOption func(*CoordinatedProvider)

// WithKeyPrefix 设置占用键前缀
func WithKeyPrefix(prefix string) CoordinatedOption {
	return func(p *CoordinatedProvider) { p.keyPrefix = prefix }
}

// WithClaimTTL 设置占用键过期时间
func WithClaimTTL(ttl time.Duration) CoordinatedOption {
	return func(p *CoordinatedProvider) { p.ttl = ttl }
}

// WithClaimRetries 设置碰撞重试次数
func WithClaimRetries(n int) CoordinatedOption {
	return func(p *CoordinatedProvider) { p.retries = n }
}

// NewCoordinatedProvider 创建Redis协调的实例标识提供者
func NewCoordinatedProvider(client redis.UniversalClient, opts ...CoordinatedOption) (*CoordinatedProvider, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	p := &CoordinatedProvider{
		client:    client,
		keyPrefix: defaultClaimPrefix,
		ttl:       defaultClaimTTL,
		retries:   defaultClaimRetries,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Claim 占用一个在Redis可达范围内唯一的随机实例标识
//
// 流程：生成随机8字节 → SETNX登记 → 成功返回；
// 已被占用则重新生成并重试，超过重试上限返回ErrClaimExhausted。
func (p *CoordinatedProvider) Claim(ctx context.Context) (Instance, error) {
	for attempt := 0; attempt <= p.retries; attempt++ {
		inst, err := NewRandom()
		if err != nil {
			return Instance{}, err
		}

		ok, err := p.client.SetNX(ctx, p.claimKey(inst), "1", p.ttl).Result()
		if err != nil {
			return Instance{}, fmt.Errorf("failed to register instance claim: %w", err)
		}
		if ok {
			return inst, nil
		}
		// 标识已被其他进程占用，换一个随机值重试
	}
	return Instance{}, fmt.Errorf("%w: after %d retries", ErrClaimExhausted, p.retries)
}

// Refresh 为已占用的标识续期
// 说明：持有方应以小于TTL的周期调用，避免存活期间占用失效
func (p *CoordinatedProvider) Refresh(ctx context.Context, inst Instance) error {
	ok, err := p.client.Expire(ctx, p.claimKey(inst), p.ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to refresh instance claim: %w", err)
	}
	if !ok {
		// 键已过期被清除，占用已丢失
		return fmt.Errorf("instance claim expired: %s", inst)
	}
	return nil
}

// Release 主动释放占用（进程正常退出时调用）
func (p *CoordinatedProvider) Release(ctx context.Context, inst Instance) error {
	if err := p.client.Del(ctx, p.claimKey(inst)).Err(); err != nil {
		return fmt.Errorf("failed to release instance claim: %w", err)
	}
	return nil
}

// claimKey 由实例标识推导占用键
func (p *CoordinatedProvider) claimKey(inst Instance) string {
	return p.keyPrefix + hex.EncodeToString(inst.Identifier())
}
