package ksuid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"katydid-common-ksuid/pkg/ksuid/core"
	"katydid-common-ksuid/pkg/ksuid/instance"
)

// TestDefaultConfig 测试默认配置
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	assert.Equal(t, core.StrategyWait, cfg.SequenceOverflowStrategy)
	assert.Nil(t, cfg.Instance)
	assert.False(t, cfg.EnableMetrics)
}

// TestConfigSetDefaults 测试缺省补全
func TestConfigSetDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.SetDefaults())
	assert.Equal(t, DefaultEnvironment, cfg.Environment)
	require.NotNil(t, cfg.Instance, "缺省实例应自动发现")

	// 已有值不被覆盖
	identifier := make([]byte, instance.IdentifierLen)
	inst, err := instance.New(core.SchemeRandom, identifier)
	require.NoError(t, err)
	cfg2 := &Config{Environment: "dev", Instance: &inst}
	require.NoError(t, cfg2.SetDefaults())
	assert.Equal(t, "dev", cfg2.Environment)
	assert.True(t, cfg2.Instance.Equals(inst))
}

// TestConfigValidate 测试配置校验
func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"合法_dev", &Config{Environment: "dev"}, false},
		{"合法_空环境", &Config{}, false},
		{"合法_数字环境", &Config{Environment: "env2"}, false},
		{"非法_大写", &Config{Environment: "DEV"}, true},
		{"非法_下划线", &Config{Environment: "de_v"}, true},
		{"非法_连字符", &Config{Environment: "de-v"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestConfigClone 测试深拷贝
func TestConfigClone(t *testing.T) {
	identifier := make([]byte, instance.IdentifierLen)
	inst, err := instance.New(core.SchemeRandom, identifier)
	require.NoError(t, err)

	cfg := &Config{Environment: "dev", Instance: &inst, EnableMetrics: true}
	clone := cfg.Clone()

	assert.Equal(t, cfg.Environment, clone.Environment)
	assert.True(t, clone.Instance.Equals(*cfg.Instance))
	assert.NotSame(t, cfg.Instance, clone.Instance, "实例指针应独立")

	clone.Environment = "staging"
	assert.Equal(t, "dev", cfg.Environment, "修改克隆不应影响原件")
}

// TestLoadConfig 测试配置加载
func TestLoadConfig(t *testing.T) {
	t.Run("仅环境变量", func(t *testing.T) {
		t.Setenv("KSUID_ENVIRONMENT", "staging")
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "staging", cfg.Environment)
	})

	t.Run("配置文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ksuid.yaml")
		content := []byte("environment: dev\nenable_metrics: true\n")
		require.NoError(t, os.WriteFile(path, content, 0o600))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Environment)
		assert.True(t, cfg.EnableMetrics)
	})

	t.Run("文件不存在", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("非法环境值", func(t *testing.T) {
		t.Setenv("KSUID_ENVIRONMENT", "BAD")
		_, err := LoadConfig("")
		assert.Error(t, err)
	})
}

// TestFactoryCreate 测试工厂创建
func TestFactoryCreate(t *testing.T) {
	factory := NewFactory()

	t.Run("nil配置用默认值", func(t *testing.T) {
		gen, err := factory.Create(nil)
		require.NoError(t, err)
		id, err := gen.NextID("user")
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("合法配置", func(t *testing.T) {
		gen, err := factory.Create(&Config{Environment: "dev"})
		require.NoError(t, err)
		id, err := gen.NextID("user")
		require.NoError(t, err)
		assert.Contains(t, id, "dev_user_")
	})

	t.Run("错误类型", func(t *testing.T) {
		_, err := factory.Create("not a config")
		assert.ErrorIs(t, err, core.ErrInvalidGeneratorType)
	})
}
