package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestInitLevels 测试级别解析
func TestInitLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{"debug级别", "debug", false},
		{"info级别", "info", false},
		{"warn级别", "warn", false},
		{"error级别", "error", false},
		{"非法级别", "verbose", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Init(&Config{Level: tt.level})
			if (err != nil) != tt.wantErr {
				t.Errorf("Init() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestFileOutput 测试文件输出
func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(&Config{Level: "info", Filename: path, MaxSizeMB: 1}); err != nil {
		t.Fatal(err)
	}

	Info("测试消息", "key", "value")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("读取日志文件失败: %v", err)
	}
	if !strings.Contains(string(data), "测试消息") {
		t.Errorf("日志文件缺少消息: %s", data)
	}
	if !strings.Contains(string(data), `"key"`) {
		t.Errorf("日志文件缺少键值对: %s", data)
	}
}

// TestLazyDefault 测试未初始化时的惰性默认实例
func TestLazyDefault(t *testing.T) {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()

	// 不应panic
	Info("惰性初始化")
	Debug("debug消息")
	Warn("warn消息")
	Error("error消息")
	Sync()
}
