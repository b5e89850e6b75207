// Package logger 提供进程级的结构化日志门面。
//
// 底层使用zap，文件输出通过lumberjack做滚动切割。
// 未显式初始化时使用输出到stderr的默认配置，库代码可以
// 放心调用而不必关心宿主进程是否配置过日志。
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 日志配置
type Config struct {
	// Level 日志级别：debug/info/warn/error
	Level string `json:"level" mapstructure:"level"`

	// Filename 日志文件路径，空值表示只输出到stderr
	Filename string `json:"filename" mapstructure:"filename"`

	// MaxSizeMB 单个日志文件的最大体积（MB）
	MaxSizeMB int `json:"max_size_mb" mapstructure:"max_size_mb"`

	// MaxBackups 保留的旧文件数量
	MaxBackups int `json:"max_backups" mapstructure:"max_backups"`

	// MaxAgeDays 旧文件保留天数
	MaxAgeDays int `json:"max_age_days" mapstructure:"max_age_days"`

	// Compress 是否压缩旧文件
	Compress bool `json:"compress" mapstructure:"compress"`
}

var (
	global   *zap.SugaredLogger
	globalMu sync.RWMutex
)

// newLogger 按配置构造日志器
func newLogger(cfg *Config) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	var sink zapcore.WriteSyncer
	if cfg.Filename != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(), nil
}

// Init 按配置初始化全局日志器
// 说明：重复调用会替换全局实例，通常只在进程启动时调用一次
func Init(cfg *Config) error {
	if cfg == nil {
		cfg = &Config{Level: "info"}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	globalMu.Lock()
	global = logger
	globalMu.Unlock()
	return nil
}

// get 获取全局日志器，未初始化时惰性创建默认实例
func get() *zap.SugaredLogger {
	globalMu.RLock()
	l := global
	globalMu.RUnlock()
	if l != nil {
		return l
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global, _ = newLogger(&Config{Level: "info"})
	}
	return global
}

// Debug 输出debug日志（键值对形式）
func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, keysAndValues...)
}

// Info 输出info日志（键值对形式）
func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, keysAndValues...)
}

// Warn 输出warn日志（键值对形式）
func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, keysAndValues...)
}

// Error 输出error日志（键值对形式）
func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, keysAndValues...)
}

// Sync 刷出缓冲的日志（进程退出前调用）
func Sync() {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if global != nil {
		_ = global.Sync()
	}
}
