package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultDir        = "logs"
	defaultFilename   = "coffee-bar.log"
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 5
	defaultMaxAgeDays = 14
)

// Options 日志输出配置
type Options struct {
	Level      string
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Stdout release 模式下同时输出到标准输出
	Stdout bool
}

// L 全局结构化日志实例
var L *zap.Logger

var (
	fallbackOnce sync.Once
	fallbackLog  *zap.Logger
)

type ctxKey struct{}

// Init 初始化全局日志
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New 按运行模式创建日志：debug 输出彩色控制台，其余写入滚动文件
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	level := parseLevel(options.Level, debug)

	if debug {
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig(true)), zapcore.AddSync(os.Stdout), level)
		return build(core)
	}

	encoder := zapcore.NewJSONEncoder(encoderConfig(false))
	fileSyncer, err := rollingFile(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "log file unavailable, writing to stdout: %v\n", err)
		return build(zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}
	cores := []zapcore.Core{zapcore.NewCore(encoder, fileSyncer, level)}
	if options.Stdout {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
	}
	return build(zapcore.NewTee(cores...))
}

// Named 返回带组件名的 SugaredLogger
func Named(component string) *zap.SugaredLogger {
	return S().Named(component)
}

// WithContext 将请求级字段挂到 context 上
func WithContext(ctx context.Context, kv ...interface{}) context.Context {
	if len(kv) == 0 {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, SW(kv...))
}

// FromContext 取出 context 上的 logger，没有时返回全局 logger
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.SugaredLogger); ok && l != nil {
			return l
		}
	}
	return S()
}

// StdLogger 兼容标准库 log
func StdLogger() *log.Logger {
	return zap.NewStdLog(Z())
}

// Z 返回可用的结构化日志实例
func Z() *zap.Logger {
	if L != nil {
		return L
	}
	return fallbackLogger()
}

// S 返回可用的 SugaredLogger
func S() *zap.SugaredLogger {
	return Z().Sugar()
}

// SW 返回带字段的 SugaredLogger
func SW(kv ...interface{}) *zap.SugaredLogger {
	if len(kv) == 0 {
		return S()
	}
	return S().With(kv...)
}

func Debugw(message string, kv ...interface{}) {
	S().Debugw(message, kv...)
}

func Infow(message string, kv ...interface{}) {
	S().Infow(message, kv...)
}

func Warnw(message string, kv ...interface{}) {
	S().Warnw(message, kv...)
}

func Errorw(message string, kv ...interface{}) {
	S().Errorw(message, kv...)
}

func build(core zapcore.Core) *zap.Logger {
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
}

func parseLevel(raw string, debug bool) zap.AtomicLevel {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		if lvl, err := zapcore.ParseLevel(raw); err == nil {
			return zap.NewAtomicLevelAt(lvl)
		}
	}
	if debug {
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zap.NewAtomicLevelAt(zap.InfoLevel)
}

func encoderConfig(color bool) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.MessageKey = "event"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	if color {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return cfg
}

func fallbackLogger() *zap.Logger {
	fallbackOnce.Do(func() {
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig(false)),
			zapcore.AddSync(os.Stdout),
			zap.NewAtomicLevelAt(zap.InfoLevel),
		)
		fallbackLog = build(core)
	})
	return fallbackLog
}

func rollingFile(options Options) (zapcore.WriteSyncer, error) {
	path, err := logFilePath(options)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    positiveOr(options.MaxSizeMB, defaultMaxSizeMB),
		MaxBackups: positiveOr(options.MaxBackups, defaultMaxBackups),
		MaxAge:     positiveOr(options.MaxAgeDays, defaultMaxAgeDays),
		Compress:   options.Compress,
	}), nil
}

func logFilePath(options Options) (string, error) {
	dir := strings.TrimSpace(options.Dir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve workdir: %w", err)
		}
		dir = filepath.Join(wd, defaultDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	name := strings.TrimSpace(options.Filename)
	if name == "" {
		name = defaultFilename
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open log file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close log file: %w", err)
	}
	return path, nil
}

func positiveOr(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
