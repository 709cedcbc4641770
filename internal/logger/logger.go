package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/haryoiro/orderdesk/internal/structures"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = map[LogLevel]string{
	DEBUG: "DEBUG",
	INFO:  "INFO",
	WARN:  "WARN",
	ERROR: "ERROR",
	FATAL: "FATAL",
}

// ParseLevel maps a config string to a level, defaulting to INFO
func ParseLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

type Logger struct {
	logger       *log.Logger
	level        LogLevel
	closer       io.Closer
	enableCaller bool
	debugMode    bool
}

// グローバルロガーインスタンス
var globalLogger *Logger

// IsDebugEnabled reports whether the global logger runs in debug mode
func IsDebugEnabled() bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.debugMode
}

// InitLogger sets up the global logger with a rotating log file
func InitLogger(logPath string, cfg structures.LogConfig, debugMode bool) error {
	level := ParseLevel(cfg.Level)
	if debugMode {
		level = DEBUG
	}

	l, err := NewRotatingLogger(logPath, level, cfg)
	if err != nil {
		return err
	}
	l.debugMode = debugMode
	globalLogger = l
	return nil
}

// SetLogger replaces the global logger
func SetLogger(l *Logger) {
	globalLogger = l
}

// GetLogger returns the global logger
func GetLogger() *Logger {
	return globalLogger
}

// CloseLogger closes the global logger
func CloseLogger() error {
	if globalLogger != nil {
		return globalLogger.Close()
	}
	return nil
}

// グローバル関数群
func Debug(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.debugMode {
		globalLogger.Debug(format, args...)
	}
}

func Info(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Info(format, args...)
	}
}

func Warn(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Warn(format, args...)
	}
}

func Error(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Error(format, args...)
	}
}

func Fatal(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Fatal(format, args...)
	}
}

// NewRotatingLogger creates a logger writing to a size-rotated file.
// The terminal belongs to the UI, so nothing is written to stdout.
func NewRotatingLogger(logPath string, level LogLevel, cfg structures.LogConfig) (*Logger, error) {
	dir := filepath.Dir(logPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rot := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	l := NewWriterLogger(rot, level)
	l.closer = rot
	return l, nil
}

// NewWriterLogger creates a logger over an arbitrary writer
func NewWriterLogger(w io.Writer, level LogLevel) *Logger {
	return &Logger{
		logger:       log.New(w, "", 0),
		level:        level,
		enableCaller: true,
		debugMode:    level == DEBUG,
	}
}

// Close closes the underlying log file, if any
func (l *Logger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

// EnableCaller enables/disables caller information in logs
func (l *Logger) EnableCaller(enable bool) {
	l.enableCaller = enable
}

// SetDebugMode enables/disables debug mode
func (l *Logger) SetDebugMode(enable bool) {
	l.debugMode = enable
}

// IsDebugMode returns whether debug mode is enabled
func (l *Logger) IsDebugMode() bool {
	return l.debugMode
}

func (l *Logger) log(level LogLevel, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	levelStr := levelNames[level]

	var caller string
	if l.enableCaller {
		_, file, line, ok := runtime.Caller(2)
		if ok {
			caller = fmt.Sprintf(" [%s:%d]", filepath.Base(file), line)
		}
	}

	message := fmt.Sprintf(format, args...)
	l.logger.Printf("%s [%s]%s %s", timestamp, levelStr, caller, message)

	if level == FATAL {
		l.Close()
		os.Exit(1)
	}
}

// Debug logs a debug message (only if debug mode is enabled)
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.debugMode {
		l.log(DEBUG, format, args...)
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(INFO, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(WARN, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(ERROR, format, args...)
}

// Fatal logs a fatal message and exits the program
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.log(FATAL, format, args...)
}
