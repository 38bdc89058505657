package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Logger forwards GORM's logs to the global zap logger
type Logger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewLogger(slowThreshold time.Duration, level logger.LogLevel) *Logger {
	return &Logger{
		level:         level,
		slowThreshold: slowThreshold,
	}
}

func (l *Logger) LogMode(level logger.LogLevel) logger.Interface {
	n := *l
	n.level = level
	return &n
}

func (l *Logger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		zap.L().Info(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		zap.L().Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		zap.L().Error(fmt.Sprintf(msg, args...))
	}
}

func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		zap.L().Error("Query failed", zap.Error(err), zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		zap.L().Warn("Slow query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	case l.level >= logger.Info:
		sql, rows := fc()
		zap.L().Debug("Query", zap.Duration("elapsed", elapsed), zap.Int64("rows", rows), zap.String("sql", sql))
	}
}
