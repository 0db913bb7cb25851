package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormSlogLogger routes GORM output through the application logger.
type gormSlogLogger struct {
	log   *slog.Logger
	level logger.LogLevel
}

func newGormSlogLogger(log *slog.Logger, appLevel string) logger.Interface {
	level := logger.Warn
	if strings.EqualFold(appLevel, "debug") {
		level = logger.Info
	}
	return &gormSlogLogger{log: log, level: level}
}

func (l *gormSlogLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level
	return &cloned
}

func (l *gormSlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *gormSlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *gormSlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.emit(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *gormSlogLogger) emit(ctx context.Context, min logger.LogLevel, lvl slog.Level, msg string, args []any) {
	if l.log == nil || l.level < min {
		return
	}
	l.log.LogAttrs(ctx, lvl, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
}

func (l *gormSlogLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.log == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	attrs := func() []slog.Attr {
		sql, rows := fc()
		return []slog.Attr{
			slog.Duration("elapsed", elapsed),
			slog.Int64("rows", rows),
			slog.String("sql", sql),
		}
	}

	switch {
	case err != nil && l.level >= logger.Error &&
		!errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, gorm.ErrDuplicatedKey):
		l.log.LogAttrs(ctx, slog.LevelError, "gorm query failed",
			append(attrs(), slog.String("error", err.Error()))...)
	case elapsed > slowQueryThreshold && l.level >= logger.Warn:
		l.log.LogAttrs(ctx, slog.LevelWarn, "gorm slow query", attrs()...)
	case l.level >= logger.Info:
		l.log.LogAttrs(ctx, slog.LevelDebug, "gorm query", attrs()...)
	}
}
