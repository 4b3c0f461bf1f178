package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/ardnew/dragon/log"
)

// gormLogger forwards GORM's logging to a [log.Logger]. SQL statements are
// traced; GORM's own level is ignored in favor of the logger's.
type gormLogger struct {
	log.Logger
}

func (l gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }

func (l gormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

func (l gormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

func (l gormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

func (l gormLogger) Trace(
	ctx context.Context,
	begin time.Time,
	fc func() (sql string, rowsAffected int64),
	err error,
) {
	if !l.Enabled(ctx, log.LevelTrace) && err == nil {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.String("sql", sql),
		slog.Int64("rows", rows),
		slog.Duration("elapsed", time.Since(begin)),
	}

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		l.ErrorContext(ctx, "query failed", append(attrs, slog.Any("error", err))...)

		return
	}

	l.TraceContext(ctx, "query", attrs...)
}
