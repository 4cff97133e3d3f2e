// Package gormlogger adapts the zerolog global logger to gorm's logger interface.
package gormlogger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlog "gorm.io/gorm/logger"
)

// Logger forwards gorm log output to zerolog.
type Logger struct {
	level gormlog.LogLevel
}

// New creates a gorm logger writing to the zerolog global logger.
func New() *Logger {
	return &Logger{level: gormlog.Warn}
}

// LogMode implements gormlog.Interface.
func (l *Logger) LogMode(level gormlog.LogLevel) gormlog.Interface {
	return &Logger{level: level}
}

// Info implements gormlog.Interface.
func (l *Logger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlog.Info {
		log.Info().Interface("data", data).Msg(msg)
	}
}

// Warn implements gormlog.Interface.
func (l *Logger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlog.Warn {
		log.Warn().Interface("data", data).Msg(msg)
	}
}

// Error implements gormlog.Interface.
func (l *Logger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlog.Error {
		log.Error().Interface("data", data).Msg(msg)
	}
}

// Trace implements gormlog.Interface. Completed statements go to trace
// level, failed ones to error level. Record-not-found is not an error
// here, callers treat it as a valid absent result.
func (l *Logger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlog.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")

		return
	}

	log.Trace().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
}
