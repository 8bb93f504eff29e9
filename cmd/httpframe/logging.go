// Copyright 2024 Parselabs. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package main

import (
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOptions configures the CLI's logger, read from the go-ucfg tree
// via the same `config` struct tags packetd/logger uses.
type LogOptions struct {
	Stdout     bool   `config:"stdout"`
	Level      string `config:"level"`
	Filename   string `config:"filename"`
	MaxSizeMB  int    `config:"maxSizeMB"`
	MaxAgeDays int    `config:"maxAgeDays"`
	MaxBackups int    `config:"maxBackups"`
}

func defaultLogOptions() LogOptions {
	return LogOptions{
		Stdout: true,
		Level:  "info",
	}
}

func toZapLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

// newLogger builds a zap logger that either writes to stdout or to a
// lumberjack-rotated file, matching packetd/logger's New. The core
// httpframe/headermap packages never log; only this CLI does.
func newLogger(opt LogOptions) (*zap.Logger, error) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format("2006-01-02T15:04:05.000Z"))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var w zapcore.WriteSyncer
	if opt.Stdout || opt.Filename == "" {
		w = zapcore.AddSync(os.Stdout)
	} else {
		if err := os.MkdirAll(filepath.Dir(opt.Filename), 0o755); err != nil {
			return nil, err
		}
		w = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opt.Filename,
			MaxSize:    opt.MaxSizeMB,
			MaxBackups: opt.MaxBackups,
			MaxAge:     opt.MaxAgeDays,
			LocalTime:  true,
		})
	}

	core := zapcore.NewCore(encoder, w, toZapLevel(opt.Level))
	return zap.New(core, zap.AddCaller()), nil
}
