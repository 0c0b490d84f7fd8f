// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logutil

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_globalLogger atomic.Value
	_skip1Logger  atomic.Value
	_logConfig    atomic.Value
)

func init() {
	SetupMOLogger(&LogConfig{
		Level:  zapcore.InfoLevel.String(),
		Format: "console",
	})
}

// SetupMOLogger sets up the global logger. It panics on an unusable config.
func SetupMOLogger(conf *LogConfig) {
	logger, err := initMOLogger(conf)
	if err != nil {
		panic(err)
	}
	replaceGlobalLogger(logger)
	setGlobalLogConfig(conf)
	Debugf("MO logger init, level=%s, log file=%s", conf.Level, conf.Filename)
}

func initMOLogger(cfg *LogConfig) (*zap.Logger, error) {
	return GetLoggerWithOptions(cfg.getLevel(), cfg.getSinks(), cfg.getOptions()...), nil
}

// GetLoggerWithOptions builds a logger teeing into every sink.
func GetLoggerWithOptions(level zapcore.LevelEnabler, sinks []ZapSink, options ...zap.Option) *zap.Logger {
	cores := make([]zapcore.Core, 0, len(sinks))
	for _, sink := range sinks {
		cores = append(cores, zapcore.NewCore(sink.enc, sink.out, level))
	}
	return zap.New(zapcore.NewTee(cores...), options...)
}

func replaceGlobalLogger(logger *zap.Logger) {
	_globalLogger.Store(logger)
	_skip1Logger.Store(logger.WithOptions(zap.AddCallerSkip(1)))
}

func setGlobalLogConfig(cfg *LogConfig) {
	_logConfig.Store(*cfg)
}

func getGlobalLogConfig() LogConfig {
	return _logConfig.Load().(LogConfig)
}

// GetGlobalLogger returns the current global zap logger.
func GetGlobalLogger() *zap.Logger {
	return _globalLogger.Load().(*zap.Logger)
}

// GetSkip1Logger skips one caller frame, for the package level helpers.
func GetSkip1Logger() *zap.Logger {
	return _skip1Logger.Load().(*zap.Logger)
}
