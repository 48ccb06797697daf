// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
)

const (
	// DefaultLevel is used when the configuration has no level
	DefaultLevel = "info"

	// DefaultEncoding is used when the configuration has no encoding
	DefaultEncoding = "console"
)

// New builds a zap.Logger from configuration.  Unset fields fall back to an info level console
// logger that writes to stdout, so that narration is visible without any configuration.
// A nil configuration is the same as an empty one.
func New(c *sallust.Config, options ...zap.Option) (*zap.Logger, error) {
	var config sallust.Config
	if c != nil {
		config = *c
	}

	if len(config.Level) == 0 {
		config.Level = DefaultLevel
	}

	if len(config.Encoding) == 0 {
		config.Encoding = DefaultEncoding
	}

	if len(config.OutputPaths) == 0 {
		config.OutputPaths = []string{"stdout"}
	}

	if len(config.ErrorOutputPaths) == 0 {
		config.ErrorOutputPaths = []string{"stderr"}
	}

	if len(config.EncoderConfig.MessageKey) == 0 {
		config.EncoderConfig.MessageKey = "msg"
		config.EncoderConfig.LevelKey = "level"
		config.EncoderConfig.TimeKey = "ts"
		config.EncoderConfig.NameKey = "name"
		config.EncoderConfig.EncodeLevel = "capital"
		config.EncoderConfig.EncodeTime = "iso8601"
		config.EncoderConfig.EncodeDuration = "string"
	}

	return config.Build(options...)
}
