// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xmidt-org/sallust"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func testNewDefaults(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	logger, err := New(nil)
	require.NoError(err)
	require.NotNil(logger)
	assert.True(logger.Core().Enabled(zapcore.InfoLevel))
	assert.False(logger.Core().Enabled(zapcore.DebugLevel))
}

func testNewLevel(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
	)

	logger, err := New(&sallust.Config{Level: "error"}, zap.Fields(zap.String("run", "test")))
	require.NoError(err)
	require.NotNil(logger)
	assert.False(logger.Core().Enabled(zapcore.WarnLevel))
	assert.True(logger.Core().Enabled(zapcore.ErrorLevel))
}

func testNewInvalidLevel(t *testing.T) {
	logger, err := New(&sallust.Config{Level: "not a level"})
	assert.Error(t, err)
	assert.Nil(t, logger)
}

func TestNew(t *testing.T) {
	t.Run("Defaults", testNewDefaults)
	t.Run("Level", testNewLevel)
	t.Run("InvalidLevel", testNewInvalidLevel)
}

func TestContext(t *testing.T) {
	var (
		assert = assert.New(t)
		logger = zap.NewNop()
	)

	assert.NotNil(GetLogger(context.Background()))
	assert.Equal(logger, GetLogger(WithLogger(context.Background(), logger)))
}
