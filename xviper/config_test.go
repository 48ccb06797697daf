// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package xviper

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStandardConfigPaths(t *testing.T) {
	configer := new(mockConfiger)
	configer.On("AddConfigPath", "/etc/synclab").Once()
	configer.On("AddConfigPath", "$HOME/synclab").Once()
	configer.On("AddConfigPath", ".").Once()

	AddStandardConfigPaths(configer, "synclab")

	configer.AssertExpectations(t)
}

func newFlagSet(t *testing.T, arguments ...string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flagSet.String(DefaultNameFlag, "", "this is the config name")
	flagSet.String(DefaultFileFlag, "", "this is the config file")
	require.NoError(t, flagSet.Parse(arguments))
	return flagSet
}

func testBindConfigUsingFile(t *testing.T) {
	var (
		assert   = assert.New(t)
		configer = new(mockConfiger)
		flagSet  = newFlagSet(t, "--file", "synclab.yaml", "--name", "ignored")
	)

	configer.On("SetConfigFile", "synclab.yaml").Once()
	assert.True(BindConfig(configer, flagSet, DefaultFileFlag, DefaultNameFlag))

	configer.AssertExpectations(t)
}

func testBindConfigUsingName(t *testing.T) {
	var (
		assert   = assert.New(t)
		configer = new(mockConfiger)
		flagSet  = newFlagSet(t, "--name", "lab")
	)

	configer.On("SetConfigName", "lab").Once()
	assert.True(BindConfig(configer, flagSet, DefaultFileFlag, DefaultNameFlag))

	configer.AssertExpectations(t)
}

func testBindConfigMissing(t *testing.T) {
	var (
		assert   = assert.New(t)
		configer = new(mockConfiger)
		flagSet  = newFlagSet(t)
	)

	assert.False(BindConfig(configer, flagSet, DefaultFileFlag, DefaultNameFlag))
	assert.False(BindConfig(configer, flagSet, "nosuch", "nosuch"))

	configer.AssertExpectations(t)
}

func TestBindConfig(t *testing.T) {
	t.Run("UsingFile", testBindConfigUsingFile)
	t.Run("UsingName", testBindConfigUsingName)
	t.Run("Missing", testBindConfigMissing)
}
